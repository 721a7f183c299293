package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Content is a pointer so "content key absent" and "content empty" stay
// distinguishable: the key is required, the empty string is a valid value.
type CreateNoteRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// AdminCreateNoteRequest lets an administrator create a note on behalf of a
// user. An empty UserID means the note is owned by the admin themselves.
type AdminCreateNoteRequest struct {
	UserID  string  `json:"user_id"`
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

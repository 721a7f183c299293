package model

import "time"

const NoteTitleMaxLength = 255

type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteWithOwner is the admin-facing projection: the note plus the owner's
// identity, joined in one query for the unscoped views.
type NoteWithOwner struct {
	Note
	OwnerEmail string `json:"owner_email"`
}

// NoteFilter carries list options. Sort and Order hold already-validated
// values by the time they reach a repository; OwnerID is only honored by
// the unscoped admin listing.
type NoteFilter struct {
	Search  string
	Sort    string
	Order   string
	OwnerID string
}

const (
	NoteSortTitle     = "title"
	NoteSortCreatedAt = "created_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

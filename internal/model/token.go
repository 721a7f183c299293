package model

import "time"

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

// LoginEvent is an append-only record of an authentication attempt against
// a known account. Successful events back the admin login log.
type LoginEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Success    bool      `json:"success"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Statistics struct {
	TotalUsers           int     `json:"total_users"`
	TotalNotes           int     `json:"total_notes"`
	AvgNotesPerUser      float64 `json:"avg_notes_per_user"`
	ActiveUsersLast7Days int     `json:"active_users_last_7_days"`
}

package service

import (
	"context"
	"time"

	"notely/internal/model"
)

// Store interfaces are defined on the consumer side so services can be
// unit-tested against mocks; internal/repository provides the pgx-backed
// implementations.

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id string, role model.Role, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash string, updatedAt time.Time) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type RefreshTokenStore interface {
	Store(ctx context.Context, jti string, userID string, issuedAt time.Time, expiresAt time.Time) error
	Rotate(ctx context.Context, jti string) error
	Revoke(ctx context.Context, jti string) error
}

type LoginEventStore interface {
	Record(ctx context.Context, ev model.LoginEvent) error
	RecentSuccessful(ctx context.Context, limit int) ([]model.LoginEvent, error)
}

type NoteStore interface {
	ListOwned(ctx context.Context, ownerID string, f model.NoteFilter) ([]model.Note, error)
	ListAll(ctx context.Context, f model.NoteFilter) ([]model.NoteWithOwner, error)
	Create(ctx context.Context, n model.Note) error
	FindOwned(ctx context.Context, id string, ownerID string) (model.Note, error)
	Find(ctx context.Context, id string) (model.NoteWithOwner, error)
	UpdateOwned(ctx context.Context, id string, ownerID string, title *string, content *string, updatedAt time.Time) (model.Note, error)
	Update(ctx context.Context, id string, title *string, content *string, updatedAt time.Time) (model.Note, error)
	DeleteOwned(ctx context.Context, id string, ownerID string) error
	Delete(ctx context.Context, id string) error
}

type StatsStore interface {
	CountUsers(ctx context.Context) (int, error)
	CountNotes(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, since time.Time) (int, error)
}

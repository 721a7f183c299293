package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"notely/internal/model"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserStore) UpdateRole(ctx context.Context, id string, role model.Role, updatedAt time.Time) error {
	return m.Called(ctx, id, role, updatedAt).Error(0)
}

func (m *mockUserStore) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	return m.Called(ctx, id, active, updatedAt).Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id string, passwordHash string, updatedAt time.Time) error {
	return m.Called(ctx, id, passwordHash, updatedAt).Error(0)
}

func (m *mockUserStore) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Store(ctx context.Context, jti string, userID string, issuedAt time.Time, expiresAt time.Time) error {
	return m.Called(ctx, jti, userID, issuedAt, expiresAt).Error(0)
}

func (m *mockTokenStore) Rotate(ctx context.Context, jti string) error {
	return m.Called(ctx, jti).Error(0)
}

func (m *mockTokenStore) Revoke(ctx context.Context, jti string) error {
	return m.Called(ctx, jti).Error(0)
}

type mockLoginEventStore struct{ mock.Mock }

func (m *mockLoginEventStore) Record(ctx context.Context, ev model.LoginEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockLoginEventStore) RecentSuccessful(ctx context.Context, limit int) ([]model.LoginEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.LoginEvent), args.Error(1)
}

type mockNoteStore struct{ mock.Mock }

func (m *mockNoteStore) ListOwned(ctx context.Context, ownerID string, f model.NoteFilter) ([]model.Note, error) {
	args := m.Called(ctx, ownerID, f)
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *mockNoteStore) ListAll(ctx context.Context, f model.NoteFilter) ([]model.NoteWithOwner, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.NoteWithOwner), args.Error(1)
}

func (m *mockNoteStore) Create(ctx context.Context, n model.Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNoteStore) FindOwned(ctx context.Context, id string, ownerID string) (model.Note, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteStore) Find(ctx context.Context, id string) (model.NoteWithOwner, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.NoteWithOwner), args.Error(1)
}

func (m *mockNoteStore) UpdateOwned(ctx context.Context, id string, ownerID string, title *string, content *string, updatedAt time.Time) (model.Note, error) {
	args := m.Called(ctx, id, ownerID, title, content, updatedAt)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteStore) Update(ctx context.Context, id string, title *string, content *string, updatedAt time.Time) (model.Note, error) {
	args := m.Called(ctx, id, title, content, updatedAt)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteStore) DeleteOwned(ctx context.Context, id string, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *mockNoteStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockStatsStore struct{ mock.Mock }

func (m *mockStatsStore) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStatsStore) CountNotes(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStatsStore) CountActiveSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notely/internal/model"
	"notely/pkg/apierror"
)

var (
	regularPrincipal = model.Principal{UserID: "user-1", Email: "alice@example.com", Role: model.RoleRegular}
	adminPrincipal   = model.Principal{UserID: "admin-1", Email: "root@example.com", Role: model.RoleAdmin}
)

func strPtr(s string) *string { return &s }

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("owner is forced to the principal", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))

		notes.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
			return n.OwnerID == regularPrincipal.UserID && n.Title == "Groceries" && n.Content == "milk, eggs"
		})).Return(nil)

		note, err := svc.Create(ctx, regularPrincipal, model.CreateNoteRequest{
			Title:   "Groceries",
			Content: strPtr("milk, eggs"),
		})

		require.NoError(t, err)
		assert.Equal(t, regularPrincipal.UserID, note.OwnerID)
		assert.NotEmpty(t, note.ID)
		notes.AssertExpectations(t)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("Create", mock.Anything, mock.Anything).Return(nil)

		note, err := svc.Create(ctx, regularPrincipal, model.CreateNoteRequest{
			Title:   "  Groceries  ",
			Content: strPtr(""),
		})

		require.NoError(t, err)
		assert.Equal(t, "Groceries", note.Title)
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name string
			req  model.CreateNoteRequest
		}{
			{"empty title", model.CreateNoteRequest{Title: "", Content: strPtr("x")}},
			{"whitespace title", model.CreateNoteRequest{Title: "   ", Content: strPtr("x")}},
			{"title too long", model.CreateNoteRequest{Title: strings.Repeat("a", 256), Content: strPtr("x")}},
			{"missing content key", model.CreateNoteRequest{Title: "ok", Content: nil}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				notes := new(mockNoteStore)
				svc := NewNoteService(notes, new(mockUserStore))

				_, err := svc.Create(ctx, regularPrincipal, tc.req)

				assert.True(t, apierror.IsCode(err, "VALIDATION_ERROR"))
				notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("empty content is allowed", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, regularPrincipal, model.CreateNoteRequest{Title: "ok", Content: strPtr("")})

		assert.NoError(t, err)
	})
}

func TestNoteService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to created_at desc", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))

		notes.On("ListOwned", mock.Anything, regularPrincipal.UserID, model.NoteFilter{
			Sort:  model.NoteSortCreatedAt,
			Order: model.OrderDesc,
		}).Return([]model.Note{}, nil)

		_, err := svc.List(ctx, regularPrincipal, model.NoteFilter{})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("search term and sort are passed through", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))

		notes.On("ListOwned", mock.Anything, regularPrincipal.UserID, model.NoteFilter{
			Search: "groc",
			Sort:   model.NoteSortTitle,
			Order:  model.OrderAsc,
		}).Return([]model.Note{}, nil)

		_, err := svc.List(ctx, regularPrincipal, model.NoteFilter{Search: " groc ", Sort: "Title", Order: "ASC"})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("unknown sort is rejected", func(t *testing.T) {
		svc := NewNoteService(new(mockNoteStore), new(mockUserStore))

		_, err := svc.List(ctx, regularPrincipal, model.NoteFilter{Sort: "owner"})

		assert.True(t, apierror.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("unknown order is rejected", func(t *testing.T) {
		svc := NewNoteService(new(mockNoteStore), new(mockUserStore))

		_, err := svc.List(ctx, regularPrincipal, model.NoteFilter{Order: "sideways"})

		assert.True(t, apierror.IsCode(err, "VALIDATION_ERROR"))
	})
}

func TestNoteService_CrossUserAccess(t *testing.T) {
	ctx := context.Background()

	// The store query is scoped to the owner, so a foreign note simply has
	// no row: the caller sees not-found, never forbidden.
	t.Run("get", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("FindOwned", mock.Anything, "note-b", regularPrincipal.UserID).Return(model.Note{}, model.ErrNoteNotFound)

		_, err := svc.Get(ctx, regularPrincipal, "note-b")

		assert.ErrorIs(t, err, model.ErrNoteNotFound)
	})

	t.Run("update", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("UpdateOwned", mock.Anything, "note-b", regularPrincipal.UserID, mock.Anything, mock.Anything, mock.Anything).
			Return(model.Note{}, model.ErrNoteNotFound)

		_, err := svc.Update(ctx, regularPrincipal, "note-b", model.UpdateNoteRequest{Title: strPtr("hijack")})

		assert.ErrorIs(t, err, model.ErrNoteNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("DeleteOwned", mock.Anything, "note-b", regularPrincipal.UserID).Return(model.ErrNoteNotFound)

		err := svc.Delete(ctx, regularPrincipal, "note-b")

		assert.ErrorIs(t, err, model.ErrNoteNotFound)
	})
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch is rejected", func(t *testing.T) {
		svc := NewNoteService(new(mockNoteStore), new(mockUserStore))

		_, err := svc.Update(ctx, regularPrincipal, "note-a", model.UpdateNoteRequest{})

		assert.True(t, apierror.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("content-only patch leaves title nil", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("UpdateOwned", mock.Anything, "note-a", regularPrincipal.UserID, (*string)(nil), strPtr("new body"), mock.Anything).
			Return(model.Note{ID: "note-a"}, nil)

		_, err := svc.Update(ctx, regularPrincipal, "note-a", model.UpdateNoteRequest{Content: strPtr("new body")})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("blank title patch is rejected", func(t *testing.T) {
		svc := NewNoteService(new(mockNoteStore), new(mockUserStore))

		_, err := svc.Update(ctx, regularPrincipal, "note-a", model.UpdateNoteRequest{Title: strPtr("  ")})

		assert.True(t, apierror.IsCode(err, "VALIDATION_ERROR"))
	})
}

func TestNoteService_AdminOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("regular principal is refused everywhere", func(t *testing.T) {
		svc := NewNoteService(new(mockNoteStore), new(mockUserStore))

		_, listErr := svc.AdminList(ctx, regularPrincipal, model.NoteFilter{})
		_, getErr := svc.AdminGet(ctx, regularPrincipal, "note-a")
		_, createErr := svc.AdminCreate(ctx, regularPrincipal, model.AdminCreateNoteRequest{Title: "x", Content: strPtr("")})
		_, updateErr := svc.AdminUpdate(ctx, regularPrincipal, "note-a", model.UpdateNoteRequest{Title: strPtr("x")})
		deleteErr := svc.AdminDelete(ctx, regularPrincipal, "note-a")

		for _, err := range []error{listErr, getErr, createErr, updateErr, deleteErr} {
			assert.ErrorIs(t, err, model.ErrForbidden)
		}
	})

	t.Run("admin list passes the owner filter through", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))

		notes.On("ListAll", mock.Anything, model.NoteFilter{
			Sort:    model.NoteSortCreatedAt,
			Order:   model.OrderDesc,
			OwnerID: "user-1",
		}).Return([]model.NoteWithOwner{}, nil)

		_, err := svc.AdminList(ctx, adminPrincipal, model.NoteFilter{OwnerID: "user-1"})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("admin create defaults owner to the admin", func(t *testing.T) {
		notes := new(mockNoteStore)
		svc := NewNoteService(notes, new(mockUserStore))
		notes.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
			return n.OwnerID == adminPrincipal.UserID
		})).Return(nil)

		_, err := svc.AdminCreate(ctx, adminPrincipal, model.AdminCreateNoteRequest{Title: "memo", Content: strPtr("")})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("admin create on behalf of a user", func(t *testing.T) {
		notes := new(mockNoteStore)
		users := new(mockUserStore)
		svc := NewNoteService(notes, users)

		users.On("FindByID", mock.Anything, "user-1").Return(model.User{ID: "user-1"}, nil)
		notes.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
			return n.OwnerID == "user-1"
		})).Return(nil)

		_, err := svc.AdminCreate(ctx, adminPrincipal, model.AdminCreateNoteRequest{
			UserID:  "user-1",
			Title:   "memo",
			Content: strPtr(""),
		})

		require.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("admin create for an unknown user is a validation error", func(t *testing.T) {
		notes := new(mockNoteStore)
		users := new(mockUserStore)
		svc := NewNoteService(notes, users)
		users.On("FindByID", mock.Anything, "nope").Return(model.User{}, model.ErrUserNotFound)

		_, err := svc.AdminCreate(ctx, adminPrincipal, model.AdminCreateNoteRequest{
			UserID:  "nope",
			Title:   "memo",
			Content: strPtr(""),
		})

		assert.True(t, apierror.IsCode(err, "VALIDATION_ERROR"))
		notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

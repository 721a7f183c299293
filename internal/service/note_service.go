package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"notely/internal/model"
	"notely/pkg/apierror"
)

type NoteService struct {
	notes NoteStore
	users UserStore
}

func NewNoteService(notes NoteStore, users UserStore) *NoteService {
	return &NoteService{notes: notes, users: users}
}

// List returns the principal's own notes. The scoping happens in the store
// query itself; there is no unscoped fetch followed by filtering.
func (s *NoteService) List(ctx context.Context, p model.Principal, f model.NoteFilter) ([]model.Note, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}

	return s.notes.ListOwned(ctx, p.UserID, f)
}

// Create makes a note owned by the principal. Any owner supplied by the
// client is ignored.
func (s *NoteService) Create(ctx context.Context, p model.Principal, req model.CreateNoteRequest) (model.Note, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return model.Note{}, err
	}

	if req.Content == nil {
		return model.Note{}, errValidation("content is required", "content")
	}

	now := time.Now().UTC()
	note := model.Note{
		ID:        uuid.NewString(),
		OwnerID:   p.UserID,
		Title:     title,
		Content:   *req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return model.Note{}, err
	}

	return note, nil
}

func (s *NoteService) Get(ctx context.Context, p model.Principal, id string) (model.Note, error) {
	return s.notes.FindOwned(ctx, id, p.UserID)
}

func (s *NoteService) Update(ctx context.Context, p model.Principal, id string, req model.UpdateNoteRequest) (model.Note, error) {
	title, err := validatePatch(req)
	if err != nil {
		return model.Note{}, err
	}

	return s.notes.UpdateOwned(ctx, id, p.UserID, title, req.Content, time.Now().UTC())
}

func (s *NoteService) Delete(ctx context.Context, p model.Principal, id string) error {
	return s.notes.DeleteOwned(ctx, id, p.UserID)
}

// Admin operations live on separate methods rather than a flag on the scoped
// ones, so the unscoped view is always an explicit request. Each re-checks
// the role even though the router already gates the admin routes.

func (s *NoteService) AdminList(ctx context.Context, p model.Principal, f model.NoteFilter) ([]model.NoteWithOwner, error) {
	if !p.IsAdmin() {
		return nil, model.ErrForbidden
	}

	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}

	return s.notes.ListAll(ctx, f)
}

func (s *NoteService) AdminGet(ctx context.Context, p model.Principal, id string) (model.NoteWithOwner, error) {
	if !p.IsAdmin() {
		return model.NoteWithOwner{}, model.ErrForbidden
	}

	return s.notes.Find(ctx, id)
}

// AdminCreate creates a note on behalf of the user named in the request,
// defaulting to the admin themselves when no user is given.
func (s *NoteService) AdminCreate(ctx context.Context, p model.Principal, req model.AdminCreateNoteRequest) (model.Note, error) {
	if !p.IsAdmin() {
		return model.Note{}, model.ErrForbidden
	}

	title, err := validateTitle(req.Title)
	if err != nil {
		return model.Note{}, err
	}

	if req.Content == nil {
		return model.Note{}, errValidation("content is required", "content")
	}

	ownerID := strings.TrimSpace(req.UserID)
	if ownerID == "" {
		ownerID = p.UserID
	} else if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.Note{}, errValidation("user does not exist", "user_id")
		}
		return model.Note{}, err
	}

	now := time.Now().UTC()
	note := model.Note{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   *req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return model.Note{}, err
	}

	return note, nil
}

func (s *NoteService) AdminUpdate(ctx context.Context, p model.Principal, id string, req model.UpdateNoteRequest) (model.Note, error) {
	if !p.IsAdmin() {
		return model.Note{}, model.ErrForbidden
	}

	title, err := validatePatch(req)
	if err != nil {
		return model.Note{}, err
	}

	return s.notes.Update(ctx, id, title, req.Content, time.Now().UTC())
}

func (s *NoteService) AdminDelete(ctx context.Context, p model.Principal, id string) error {
	if !p.IsAdmin() {
		return model.ErrForbidden
	}

	return s.notes.Delete(ctx, id)
}

func normalizeFilter(f model.NoteFilter) (model.NoteFilter, error) {
	f.Search = strings.TrimSpace(f.Search)

	switch strings.ToLower(strings.TrimSpace(f.Sort)) {
	case "":
		f.Sort = model.NoteSortCreatedAt
	case model.NoteSortTitle:
		f.Sort = model.NoteSortTitle
	case model.NoteSortCreatedAt:
		f.Sort = model.NoteSortCreatedAt
	default:
		return model.NoteFilter{}, errValidation("sort must be one of: title, created_at", "sort")
	}

	switch strings.ToLower(strings.TrimSpace(f.Order)) {
	case "":
		f.Order = model.OrderDesc
	case model.OrderAsc:
		f.Order = model.OrderAsc
	case model.OrderDesc:
		f.Order = model.OrderDesc
	default:
		return model.NoteFilter{}, errValidation("order must be one of: asc, desc", "order")
	}

	return f, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", errValidation("title is required", "title")
	}

	if utf8.RuneCountInString(title) > model.NoteTitleMaxLength {
		return "", errValidation("title must be at most 255 characters", "title")
	}

	return title, nil
}

// validatePatch checks an update payload and returns the cleaned title (nil
// when the title is not being changed).
func validatePatch(req model.UpdateNoteRequest) (*string, error) {
	if req.Title == nil && req.Content == nil {
		return nil, errValidation("at least one of title or content is required", "")
	}

	if req.Title == nil {
		return nil, nil
	}

	title, err := validateTitle(*req.Title)
	if err != nil {
		return nil, err
	}

	return &title, nil
}

func errValidation(message string, field string) error {
	return apierror.New("VALIDATION_ERROR", message, field, http.StatusBadRequest)
}

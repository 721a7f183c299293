package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notely/internal/model"
	"notely/internal/service"
	"notely/pkg/apierror"
)

// AdminNoteHandler exposes the unscoped note views. These are deliberately
// separate routes (and service methods) from the user-scoped ones so the
// all-users view is never reachable by accident.
type AdminNoteHandler struct {
	service *service.NoteService
}

func NewAdminNoteHandler(service *service.NoteService) *AdminNoteHandler {
	return &AdminNoteHandler{service: service}
}

func (h *AdminNoteHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	filter := noteFilterFromQuery(r)
	filter.OwnerID = r.URL.Query().Get("user_id")

	notes, err := h.service.AdminList(r.Context(), principal, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, notes, &model.Meta{Total: len(notes)})
}

func (h *AdminNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	var payload model.AdminCreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	note, err := h.service.AdminCreate(r.Context(), principal, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, note, nil)
}

func (h *AdminNoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	note, err := h.service.AdminGet(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, note, nil)
}

func (h *AdminNoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	var payload model.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	note, err := h.service.AdminUpdate(r.Context(), principal, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, note, nil)
}

func (h *AdminNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	if err := h.service.AdminDelete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

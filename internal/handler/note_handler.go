package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notely/internal/middleware"
	"notely/internal/model"
	"notely/internal/service"
	"notely/pkg/apierror"
)

type NoteHandler struct {
	service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func noteFilterFromQuery(r *http.Request) model.NoteFilter {
	q := r.URL.Query()
	return model.NoteFilter{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}
}

func principalOrDeny(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return model.Principal{}, false
	}
	return *principal, true
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	notes, err := h.service.List(r.Context(), principal, noteFilterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, notes, &model.Meta{Total: len(notes)})
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	var payload model.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	note, err := h.service.Create(r.Context(), principal, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, note, nil)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	note, err := h.service.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, note, nil)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	note, err := h.service.Update(r.Context(), principal, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, note, nil)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartnotes/internal/api/middleware"
	"smartnotes/internal/app/service"
	"smartnotes/internal/app/validation"
	"smartnotes/internal/common"

	"github.com/go-chi/chi/v5"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.listNotes)       // GET /api/v1/notes
	r.Post("/", h.createNote)     // POST /api/v1/notes
	r.Get("/{noteID}", h.getNote) // GET /api/v1/notes/{id}
	r.Put("/{noteID}", h.updateNote)
	r.Delete("/{noteID}", h.deleteNote)
}

// ListNotesWeb serves the list for session-cookie clients; the router
// mounts it behind the session authenticator instead of the bearer guard.
func (h *NoteHandler) ListNotesWeb(w http.ResponseWriter, r *http.Request) {
	h.listNotes(w, r)
}

func (h *NoteHandler) listNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	notes, err := h.noteService.ListNotes(r.Context(), ownerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) createNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	var req service.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	note, err := h.noteService.CreateNote(r.Context(), ownerID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) getNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	note, err := h.noteService.GetNote(r.Context(), ownerID, chi.URLParam(r, "noteID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) updateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	var req service.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	note, err := h.noteService.UpdateNote(r.Context(), ownerID, chi.URLParam(r, "noteID"), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	if err := h.noteService.DeleteNote(r.Context(), ownerID, chi.URLParam(r, "noteID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) respondError(w http.ResponseWriter, err error) {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		common.RespondWithFieldErrors(w, fe)
		return
	}
	common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
}

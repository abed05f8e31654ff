// Package diary implements the CRUD route handlers for diary entries.
// Handlers talk only to the store and validation; everything upstream of
// them is the middleware chain.
package diary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rivethead/rivethead-api/internal/domain"
	"github.com/rivethead/rivethead-api/internal/server"
	"github.com/rivethead/rivethead-api/internal/store"
)

// Handler serves the diary routes.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a diary handler over the given store.
func NewHandler(st store.Store, logger *slog.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// Register mounts the diary routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/diary", h.HandleList)
	r.Post("/diary/new", h.HandleCreate)
	r.Put("/diary/update/album/{id}", h.HandleUpdateAlbum)
	r.Put("/diary/update/thoughts/{id}", h.HandleUpdateThoughts)
	r.Delete("/diary/delete/{id}", h.HandleDelete)
}

// HandleList returns every diary record as a JSON array.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, records)
}

// HandleCreate validates the form fields and persists a new entry. The
// store owns the id and created_at; updated_at stays unset.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		server.RespondError(w, domain.ErrValidation("body", "malformed form body"))
		return
	}

	band := r.PostFormValue("band")
	album := r.PostFormValue("album")
	thoughts := r.PostFormValue("thoughts")

	for _, f := range []struct{ name, value string }{
		{"band", band},
		{"album", album},
		{"thoughts", thoughts},
	} {
		if err := domain.ValidateEntryField(f.name, f.value); err != nil {
			server.RespondError(w, err)
			return
		}
	}

	rec, err := h.store.Create(r.Context(), band, album, thoughts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	server.AddLogField(r.Context(), "record_id", rec.ID.String())
	server.RespondJSON(w, http.StatusOK, server.Message{Message: "New diary item added..."})
}

// HandleUpdateAlbum overwrites the album field of one record.
func (h *Handler) HandleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, store.FieldAlbum, "Diary item album content updated...")
}

// HandleUpdateThoughts overwrites the thoughts field of one record.
func (h *Handler) HandleUpdateThoughts(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, store.FieldThoughts, "Diary item thoughts content updated...")
}

func (h *Handler) updateField(w http.ResponseWriter, r *http.Request, field store.Field, confirmation string) {
	id, err := domain.ParseRecordID(chi.URLParam(r, "id"))
	if err != nil {
		server.RespondError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		server.RespondError(w, domain.ErrValidation("body", "malformed form body"))
		return
	}

	value := r.PostFormValue(string(field))
	if err := domain.ValidateEntryField(string(field), value); err != nil {
		server.RespondError(w, err)
		return
	}

	if err := h.store.UpdateField(r.Context(), id, field, value); err != nil {
		h.fail(w, r, err)
		return
	}

	server.RespondJSON(w, http.StatusOK, server.Message{Message: confirmation})
}

// HandleDelete removes a record by id. Deleting an id that no longer
// exists succeeds; the operation is idempotent.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRecordID(chi.URLParam(r, "id"))
	if err != nil {
		server.RespondError(w, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	server.RespondJSON(w, http.StatusOK, server.Message{Message: "Diary item removed..."})
}

// fail logs the full store error and responds with the canonical body.
// Raw storage detail stays in the log, never in the response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	server.AddError(r.Context(), err)
	h.logger.Error("diary store operation failed",
		slog.String("request_id", server.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)
	server.RespondError(w, err)
}

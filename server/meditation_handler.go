package server

import (
	"errors"
	"net/http"

	"meditation-backend/repository"
)

// ListMeditationsHandler returns every published track.
func (h *APIHandler) ListMeditationsHandler(w http.ResponseWriter, r *http.Request) {
	meditations, err := h.catalog.ListPublished(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, meditations)
}

// GetMeditationHandler returns one published track, or null when there is none.
func (h *APIHandler) GetMeditationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.catalog.GetPublished(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

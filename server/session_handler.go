package server

import (
	"net/http"

	"meditation-backend/model"
)

// StartSessionHandler opens a listening session for a device.
func (h *APIHandler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req model.SessionStart
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.ledger.Start(r.Context(), *req.MeditationID, *req.DeviceID)
	if err != nil {
		h.fail(w, r, err, meditationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CompleteSessionHandler records how long the session was listened to.
func (h *APIHandler) CompleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req model.SessionComplete
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.ledger.Complete(r.Context(), id, *req.SecondsListened)
	if err != nil {
		h.fail(w, r, err, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// StatsHandler reports total minutes and today's completions for a device.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := pathID(w, r, "device_id")
	if !ok {
		return
	}
	stats, err := h.ledger.Stats(r.Context(), deviceID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

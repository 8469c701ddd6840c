package server

import (
	"net/http"

	"meditation-backend/core/catalog"
	"meditation-backend/logger"
	"meditation-backend/model"
)

const meditationNotFound = "Meditation not found"

// CreateMeditationHandler adds a published track.
func (h *APIHandler) CreateMeditationHandler(w http.ResponseWriter, r *http.Request) {
	var req model.MeditationCreate
	if !h.decode(w, r, &req) {
		return
	}
	m, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// UpdateMeditationHandler applies a partial update. Fields missing from the
// body are left as they are.
func (h *APIHandler) UpdateMeditationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req model.MeditationUpdate
	if !h.decode(w, r, &req) {
		return
	}
	m, err := h.catalog.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err, meditationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteMeditationHandler removes a track and its sessions.
func (h *APIHandler) DeleteMeditationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, meditationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Meditation deleted"})
}

// UploadAudioHandler stores the multipart "file" field in object storage and
// links it to the track.
func (h *APIHandler) UploadAudioHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.cfg.UploadMaxMemory); err != nil {
		logger.Debug("Failed to parse multipart form", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing 'file' in form")
		return
	}
	defer file.Close()

	m, err := h.catalog.UploadAudio(r.Context(), id, catalog.AudioUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.fail(w, r, err, meditationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/rs/zerolog/log"
)

type uploadResponse struct {
	File string `json:"file"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

type summarizeRequest struct {
	Text string `json:"text"`
}

// Upload stores the multipart "file" field. "kind" defaults to media.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.opts.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, domain.ErrNoFile.Error())
		return
	}
	defer file.Close()

	name, err := h.MediaService.Upload(r.Context(), r.FormValue("kind"), file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNoFile):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("Failed to store upload")
			writeError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{File: name})
}

func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	text, err := h.TextService.Transcribe(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to transcribe")
		writeError(w, http.StatusInternalServerError, "transcription failed")
		return
	}
	writeJSON(w, http.StatusOK, transcribeResponse{Text: text})
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	writeJSON(w, http.StatusOK, h.TextService.Summarize(req.Text))
}

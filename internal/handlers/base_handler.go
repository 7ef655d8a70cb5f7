package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/media"
	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/sessions"
	"github.com/academyhub/backend/internal/validation"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondHTML renders a page into a buffer first, so a template failure still
// produces a clean 500 response
func (h *BaseHandler) RespondHTML(w http.ResponseWriter, render func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.Logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("failed to write page", zap.Error(err))
	}
}

// RespondServiceError maps an error returned by a service to a status code.
// Unexpected errors are logged and reported as "failed to <action>".
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error, action string) {
	if fields := validation.FieldErrors(err); fields != nil {
		h.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrLessonNotFound),
		errors.Is(err, models.ErrBlockNotFound),
		errors.Is(err, models.ErrOptionNotFound),
		errors.Is(err, sessions.ErrSessionNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrSlugTaken),
		errors.Is(err, models.ErrNIFTaken):
		h.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, media.ErrFileTooLarge):
		h.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, models.ErrBlockTypeMismatch),
		errors.Is(err, models.ErrInvalidDirection),
		errors.Is(err, models.ErrInvalidContent),
		errors.Is(err, lesson.ErrUnknownBlockType),
		errors.Is(err, media.ErrNotImage),
		errors.Is(err, media.ErrEmptyFile):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("failed to "+action, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

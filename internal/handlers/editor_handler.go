package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartMemory is the part of a multipart form kept in memory before spilling to disk
const multipartMemory = 8 << 20

// EditorService is the interface that wraps methods for lesson editing sessions.
//
// Every mutating method loads the session, applies one editor operation and stores
// the result. Operations on a missing block or option fail; operations that would
// break a bound (moving past an end, a fifth or a first option) leave the session
// unchanged and succeed.
type EditorService interface {
	// Open starts an editing session over the stored state of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the new session, or models.ErrLessonNotFound.
	Open(ctx context.Context, lessonID int) (*models.EditorSession, error)
	// Get loads an editing session
	//
	// "ctx" is the context for the request.
	// "sessionID" is the ID of the session.
	//
	// Returns the session, or sessions.ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*models.EditorSession, error)
	// Close discards an editing session without saving it
	//
	// "ctx" is the context for the request.
	// "sessionID" is the ID of the session.
	//
	// Returns an error if any.
	Close(ctx context.Context, sessionID string) error
	// UpdateDetails changes the lesson fields of a session
	UpdateDetails(ctx context.Context, sessionID string, req *models.UpdateLessonDetailsRequest) (*models.EditorSession, error)
	// AddBlock appends a block with the default payload of its type
	AddBlock(ctx context.Context, sessionID string, t lesson.BlockType) (*models.EditorSession, error)
	// UpdateBlock replaces the content of a block
	UpdateBlock(ctx context.Context, sessionID, blockID string, raw json.RawMessage) (*models.EditorSession, error)
	// MoveBlock swaps the block at index with its neighbour
	MoveBlock(ctx context.Context, sessionID string, index int, d lesson.MoveDirection) (*models.EditorSession, error)
	// RequestRemove asks for confirmation before removing a block
	RequestRemove(ctx context.Context, sessionID, blockID string) (*models.EditorSession, error)
	// ConfirmRemove removes the block awaiting confirmation
	ConfirmRemove(ctx context.Context, sessionID string) (*models.EditorSession, error)
	// CancelRemove discards the pending removal
	CancelRemove(ctx context.Context, sessionID string) (*models.EditorSession, error)
	// AddOption appends an option to a quiz block
	AddOption(ctx context.Context, sessionID, blockID string) (*models.EditorSession, error)
	// RemoveOption removes an option from a quiz block
	RemoveOption(ctx context.Context, sessionID, blockID, optionID string) (*models.EditorSession, error)
	// SetCorrectOption marks one option of a quiz block as the only correct one
	SetCorrectOption(ctx context.Context, sessionID, blockID, optionID string) (*models.EditorSession, error)
	// SetImage reads an uploaded image into a data URL and stores it in an image block
	//
	// "ctx" is the context for the request.
	// "sessionID" is the ID of the session.
	// "blockID" is the ID of the image block.
	// "r" is the uploaded file.
	// "declaredType" is the content type sent by the client.
	//
	// Returns the session and an error if any.
	SetImage(ctx context.Context, sessionID, blockID string, r io.Reader, declaredType string) (*models.EditorSession, error)
	// Preview renders the session's current blocks as learners would see them
	Preview(ctx context.Context, sessionID string) (*models.LessonResponse, error)
	// Save validates the session's lesson and persists it with its whole block sequence
	//
	// "ctx" is the context for the request.
	// "sessionID" is the ID of the session.
	//
	// Returns the saved lesson and an error if any.
	Save(ctx context.Context, sessionID string) (*lesson.Lesson, error)
}

// EditorHandler handles HTTP requests for lesson editing sessions
type EditorHandler struct {
	BaseHandler
	service EditorService
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(svc EditorService, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all editor JSON routes
func (h *EditorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/editor", func(r chi.Router) {
		r.Post("/", h.OpenSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Patch("/", h.UpdateDetails)
			r.Delete("/", h.CloseSession)
			r.Get("/preview", h.Preview)
			r.Post("/save", h.Save)
			r.Post("/removal/confirm", h.ConfirmRemove)
			r.Post("/removal/cancel", h.CancelRemove)
			r.Route("/blocks", func(r chi.Router) {
				r.Post("/", h.AddBlock)
				r.Post("/move", h.MoveBlock)
				r.Put("/{blockId}", h.UpdateBlock)
				r.Delete("/{blockId}", h.RequestRemove)
				r.Post("/{blockId}/image", h.UploadImage)
				r.Post("/{blockId}/options", h.AddOption)
				r.Delete("/{blockId}/options/{optionId}", h.RemoveOption)
				r.Put("/{blockId}/options/{optionId}/correct", h.SetCorrectOption)
			})
		})
	})
}

// RegisterPageRoutes registers the HTML preview of editing sessions
func (h *EditorHandler) RegisterPageRoutes(r chi.Router) {
	r.Get("/editor/{sessionId}/preview", h.PreviewPage)
}

// respondSession writes the session state, or maps err
func (h *EditorHandler) respondSession(w http.ResponseWriter, status int, session *models.EditorSession, err error, action string) {
	if err != nil {
		h.RespondServiceError(w, err, action)
		return
	}
	h.RespondJSON(w, status, session.Response())
}

// OpenSession handles POST /api/v1/editor
// @Summary Open an editing session
// @Description Start editing a lesson. Changes stay in the session until it is saved.
// @Tags editor
// @Accept json
// @Produce json
// @Param request body models.OpenEditorRequest true "Lesson to edit"
// @Success 201 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor [post]
func (h *EditorHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req models.OpenEditorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Open(r.Context(), req.LessonID)
	h.respondSession(w, http.StatusCreated, session, err, "open editor session")
}

// GetSession handles GET /api/v1/editor/{sessionId}
// @Summary Get an editing session
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.EditorResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId} [get]
func (h *EditorHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), chi.URLParam(r, "sessionId"))
	h.respondSession(w, http.StatusOK, session, err, "get editor session")
}

// UpdateDetails handles PATCH /api/v1/editor/{sessionId}
// @Summary Update lesson details
// @Description Change the title, slug, class or visibility of the lesson being edited (partial update)
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body models.UpdateLessonDetailsRequest true "Lesson details"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId} [patch]
func (h *EditorHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLessonDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.UpdateDetails(r.Context(), chi.URLParam(r, "sessionId"), &req)
	h.respondSession(w, http.StatusOK, session, err, "update lesson details")
}

// CloseSession handles DELETE /api/v1/editor/{sessionId}
// @Summary Close an editing session
// @Description Discard an editing session without saving it
// @Tags editor
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId} [delete]
func (h *EditorHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Close(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		h.RespondServiceError(w, err, "close editor session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddBlock handles POST /api/v1/editor/{sessionId}/blocks
// @Summary Add a block
// @Description Append a block of the given type (text, video, image, quiz) with its default content
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body models.AddBlockRequest true "Block type"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Invalid request body or unknown block type"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks [post]
func (h *EditorHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	var req models.AddBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.AddBlock(r.Context(), chi.URLParam(r, "sessionId"), req.Type)
	h.respondSession(w, http.StatusOK, session, err, "add block")
}

// UpdateBlock handles PUT /api/v1/editor/{sessionId}/blocks/{blockId}
// @Summary Update block content
// @Description Replace the content of a block. The content must match the block's type.
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param blockId path string true "Block ID"
// @Param request body models.UpdateBlockRequest true "Block content"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Invalid request body or content"
// @Failure 404 {object} map[string]string "Session or block not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/{blockId} [put]
func (h *EditorHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.UpdateBlock(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "blockId"), req.Content)
	h.respondSession(w, http.StatusOK, session, err, "update block")
}

// MoveBlock handles POST /api/v1/editor/{sessionId}/blocks/move
// @Summary Move a block
// @Description Swap the block at index with its neighbour. Moves past either end leave the lesson unchanged.
// @Tags editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body models.MoveBlockRequest true "Block index and direction (up, down)"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Invalid request body or direction"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/move [post]
func (h *EditorHandler) MoveBlock(w http.ResponseWriter, r *http.Request) {
	var req models.MoveBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.MoveBlock(r.Context(), chi.URLParam(r, "sessionId"), req.Index, req.Direction)
	h.respondSession(w, http.StatusOK, session, err, "move block")
}

// RequestRemove handles DELETE /api/v1/editor/{sessionId}/blocks/{blockId}
// @Summary Request block removal
// @Description Mark a block for removal. It is only removed after confirmation.
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param blockId path string true "Block ID"
// @Success 200 {object} models.EditorResponse
// @Failure 404 {object} map[string]string "Session or block not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/{blockId} [delete]
func (h *EditorHandler) RequestRemove(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.RequestRemove(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "blockId"))
	h.respondSession(w, http.StatusOK, session, err, "request block removal")
}

// ConfirmRemove handles POST /api/v1/editor/{sessionId}/removal/confirm
// @Summary Confirm block removal
// @Description Remove the block awaiting confirmation and renumber the rest. Without a pending removal nothing changes.
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.EditorResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/removal/confirm [post]
func (h *EditorHandler) ConfirmRemove(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ConfirmRemove(r.Context(), chi.URLParam(r, "sessionId"))
	h.respondSession(w, http.StatusOK, session, err, "confirm block removal")
}

// CancelRemove handles POST /api/v1/editor/{sessionId}/removal/cancel
// @Summary Cancel block removal
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.EditorResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/removal/cancel [post]
func (h *EditorHandler) CancelRemove(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CancelRemove(r.Context(), chi.URLParam(r, "sessionId"))
	h.respondSession(w, http.StatusOK, session, err, "cancel block removal")
}

// AddOption handles POST /api/v1/editor/{sessionId}/blocks/{blockId}/options
// @Summary Add a quiz option
// @Description Append an empty option to a quiz. A quiz with four options is left unchanged.
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param blockId path string true "Quiz block ID"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Not a quiz block"
// @Failure 404 {object} map[string]string "Session or block not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/{blockId}/options [post]
func (h *EditorHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.AddOption(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "blockId"))
	h.respondSession(w, http.StatusOK, session, err, "add option")
}

// RemoveOption handles DELETE /api/v1/editor/{sessionId}/blocks/{blockId}/options/{optionId}
// @Summary Remove a quiz option
// @Description Remove an option from a quiz. A quiz with two options is left unchanged.
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param blockId path string true "Quiz block ID"
// @Param optionId path string true "Option ID"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Not a quiz block"
// @Failure 404 {object} map[string]string "Session, block or option not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/{blockId}/options/{optionId} [delete]
func (h *EditorHandler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.RemoveOption(r.Context(),
		chi.URLParam(r, "sessionId"), chi.URLParam(r, "blockId"), chi.URLParam(r, "optionId"))
	h.respondSession(w, http.StatusOK, session, err, "remove option")
}

// SetCorrectOption handles PUT /api/v1/editor/{sessionId}/blocks/{blockId}/options/{optionId}/correct
// @Summary Set the correct option
// @Description Mark one option as correct and every other option of the quiz as incorrect
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param blockId path string true "Quiz block ID"
// @Param optionId path string true "Option ID"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Not a quiz block"
// @Failure 404 {object} map[string]string "Session, block or option not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/{blockId}/options/{optionId}/correct [put]
func (h *EditorHandler) SetCorrectOption(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.SetCorrectOption(r.Context(),
		chi.URLParam(r, "sessionId"), chi.URLParam(r, "blockId"), chi.URLParam(r, "optionId"))
	h.respondSession(w, http.StatusOK, session, err, "set correct option")
}

// UploadImage handles POST /api/v1/editor/{sessionId}/blocks/{blockId}/image
// @Summary Upload an image
// @Description Read a local image file into a data URL and store it in an image block
// @Tags editor
// @Accept multipart/form-data
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param blockId path string true "Image block ID"
// @Param file formData file true "Image file"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} map[string]string "Missing file, not an image or not an image block"
// @Failure 404 {object} map[string]string "Session or block not found"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/blocks/{blockId}/image [post]
func (h *EditorHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	session, err := h.service.SetImage(r.Context(),
		chi.URLParam(r, "sessionId"), chi.URLParam(r, "blockId"), file, header.Header.Get("Content-Type"))
	h.respondSession(w, http.StatusOK, session, err, "upload image")
}

// Preview handles GET /api/v1/editor/{sessionId}/preview
// @Summary Preview a session
// @Description Render the unsaved blocks of a session as learners would see them
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.LessonResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/preview [get]
func (h *EditorHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.Preview(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.RespondServiceError(w, err, "preview lesson")
		return
	}
	h.RespondJSON(w, http.StatusOK, preview)
}

// Save handles POST /api/v1/editor/{sessionId}/save
// @Summary Save a session
// @Description Validate the lesson and persist it with its whole block sequence in one transaction. The session stays open.
// @Tags editor
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]any "Lesson saved successfully"
// @Failure 400 {object} map[string]any "Validation errors"
// @Failure 404 {object} map[string]string "Session or lesson not found"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /editor/{sessionId}/save [post]
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.Save(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.RespondServiceError(w, err, "save lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"lesson":  l,
		"message": "lesson saved successfully",
	})
}

// PreviewPage handles GET /editor/{sessionId}/preview and renders the preview as HTML
func (h *EditorHandler) PreviewPage(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.Preview(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.RespondServiceError(w, err, "preview lesson")
		return
	}

	h.RespondHTML(w, func(buf io.Writer) error {
		return writePage(buf, "Preview: "+preview.Title, "", func(w io.Writer) error {
			return lesson.RenderHTML(w, preview.Title, preview.Blocks)
		})
	})
}

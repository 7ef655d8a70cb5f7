package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/table"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for lesson business logic
type LessonService interface {
	// List retrieves all lessons without their blocks
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of lesson summaries and an error if any.
	List(ctx context.Context) ([]lesson.Summary, error)
	// Get retrieves a lesson with its blocks in ascending order
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson, or models.ErrLessonNotFound.
	Get(ctx context.Context, id int) (*lesson.Lesson, error)
	// Create creates an empty lesson
	//
	// "ctx" is the context for the request.
	// "req" is the request to create a lesson.
	//
	// Returns the ID of the created lesson and an error if any.
	Create(ctx context.Context, req *models.CreateLessonRequest) (int, error)
	// Delete deletes a lesson with its blocks
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
	// Render prepares a lesson for learners
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	// "query" holds the learner's quiz attempts (answer.<blockId>, submitted.<blockId>).
	//
	// Returns the rendered lesson and an error if any.
	Render(ctx context.Context, id int, query url.Values) (*models.LessonResponse, error)
	// AnswerQuiz evaluates an answer to a quiz block
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "blockID" is the ID of the quiz block.
	// "optionID" is the ID of the selected option.
	//
	// Returns the result and an error if any.
	AnswerQuiz(ctx context.Context, lessonID int, blockID, optionID string) (*lesson.QuizResult, error)
}

// LessonHandler handles HTTP requests for lessons as stored
type LessonHandler struct {
	BaseHandler
	service LessonService
	lessons *tableEndpoint[lesson.Summary]
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	h := &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
	h.lessons = &tableEndpoint[lesson.Summary]{
		base:  &h.BaseHandler,
		name:  "lessons",
		title: "Lessons",
		table: LessonsTable(),
		load:  svc.List,
	}
	return h
}

// LessonsTable returns the table configuration of the lessons page
func LessonsTable() *table.Table[lesson.Summary] {
	return table.New([]table.Column[lesson.Summary]{
		{Header: "Title", Key: "title", Sortable: true},
		{Header: "Slug", Key: "slug", Sortable: true},
		{Header: "Class", Key: "classId", Sortable: true},
		{Header: "Blocks", Key: "blockCount", Sortable: true},
		{Header: "Visible", Key: "isVisible", Sortable: true, Accessor: func(s lesson.Summary) string {
			if s.IsVisible {
				return "Yes"
			}
			return "No"
		}},
		{Header: "Updated", Key: "updatedAt", Sortable: true, Accessor: func(s lesson.Summary) string {
			return formatDate(s.UpdatedAt)
		}},
	},
		table.WithEmptyMessage[lesson.Summary]("No lessons yet"),
		table.WithRowActions(func(s lesson.Summary) []table.Action {
			return []table.Action{
				{Label: "View", Href: fmt.Sprintf("/lessons/%d", s.ID)},
				{Label: "Delete", Href: fmt.Sprintf("/api/v1/lessons/%d", s.ID), Method: http.MethodDelete},
			}
		}),
	)
}

// RegisterRoutes registers the JSON routes of lessons
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", h.GetLessons)
		r.Post("/", h.CreateLesson)
		r.Get("/{id}", h.GetLesson)
		r.Delete("/{id}", h.DeleteLesson)
		r.Get("/{id}/render", h.RenderLesson)
		r.Post("/{id}/quiz/{blockId}", h.AnswerQuiz)
	})
}

// RegisterPageRoutes registers the HTML pages of lessons
func (h *LessonHandler) RegisterPageRoutes(r chi.Router) {
	r.Get("/lessons", h.lessons.Page)
	r.Get("/lessons/{id}", h.LessonPage)
}

func lessonID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// GetLessons handles GET /api/v1/lessons
// @Summary Get lessons table
// @Description Get the current page of the lessons table
// @Tags lessons
// @Produce json
// @Param q query string false "Search term"
// @Param sort query string false "Sort key (title, slug, classId, blockCount, isVisible, updatedAt)"
// @Param dir query string false "Sort direction (asc, desc)"
// @Param page query int false "Page number (default: 1)"
// @Param vw query int false "Viewport width in pixels"
// @Success 200 {object} table.View[lesson.Summary]
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons [get]
func (h *LessonHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	h.lessons.View(w, r)
}

// CreateLesson handles POST /api/v1/lessons
// @Summary Create a lesson
// @Description Create an empty lesson. Blocks are added through an editor session.
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} map[string]any "Lesson created successfully"
// @Failure 400 {object} map[string]any "Invalid request body or validation errors"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "create lesson")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "lesson created successfully",
	})
}

// GetLesson handles GET /api/v1/lessons/{id}
// @Summary Get a lesson
// @Description Get a lesson with its blocks in ascending order
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} lesson.Lesson
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err, "get lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, l)
}

// DeleteLesson handles DELETE /api/v1/lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson and all of its blocks
// @Tags lessons
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [delete]
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err, "delete lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RenderLesson handles GET /api/v1/lessons/{id}/render
// @Summary Render a lesson
// @Description Render a lesson for learners. Quiz attempts are read from answer.<blockId> and submitted.<blockId> query parameters and are never stored.
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LessonResponse
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/render [get]
func (h *LessonHandler) RenderLesson(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	resp, err := h.service.Render(r.Context(), id, r.URL.Query())
	if err != nil {
		h.RespondServiceError(w, err, "render lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// AnswerQuiz handles POST /api/v1/lessons/{id}/quiz/{blockId}
// @Summary Check a quiz answer
// @Description Evaluate an answer to a quiz block. Nothing is stored.
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param blockId path string true "Quiz block ID"
// @Param request body models.QuizAnswerRequest true "Selected option"
// @Success 200 {object} lesson.QuizResult
// @Failure 400 {object} map[string]string "Invalid request or not a quiz block"
// @Failure 404 {object} map[string]string "Lesson, block or option not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/quiz/{blockId} [post]
func (h *LessonHandler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	var req models.QuizAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.AnswerQuiz(r.Context(), id, chi.URLParam(r, "blockId"), req.OptionID)
	if err != nil {
		h.RespondServiceError(w, err, "check answer")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// LessonPage handles GET /lessons/{id} and renders the lesson as HTML.
// Quiz forms submit back to the same page through the query string.
func (h *LessonHandler) LessonPage(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	resp, err := h.service.Render(r.Context(), id, r.URL.Query())
	if err != nil {
		h.RespondServiceError(w, err, "render lesson")
		return
	}

	h.RespondHTML(w, func(buf io.Writer) error {
		return writePage(buf, resp.Title, "", func(w io.Writer) error {
			return lesson.RenderHTML(w, resp.Title, resp.Blocks)
		})
	})
}

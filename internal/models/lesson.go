package models

import (
	"encoding/json"

	"github.com/academyhub/backend/internal/lesson"
)

// CreateLessonRequest represents a request to create an empty lesson
type CreateLessonRequest struct {
	Slug      string `json:"slug" validate:"required,slug,max=255" example:"present-tense"`
	Title     string `json:"title" validate:"required,notblank,max=255" example:"Present tense"`
	ClassID   int    `json:"classId" validate:"required,gt=0" example:"1"`
	IsVisible bool   `json:"isVisible" example:"false"`
}

// UpdateLessonDetailsRequest represents a request to change the lesson fields of an
// editing session (partial update)
type UpdateLessonDetailsRequest struct {
	Slug      *string `json:"slug,omitempty" example:"present-tense"`
	Title     *string `json:"title,omitempty" example:"Present tense"`
	ClassID   *int    `json:"classId,omitempty" example:"1"`
	IsVisible *bool   `json:"isVisible,omitempty" example:"true"`
}

// OpenEditorRequest represents a request to start editing a lesson
type OpenEditorRequest struct {
	LessonID int `json:"lessonId" example:"1"`
}

// AddBlockRequest represents a request to append a block
type AddBlockRequest struct {
	Type lesson.BlockType `json:"type" example:"quiz"`
}

// UpdateBlockRequest represents a request to replace the content of a block.
// Content is decoded according to the type of the existing block.
type UpdateBlockRequest struct {
	Content json.RawMessage `json:"content" swaggertype:"object"`
}

// MoveBlockRequest represents a request to move a block one position
type MoveBlockRequest struct {
	Index     int                  `json:"index" example:"1"`
	Direction lesson.MoveDirection `json:"direction" example:"up"`
}

// QuizAnswerRequest represents a learner's answer to a quiz block
type QuizAnswerRequest struct {
	OptionID string `json:"optionId" example:"6f1c1b0e-7c4d-4a57-9a57-2f3a5f1e9b11"`
}

// EditorSession is an open editing session
type EditorSession struct {
	ID     string
	Editor *lesson.Editor
}

// Response returns the state of the session as sent to clients
func (s *EditorSession) Response() EditorResponse {
	pending, _ := s.Editor.PendingRemoval()
	return EditorResponse{
		SessionID:      s.ID,
		Lesson:         s.Editor.Lesson(),
		PendingRemoval: pending,
	}
}

// EditorResponse is the state of an editing session
type EditorResponse struct {
	SessionID      string        `json:"sessionId"`
	Lesson         lesson.Lesson `json:"lesson"`
	PendingRemoval string        `json:"pendingRemoval,omitempty"`
}

// LessonResponse is a lesson prepared for learners
type LessonResponse struct {
	ID     int                    `json:"id"`
	Slug   string                 `json:"slug"`
	Title  string                 `json:"title"`
	Blocks []lesson.RenderedBlock `json:"blocks"`
}

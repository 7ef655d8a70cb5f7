package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/validation"
	"go.uber.org/zap"
)

// LessonRepository is the interface that wraps methods for lesson data access.
// A lesson is always read and written together with its whole block sequence.
type LessonRepository interface {
	// GetByID retrieves a lesson with its blocks
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson, or models.ErrLessonNotFound.
	GetByID(ctx context.Context, id int) (*lesson.Lesson, error)
	// List retrieves all lessons without their blocks
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of lesson summaries and an error if any.
	List(ctx context.Context) ([]lesson.Summary, error)
	// ExistsBySlug checks if a lesson other than "excludeID" uses the slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug to check.
	// "excludeID" is the ID of the lesson being saved, or 0 for a new lesson.
	//
	// Returns a boolean and an error if any.
	ExistsBySlug(ctx context.Context, slug string, excludeID int) (bool, error)
	// Create creates a lesson and its blocks and sets its ID
	//
	// "ctx" is the context for the request.
	// "l" is the lesson to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, l *lesson.Lesson) error
	// Save replaces a lesson and its whole block sequence atomically
	//
	// "ctx" is the context for the request.
	// "l" is the lesson to save.
	//
	// Returns models.ErrLessonNotFound if the lesson does not exist, or another error if any.
	Save(ctx context.Context, l *lesson.Lesson) error
	// Delete deletes a lesson and its blocks
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns models.ErrLessonNotFound if the lesson does not exist, or another error if any.
	Delete(ctx context.Context, id int) error
}

type lessonService struct {
	repo   LessonRepository
	logger *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(repo LessonRepository, logger *zap.Logger) *lessonService {
	return &lessonService{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves all lessons
func (s *lessonService) List(ctx context.Context) ([]lesson.Summary, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

// Get retrieves a lesson with its blocks in ascending order
func (s *lessonService) Get(ctx context.Context, id int) (*lesson.Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapRepoError("failed to get lesson", err)
	}
	l.Blocks = lesson.SortedBlocks(l.Blocks)
	return l, nil
}

// Create creates an empty lesson
func (s *lessonService) Create(ctx context.Context, req *models.CreateLessonRequest) (int, error) {
	normalized := *req
	normalized.Slug = strings.TrimSpace(req.Slug)
	normalized.Title = strings.TrimSpace(req.Title)

	if err := validation.Struct(normalized); err != nil {
		return 0, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, normalized.Slug, 0)
	if err != nil {
		s.logger.Error("failed to check lesson slug", zap.Error(err))
		return 0, fmt.Errorf("failed to check lesson slug: %w", err)
	}
	if exists {
		return 0, models.ErrSlugTaken
	}

	l := &lesson.Lesson{
		Slug:      normalized.Slug,
		Title:     normalized.Title,
		ClassID:   normalized.ClassID,
		IsVisible: normalized.IsVisible,
		Blocks:    []lesson.Block{},
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("failed to create lesson", zap.Error(err))
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	return l.ID, nil
}

// Delete deletes a lesson
func (s *lessonService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrapRepoError("failed to delete lesson", err)
	}
	return nil
}

// Render prepares a lesson for learners. Quiz attempts are read from query, see
// lesson.ParseAttempts. They are never stored.
func (s *lessonService) Render(ctx context.Context, id int, query url.Values) (*models.LessonResponse, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	attempts := lesson.ParseAttempts(query, l.Blocks)
	return &models.LessonResponse{
		ID:     l.ID,
		Slug:   l.Slug,
		Title:  l.Title,
		Blocks: lesson.Render(l.Blocks, attempts),
	}, nil
}

// AnswerQuiz evaluates a submitted answer to a quiz block of a lesson
func (s *lessonService) AnswerQuiz(ctx context.Context, lessonID int, blockID, optionID string) (*lesson.QuizResult, error) {
	l, err := s.Get(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	var quiz *lesson.QuizContent
	for _, b := range l.Blocks {
		if b.ID != blockID {
			continue
		}
		q, ok := b.Content.(*lesson.QuizContent)
		if !ok {
			return nil, models.ErrBlockTypeMismatch
		}
		quiz = q
	}
	if quiz == nil {
		return nil, models.ErrBlockNotFound
	}

	attempt := lesson.QuizAttempt{}.Select(quiz, optionID)
	if attempt.Selected == "" {
		return nil, models.ErrOptionNotFound
	}
	result := attempt.Submit().Evaluate(quiz)
	return &result, nil
}

// wrapRepoError passes not-found errors through and logs and wraps anything else
func (s *lessonService) wrapRepoError(msg string, err error) error {
	if errors.Is(err, models.ErrLessonNotFound) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}

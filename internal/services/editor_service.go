package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/media"
	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/sessions"
	"github.com/academyhub/backend/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EditorLessonRepository is the subset of lesson data access the editor needs
type EditorLessonRepository interface {
	// GetByID retrieves a lesson with its blocks
	GetByID(ctx context.Context, id int) (*lesson.Lesson, error)
	// ExistsBySlug checks if a lesson other than "excludeID" uses the slug
	ExistsBySlug(ctx context.Context, slug string, excludeID int) (bool, error)
	// Save replaces a lesson and its whole block sequence atomically
	Save(ctx context.Context, l *lesson.Lesson) error
}

type editorService struct {
	repo          EditorLessonRepository
	store         sessions.Store
	logger        *zap.Logger
	maxUploadSize int64
	newSessionID  func() string
}

// NewEditorService creates a new lesson editor service.
// maxUploadSize limits images read into data URLs; <= 0 means media.DefaultMaxSize.
func NewEditorService(repo EditorLessonRepository, store sessions.Store, logger *zap.Logger, maxUploadSize int64) *editorService {
	return &editorService{
		repo:          repo,
		store:         store,
		logger:        logger,
		maxUploadSize: maxUploadSize,
		newSessionID:  uuid.NewString,
	}
}

// Open starts an editing session over the stored state of a lesson
func (s *editorService) Open(ctx context.Context, lessonID int) (*models.EditorSession, error) {
	l, err := s.repo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, models.ErrLessonNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load lesson for editing", zap.Int("lessonId", lessonID), zap.Error(err))
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}

	session := &models.EditorSession{ID: s.newSessionID(), Editor: lesson.NewEditor(*l)}
	if err := s.store.Save(ctx, session.ID, session.Editor); err != nil {
		s.logger.Error("failed to store editor session", zap.Error(err))
		return nil, fmt.Errorf("failed to open editor session: %w", err)
	}

	s.logger.Info("editor session opened", zap.String("sessionId", session.ID), zap.Int("lessonId", lessonID))
	return session, nil
}

// Get loads an editing session
func (s *editorService) Get(ctx context.Context, sessionID string) (*models.EditorSession, error) {
	editor, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &models.EditorSession{ID: sessionID, Editor: editor}, nil
}

// Close discards an editing session without saving it
func (s *editorService) Close(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return err
		}
		s.logger.Error("failed to delete editor session", zap.String("sessionId", sessionID), zap.Error(err))
		return fmt.Errorf("failed to close editor session: %w", err)
	}
	return nil
}

// UpdateDetails changes the lesson fields of a session. Nil fields are kept.
func (s *editorService) UpdateDetails(ctx context.Context, sessionID string, req *models.UpdateLessonDetailsRequest) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		l := e.Lesson()
		title, slug, classID, isVisible := l.Title, l.Slug, l.ClassID, l.IsVisible
		if req.Title != nil {
			title = *req.Title
		}
		if req.Slug != nil {
			slug = *req.Slug
		}
		if req.ClassID != nil {
			classID = *req.ClassID
		}
		if req.IsVisible != nil {
			isVisible = *req.IsVisible
		}
		e.SetDetails(title, slug, classID, isVisible)
		return nil
	})
}

// AddBlock appends a block with the default payload of its type
func (s *editorService) AddBlock(ctx context.Context, sessionID string, t lesson.BlockType) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		_, err := e.AddBlock(t)
		return err
	})
}

// UpdateBlock replaces the content of a block. raw is decoded as the block's own type.
// A block id that is no longer in the session leaves it unchanged.
func (s *editorService) UpdateBlock(ctx context.Context, sessionID, blockID string, raw json.RawMessage) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		b, ok := e.Block(blockID)
		if !ok {
			s.logger.Debug("update of missing block ignored", zap.String("sessionId", sessionID), zap.String("blockId", blockID))
			return nil
		}
		content, err := lesson.DecodeContent(b.Type(), raw)
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrInvalidContent, err)
		}
		if quiz, ok := content.(*lesson.QuizContent); ok {
			if err := quiz.Check(); err != nil {
				return fmt.Errorf("%w: %v", models.ErrInvalidContent, err)
			}
		}
		e.UpdateBlock(blockID, content)
		return nil
	})
}

// MoveBlock swaps the block at index with its neighbour. Moves past either end
// leave the session unchanged.
func (s *editorService) MoveBlock(ctx context.Context, sessionID string, index int, d lesson.MoveDirection) (*models.EditorSession, error) {
	if d != lesson.MoveUp && d != lesson.MoveDown {
		return nil, models.ErrInvalidDirection
	}
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		e.MoveBlock(index, d)
		return nil
	})
}

// RequestRemove asks for confirmation before removing a block.
// A block id that is no longer in the session leaves it unchanged.
func (s *editorService) RequestRemove(ctx context.Context, sessionID, blockID string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		if !e.RequestRemove(blockID) {
			s.logger.Debug("removal of missing block ignored", zap.String("sessionId", sessionID), zap.String("blockId", blockID))
		}
		return nil
	})
}

// ConfirmRemove removes the block awaiting confirmation, if any
func (s *editorService) ConfirmRemove(ctx context.Context, sessionID string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		e.ConfirmRemove()
		return nil
	})
}

// CancelRemove discards the pending removal, if any
func (s *editorService) CancelRemove(ctx context.Context, sessionID string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		e.CancelRemove()
		return nil
	})
}

// AddOption appends an option to a quiz block. Quizzes at the maximum are unchanged.
func (s *editorService) AddOption(ctx context.Context, sessionID, blockID string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		if _, err := quizBlock(e, blockID); err != nil {
			return err
		}
		e.AddOption(blockID)
		return nil
	})
}

// RemoveOption removes an option from a quiz block. Quizzes at the minimum are unchanged.
func (s *editorService) RemoveOption(ctx context.Context, sessionID, blockID, optionID string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		if err := requireOption(e, blockID, optionID); err != nil {
			return err
		}
		e.RemoveOption(blockID, optionID)
		return nil
	})
}

// SetCorrectOption marks one option of a quiz block as the only correct one
func (s *editorService) SetCorrectOption(ctx context.Context, sessionID, blockID, optionID string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		if err := requireOption(e, blockID, optionID); err != nil {
			return err
		}
		e.SetCorrectOption(blockID, optionID)
		return nil
	})
}

// SetImage reads an uploaded image into a data URL and stores it in an image block
func (s *editorService) SetImage(ctx context.Context, sessionID, blockID string, r io.Reader, declaredType string) (*models.EditorSession, error) {
	return s.mutate(ctx, sessionID, func(e *lesson.Editor) error {
		b, ok := e.Block(blockID)
		if !ok {
			return models.ErrBlockNotFound
		}
		if b.Type() != lesson.BlockTypeImage {
			return models.ErrBlockTypeMismatch
		}
		dataURL, err := media.ReadDataURL(r, declaredType, s.maxUploadSize)
		if err != nil {
			return err
		}
		e.SetImageURL(blockID, dataURL)
		return nil
	})
}

// Preview renders the session's current blocks as learners would see them
func (s *editorService) Preview(ctx context.Context, sessionID string) (*models.LessonResponse, error) {
	editor, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	l := editor.Lesson()
	return &models.LessonResponse{
		ID:     l.ID,
		Slug:   l.Slug,
		Title:  l.Title,
		Blocks: lesson.Render(l.Blocks, nil),
	}, nil
}

// Save validates the session's lesson and persists it with its whole block sequence.
// The session stays open.
func (s *editorService) Save(ctx context.Context, sessionID string) (*lesson.Lesson, error) {
	editor, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	l := editor.Lesson()

	if err := validation.Struct(l); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, l.Slug, l.ID)
	if err != nil {
		s.logger.Error("failed to check lesson slug", zap.Error(err))
		return nil, fmt.Errorf("failed to check lesson slug: %w", err)
	}
	if exists {
		return nil, models.ErrSlugTaken
	}

	if err := s.repo.Save(ctx, &l); err != nil {
		if errors.Is(err, models.ErrLessonNotFound) {
			return nil, err
		}
		s.logger.Error("failed to save lesson", zap.Int("lessonId", l.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save lesson: %w", err)
	}

	s.logger.Info("lesson saved",
		zap.String("sessionId", sessionID),
		zap.Int("lessonId", l.ID),
		zap.Int("blocks", len(l.Blocks)),
	)
	return &l, nil
}

func (s *editorService) load(ctx context.Context, sessionID string) (*lesson.Editor, error) {
	editor, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load editor session", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to load editor session: %w", err)
	}
	return editor, nil
}

// mutate loads a session, applies fn and stores the result. Nothing is stored when fn fails.
func (s *editorService) mutate(ctx context.Context, sessionID string, fn func(e *lesson.Editor) error) (*models.EditorSession, error) {
	editor, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(editor); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, editor); err != nil {
		s.logger.Error("failed to store editor session", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to store editor session: %w", err)
	}
	return &models.EditorSession{ID: sessionID, Editor: editor}, nil
}

func quizBlock(e *lesson.Editor, blockID string) (*lesson.QuizContent, error) {
	b, ok := e.Block(blockID)
	if !ok {
		return nil, models.ErrBlockNotFound
	}
	q, ok := b.Content.(*lesson.QuizContent)
	if !ok {
		return nil, models.ErrBlockTypeMismatch
	}
	return q, nil
}

func requireOption(e *lesson.Editor, blockID, optionID string) error {
	q, err := quizBlock(e, blockID)
	if err != nil {
		return err
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			return nil
		}
	}
	return models.ErrOptionNotFound
}

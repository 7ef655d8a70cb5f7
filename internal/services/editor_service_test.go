package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/media"
	"github.com/academyhub/backend/internal/models"
	"github.com/academyhub/backend/internal/sessions"
	"github.com/academyhub/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// failingStore is a sessions.Store whose writes always fail
type failingStore struct {
	sessions.Store
}

func (failingStore) Save(ctx context.Context, id string, editor *lesson.Editor) error {
	return errors.New("redis unavailable")
}

func newTestEditorService(t *testing.T) (*editorService, *mockLessonRepository, string) {
	t.Helper()
	repo := &mockLessonRepository{lesson: storedLesson()}
	svc := NewEditorService(repo, sessions.NewMemoryStore(time.Hour), zap.NewNop(), 0)

	session, err := svc.Open(context.Background(), 4)
	require.NoError(t, err)
	return svc, repo, session.ID
}

func orderOf(t *testing.T, s *models.EditorSession) []string {
	t.Helper()
	var ids []string
	for i, b := range s.Editor.Blocks() {
		require.Equal(t, i, b.Order)
		ids = append(ids, b.ID)
	}
	return ids
}

func TestEditorService_Open(t *testing.T) {
	svc, _, sessionID := newTestEditorService(t)
	ctx := context.Background()

	session, err := svc.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "q"}, orderOf(t, session))
	assert.Equal(t, "greetings", session.Editor.Lesson().Slug)

	_, err = svc.Open(ctx, 99)
	assert.ErrorIs(t, err, models.ErrLessonNotFound)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)

	t.Run("store failure", func(t *testing.T) {
		svc := NewEditorService(&mockLessonRepository{lesson: storedLesson()}, failingStore{}, zap.NewNop(), 0)
		_, err := svc.Open(ctx, 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open editor session")
	})
}

func TestEditorService_Close(t *testing.T) {
	svc, _, sessionID := newTestEditorService(t)
	ctx := context.Background()

	require.NoError(t, svc.Close(ctx, sessionID))
	assert.ErrorIs(t, svc.Close(ctx, sessionID), sessions.ErrSessionNotFound)
	_, err := svc.Get(ctx, sessionID)
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestEditorService_UpdateDetails(t *testing.T) {
	svc, _, sessionID := newTestEditorService(t)
	title := "Saludos"
	visible := true

	session, err := svc.UpdateDetails(context.Background(), sessionID, &models.UpdateLessonDetailsRequest{
		Title:     &title,
		IsVisible: &visible,
	})

	require.NoError(t, err)
	l := session.Editor.Lesson()
	assert.Equal(t, "Saludos", l.Title)
	assert.True(t, l.IsVisible)
	assert.Equal(t, "greetings", l.Slug)
	assert.Equal(t, 2, l.ClassID)
}

func TestEditorService_Blocks(t *testing.T) {
	ctx := context.Background()

	t.Run("add block persists between requests", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		_, err := svc.AddBlock(ctx, sessionID, lesson.BlockTypeVideo)
		require.NoError(t, err)

		session, err := svc.Get(ctx, sessionID)
		require.NoError(t, err)
		blocks := session.Editor.Blocks()
		require.Len(t, blocks, 3)
		assert.Equal(t, lesson.BlockTypeVideo, blocks[2].Type())
		assert.Equal(t, 2, blocks[2].Order)
	})

	t.Run("unknown block type is rejected", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		_, err := svc.AddBlock(ctx, sessionID, "slideshow")
		assert.ErrorIs(t, err, lesson.ErrUnknownBlockType)
	})

	t.Run("update block decodes the block's own type", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		session, err := svc.UpdateBlock(ctx, sessionID, "t", json.RawMessage(`{"html":"<p>Hola</p>"}`))
		require.NoError(t, err)
		b, ok := session.Editor.Block("t")
		require.True(t, ok)
		assert.Equal(t, &lesson.TextContent{HTML: "<p>Hola</p>"}, b.Content)

		before := session.Editor.Blocks()
		session, err = svc.UpdateBlock(ctx, sessionID, "nope", json.RawMessage(`{}`))
		require.NoError(t, err, "a missing block is ignored")
		assert.Equal(t, before, session.Editor.Blocks())

		_, err = svc.UpdateBlock(ctx, sessionID, "t", json.RawMessage(`{"html":5}`))
		assert.ErrorIs(t, err, models.ErrInvalidContent)
	})

	t.Run("update block rejects a broken quiz", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{
				name: "five options all correct",
				raw: `{"question":"?","options":[{"id":"a","isCorrect":true},{"id":"b","isCorrect":true},` +
					`{"id":"c","isCorrect":true},{"id":"d","isCorrect":true},{"id":"e","isCorrect":true}]}`,
			},
			{
				name: "one option none correct",
				raw:  `{"question":"?","options":[{"id":"a","text":"Hello"}]}`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _, sessionID := newTestEditorService(t)

				_, err := svc.UpdateBlock(ctx, sessionID, "q", json.RawMessage(tt.raw))
				assert.ErrorIs(t, err, models.ErrInvalidContent)

				session, err := svc.Get(ctx, sessionID)
				require.NoError(t, err)
				b, _ := session.Editor.Block("q")
				q := b.Content.(*lesson.QuizContent)
				assert.Len(t, q.Options, 2)
				assert.Equal(t, 1, q.CorrectCount())
			})
		}

		svc, _, sessionID := newTestEditorService(t)
		session, err := svc.UpdateBlock(ctx, sessionID, "q",
			json.RawMessage(`{"question":"Adiós?","options":[{"id":"a","text":"Bye","isCorrect":true},{"id":"b"},{"id":"c"}]}`))
		require.NoError(t, err)
		b, _ := session.Editor.Block("q")
		assert.Len(t, b.Content.(*lesson.QuizContent).Options, 3)
	})

	t.Run("move block", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		session, err := svc.MoveBlock(ctx, sessionID, 0, lesson.MoveDown)
		require.NoError(t, err)
		assert.Equal(t, []string{"q", "t"}, orderOf(t, session))

		session, err = svc.MoveBlock(ctx, sessionID, 0, lesson.MoveUp)
		require.NoError(t, err)
		assert.Equal(t, []string{"q", "t"}, orderOf(t, session), "moving past the start is a no-op")

		session, err = svc.MoveBlock(ctx, sessionID, 5, lesson.MoveDown)
		require.NoError(t, err)
		assert.Equal(t, []string{"q", "t"}, orderOf(t, session))

		_, err = svc.MoveBlock(ctx, sessionID, 0, "sideways")
		assert.ErrorIs(t, err, models.ErrInvalidDirection)
	})

	t.Run("remove needs confirmation", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		session, err := svc.RequestRemove(ctx, sessionID, "t")
		require.NoError(t, err)
		pending, ok := session.Editor.PendingRemoval()
		assert.True(t, ok)
		assert.Equal(t, "t", pending)
		assert.Len(t, session.Editor.Blocks(), 2)

		session, err = svc.CancelRemove(ctx, sessionID)
		require.NoError(t, err)
		_, ok = session.Editor.PendingRemoval()
		assert.False(t, ok)
		assert.Len(t, session.Editor.Blocks(), 2)

		session, err = svc.RequestRemove(ctx, sessionID, "nope")
		require.NoError(t, err, "a missing block is ignored")
		_, ok = session.Editor.PendingRemoval()
		assert.False(t, ok)
		assert.Len(t, session.Editor.Blocks(), 2)

		_, err = svc.RequestRemove(ctx, sessionID, "t")
		require.NoError(t, err)
		session, err = svc.ConfirmRemove(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"q"}, orderOf(t, session))

		session, err = svc.ConfirmRemove(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"q"}, orderOf(t, session), "confirm without a pending removal is a no-op")
	})

	t.Run("failed mutation stores nothing", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		_, err := svc.UpdateBlock(ctx, sessionID, "t", json.RawMessage(`{"html":`))
		require.Error(t, err)

		session, err := svc.Get(ctx, sessionID)
		require.NoError(t, err)
		b, _ := session.Editor.Block("t")
		assert.Equal(t, &lesson.TextContent{HTML: "<p>Saludos</p>"}, b.Content)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _, _ := newTestEditorService(t)

		_, err := svc.AddBlock(ctx, "missing", lesson.BlockTypeText)
		assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})
}

func TestEditorService_QuizOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("add options up to the maximum", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		var session *models.EditorSession
		var err error
		for i := 0; i < 3; i++ {
			session, err = svc.AddOption(ctx, sessionID, "q")
			require.NoError(t, err)
		}
		b, _ := session.Editor.Block("q")
		q := b.Content.(*lesson.QuizContent)
		assert.Len(t, q.Options, lesson.MaxQuizOptions)
		assert.Equal(t, 1, q.CorrectCount())

		_, err = svc.AddOption(ctx, sessionID, "t")
		assert.ErrorIs(t, err, models.ErrBlockTypeMismatch)
		_, err = svc.AddOption(ctx, sessionID, "nope")
		assert.ErrorIs(t, err, models.ErrBlockNotFound)
	})

	t.Run("remove option keeps the minimum", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		session, err := svc.RemoveOption(ctx, sessionID, "q", "o2")
		require.NoError(t, err)
		b, _ := session.Editor.Block("q")
		assert.Len(t, b.Content.(*lesson.QuizContent).Options, lesson.MinQuizOptions)

		_, err = svc.RemoveOption(ctx, sessionID, "q", "nope")
		assert.ErrorIs(t, err, models.ErrOptionNotFound)
	})

	t.Run("set correct option", func(t *testing.T) {
		svc, _, sessionID := newTestEditorService(t)

		session, err := svc.SetCorrectOption(ctx, sessionID, "q", "o2")
		require.NoError(t, err)
		b, _ := session.Editor.Block("q")
		correct, ok := b.Content.(*lesson.QuizContent).CorrectOption()
		assert.True(t, ok)
		assert.Equal(t, "o2", correct)

		_, err = svc.SetCorrectOption(ctx, sessionID, "t", "o1")
		assert.ErrorIs(t, err, models.ErrBlockTypeMismatch)
	})
}

func TestEditorService_SetImage(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditorService(t)

	session, err := svc.AddBlock(ctx, sessionID, lesson.BlockTypeImage)
	require.NoError(t, err)
	blocks := session.Editor.Blocks()
	imageID := blocks[len(blocks)-1].ID

	session, err = svc.SetImage(ctx, sessionID, imageID, bytes.NewReader(pngHeader), "image/png")
	require.NoError(t, err)
	b, _ := session.Editor.Block(imageID)
	assert.True(t, strings.HasPrefix(b.Content.(*lesson.ImageContent).URL, "data:image/png;base64,"))

	_, err = svc.SetImage(ctx, sessionID, imageID, strings.NewReader("just text"), "text/plain")
	assert.ErrorIs(t, err, media.ErrNotImage)

	_, err = svc.SetImage(ctx, sessionID, "t", bytes.NewReader(pngHeader), "image/png")
	assert.ErrorIs(t, err, models.ErrBlockTypeMismatch)

	_, err = svc.SetImage(ctx, sessionID, "nope", bytes.NewReader(pngHeader), "image/png")
	assert.ErrorIs(t, err, models.ErrBlockNotFound)

	t.Run("upload limit", func(t *testing.T) {
		small := NewEditorService(&mockLessonRepository{lesson: storedLesson()}, sessions.NewMemoryStore(time.Hour), zap.NewNop(), 8)
		s, err := small.Open(ctx, 4)
		require.NoError(t, err)
		s, err = small.AddBlock(ctx, s.ID, lesson.BlockTypeImage)
		require.NoError(t, err)
		blocks := s.Editor.Blocks()

		_, err = small.SetImage(ctx, s.ID, blocks[len(blocks)-1].ID, bytes.NewReader(pngHeader), "image/png")
		assert.ErrorIs(t, err, media.ErrFileTooLarge)
	})
}

func TestEditorService_Preview(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditorService(t)

	_, err := svc.UpdateBlock(ctx, sessionID, "t", json.RawMessage(`{"html":"<p>Draft</p>"}`))
	require.NoError(t, err)

	preview, err := svc.Preview(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Greetings", preview.Title)
	require.Len(t, preview.Blocks, 2)
	assert.Equal(t, "<p>Draft</p>", string(preview.Blocks[0].HTML))
	require.NotNil(t, preview.Blocks[1].Quiz)
	assert.False(t, preview.Blocks[1].Quiz.Submitted)
}

func TestEditorService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("success keeps the session open", func(t *testing.T) {
		svc, repo, sessionID := newTestEditorService(t)
		_, err := svc.MoveBlock(ctx, sessionID, 1, lesson.MoveUp)
		require.NoError(t, err)

		saved, err := svc.Save(ctx, sessionID)

		require.NoError(t, err)
		assert.Equal(t, 4, repo.slugExcluded)
		require.NotNil(t, repo.saved)
		assert.Equal(t, saved.Blocks, repo.saved.Blocks)
		assert.Equal(t, "q", repo.saved.Blocks[0].ID)
		assert.Equal(t, 0, repo.saved.Blocks[0].Order)

		_, err = svc.Get(ctx, sessionID)
		assert.NoError(t, err)
	})

	t.Run("invalid slug", func(t *testing.T) {
		svc, repo, sessionID := newTestEditorService(t)
		slug := "Not A Slug"
		_, err := svc.UpdateDetails(ctx, sessionID, &models.UpdateLessonDetailsRequest{Slug: &slug})
		require.NoError(t, err)

		_, err = svc.Save(ctx, sessionID)

		fields := validation.FieldErrors(err)
		require.NotNil(t, fields, "expected validation errors, got %v", err)
		assert.Contains(t, fields, "slug")
		assert.Nil(t, repo.saved)
	})

	t.Run("slug taken", func(t *testing.T) {
		svc, repo, sessionID := newTestEditorService(t)
		repo.existsBySlug = true

		_, err := svc.Save(ctx, sessionID)

		assert.ErrorIs(t, err, models.ErrSlugTaken)
		assert.Nil(t, repo.saved)
	})

	t.Run("lesson deleted meanwhile", func(t *testing.T) {
		svc, repo, sessionID := newTestEditorService(t)
		repo.saveErr = models.ErrLessonNotFound

		_, err := svc.Save(ctx, sessionID)

		assert.ErrorIs(t, err, models.ErrLessonNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		svc, repo, sessionID := newTestEditorService(t)
		repo.saveErr = errors.New("database error")

		_, err := svc.Save(ctx, sessionID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save lesson")
	})
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupLessonTestRepository creates a lesson repository with a mock database
func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewLessonRepository(t *testing.T) {
	logger := zap.NewNop()
	db := &sql.DB{}

	repo := NewLessonRepository(db, logger)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, logger, repo.logger)
}

var lessonColumns = []string{"id", "slug", "title", "class_id", "is_visible", "created_at", "updated_at"}

func TestLessonRepository_GetByID(t *testing.T) {
	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		errorContains string
		check         func(t *testing.T, l *lesson.Lesson)
	}{
		{
			name: "success",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, title, class_id, is_visible, created_at, updated_at FROM lessons WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(lessonColumns).AddRow(1, "verbs", "Verbs", 3, true, created, created))
				mock.ExpectQuery(`SELECT id, block_type, block_order, block_data FROM lesson_blocks WHERE lesson_id = \? ORDER BY block_order`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "block_type", "block_order", "block_data"}).
						AddRow("a", "text", 0, []byte(`{"html":"<p>Hi</p>"}`)).
						AddRow("b", "quiz", 1, []byte(`{"question":"?","options":[{"id":"1","text":"Yes","isCorrect":true},{"id":"2","text":"No","isCorrect":false}]}`)))
			},
			check: func(t *testing.T, l *lesson.Lesson) {
				assert.Equal(t, "Verbs", l.Title)
				assert.Equal(t, 3, l.ClassID)
				assert.True(t, l.IsVisible)
				require.Len(t, l.Blocks, 2)
				assert.Equal(t, &lesson.TextContent{HTML: "<p>Hi</p>"}, l.Blocks[0].Content)
				quiz, ok := l.Blocks[1].Content.(*lesson.QuizContent)
				require.True(t, ok)
				assert.Equal(t, 1, quiz.CorrectCount())
			},
		},
		{
			name: "lesson without blocks",
			id:   2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lessons WHERE id = \?`).
					WithArgs(2).
					WillReturnRows(sqlmock.NewRows(lessonColumns).AddRow(2, "empty", "Empty", 1, false, created, created))
				mock.ExpectQuery(`FROM lesson_blocks`).
					WithArgs(2).
					WillReturnRows(sqlmock.NewRows([]string{"id", "block_type", "block_order", "block_data"}))
			},
			check: func(t *testing.T, l *lesson.Lesson) {
				assert.NotNil(t, l.Blocks)
				assert.Empty(t, l.Blocks)
			},
		},
		{
			name: "lesson not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lessons WHERE id = \?`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrLessonNotFound,
		},
		{
			name: "unknown stored block type",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lessons WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(lessonColumns).AddRow(1, "verbs", "Verbs", 3, true, created, created))
				mock.ExpectQuery(`FROM lesson_blocks`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "block_type", "block_order", "block_data"}).
						AddRow("a", "audio", 0, []byte(`{}`)))
			},
			expectedError: lesson.ErrUnknownBlockType,
		},
		{
			name: "database error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lessons WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			errorContains: "failed to get lesson by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByID(context.Background(), tt.id)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			case tt.errorContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				require.NotNil(t, result)
				tt.check(t, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_List(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT l.id, l.slug, l.title, l.class_id, l.is_visible, l.updated_at, COUNT\(b.id\) AS block_count FROM lessons l LEFT JOIN lesson_blocks b`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "class_id", "is_visible", "updated_at", "block_count"}).
			AddRow(1, "verbs", "Verbs", 3, true, updated, 4).
			AddRow(2, "nouns", "Nouns", 3, false, updated, 0))

	result, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []lesson.Summary{
		{ID: 1, Slug: "verbs", Title: "Verbs", ClassID: 3, IsVisible: true, BlockCount: 4, UpdatedAt: updated},
		{ID: 2, Slug: "nouns", Title: "Nouns", ClassID: 3, BlockCount: 0, UpdatedAt: updated},
	}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_ExistsBySlug(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lessons WHERE slug = \? AND id <> \?\)`).
		WithArgs("verbs", 4).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsBySlug(context.Background(), "verbs", 4)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func testLesson() *lesson.Lesson {
	return &lesson.Lesson{
		ID:        5,
		Slug:      "verbs",
		Title:     "Verbs",
		ClassID:   3,
		IsVisible: true,
		Blocks: []lesson.Block{
			{ID: "a", Order: 0, Content: &lesson.TextContent{HTML: "<p>Hi</p>"}},
			{ID: "b", Order: 1, Content: &lesson.ImageContent{URL: "https://cdn.test/a.png"}},
		},
	}
}

func TestLessonRepository_Create(t *testing.T) {
	t.Run("success with blocks", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		l := testLesson()
		l.ID = 0

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO lessons \(slug, title, class_id, is_visible\)`).
			WithArgs("verbs", "Verbs", 3, true).
			WillReturnResult(sqlmock.NewResult(12, 1))
		mock.ExpectExec(`INSERT INTO lesson_blocks \(id, lesson_id, block_type, block_order, block_data\) VALUES \(\?, \?, \?, \?, \?\), \(\?, \?, \?, \?, \?\)`).
			WithArgs("a", 12, "text", 0, sqlmock.AnyArg(), "b", 12, "image", 1, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), l)

		require.NoError(t, err)
		assert.Equal(t, 12, l.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty lesson skips block insert", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		l := &lesson.Lesson{Slug: "new", Title: "New", ClassID: 1}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO lessons`).
			WithArgs("new", "New", 1, false).
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), l))
		assert.Equal(t, 3, l.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert error rolls back", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO lessons`).
			WillReturnError(errors.New("duplicate entry"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), testLesson())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create lesson")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonRepository_Save(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		errorContains string
	}{
		{
			name: "success replaces all blocks",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM lessons WHERE id = \? FOR UPDATE`).
					WithArgs(5).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
				mock.ExpectExec(`UPDATE lessons SET slug = \?, title = \?, class_id = \?, is_visible = \?, updated_at = CURRENT_TIMESTAMP WHERE id = \?`).
					WithArgs("verbs", "Verbs", 3, true, 5).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM lesson_blocks WHERE lesson_id = \?`).
					WithArgs(5).
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(`INSERT INTO lesson_blocks`).
					WithArgs("a", 5, "text", 0, sqlmock.AnyArg(), "b", 5, "image", 1, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name: "lesson not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM lessons WHERE id = \? FOR UPDATE`).
					WithArgs(5).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedError: models.ErrLessonNotFound,
		},
		{
			name: "block insert failure rolls back everything",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE`).
					WithArgs(5).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
				mock.ExpectExec(`UPDATE lessons`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM lesson_blocks`).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`INSERT INTO lesson_blocks`).
					WillReturnError(errors.New("deadlock"))
				mock.ExpectRollback()
			},
			errorContains: "failed to insert lesson blocks",
		},
		{
			name: "begin failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			errorContains: "failed to begin transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Save(context.Background(), testLesson())

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.errorContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			default:
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		rowsAffected  int64
		expectedError error
	}{
		{name: "success", rowsAffected: 1},
		{name: "not found", rowsAffected: 0, expectedError: models.ErrLessonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			mock.ExpectExec(`DELETE FROM lessons WHERE id = \?`).
				WithArgs(5).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.Delete(context.Background(), 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

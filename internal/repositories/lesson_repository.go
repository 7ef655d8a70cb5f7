package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/academyhub/backend/internal/models"
	"go.uber.org/zap"
)

type lessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB, logger *zap.Logger) *lessonRepository {
	return &lessonRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a lesson with its blocks in ascending order
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*lesson.Lesson, error) {
	query := `
		SELECT id, slug, title, class_id, is_visible, created_at, updated_at
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var l lesson.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID,
		&l.Slug,
		&l.Title,
		&l.ClassID,
		&l.IsVisible,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrLessonNotFound
	}
	if err != nil {
		r.logger.Error("failed to get lesson by id", zap.Int("lessonId", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	blocks, err := r.getBlocks(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Blocks = blocks

	return &l, nil
}

func (r *lessonRepository) getBlocks(ctx context.Context, lessonID int) ([]lesson.Block, error) {
	query := `
		SELECT id, block_type, block_order, block_data
		FROM lesson_blocks
		WHERE lesson_id = ?
		ORDER BY block_order
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		r.logger.Error("failed to query lesson blocks", zap.Int("lessonId", lessonID), zap.Error(err))
		return nil, fmt.Errorf("failed to query lesson blocks: %w", err)
	}
	defer rows.Close()

	blocks := []lesson.Block{}
	for rows.Next() {
		var (
			b         lesson.Block
			blockType string
			blockData []byte
		)
		if err := rows.Scan(&b.ID, &blockType, &b.Order, &blockData); err != nil {
			return nil, fmt.Errorf("failed to scan lesson block: %w", err)
		}
		content, err := lesson.DecodeContent(lesson.BlockType(blockType), json.RawMessage(blockData))
		if err != nil {
			r.logger.Error("stored lesson block cannot be decoded",
				zap.Int("lessonId", lessonID),
				zap.String("blockId", b.ID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to decode lesson block %s: %w", b.ID, err)
		}
		b.Content = content
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return blocks, nil
}

// List retrieves all lessons without their blocks
func (r *lessonRepository) List(ctx context.Context) ([]lesson.Summary, error) {
	query := `
		SELECT l.id, l.slug, l.title, l.class_id, l.is_visible, l.updated_at, COUNT(b.id) AS block_count
		FROM lessons l
		LEFT JOIN lesson_blocks b ON b.lesson_id = l.id
		GROUP BY l.id, l.slug, l.title, l.class_id, l.is_visible, l.updated_at
		ORDER BY l.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []lesson.Summary{}
	for rows.Next() {
		var s lesson.Summary
		err := rows.Scan(
			&s.ID,
			&s.Slug,
			&s.Title,
			&s.ClassID,
			&s.IsVisible,
			&s.UpdatedAt,
			&s.BlockCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// ExistsBySlug checks if a lesson other than excludeID uses slug
func (r *lessonRepository) ExistsBySlug(ctx context.Context, slug string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE slug = ? AND id <> ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lesson slug existence: %w", err)
	}

	return exists, nil
}

// Create inserts a lesson and its blocks in one transaction and sets its ID
func (r *lessonRepository) Create(ctx context.Context, l *lesson.Lesson) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO lessons (slug, title, class_id, is_visible)
			VALUES (?, ?, ?, ?)
		`
		result, err := tx.ExecContext(ctx, query, l.Slug, l.Title, l.ClassID, l.IsVisible)
		if err != nil {
			return fmt.Errorf("failed to create lesson: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}

		if err := insertBlocks(ctx, tx, int(id), l.Blocks); err != nil {
			return err
		}
		l.ID = int(id)
		return nil
	})
}

// Save replaces a lesson and its whole block sequence in one transaction.
// Either every block is stored with the lesson fields or nothing changes.
func (r *lessonRepository) Save(ctx context.Context, l *lesson.Lesson) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		var id int
		err := tx.QueryRowContext(ctx, `SELECT id FROM lessons WHERE id = ? FOR UPDATE`, l.ID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrLessonNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock lesson: %w", err)
		}

		query := `
			UPDATE lessons
			SET slug = ?, title = ?, class_id = ?, is_visible = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		if _, err := tx.ExecContext(ctx, query, l.Slug, l.Title, l.ClassID, l.IsVisible, l.ID); err != nil {
			return fmt.Errorf("failed to update lesson: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM lesson_blocks WHERE lesson_id = ?`, l.ID); err != nil {
			return fmt.Errorf("failed to delete lesson blocks: %w", err)
		}

		return insertBlocks(ctx, tx, l.ID, l.Blocks)
	})
}

// Delete deletes a lesson. Its blocks are removed by the foreign key cascade.
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete lesson", zap.Int("lessonId", id), zap.Error(err))
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrLessonNotFound
	}

	return nil
}

// insertBlocks writes all blocks of a lesson with a single statement
func insertBlocks(ctx context.Context, tx *sql.Tx, lessonID int, blocks []lesson.Block) error {
	if len(blocks) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(blocks))
	args := make([]any, 0, len(blocks)*5)
	for _, b := range blocks {
		if b.Content == nil {
			return fmt.Errorf("block %s has no content", b.ID)
		}
		data, err := json.Marshal(b.Content)
		if err != nil {
			return fmt.Errorf("failed to marshal block data: %w", err)
		}
		placeholders = append(placeholders, "(?, ?, ?, ?, ?)")
		args = append(args, b.ID, lessonID, string(b.Type()), b.Order, string(data))
	}

	query := fmt.Sprintf(`
		INSERT INTO lesson_blocks (id, lesson_id, block_type, block_order, block_data)
		VALUES %s
	`, strings.Join(placeholders, ", "))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert lesson blocks: %w", err)
	}
	return nil
}

// inTx runs fn in a transaction, committing only when fn succeeds
func (r *lessonRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

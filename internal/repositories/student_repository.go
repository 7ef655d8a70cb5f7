package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/academyhub/backend/internal/models"
	"go.uber.org/zap"
)

type studentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *sql.DB, logger *zap.Logger) *studentRepository {
	return &studentRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all students
func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT id, name, email, nif, iban, phone, enrolled_at
		FROM students
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query students", zap.Error(err))
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		var iban sql.NullString
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.NIF,
			&iban,
			&s.Phone,
			&s.EnrolledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		s.IBAN = iban.String
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return students, nil
}

// ExistsByNIF checks if a student with the given NIF exists
func (r *studentRepository) ExistsByNIF(ctx context.Context, nif string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE nif = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, nif).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check student nif existence: %w", err)
	}

	return exists, nil
}

// Create creates a new student and sets its ID
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, email, nif, iban, phone)
		VALUES (?, ?, ?, ?, ?)
	`

	var iban sql.NullString
	if student.IBAN != "" {
		iban = sql.NullString{String: student.IBAN, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		student.Name,
		student.Email,
		student.NIF,
		iban,
		student.Phone,
	)
	if err != nil {
		r.logger.Error("failed to create student", zap.Error(err))
		return fmt.Errorf("failed to create student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	student.ID = int(id)
	return nil
}

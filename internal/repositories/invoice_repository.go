package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/academyhub/backend/internal/models"
	"go.uber.org/zap"
)

type invoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) *invoiceRepository {
	return &invoiceRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all invoices, newest first
func (r *invoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	query := `
		SELECT i.id, i.number, i.student_id, s.name, i.amount, i.status, i.issued_at, i.paid_at
		FROM invoices i
		JOIN students s ON s.id = i.student_id
		ORDER BY i.issued_at DESC, i.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var i models.Invoice
		var paidAt sql.NullTime
		err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.StudentID,
			&i.StudentName,
			&i.Amount,
			&i.Status,
			&i.IssuedAt,
			&paidAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if paidAt.Valid {
			i.PaidAt = &paidAt.Time
		}
		invoices = append(invoices, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return invoices, nil
}

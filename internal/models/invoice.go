package models

import (
	"strconv"
	"time"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice represents an invoice issued to a student
type Invoice struct {
	ID          int           `json:"id"`
	Number      string        `json:"number"`
	StudentID   int           `json:"studentId"`
	StudentName string        `json:"studentName"`
	Amount      float64       `json:"amount"`
	Status      InvoiceStatus `json:"status"`
	IssuedAt    time.Time     `json:"issuedAt"`
	PaidAt      *time.Time    `json:"paidAt,omitempty"`
}

// RowID implements table.Row
func (i Invoice) RowID() string {
	return strconv.Itoa(i.ID)
}

package models

import (
	"strconv"
	"time"
)

// Student represents an enrolled student
type Student struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	NIF        string    `json:"nif"`
	IBAN       string    `json:"iban,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// RowID implements table.Row
func (s Student) RowID() string {
	return strconv.Itoa(s.ID)
}

// CreateStudentRequest represents a request to create a student
type CreateStudentRequest struct {
	Name  string  `json:"name" validate:"notblank,max=255" example:"Ana López"`
	Email string  `json:"email" validate:"required,email,max=255" example:"ana@example.com"`
	NIF   string  `json:"nif" validate:"required,nif" example:"12345678Z"`
	IBAN  string  `json:"iban,omitempty" validate:"omitempty,iban" example:"ES9121000418450200051332"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=32" example:"+34 600 000 000"`
}

package models

import (
	"strconv"
	"time"
)

// Level represents the level of a course
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Course represents a course offered by the academy
type Course struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Teacher   string    `json:"teacher"`
	Level     Level     `json:"level"`
	Students  int       `json:"students"`
	Price     float64   `json:"price"`
	StartDate time.Time `json:"startDate"`
}

// RowID implements table.Row
func (c Course) RowID() string {
	return strconv.Itoa(c.ID)
}

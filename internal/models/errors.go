package models

import "errors"

// Sentinel errors shared by repositories, services and handlers
var (
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrSlugTaken         = errors.New("slug is already taken")
	ErrNIFTaken          = errors.New("nif is already registered")
	ErrBlockNotFound     = errors.New("block not found")
	ErrOptionNotFound    = errors.New("quiz option not found")
	ErrBlockTypeMismatch = errors.New("operation does not apply to this block type")
	ErrInvalidDirection  = errors.New("direction must be up or down")
	ErrInvalidContent    = errors.New("invalid block content")
)

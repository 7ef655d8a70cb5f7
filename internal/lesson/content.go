// Package lesson holds the lesson content model: an ordered sequence of typed blocks,
// the editor that mutates it during an editing session and the renderer that
// presents it read-only to learners.
package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// BlockType represents the type of a lesson block
type BlockType string

const (
	BlockTypeText  BlockType = "text"
	BlockTypeVideo BlockType = "video"
	BlockTypeImage BlockType = "image"
	BlockTypeQuiz  BlockType = "quiz"
)

// ProviderYouTube is the only supported video provider
const ProviderYouTube = "youtube"

// Quiz option bounds
const (
	MinQuizOptions = 2
	MaxQuizOptions = 4
)

var (
	// ErrUnknownBlockType is returned when a block type is none of the known variants
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrInvalidQuiz is returned for a quiz with too few or too many options, or
	// without exactly one correct option
	ErrInvalidQuiz = errors.New("invalid quiz")
)

// BlockTypes returns every known block type, in menu order
func BlockTypes() []BlockType {
	return []BlockType{BlockTypeText, BlockTypeVideo, BlockTypeImage, BlockTypeQuiz}
}

// Valid reports whether t is a known block type
func (t BlockType) Valid() bool {
	return slices.Contains(BlockTypes(), t)
}

// Visitor is implemented by every consumer that dispatches on the block variant.
// Adding a variant adds a method here, so each consumer has to handle it.
type Visitor interface {
	VisitText(c *TextContent)
	VisitVideo(c *VideoContent)
	VisitImage(c *ImageContent)
	VisitQuiz(c *QuizContent)
}

// Content is the type-specific payload of a block.
// The set of implementations is closed to this package.
type Content interface {
	Type() BlockType
	Accept(v Visitor)
	clone() Content
}

// TextContent is formatted markup written by an editor. It is trusted and rendered as is.
type TextContent struct {
	HTML string `json:"html"`
}

func (c *TextContent) Type() BlockType  { return BlockTypeText }
func (c *TextContent) Accept(v Visitor) { v.VisitText(c) }
func (c *TextContent) clone() Content   { cp := *c; return &cp }

// VideoContent references a hosted video. The embeddable form is derived when rendering.
type VideoContent struct {
	URL      string `json:"url"`
	Provider string `json:"provider"`
}

func (c *VideoContent) Type() BlockType  { return BlockTypeVideo }
func (c *VideoContent) Accept(v Visitor) { v.VisitVideo(c) }
func (c *VideoContent) clone() Content   { cp := *c; return &cp }

// ImageContent is a remote image URL or a data URL read from an uploaded file
type ImageContent struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (c *ImageContent) Type() BlockType  { return BlockTypeImage }
func (c *ImageContent) Accept(v Visitor) { v.VisitImage(c) }
func (c *ImageContent) clone() Content   { cp := *c; return &cp }

// QuizOption is one answer of a quiz
type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuizContent is a single-answer question with two to four options
type QuizContent struct {
	Question string       `json:"question"`
	Options  []QuizOption `json:"options"`
}

func (c *QuizContent) Type() BlockType  { return BlockTypeQuiz }
func (c *QuizContent) Accept(v Visitor) { v.VisitQuiz(c) }
func (c *QuizContent) clone() Content {
	cp := *c
	cp.Options = slices.Clone(c.Options)
	return &cp
}

// CorrectOption returns the id of the first option marked correct
func (c *QuizContent) CorrectOption() (string, bool) {
	for _, o := range c.Options {
		if o.IsCorrect {
			return o.ID, true
		}
	}
	return "", false
}

// CorrectCount returns how many options are marked correct
func (c *QuizContent) CorrectCount() int {
	n := 0
	for _, o := range c.Options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

// Check returns ErrInvalidQuiz unless the quiz has MinQuizOptions to MaxQuizOptions
// options and exactly one of them is correct
func (c *QuizContent) Check() error {
	if n := len(c.Options); n < MinQuizOptions || n > MaxQuizOptions {
		return fmt.Errorf("%w: %d options, want %d to %d", ErrInvalidQuiz, n, MinQuizOptions, MaxQuizOptions)
	}
	if n := c.CorrectCount(); n != 1 {
		return fmt.Errorf("%w: %d correct options, want 1", ErrInvalidQuiz, n)
	}
	return nil
}

func (c *QuizContent) optionIndex(id string) int {
	return slices.IndexFunc(c.Options, func(o QuizOption) bool { return o.ID == id })
}

// NewContent returns the default payload for a new block of type t.
// newID provides ids for quiz options.
func NewContent(t BlockType, newID func() string) (Content, error) {
	switch t {
	case BlockTypeText:
		return &TextContent{}, nil
	case BlockTypeVideo:
		return &VideoContent{Provider: ProviderYouTube}, nil
	case BlockTypeImage:
		return &ImageContent{}, nil
	case BlockTypeQuiz:
		return &QuizContent{
			Options: []QuizOption{
				{ID: newID(), IsCorrect: true},
				{ID: newID()},
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}
}

// DecodeContent decodes a JSON payload into the variant named by t
func DecodeContent(t BlockType, raw json.RawMessage) (Content, error) {
	var c Content
	switch t {
	case BlockTypeText:
		c = &TextContent{}
	case BlockTypeVideo:
		c = &VideoContent{}
	case BlockTypeImage:
		c = &ImageContent{}
	case BlockTypeQuiz:
		c = &QuizContent{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return c, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("failed to decode %s block content: %w", t, err)
	}
	if v, ok := c.(*VideoContent); ok && v.Provider == "" {
		v.Provider = ProviderYouTube
	}
	return c, nil
}

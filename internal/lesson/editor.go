package lesson

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
)

// MoveDirection is the direction of a block move
type MoveDirection string

const (
	// MoveUp moves a block toward the start of the lesson
	MoveUp MoveDirection = "up"
	// MoveDown moves a block toward the end of the lesson
	MoveDown MoveDirection = "down"
)

// Editor holds the state of one lesson editing session.
//
// Every operation is synchronous and all-or-nothing. Operations that reference a
// missing block or option, or that would break a bound, leave the state unchanged
// and report false.
//
// Block removal is two-phase: RequestRemove moves the editor into a pending state
// for one block, and only ConfirmRemove or CancelRemove leave it.
type Editor struct {
	lesson         Lesson
	pendingRemoval string
	newID          func() string
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithIDGenerator replaces the uuid generator used for new blocks and quiz options
func WithIDGenerator(fn func() string) EditorOption {
	return func(e *Editor) {
		e.newID = fn
	}
}

// NewEditor starts an editing session over a copy of the lesson.
// Blocks are taken in ascending order and renumbered to their positions.
func NewEditor(l Lesson, opts ...EditorOption) *Editor {
	e := &Editor{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	e.lesson = l.Clone()
	e.lesson.Blocks = SortedBlocks(l.Blocks)
	if e.lesson.Blocks == nil {
		e.lesson.Blocks = []Block{}
	}
	e.renumber()
	return e
}

// Lesson returns a snapshot of the lesson being edited, ready to be saved as one unit
func (e *Editor) Lesson() Lesson {
	return e.lesson.Clone()
}

// Blocks returns a snapshot of the block sequence
func (e *Editor) Blocks() []Block {
	return cloneBlocks(e.lesson.Blocks)
}

// SetDetails replaces the lesson's own fields
func (e *Editor) SetDetails(title, slug string, classID int, isVisible bool) {
	e.lesson.Title = title
	e.lesson.Slug = slug
	e.lesson.ClassID = classID
	e.lesson.IsVisible = isVisible
}

func (e *Editor) indexOf(id string) int {
	return slices.IndexFunc(e.lesson.Blocks, func(b Block) bool { return b.ID == id })
}

// Block returns a copy of the block with the given id
func (e *Editor) Block(id string) (Block, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return e.lesson.Blocks[i].Clone(), true
}

// AddBlock appends a block of type t with its default payload.
// The new block's order is the sequence length before the append.
func (e *Editor) AddBlock(t BlockType) (Block, error) {
	content, err := NewContent(t, e.newID)
	if err != nil {
		return Block{}, err
	}
	b := Block{
		ID:      e.newID(),
		Order:   len(e.lesson.Blocks),
		Content: content,
	}
	e.lesson.Blocks = append(e.lesson.Blocks, b)
	return b.Clone(), nil
}

// UpdateBlock replaces the content of a block, keeping its id, type and order.
// Content of a different variant than the block is ignored, and so is a quiz
// that fails Check.
func (e *Editor) UpdateBlock(id string, content Content) bool {
	i := e.indexOf(id)
	if i < 0 || content == nil || content.Type() != e.lesson.Blocks[i].Type() {
		return false
	}
	if q, ok := content.(*QuizContent); ok && q.Check() != nil {
		return false
	}
	e.lesson.Blocks[i].Content = content.clone()
	return true
}

// MoveBlock swaps the block at index with its neighbour in direction d and renumbers
// every block to its position. Moves past either end do nothing.
func (e *Editor) MoveBlock(index int, d MoveDirection) bool {
	target := index
	switch d {
	case MoveUp:
		target = index - 1
	case MoveDown:
		target = index + 1
	default:
		return false
	}

	blocks := e.lesson.Blocks
	if index < 0 || index >= len(blocks) || target < 0 || target >= len(blocks) {
		return false
	}

	blocks[index], blocks[target] = blocks[target], blocks[index]
	e.renumber()
	return true
}

func (e *Editor) renumber() {
	for i := range e.lesson.Blocks {
		e.lesson.Blocks[i].Order = i
	}
}

// RequestRemove asks for confirmation before removing the block with the given id.
// A new request replaces any previous pending one.
func (e *Editor) RequestRemove(id string) bool {
	if e.indexOf(id) < 0 {
		return false
	}
	e.pendingRemoval = id
	return true
}

// PendingRemoval returns the block awaiting removal confirmation
func (e *Editor) PendingRemoval() (string, bool) {
	return e.pendingRemoval, e.pendingRemoval != ""
}

// ConfirmRemove removes the pending block and renumbers the sequence.
// Without a pending removal it does nothing.
func (e *Editor) ConfirmRemove() bool {
	id := e.pendingRemoval
	if id == "" {
		return false
	}
	e.pendingRemoval = ""

	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.lesson.Blocks = slices.Delete(e.lesson.Blocks, i, i+1)
	e.renumber()
	return true
}

// CancelRemove discards the pending removal
func (e *Editor) CancelRemove() bool {
	if e.pendingRemoval == "" {
		return false
	}
	e.pendingRemoval = ""
	return true
}

func (e *Editor) quiz(blockID string) *QuizContent {
	i := e.indexOf(blockID)
	if i < 0 {
		return nil
	}
	q, _ := e.lesson.Blocks[i].Content.(*QuizContent)
	return q
}

// AddOption appends an empty option to a quiz. The option is marked correct only
// when no other option is. Quizzes already at the maximum are left unchanged.
func (e *Editor) AddOption(blockID string) (QuizOption, bool) {
	q := e.quiz(blockID)
	if q == nil || len(q.Options) >= MaxQuizOptions {
		return QuizOption{}, false
	}
	o := QuizOption{ID: e.newID(), IsCorrect: q.CorrectCount() == 0}
	q.Options = append(q.Options, o)
	return o, true
}

// RemoveOption removes an option from a quiz. Quizzes at the minimum are left
// unchanged. When the correct option is removed the first remaining option
// becomes the correct one.
func (e *Editor) RemoveOption(blockID, optionID string) bool {
	q := e.quiz(blockID)
	if q == nil || len(q.Options) <= MinQuizOptions {
		return false
	}
	i := q.optionIndex(optionID)
	if i < 0 {
		return false
	}

	wasCorrect := q.Options[i].IsCorrect
	q.Options = slices.Delete(q.Options, i, i+1)
	if wasCorrect && q.CorrectCount() == 0 {
		q.Options[0].IsCorrect = true
	}
	return true
}

// SetCorrectOption marks exactly the given option as correct and every other option
// of the quiz as incorrect, in a single pass
func (e *Editor) SetCorrectOption(blockID, optionID string) bool {
	q := e.quiz(blockID)
	if q == nil || q.optionIndex(optionID) < 0 {
		return false
	}
	for i := range q.Options {
		q.Options[i].IsCorrect = q.Options[i].ID == optionID
	}
	return true
}

// SetImageURL stores the URL of an image block, keeping its caption
func (e *Editor) SetImageURL(blockID, url string) bool {
	i := e.indexOf(blockID)
	if i < 0 {
		return false
	}
	img, ok := e.lesson.Blocks[i].Content.(*ImageContent)
	if !ok {
		return false
	}
	img.URL = url
	return true
}

type editorJSON struct {
	Lesson         Lesson `json:"lesson"`
	PendingRemoval string `json:"pendingRemoval,omitempty"`
}

// MarshalJSON encodes the session state so it can be stored between requests
func (e *Editor) MarshalJSON() ([]byte, error) {
	return json.Marshal(editorJSON{Lesson: e.lesson, PendingRemoval: e.pendingRemoval})
}

// UnmarshalJSON restores a session state
func (e *Editor) UnmarshalJSON(data []byte) error {
	var raw editorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Lesson.Blocks == nil {
		raw.Lesson.Blocks = []Block{}
	}
	e.lesson = raw.Lesson
	e.pendingRemoval = raw.PendingRemoval
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return nil
}

package lesson

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Block is one typed, ordered unit of lesson content
type Block struct {
	ID      string
	Order   int
	Content Content
}

// Type returns the variant of the block's content
func (b Block) Type() BlockType {
	if b.Content == nil {
		return ""
	}
	return b.Content.Type()
}

// Clone returns a deep copy of the block
func (b Block) Clone() Block {
	if b.Content != nil {
		b.Content = b.Content.clone()
	}
	return b
}

type blockJSON struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Order   int             `json:"order"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the block as {"id","type","order","content"}
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Content == nil {
		return nil, fmt.Errorf("block %s has no content", b.ID)
	}
	content, err := json.Marshal(b.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal block content: %w", err)
	}
	return json.Marshal(blockJSON{
		ID:      b.ID,
		Type:    b.Content.Type(),
		Order:   b.Order,
		Content: content,
	})
}

// UnmarshalJSON decodes a block, rejecting unknown block types
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := DecodeContent(raw.Type, raw.Content)
	if err != nil {
		return err
	}
	b.ID = raw.ID
	b.Order = raw.Order
	b.Content = content
	return nil
}

// Lesson is the aggregate that owns an ordered block sequence.
// It is always saved as a whole.
type Lesson struct {
	ID        int       `json:"id"`
	Slug      string    `json:"slug" validate:"required,slug"`
	Title     string    `json:"title" validate:"required,notblank,max=255"`
	ClassID   int       `json:"classId" validate:"required,gt=0"`
	IsVisible bool      `json:"isVisible"`
	Blocks    []Block   `json:"blocks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the lesson
func (l Lesson) Clone() Lesson {
	l.Blocks = cloneBlocks(l.Blocks)
	return l
}

func cloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// SortedBlocks returns a copy of blocks in ascending order, keeping the relative
// position of blocks that share an order value
func SortedBlocks(blocks []Block) []Block {
	sorted := cloneBlocks(blocks)
	slices.SortStableFunc(sorted, func(a, b Block) int {
		return a.Order - b.Order
	})
	return sorted
}

// Summary is a lesson without its blocks, used in lesson lists
type Summary struct {
	ID         int       `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	ClassID    int       `json:"classId"`
	IsVisible  bool      `json:"isVisible"`
	BlockCount int       `json:"blockCount"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RowID implements table.Row
func (s Summary) RowID() string {
	return fmt.Sprint(s.ID)
}

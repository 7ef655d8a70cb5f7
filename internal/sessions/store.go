// Package sessions keeps lesson editing sessions between requests.
//
// A session is the serialized state of a lesson.Editor, including a pending block
// removal. Nothing in a session reaches the database until the editor is saved.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/academyhub/backend/internal/lesson"
)

// DefaultTTL is how long an idle editing session is kept
const DefaultTTL = 2 * time.Hour

// ErrSessionNotFound is returned for unknown or expired sessions
var ErrSessionNotFound = errors.New("editor session not found")

// Store persists editor sessions with an idle expiry
type Store interface {
	// Get loads the editor of session id
	//
	// "ctx" is the context for the request.
	// "id" is the session ID.
	//
	// Returns the editor or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*lesson.Editor, error)
	// Save stores the editor of session id and restarts its expiry
	//
	// "ctx" is the context for the request.
	// "id" is the session ID.
	// "editor" is the editing state to keep.
	//
	// Returns an error if any.
	Save(ctx context.Context, id string, editor *lesson.Editor) error
	// Delete discards session id
	//
	// "ctx" is the context for the request.
	// "id" is the session ID.
	//
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id string) error
}

func encode(editor *lesson.Editor) ([]byte, error) {
	if editor == nil {
		return nil, fmt.Errorf("editor is nil")
	}
	data, err := json.Marshal(editor)
	if err != nil {
		return nil, fmt.Errorf("failed to encode editor session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*lesson.Editor, error) {
	editor := &lesson.Editor{}
	if err := json.Unmarshal(data, editor); err != nil {
		return nil, fmt.Errorf("failed to decode editor session: %w", err)
	}
	return editor, nil
}

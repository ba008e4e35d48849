package contract

import (
	"context"
	"errors"

	"docchat-be/internal/entity"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore owns all session and turn data and is the single source of
// truth for transcripts. Implementations must serialize mutations so that
// session ids are allocated uniquely, a transcript is never observed
// half-appended, and deletes are atomic.
//
// Within one session, concurrent Append calls are applied without corruption,
// but arrival order across concurrent requests is NOT guaranteed; callers must
// not rely on a stronger ordering.
type SessionStore interface {
	// Create allocates a fresh session with an empty transcript.
	Create(ctx context.Context) (*entity.ChatSession, error)

	// Append adds a turn to the session. An empty or unknown sessionID lazily
	// creates a new session first. The first user turn derives the session
	// title. Returns the effective session id.
	Append(ctx context.Context, sessionID string, role, content string) (string, error)

	// Get returns the full session or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*entity.ChatSession, error)

	// List returns one summary per session, most recently created first.
	List(ctx context.Context) ([]entity.ChatSessionSummary, error)

	// Delete removes the session and reports whether it existed.
	Delete(ctx context.Context, sessionID string) (bool, error)
}

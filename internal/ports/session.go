package ports

import (
	"context"
	"errors"
	"fmt"

	"cosanostra/internal/domain"
)

var (
	// ErrSessionNotFound is returned by Load and Save for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists is returned by Create when the id is already taken.
	ErrSessionExists = fmt.Errorf("%w: session already exists", domain.ErrConflict)
	// ErrStaleVersion is returned by Save when the stored version moved on.
	ErrStaleVersion = fmt.Errorf("%w: stored session version changed", domain.ErrConflict)
)

// SessionStore persists one state blob per session. Implementations replace
// the blob atomically and never merge fields.
type SessionStore interface {
	// Create stores the first version of a session.
	Create(ctx context.Context, sessionID string, state *domain.GameState) error

	// Load returns the current state of a session.
	Load(ctx context.Context, sessionID string) (*domain.GameState, error)

	// Save replaces the stored state if its version still equals expectedVersion.
	// A mismatch fails with ErrStaleVersion and leaves the stored state untouched.
	Save(ctx context.Context, sessionID string, state *domain.GameState, expectedVersion int64) error
}

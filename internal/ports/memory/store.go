// Package memory is an in-process SessionStore for tests and single-node runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"cosanostra/internal/domain"
	"cosanostra/internal/ports"
)

// Store keeps session states in a map guarded by one mutex.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*domain.GameState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.GameState)}
}

// Create stores the first version of a session.
func (s *Store) Create(ctx context.Context, sessionID string, state *domain.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; ok {
		return fmt.Errorf("create session %s: %w", sessionID, ports.ErrSessionExists)
	}
	s.sessions[sessionID] = state.Clone()
	return nil
}

// Load returns a copy of the stored state.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("load session %s: %w", sessionID, ports.ErrSessionNotFound)
	}
	return state.Clone(), nil
}

// Save replaces the stored state when its version equals expectedVersion.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.GameState, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("save session %s: %w", sessionID, ports.ErrSessionNotFound)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("save session %s at version %d, stored %d: %w", sessionID, expectedVersion, current.Version, ports.ErrStaleVersion)
	}
	s.sessions[sessionID] = state.Clone()
	return nil
}

var _ ports.SessionStore = (*Store)(nil)

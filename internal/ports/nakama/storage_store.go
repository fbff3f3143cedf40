package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cosanostra/internal/domain"
	"cosanostra/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// StorageAPI is the part of runtime.NakamaModule the session store needs.
type StorageAPI interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaSessionStore implements ports.SessionStore on Nakama storage objects.
// The object version guards every write, so two saves computed from the same
// state cannot both land.
type NakamaSessionStore struct {
	storage StorageAPI
}

// NewNakamaSessionStore creates a new storage-backed session store.
func NewNakamaSessionStore(storage StorageAPI) *NakamaSessionStore {
	return &NakamaSessionStore{storage: storage}
}

// Create writes the first version of a session; an existing object is rejected.
func (s *NakamaSessionStore) Create(ctx context.Context, sessionID string, state *domain.GameState) error {
	err := s.write(ctx, sessionID, state, "*")
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return fmt.Errorf("create session %s: %w", sessionID, ports.ErrSessionExists)
	}
	if err != nil {
		return fmt.Errorf("create session %s: %w", sessionID, err)
	}
	return nil
}

// Load reads and decodes the session object.
func (s *NakamaSessionStore) Load(ctx context.Context, sessionID string) (*domain.GameState, error) {
	state, _, err := s.read(ctx, sessionID)
	return state, err
}

// Save replaces the session object if the stored state is still at expectedVersion.
func (s *NakamaSessionStore) Save(ctx context.Context, sessionID string, state *domain.GameState, expectedVersion int64) error {
	current, objectVersion, err := s.read(ctx, sessionID)
	if err != nil {
		return err
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("save session %s at version %d, stored %d: %w", sessionID, expectedVersion, current.Version, ports.ErrStaleVersion)
	}
	err = s.write(ctx, sessionID, state, objectVersion)
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return fmt.Errorf("save session %s: %w", sessionID, ports.ErrStaleVersion)
	}
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func (s *NakamaSessionStore) read(ctx context.Context, sessionID string) (*domain.GameState, string, error) {
	objects, err := s.storage.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: SessionCollection,
		Key:        sessionID,
		UserID:     systemUserID,
	}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}
	if len(objects) == 0 {
		return nil, "", fmt.Errorf("load session %s: %w", sessionID, ports.ErrSessionNotFound)
	}

	var state domain.GameState
	if err := json.Unmarshal([]byte(objects[0].Value), &state); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return &state, objects[0].Version, nil
}

func (s *NakamaSessionStore) write(ctx context.Context, sessionID string, state *domain.GameState, version string) error {
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	_, err = s.storage.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      SessionCollection,
		Key:             sessionID,
		UserID:          systemUserID,
		Value:           string(value),
		Version:         version,
		PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	return err
}

var _ ports.SessionStore = (*NakamaSessionStore)(nil)

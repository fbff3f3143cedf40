// Package redisstore keeps session states in Redis, one JSON string per session.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"cosanostra/internal/domain"
	"cosanostra/internal/ports"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "cosanostra:session:"

// maxWatchRetries bounds retries of a Save whose WATCH fired because of a
// concurrent write that did not change the version.
const maxWatchRetries = 3

// Store implements ports.SessionStore with optimistic WATCH/MULTI transactions.
type Store struct {
	rdb    *redis.Client
	prefix string
	logger *zap.Logger
}

// NewStore wraps a connected client. A nil logger disables logging.
func NewStore(rdb *redis.Client, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{rdb: rdb, prefix: prefix, logger: logger}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

// Create stores the first version of a session with SETNX.
func (s *Store) Create(ctx context.Context, sessionID string, state *domain.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	ok, err := s.rdb.SetNX(ctx, s.key(sessionID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("create session %s: %w", sessionID, err)
	}
	if !ok {
		return fmt.Errorf("create session %s: %w", sessionID, ports.ErrSessionExists)
	}
	s.logger.Info("session created",
		zap.String("session_id", sessionID),
		zap.Int64("version", state.Version),
	)
	return nil
}

// Load reads and decodes the stored state.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.GameState, error) {
	return s.load(ctx, s.rdb, sessionID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Store) load(ctx context.Context, rdb getter, sessionID string) (*domain.GameState, error) {
	raw, err := rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, ports.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var state domain.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

// Save replaces the stored state if its version equals expectedVersion. The
// version check and the write run in one WATCH transaction.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.GameState, expectedVersion int64) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	key := s.key(sessionID)

	txf := func(tx *redis.Tx) error {
		current, err := s.load(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return fmt.Errorf("save session %s at version %d, stored %d: %w", sessionID, expectedVersion, current.Version, ports.ErrStaleVersion)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err = s.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
		s.logger.Debug("session watch fired, retrying",
			zap.String("session_id", sessionID),
			zap.Int("attempt", attempt+1),
		)
	}
	switch {
	case err == nil:
		s.logger.Info("session saved",
			zap.String("session_id", sessionID),
			zap.Int64("version", state.Version),
		)
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("save session %s: %w", sessionID, ports.ErrStaleVersion)
	case errors.Is(err, domain.ErrConflict):
		s.logger.Warn("stale session save rejected",
			zap.String("session_id", sessionID),
			zap.Int64("expected_version", expectedVersion),
		)
		return err
	default:
		return err
	}
}

var _ ports.SessionStore = (*Store)(nil)

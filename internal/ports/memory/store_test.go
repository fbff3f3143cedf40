package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosanostra/internal/domain"
	"cosanostra/internal/ports"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Load(ctx, "s1")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	lobby := domain.NewLobby("u1", "Host")
	require.NoError(t, store.Create(ctx, "s1", lobby))
	assert.ErrorIs(t, store.Create(ctx, "s1", lobby), ports.ErrSessionExists)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lobby, loaded)

	loaded.Players[0].DisplayName = "changed"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Host", again.Players[0].DisplayName, "store must not alias returned states")

	next := loaded.Clone()
	next.Version = 2
	require.NoError(t, store.Save(ctx, "s1", next, 1))

	err = store.Save(ctx, "s1", next, 1)
	assert.ErrorIs(t, err, ports.ErrStaleVersion)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, store.Save(ctx, "missing", next, 1), ports.ErrSessionNotFound)
}

func TestStoreConcurrentSavesAcceptOne(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Create(ctx, "s1", domain.NewLobby("u1", "Host")))

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := domain.NewLobby("u1", "Host")
			next.Version = 2
			results <- store.Save(ctx, "s1", next, 1)
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, accepted)
}

package nakama

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"cosanostra/internal/app"
	"cosanostra/internal/app/session"
	"cosanostra/internal/catalog"
	"cosanostra/internal/ports"
	"cosanostra/internal/ports/memory"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type storedObject struct {
	value   string
	version int
}

// fakeStorage mimics Nakama's versioned storage objects.
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string]storedObject
	readErr  error
	writeErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]storedObject{}}
}

func (f *fakeStorage) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []*api.StorageObject
	for _, r := range reads {
		obj, ok := f.objects[r.Collection+"/"+r.Key]
		if !ok {
			continue
		}
		out = append(out, &api.StorageObject{
			Collection: r.Collection,
			Key:        r.Key,
			Value:      obj.value,
			Version:    strconv.Itoa(obj.version),
		})
	}
	return out, nil
}

func (f *fakeStorage) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	var acks []*api.StorageObjectAck
	for _, w := range writes {
		key := w.Collection + "/" + w.Key
		obj, exists := f.objects[key]
		switch {
		case w.Version == "*" && exists:
			return nil, runtime.ErrStorageRejectedVersion
		case w.Version != "" && w.Version != "*" && (!exists || strconv.Itoa(obj.version) != w.Version):
			return nil, runtime.ErrStorageRejectedVersion
		}
		next := storedObject{value: w.Value, version: obj.version + 1}
		f.objects[key] = next
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, Version: strconv.Itoa(next.version)})
	}
	return acks, nil
}

type fakeNotifications struct {
	err  error
	sent []*runtime.NotificationSend
}

func (f *fakeNotifications) NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error {
	f.sent = append(f.sent, notifications...)
	return f.err
}

type fakeAccounts struct {
	account *api.Account
	err     error
	updates map[string]string
}

func (f *fakeAccounts) AccountGetId(ctx context.Context, userID string) (*api.Account, error) {
	return f.account, f.err
}

func (f *fakeAccounts) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	if f.updates == nil {
		f.updates = map[string]string{}
	}
	f.updates[userID] = displayName
	return f.err
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	var entries []catalog.RawEntry
	for i := 0; i < 20; i++ {
		entries = append(entries, catalog.RawEntry{ID: fmt.Sprintf("o-%d", i), Type: "Rozkaz", Round: "1"})
	}
	for i := 0; i < 5; i++ {
		cost := 300
		entries = append(entries, catalog.RawEntry{ID: fmt.Sprintf("b-%d", i), Type: "Interes", Cost: &cost, Income: 50})
	}
	cat, err := catalog.Load(entries)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func testHandlers(t *testing.T, accounts *fakeAccounts) *Handlers {
	t.Helper()
	cat := testCatalog(t)
	game := app.NewService(cat, app.DefaultRules(), rand.New(rand.NewSource(5)))
	var identity ports.IdentityPort
	if accounts != nil {
		identity = NewNakamaAccountAdapter(accounts)
	}
	sessions := session.NewService(game, memory.NewStore(), nil, identity, rand.New(rand.NewSource(1)))
	return NewHandlers(sessions, cat)
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"cosanostra/internal/app"
	"cosanostra/internal/catalog"
	"cosanostra/internal/domain"
	"cosanostra/internal/ports"
	"cosanostra/internal/ports/memory"
)

type fakeNotifier struct {
	err  error
	sent []ports.Notification
}

func (f *fakeNotifier) SessionUpdated(ctx context.Context, n ports.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type fakeIdentity struct {
	names     map[string]string
	lookupErr error
	updateErr error
	updated   map[string]string
}

func (f *fakeIdentity) DisplayName(ctx context.Context, userID string) (string, error) {
	return f.names[userID], f.lookupErr
}

func (f *fakeIdentity) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	if f.updated == nil {
		f.updated = map[string]string{}
	}
	f.updated[userID] = displayName
	return f.updateErr
}

func testGame(t *testing.T) *app.Service {
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
	return app.NewService(cat, app.DefaultRules(), rand.New(rand.NewSource(3)))
}

func newTestService(t *testing.T, notifier ports.Notifier, identity ports.IdentityPort) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(testGame(t), store, notifier, identity, rand.New(rand.NewSource(1)))
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
	return svc, store
}

func TestCreateJoinStart(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	identity := &fakeIdentity{names: map[string]string{"u2": "Sonny"}}
	svc, store := newTestService(t, notifier, identity)

	created, err := svc.Create(ctx, app.PlayerInfo{ID: "u1", DisplayName: "Vito"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SessionID != "session-1" || created.View.Phase != domain.PhaseLobby {
		t.Fatalf("create result = %+v", created)
	}

	joined, err := svc.Join(ctx, created.SessionID, app.PlayerInfo{ID: "u2"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.View.Version != 2 || joined.View.Players[1].DisplayName != "Sonny" {
		t.Fatalf("join view = %+v", joined.View)
	}
	if len(notifier.sent) != 1 || len(notifier.sent[0].Recipients) != 2 {
		t.Fatalf("notifications after join = %+v", notifier.sent)
	}

	if _, err := svc.Start(ctx, created.SessionID, "u2", 2); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("guest start err = %v", err)
	}
	started, err := svc.Start(ctx, created.SessionID, "u1", 2)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.View.Phase != domain.PhasePlanning || started.View.Version != 3 {
		t.Fatalf("start view = %+v", started.View)
	}

	stored, err := store.Load(ctx, created.SessionID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Version != 3 || len(stored.Players[0].Hand) != 4 {
		t.Fatalf("stored state v%d hand=%v", stored.Version, stored.Players[0].Hand)
	}

	view, err := svc.Get(ctx, created.SessionID, "u2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.View.Players[0].Hand != nil || view.View.Players[0].HandCount != 4 || len(view.View.Players[1].Hand) != 4 {
		t.Fatalf("view not redacted: %+v", view.View.Players)
	}
}

func TestJoinTwiceDoesNotSave(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc, _ := newTestService(t, notifier, nil)

	created, err := svc.Create(ctx, app.PlayerInfo{ID: "u1", DisplayName: "Vito"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := svc.Join(ctx, created.SessionID, app.PlayerInfo{ID: "u1"})
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if res.View.Version != 1 || len(notifier.sent) != 0 {
		t.Fatalf("rejoin saved or notified: v%d sent=%d", res.View.Version, len(notifier.sent))
	}
}

func TestMutationsUseExpectedVersion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeNotifier{}, nil)

	created, _ := svc.Create(ctx, app.PlayerInfo{ID: "u1", DisplayName: "Vito"})
	if _, err := svc.Start(ctx, created.SessionID, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.Advance(ctx, created.SessionID, "u1", 1); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale advance err = %v", err)
	}
	res, err := svc.Advance(ctx, created.SessionID, "u1", 2)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.View.Phase != domain.PhaseAction {
		t.Fatalf("phase = %s", res.View.Phase)
	}

	market := res.View.Market
	res, err = svc.Buy(ctx, created.SessionID, "u1", 3, market[0])
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if res.View.Players[0].Money != 1700 {
		t.Fatalf("money after buy = %d", res.View.Players[0].Money)
	}

	res, err = svc.Ready(ctx, created.SessionID, "u1", 4, true)
	if err != nil || !res.View.Players[0].IsReady {
		t.Fatalf("ready: %+v %v", res.View.Players, err)
	}
	res, err = svc.SpendDealToken(ctx, created.SessionID, "u1", 5)
	if err != nil || res.View.Players[0].DealTokens != 4 {
		t.Fatalf("deal token: %+v %v", res.View.Players, err)
	}

	hand := res.View.Players[0].Hand
	_, err = svc.PlayOrder(ctx, created.SessionID, "u1", 6, hand[0], 1, nil)
	if !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("order without options err = %v", err)
	}
}

func TestNotifyFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{err: errors.New("socket closed")}
	svc, store := newTestService(t, notifier, nil)

	created, _ := svc.Create(ctx, app.PlayerInfo{ID: "u1", DisplayName: "Vito"})
	res, err := svc.Start(ctx, created.SessionID, "u1", 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if res.NotifyErr == nil {
		t.Fatal("expected notify error to be captured")
	}
	stored, _ := store.Load(ctx, created.SessionID)
	if stored.Phase != domain.PhasePlanning {
		t.Fatalf("state not saved: %s", stored.Phase)
	}
}

func TestGetRequiresSeat(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, nil)

	created, err := svc.Create(ctx, app.PlayerInfo{ID: "u1", DisplayName: "Vito"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, created.SessionID, "stranger"); !errors.Is(err, app.ErrNotSeated) {
		t.Fatalf("stranger get err = %v", err)
	}
	if _, err := svc.Get(ctx, created.SessionID, "u1"); err != nil {
		t.Fatalf("host get: %v", err)
	}
}

func TestMissingSession(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	if _, err := svc.Get(context.Background(), "nope", "u1"); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	ctx := context.Background()
	identity := &fakeIdentity{lookupErr: errors.New("account lookup failed")}
	svc, _ := newTestService(t, nil, identity)

	res, err := svc.Create(ctx, app.PlayerInfo{ID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.ProfileErr == nil {
		t.Fatal("expected lookup error to be captured")
	}
	if res.View.Players[0].DisplayName == "" {
		t.Fatal("expected a generated display name")
	}
}

func TestOnboard(t *testing.T) {
	identity := &fakeIdentity{}
	svc, _ := newTestService(t, nil, identity)

	res, err := svc.Onboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if res.ProfileErr != nil {
		t.Fatalf("unexpected profile error: %v", res.ProfileErr)
	}
	if identity.updated["u1"] == "" {
		t.Fatal("expected generated display name to be stored")
	}

	identity.updateErr = errors.New("update failed")
	res, err = svc.Onboard(context.Background(), "u2")
	if err != nil || res.ProfileErr == nil {
		t.Fatalf("expected captured profile error, got res=%+v err=%v", res, err)
	}

	bare, _ := newTestService(t, nil, nil)
	if _, err := bare.Onboard(context.Background(), "u3"); err == nil {
		t.Fatal("expected error without identity port")
	}
}

// Package session runs game use-cases against stored sessions: it loads the
// current state, applies one engine mutation, saves it with a version check
// and tells the players.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"cosanostra/internal/app"
	"cosanostra/internal/domain"
	"cosanostra/internal/ports"
)

// Result captures non-fatal outcomes of a session call.
type Result struct {
	SessionID string
	View      domain.PlayerView
	Events    []app.Event

	// NotifyErr is set when the state was saved but players could not be notified.
	NotifyErr error

	// ProfileErr is set when the host profile could not be read or updated.
	ProfileErr error
}

// Service coordinates the engine with the session store and notifier.
type Service struct {
	game     *app.Service
	store    ports.SessionStore
	notifier ports.Notifier
	identity ports.IdentityPort
	newID    func() string

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService constructs a session service with required ports.
// game/store must be non-nil; notifier/identity may be nil; rng may be nil to use a time-seeded default.
func NewService(game *app.Service, store ports.SessionStore, notifier ports.Notifier, identity ports.IdentityPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		game:     game,
		store:    store,
		notifier: notifier,
		identity: identity,
		rng:      rng,
		newID:    uuid.NewString,
	}
}

// Create opens a lobby hosted by host under a fresh session id.
func (s *Service) Create(ctx context.Context, host app.PlayerInfo) (Result, error) {
	if s.game == nil || s.store == nil {
		return Result{}, fmt.Errorf("session service not configured")
	}
	result := Result{SessionID: s.newID()}
	host.DisplayName, result.ProfileErr = s.displayName(ctx, host)

	lobby := s.game.OpenLobby(host)
	if err := s.store.Create(ctx, result.SessionID, lobby); err != nil {
		return Result{}, err
	}
	result.View = lobby.ViewFor(host.ID)
	return result, nil
}

// Join seats player in a lobby. Joining a lobby twice is a no-op.
func (s *Service) Join(ctx context.Context, sessionID string, player app.PlayerInfo) (Result, error) {
	var profileErr error
	player.DisplayName, profileErr = s.displayName(ctx, player)
	result, err := s.mutate(ctx, sessionID, player.ID, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.JoinLobby(state, state.Version, player)
	})
	result.ProfileErr = profileErr
	return result, err
}

// Start deals the game out of a lobby.
func (s *Service) Start(ctx context.Context, sessionID, requestor string, expectedVersion int64) (Result, error) {
	return s.mutate(ctx, sessionID, requestor, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.StartLobby(state, expectedVersion, requestor)
	})
}

// Get returns the session as seen by viewerID, who must be seated in it.
func (s *Service) Get(ctx context.Context, sessionID, viewerID string) (Result, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	if state.Player(viewerID) < 0 {
		return Result{}, fmt.Errorf("player %s: %w", viewerID, app.ErrNotSeated)
	}
	return Result{SessionID: sessionID, View: state.ViewFor(viewerID)}, nil
}

// Advance moves the session to its next phase.
func (s *Service) Advance(ctx context.Context, sessionID, requestor string, expectedVersion int64) (Result, error) {
	return s.mutate(ctx, sessionID, requestor, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.AdvancePhase(state, expectedVersion, requestor)
	})
}

// Buy purchases a business from the market.
func (s *Service) Buy(ctx context.Context, sessionID, playerID string, expectedVersion int64, cardID string) (Result, error) {
	return s.mutate(ctx, sessionID, playerID, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.BuyBusiness(state, expectedVersion, playerID, cardID)
	})
}

// PlayOrder plays an order card with the chosen option and roll.
func (s *Service) PlayOrder(ctx context.Context, sessionID, playerID string, expectedVersion int64, cardID string, optionID int, rolled []int) (Result, error) {
	return s.mutate(ctx, sessionID, playerID, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.PlayOrder(state, expectedVersion, playerID, cardID, optionID, rolled)
	})
}

// Ready sets the player's ready flag.
func (s *Service) Ready(ctx context.Context, sessionID, playerID string, expectedVersion int64, ready bool) (Result, error) {
	return s.mutate(ctx, sessionID, playerID, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.SetReady(state, expectedVersion, playerID, ready)
	})
}

// SpendDealToken consumes one deal token of the player.
func (s *Service) SpendDealToken(ctx context.Context, sessionID, playerID string, expectedVersion int64) (Result, error) {
	return s.mutate(ctx, sessionID, playerID, func(state *domain.GameState) (*domain.GameState, []app.Event, error) {
		return s.game.SpendDealToken(state, expectedVersion, playerID)
	})
}

// Onboard gives a newly created account a generated display name.
// Returns a Result whose ProfileErr reports a failed update.
func (s *Service) Onboard(ctx context.Context, userID string) (Result, error) {
	if s.identity == nil {
		return Result{}, fmt.Errorf("session service has no identity port")
	}
	name := s.generateFriendlyName()
	return Result{ProfileErr: s.identity.UpdateProfile(ctx, userID, "", name)}, nil
}

type mutation func(state *domain.GameState) (*domain.GameState, []app.Event, error)

// mutate applies fn to the stored state and saves the result against the
// version it was computed from. Unchanged states are not saved.
func (s *Service) mutate(ctx context.Context, sessionID, viewerID string, fn mutation) (Result, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	next, events, err := fn(state)
	if err != nil {
		return Result{}, err
	}
	result := Result{SessionID: sessionID, Events: events, View: next.ViewFor(viewerID)}
	if next.Version == state.Version {
		return result, nil
	}
	if err := s.store.Save(ctx, sessionID, next, state.Version); err != nil {
		return Result{}, err
	}
	result.NotifyErr = s.notify(ctx, sessionID, next, events)
	return result, nil
}

func (s *Service) notify(ctx context.Context, sessionID string, state *domain.GameState, events []app.Event) error {
	if s.notifier == nil {
		return nil
	}
	n := ports.Notification{
		SessionID:  sessionID,
		Version:    state.Version,
		Recipients: make([]string, 0, len(state.Players)),
		Events:     make([]string, 0, len(events)),
	}
	for _, p := range state.Players {
		n.Recipients = append(n.Recipients, p.ID)
	}
	for _, ev := range events {
		n.Events = append(n.Events, string(ev.Kind))
	}
	return s.notifier.SessionUpdated(ctx, n)
}

// displayName prefers the caller's name, then the host profile, then a generated one.
func (s *Service) displayName(ctx context.Context, p app.PlayerInfo) (string, error) {
	if p.DisplayName != "" {
		return p.DisplayName, nil
	}
	if s.identity == nil {
		return s.generateFriendlyName(), nil
	}
	name, err := s.identity.DisplayName(ctx, p.ID)
	if err == nil && name != "" {
		return name, nil
	}
	return s.generateFriendlyName(), err
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Silent", "Lucky", "Sharp", "Quiet", "Cold", "Loyal", "Clever", "Smooth", "Sly", "Grim"}
	nouns := []string{"Tony", "Sal", "Vinnie", "Carlo", "Frankie", "Paulie", "Nicky", "Rocco", "Luca", "Enzo"}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(90) + 10

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}

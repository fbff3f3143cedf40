package app

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cosanostra/internal/catalog"
	"cosanostra/internal/deck"
	"cosanostra/internal/domain"
)

// Service contains the game use-cases operating on domain state. Every
// mutation returns a replacement state and never touches its input.
type Service struct {
	cat   *catalog.Catalog
	rules Rules

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(cat *catalog.Catalog, rules Rules, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if rules.MarketSize <= 0 || rules.MarketSize > domain.MarketSize {
		rules.MarketSize = domain.MarketSize
	}
	return &Service{cat: cat, rules: rules, rng: rng}
}

// PlayerInfo identifies a seated participant.
type PlayerInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

var (
	ErrTooFewPlayers      = fmt.Errorf("%w: too few players", domain.ErrSetup)
	ErrTooManyPlayers     = fmt.Errorf("%w: too many players", domain.ErrSetup)
	ErrDuplicatePlayer    = fmt.Errorf("%w: player seated twice", domain.ErrSetup)
	ErrHostNotSeated      = fmt.Errorf("%w: host is not seated", domain.ErrSetup)
	ErrOrderDeckExhausted = fmt.Errorf("%w: round 1 order deck exhausted", domain.ErrSetup)
	ErrNotHost            = fmt.Errorf("%w: requestor is not session host", domain.ErrAuthorization)
	ErrNotSeated          = fmt.Errorf("%w: player is not seated", domain.ErrAuthorization)
	ErrNotInLobby         = fmt.Errorf("%w: session already started", domain.ErrRule)
	ErrWrongPhase         = fmt.Errorf("%w: action not allowed in this phase", domain.ErrRule)
	ErrNotInMarket        = fmt.Errorf("%w: card is not in the market", domain.ErrRule)
	ErrNotPurchasable     = fmt.Errorf("%w: card has no numeric cost", domain.ErrRule)
	ErrInsufficientFunds  = fmt.Errorf("%w: insufficient funds", domain.ErrRule)
	ErrCardNotInHand      = fmt.Errorf("%w: card is not in hand", domain.ErrRule)
	ErrNotAnOrder         = fmt.Errorf("%w: card is not an order", domain.ErrRule)
	ErrNoDealTokens       = fmt.Errorf("%w: no deal tokens left", domain.ErrRule)
)

// Catalog returns the catalog the service deals from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// StartGame builds the opening state for players seated in join order.
func (s *Service) StartGame(players []PlayerInfo, hostID string) (*domain.GameState, []Event, error) {
	if len(players) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}
	if len(players) > MaxPlayersToStartGame {
		return nil, nil, fmt.Errorf("%d seats: %w", len(players), ErrTooManyPlayers)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, nil, fmt.Errorf("player %s: %w", p.ID, ErrDuplicatePlayer)
		}
		seen[p.ID] = true
	}
	if !seen[hostID] {
		return nil, nil, fmt.Errorf("host %s: %w", hostID, ErrHostNotSeated)
	}

	s.rngMu.Lock()
	decks := deck.Build(s.cat, s.rng)
	s.rngMu.Unlock()
	round := domain.RoundTag(1)

	game := &domain.GameState{
		Version:    1,
		HostID:     hostID,
		Round:      1,
		Phase:      domain.PhasePlanning,
		Players:    make([]domain.PlayerState, 0, len(players)),
		OrderDecks: decks.Orders,
	}
	families := make(map[string]domain.Family, len(players))
	events := make([]Event, 0, len(players)+1)

	for i, info := range players {
		family := domain.Families[i]
		table, err := s.startingTable(family)
		if err != nil {
			return nil, nil, err
		}
		hand := deck.Partition(s.cat, catalog.All(
			catalog.OfType(domain.CardInfluence),
			catalog.OfFamily(family),
			catalog.IsDefault,
			catalog.Named(s.rules.StarterInfluenceNames...),
		))
		orders := deck.DrawOrders(game.OrderDecks, round, s.rules.HandSize)
		if len(orders) < s.rules.HandSize {
			return nil, nil, fmt.Errorf("dealing to %s: %w", info.ID, ErrOrderDeckExhausted)
		}
		hand = append(hand, orders...)

		game.Players = append(game.Players, domain.PlayerState{
			ID:          info.ID,
			DisplayName: info.DisplayName,
			Money:       s.rules.StartingMoney,
			Hand:        hand,
			Table:       table,
			DealTokens:  s.rules.StartingDealTokens,
			Family:      family,
		})
		families[info.ID] = family

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: info.ID, Hand: append([]string(nil), hand...)},
			Recipients: []string{info.ID},
		})
	}

	game.Market, game.BusinessDeck = deck.Draw(decks.Business, s.rules.MarketSize)
	game.InfluenceDeck = decks.Influence

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Phase: game.Phase, Round: game.Round, Families: families},
	})
	return game, events, nil
}

// StartLobby leaves the lobby: the seated players are dealt in and the
// resulting state continues the lobby's version sequence.
func (s *Service) StartLobby(lobby *domain.GameState, expectedVersion int64, requestor string) (*domain.GameState, []Event, error) {
	if err := checkVersion(lobby, expectedVersion); err != nil {
		return nil, nil, err
	}
	if requestor != lobby.HostID {
		return nil, nil, ErrNotHost
	}
	if lobby.Phase != domain.PhaseLobby {
		return nil, nil, ErrNotInLobby
	}
	players := make([]PlayerInfo, 0, len(lobby.Players))
	for _, p := range lobby.Players {
		players = append(players, PlayerInfo{ID: p.ID, DisplayName: p.DisplayName})
	}
	game, events, err := s.StartGame(players, lobby.HostID)
	if err != nil {
		return nil, nil, err
	}
	game.Version = lobby.Version + 1
	return game, events, nil
}

// AdvancePhase moves the session to its next phase. Only the host may advance;
// leaving PAYOUT settles the round and deals the next one.
func (s *Service) AdvancePhase(state *domain.GameState, expectedVersion int64, requestor string) (*domain.GameState, []Event, error) {
	if err := checkVersion(state, expectedVersion); err != nil {
		return nil, nil, err
	}
	if requestor != state.HostID {
		return nil, nil, ErrNotHost
	}
	phase, roundAdvance, err := domain.NextPhase(state.Phase)
	if err != nil {
		return nil, nil, err
	}
	if err := s.cat.CheckState(state); err != nil {
		return nil, nil, err
	}

	next := state.Clone()
	next.Phase = phase
	var events []Event
	if roundAdvance {
		paid, err := s.payout(next)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, Event{Kind: EventPayout, Payload: paid})
	}
	next.Version++

	events = append([]Event{{
		Kind:    EventPhaseAdvanced,
		Payload: PhaseAdvancedPayload{From: state.Phase, To: next.Phase, Round: next.Round},
	}}, events...)
	return next, events, nil
}

// payout settles a finished round on next in place.
func (s *Service) payout(next *domain.GameState) (PayoutPayload, error) {
	settled := next.Round
	income := make(map[string]int, len(next.Players))
	for i := range next.Players {
		p := &next.Players[i]
		amount, err := domain.TableIncome(p.Table, s.cat.Get)
		if err != nil {
			return PayoutPayload{}, fmt.Errorf("table of %s: %w", p.ID, err)
		}
		p.Money += amount
		income[p.ID] = amount
	}

	for i := range next.Players {
		p := &next.Players[i]
		var kept []string
		for _, id := range p.Hand {
			card, err := s.cat.Get(id)
			if err != nil {
				return PayoutPayload{}, fmt.Errorf("hand of %s: %w", p.ID, err)
			}
			if card.Type == domain.CardOrder {
				next.Trash = append(next.Trash, id)
				continue
			}
			kept = append(kept, id)
		}
		p.Hand = kept
	}

	s.refill(next)
	next.Round++

	if next.OrderDecks == nil {
		next.OrderDecks = make(map[string][]string)
	}
	tag := domain.RoundTag(next.Round)
	for i := range next.Players {
		p := &next.Players[i]
		p.Hand = append(p.Hand, deck.DrawOrders(next.OrderDecks, tag, s.rules.HandSize)...)
		p.IsReady = false
	}
	if n := len(next.Players); n > 0 {
		next.ActivePlayerIndex = (next.Round - 1) % n
	}
	return PayoutPayload{Round: settled, Income: income}, nil
}

// Refill tops the market up from the business deck.
func (s *Service) Refill(state *domain.GameState) *domain.GameState {
	next := state.Clone()
	s.refill(next)
	return next
}

func (s *Service) refill(next *domain.GameState) {
	missing := s.rules.MarketSize - len(next.Market)
	if missing <= 0 {
		return
	}
	var drawn []string
	drawn, next.BusinessDeck = deck.Draw(next.BusinessDeck, missing)
	next.Market = append(next.Market, drawn...)
}

// startingTable returns a family's default gangsters followed by its kit.
func (s *Service) startingTable(family domain.Family) ([]string, error) {
	table := deck.Partition(s.cat, catalog.All(
		catalog.OfType(domain.CardGangster),
		catalog.OfFamily(family),
		catalog.IsDefault,
	))
	for _, id := range s.rules.Kits[family] {
		if _, err := s.cat.Get(id); err != nil {
			return nil, fmt.Errorf("%s kit: %w", family, err)
		}
		table = append(table, id)
	}
	return table, nil
}

func checkVersion(state *domain.GameState, expected int64) error {
	if state.Version != expected {
		return fmt.Errorf("%w: expected version %d, current %d", domain.ErrConflict, expected, state.Version)
	}
	return nil
}

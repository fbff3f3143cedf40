package app

import (
	"fmt"

	"cosanostra/internal/domain"
)

// BuyBusiness moves a market card to the buyer's table and restocks the market.
func (s *Service) BuyBusiness(state *domain.GameState, expectedVersion int64, playerID, cardID string) (*domain.GameState, []Event, error) {
	idx, err := s.actor(state, expectedVersion, playerID, domain.PhaseAction)
	if err != nil {
		return nil, nil, err
	}
	if !domain.ContainsCard(state.Market, cardID) {
		return nil, nil, fmt.Errorf("card %s: %w", cardID, ErrNotInMarket)
	}
	card, err := s.cat.Get(cardID)
	if err != nil {
		return nil, nil, err
	}
	cost, ok := card.Cost.Int()
	if !ok {
		return nil, nil, fmt.Errorf("card %s costs %q: %w", cardID, card.Cost, ErrNotPurchasable)
	}
	if cost > state.Players[idx].Money {
		return nil, nil, fmt.Errorf("card %s costs %d, have %d: %w", cardID, cost, state.Players[idx].Money, ErrInsufficientFunds)
	}

	next := state.Clone()
	buyer := &next.Players[idx]
	buyer.Money -= cost
	buyer.Table = append(buyer.Table, cardID)
	next.Market, _ = domain.RemoveCard(next.Market, cardID)
	s.refill(next)
	next.Version++

	return next, []Event{{
		Kind:    EventBusinessBought,
		Payload: BusinessBoughtPayload{UserID: playerID, CardID: cardID, Cost: cost},
	}}, nil
}

// PlayOrder plays an order from hand with one of its options. The card goes to
// the trash and the option amount is paid to the player.
func (s *Service) PlayOrder(state *domain.GameState, expectedVersion int64, playerID, cardID string, optionID int, rolled []int) (*domain.GameState, []Event, error) {
	idx, err := s.actor(state, expectedVersion, playerID, domain.PhaseAction)
	if err != nil {
		return nil, nil, err
	}
	if !domain.ContainsCard(state.Players[idx].Hand, cardID) {
		return nil, nil, fmt.Errorf("card %s: %w", cardID, ErrCardNotInHand)
	}
	card, err := s.cat.Get(cardID)
	if err != nil {
		return nil, nil, err
	}
	if card.Type != domain.CardOrder {
		return nil, nil, fmt.Errorf("card %s is %s: %w", cardID, card.Type, ErrNotAnOrder)
	}
	res, err := domain.ResolveOption(card, optionID, rolled)
	if err != nil {
		return nil, nil, err
	}
	if !res.Eligible {
		return nil, nil, fmt.Errorf("card %s option %d rolled %v: %w", cardID, optionID, rolled, domain.ErrOptionNotEligible)
	}

	next := state.Clone()
	p := &next.Players[idx]
	p.Hand, _ = domain.RemoveCard(p.Hand, cardID)
	p.Money += res.Amount
	next.Trash = append(next.Trash, cardID)
	next.Version++

	return next, []Event{{
		Kind:    EventOrderPlayed,
		Payload: OrderPlayedPayload{UserID: playerID, CardID: cardID, Resolution: res},
	}}, nil
}

// ResolveOption checks a roll against an option of a catalog card without touching any state.
func (s *Service) ResolveOption(cardID string, optionID int, rolled []int) (domain.Resolution, error) {
	card, err := s.cat.Get(cardID)
	if err != nil {
		return domain.Resolution{}, err
	}
	return domain.ResolveOption(card, optionID, rolled)
}

// SetReady flags a player as done with the current phase.
func (s *Service) SetReady(state *domain.GameState, expectedVersion int64, playerID string, ready bool) (*domain.GameState, []Event, error) {
	idx, err := s.actor(state, expectedVersion, playerID, "")
	if err != nil {
		return nil, nil, err
	}

	next := state.Clone()
	next.Players[idx].IsReady = ready
	next.Version++

	all := true
	for _, p := range next.Players {
		all = all && p.IsReady
	}
	return next, []Event{{
		Kind:    EventPlayerReady,
		Payload: PlayerReadyPayload{UserID: playerID, Ready: ready, AllReady: all},
	}}, nil
}

// SpendDealToken consumes one of the player's deal tokens.
func (s *Service) SpendDealToken(state *domain.GameState, expectedVersion int64, playerID string) (*domain.GameState, []Event, error) {
	idx, err := s.actor(state, expectedVersion, playerID, "")
	if err != nil {
		return nil, nil, err
	}
	if state.Phase == domain.PhaseLobby {
		return nil, nil, ErrWrongPhase
	}
	if state.Players[idx].DealTokens <= 0 {
		return nil, nil, ErrNoDealTokens
	}

	next := state.Clone()
	next.Players[idx].DealTokens--
	next.Version++

	return next, []Event{{
		Kind:    EventDealTokenSpent,
		Payload: DealTokenSpentPayload{UserID: playerID, Remaining: next.Players[idx].DealTokens},
	}}, nil
}

// actor validates the common preconditions of a player action and returns the
// player's index. An empty phase accepts any phase.
func (s *Service) actor(state *domain.GameState, expectedVersion int64, playerID string, phase domain.Phase) (int, error) {
	if err := checkVersion(state, expectedVersion); err != nil {
		return -1, err
	}
	idx := state.Player(playerID)
	if idx < 0 {
		return -1, fmt.Errorf("player %s: %w", playerID, ErrNotSeated)
	}
	if phase != "" && state.Phase != phase {
		return -1, fmt.Errorf("phase %s, want %s: %w", state.Phase, phase, ErrWrongPhase)
	}
	return idx, nil
}

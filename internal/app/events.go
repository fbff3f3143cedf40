package app

import "cosanostra/internal/domain"

// EventKind identifies emitted domain events for host dispatch.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventGameStarted    EventKind = "game_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventPhaseAdvanced  EventKind = "phase_advanced"
	EventPayout         EventKind = "payout"
	EventBusinessBought EventKind = "business_bought"
	EventOrderPlayed    EventKind = "order_played"
	EventPlayerReady    EventKind = "player_ready"
	EventDealTokenSpent EventKind = "deal_token_spent"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID      string
	DisplayName string
	Seat        int
}

type GameStartedPayload struct {
	Phase    domain.Phase
	Round    int
	Families map[string]domain.Family
}

type HandDealtPayload struct {
	UserID string
	Hand   []string
}

type PhaseAdvancedPayload struct {
	From  domain.Phase
	To    domain.Phase
	Round int
}

type PayoutPayload struct {
	Round  int
	Income map[string]int
}

type BusinessBoughtPayload struct {
	UserID string
	CardID string
	Cost   int
}

type OrderPlayedPayload struct {
	UserID     string
	CardID     string
	Resolution domain.Resolution
}

type PlayerReadyPayload struct {
	UserID   string
	Ready    bool
	AllReady bool
}

type DealTokenSpentPayload struct {
	UserID    string
	Remaining int
}

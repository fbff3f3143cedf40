package domain

// Phase represents the lifecycle stage of a session.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "LOBBY"
	// PhasePlanning opens every round; players prepare their orders.
	PhasePlanning Phase = "PLANNING"
	// PhaseAction is where orders are played, dice rolled and businesses bought.
	PhaseAction Phase = "ACTION"
	// PhasePayout closes a round; leaving it pays income and starts the next round.
	PhasePayout Phase = "PAYOUT"
)

// PlayerState holds the per-player part of a session.
type PlayerState struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Money       int      `json:"money"`
	Hand        []string `json:"hand"`
	Table       []string `json:"table"`
	IsReady     bool     `json:"isReady"`
	DealTokens  int      `json:"dealTokens"`
	Family      Family   `json:"family,omitempty"`
}

// GameState is the authoritative state blob of one session. It is replaced
// as a whole on every accepted mutation and Version increases by one each time.
type GameState struct {
	Version           int64               `json:"version"`
	HostID            string              `json:"hostId"`
	Round             int                 `json:"round"`
	Phase             Phase               `json:"phase"`
	ActivePlayerIndex int                 `json:"activePlayerIndex"`
	Players           []PlayerState       `json:"players"`
	Market            []string            `json:"market"`
	OrderDecks        map[string][]string `json:"orderDecks"`
	BusinessDeck      []string            `json:"businessDeck"`
	InfluenceDeck     []string            `json:"influenceDeck"`
	Trash             []string            `json:"trash"`
}

// NewLobby returns the pre-game state of a session hosted by host.
func NewLobby(hostID, hostName string) *GameState {
	return &GameState{
		Version: 1,
		HostID:  hostID,
		Phase:   PhaseLobby,
		Players: []PlayerState{{ID: hostID, DisplayName: hostName}},
	}
}

// Player returns the index of the player with the given id, or -1.
func (s *GameState) Player(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// CardIDs returns every card id referenced by the state, in no particular order.
func (s *GameState) CardIDs() []string {
	var ids []string
	for _, p := range s.Players {
		ids = append(ids, p.Hand...)
		ids = append(ids, p.Table...)
	}
	ids = append(ids, s.Market...)
	for _, pile := range s.OrderDecks {
		ids = append(ids, pile...)
	}
	ids = append(ids, s.BusinessDeck...)
	ids = append(ids, s.InfluenceDeck...)
	ids = append(ids, s.Trash...)
	return ids
}

// Clone returns a deep copy so mutations never alias the previous version.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	out.Players = make([]PlayerState, len(s.Players))
	for i, p := range s.Players {
		p.Hand = cloneIDs(p.Hand)
		p.Table = cloneIDs(p.Table)
		out.Players[i] = p
	}
	out.Market = cloneIDs(s.Market)
	if s.OrderDecks != nil {
		out.OrderDecks = make(map[string][]string, len(s.OrderDecks))
		for tag, pile := range s.OrderDecks {
			out.OrderDecks[tag] = cloneIDs(pile)
		}
	}
	out.BusinessDeck = cloneIDs(s.BusinessDeck)
	out.InfluenceDeck = cloneIDs(s.InfluenceDeck)
	out.Trash = cloneIDs(s.Trash)
	return &out
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	return append(make([]string, 0, len(ids)), ids...)
}

package domain

// PlayerView is what one participant is allowed to see: their own hand,
// everyone's table, and only the sizes of hidden piles.
type PlayerView struct {
	Version           int64           `json:"version"`
	HostID            string          `json:"hostId"`
	Round             int             `json:"round"`
	Phase             Phase           `json:"phase"`
	ActivePlayerIndex int             `json:"activePlayerIndex"`
	Players           []PlayerSummary `json:"players"`
	Market            []string        `json:"market"`
	OrderDeckSizes    map[string]int  `json:"orderDeckSizes"`
	BusinessDeckSize  int             `json:"businessDeckSize"`
	InfluenceDeckSize int             `json:"influenceDeckSize"`
	Trash             []string        `json:"trash"`
}

// PlayerSummary is a player as seen by viewers; Hand is only set for the viewer.
type PlayerSummary struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Money       int      `json:"money"`
	Hand        []string `json:"hand,omitempty"`
	HandCount   int      `json:"handCount"`
	Table       []string `json:"table"`
	IsReady     bool     `json:"isReady"`
	DealTokens  int      `json:"dealTokens"`
	Family      Family   `json:"family,omitempty"`
}

// ViewFor builds the view of viewerID. Unknown viewers see no hand at all.
func (s *GameState) ViewFor(viewerID string) PlayerView {
	view := PlayerView{
		Version:           s.Version,
		HostID:            s.HostID,
		Round:             s.Round,
		Phase:             s.Phase,
		ActivePlayerIndex: s.ActivePlayerIndex,
		Players:           make([]PlayerSummary, 0, len(s.Players)),
		Market:            cloneIDs(s.Market),
		OrderDeckSizes:    make(map[string]int, len(s.OrderDecks)),
		BusinessDeckSize:  len(s.BusinessDeck),
		InfluenceDeckSize: len(s.InfluenceDeck),
		Trash:             cloneIDs(s.Trash),
	}
	for tag, pile := range s.OrderDecks {
		view.OrderDeckSizes[tag] = len(pile)
	}
	for _, p := range s.Players {
		summary := PlayerSummary{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Money:       p.Money,
			HandCount:   len(p.Hand),
			Table:       cloneIDs(p.Table),
			IsReady:     p.IsReady,
			DealTokens:  p.DealTokens,
			Family:      p.Family,
		}
		if p.ID == viewerID {
			summary.Hand = cloneIDs(p.Hand)
		}
		view.Players = append(view.Players, summary)
	}
	return view
}

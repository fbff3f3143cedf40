package app

import (
	"cosanostra/internal/config"
	"cosanostra/internal/domain"
)

// Rules are the tunable constants of a session.
type Rules struct {
	StartingMoney      int
	StartingDealTokens int
	HandSize           int
	MarketSize         int
	// StarterInfluenceNames are looked up among each family's default influence cards.
	StarterInfluenceNames []string
	// Kits lists extra catalog ids placed on a family's table at start.
	Kits map[domain.Family][]string
}

// DefaultRules returns the rules of the printed game.
func DefaultRules() Rules {
	return Rules{
		StartingMoney:         2000,
		StartingDealTokens:    5,
		HandSize:              domain.OpeningHandSize,
		MarketSize:            domain.MarketSize,
		StarterInfluenceNames: []string{"Łapówka", "Szantaż", "Przysługa"},
		Kits:                  map[domain.Family][]string{},
	}
}

// RulesFromConfig overlays the non-zero values of cfg on DefaultRules.
func RulesFromConfig(cfg *config.GameConfig) Rules {
	rules := DefaultRules()
	if cfg == nil {
		return rules
	}
	if cfg.StartingMoney > 0 {
		rules.StartingMoney = cfg.StartingMoney
	}
	if cfg.StartingDealTokens > 0 {
		rules.StartingDealTokens = cfg.StartingDealTokens
	}
	if cfg.HandSize > 0 {
		rules.HandSize = cfg.HandSize
	}
	if cfg.MarketSize > 0 && cfg.MarketSize <= domain.MarketSize {
		rules.MarketSize = cfg.MarketSize
	}
	if len(cfg.StarterInfluenceNames) > 0 {
		rules.StarterInfluenceNames = append([]string(nil), cfg.StarterInfluenceNames...)
	}
	for name, ids := range cfg.Kits {
		if f, ok := domain.ParseFamily(name); ok {
			rules.Kits[f] = append([]string(nil), ids...)
		}
	}
	return rules
}

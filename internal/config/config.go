package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cosanostra/internal/domain"
)

// GameConfig holds the tunable rules of a deployment. Zero values fall back
// to the printed rules.
type GameConfig struct {
	StartingMoney         int                 `json:"starting_money"`
	StartingDealTokens    int                 `json:"starting_deal_tokens"`
	HandSize              int                 `json:"hand_size"`
	MarketSize            int                 `json:"market_size"`
	StarterInfluenceNames []string            `json:"starter_influence_names"`
	Kits                  map[string][]string `json:"kits"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		cfg, loadErr = ParseGameConfig(data)
	})
	return loadErr
}

// ParseGameConfig decodes a game configuration document.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.StartingMoney < 0 || c.StartingDealTokens < 0 || c.HandSize < 0 || c.MarketSize < 0 {
		return nil, fmt.Errorf("game config: negative values are not allowed")
	}
	if c.MarketSize > domain.MarketSize {
		return nil, fmt.Errorf("game config: market_size %d exceeds %d", c.MarketSize, domain.MarketSize)
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration, or nil before LoadGameConfig succeeds.
func GetGameConfig() *GameConfig {
	return cfg
}

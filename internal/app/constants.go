package app

import "cosanostra/internal/domain"

// MinPlayersToStartGame and MaxPlayersToStartGame bound the seat list accepted by StartGame.
// The upper bound is the number of families; every seat gets its own.
const (
	MinPlayersToStartGame = domain.MinPlayers
	MaxPlayersToStartGame = domain.MaxPlayers
)

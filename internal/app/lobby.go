package app

import (
	"fmt"

	"cosanostra/internal/domain"
)

// OpenLobby returns a fresh lobby hosted by host.
func (s *Service) OpenLobby(host PlayerInfo) *domain.GameState {
	return domain.NewLobby(host.ID, host.DisplayName)
}

// JoinLobby seats a player in a lobby. Joining twice returns the lobby
// unchanged with no events.
func (s *Service) JoinLobby(lobby *domain.GameState, expectedVersion int64, player PlayerInfo) (*domain.GameState, []Event, error) {
	if err := checkVersion(lobby, expectedVersion); err != nil {
		return nil, nil, err
	}
	if lobby.Phase != domain.PhaseLobby {
		return nil, nil, ErrNotInLobby
	}
	if lobby.Player(player.ID) >= 0 {
		return lobby, nil, nil
	}
	if len(lobby.Players) >= MaxPlayersToStartGame {
		return nil, nil, fmt.Errorf("lobby full: %w", ErrTooManyPlayers)
	}

	next := lobby.Clone()
	next.Players = append(next.Players, domain.PlayerState{ID: player.ID, DisplayName: player.DisplayName})
	next.Version++

	return next, []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			UserID:      player.ID,
			DisplayName: player.DisplayName,
			Seat:        len(next.Players),
		},
	}}, nil
}

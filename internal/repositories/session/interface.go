package session

import (
	"context"

	"github.com/KirkDiggler/coupd/internal/coup"
)

// Repository tracks which game each chat group and each player belongs to
type Repository interface {
	// CreateGame registers a game under its group ID
	CreateGame(ctx context.Context, input *CreateGameInput) error

	// GetGame retrieves the game of a group
	GetGame(ctx context.Context, input *GetGameInput) (*coup.Game, error)

	// GetGameByPlayer retrieves the game a player is registered in
	GetGameByPlayer(ctx context.Context, input *GetGameByPlayerInput) (*coup.Game, error)

	// AddPlayer registers a player in a group's game
	AddPlayer(ctx context.Context, input *AddPlayerInput) error

	// RemovePlayer drops a player's registration
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) error

	// DeleteGame removes a group's game and every player registered in it
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// GetGames lists every registered game
	GetGames(ctx context.Context, input *GetGamesInput) (*GetGamesOutput, error)
}

package session

import "github.com/KirkDiggler/coupd/internal/coup"

type CreateGameInput struct {
	Game *coup.Game
}

type GetGameInput struct {
	GroupID string
}

type GetGameByPlayerInput struct {
	PlayerID string
}

type AddPlayerInput struct {
	PlayerID string
	GroupID  string

	// Game, when set, must be the game registered for the group
	Game *coup.Game
}

type RemovePlayerInput struct {
	PlayerID string

	// GroupID, when set, only removes the player if they are registered there
	GroupID string
}

type DeleteGameInput struct {
	GroupID string

	// Game, when set, must be the game registered for the group
	Game *coup.Game
}

type GetGamesInput struct {
}

type GetGamesOutput struct {
	Games []*coup.Game
}

package game

import "context"

// Service defines the interface for game operations
type Service interface {
	// CreateGame opens a new game in a chat group
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// JoinGame adds a player to a forming game
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// StartGame builds the deck and closes the roster
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// DealCard draws one card for a player
	DealCard(ctx context.Context, input *DealCardInput) (*DealCardOutput, error)

	// HideCard conceals one of a player's cards
	HideCard(ctx context.Context, input *HideCardInput) (*HideCardOutput, error)

	// ShowCard reveals one of a player's hidden cards
	ShowCard(ctx context.Context, input *ShowCardInput) (*ShowCardOutput, error)

	// RemoveCard discards a card, dealing a replacement when the rules call for one
	RemoveCard(ctx context.Context, input *RemoveCardInput) (*RemoveCardOutput, error)

	// ForeignAid deals a player as many extra cards as they hold
	ForeignAid(ctx context.Context, input *ForeignAidInput) (*ForeignAidOutput, error)

	// LeaveGame withdraws a player and returns their hand to the deck
	LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error)

	// GetStatus returns the public view of a group's game
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)

	// GetHand returns the private view of a player's cards
	GetHand(ctx context.Context, input *GetHandInput) (*GetHandOutput, error)

	// EndGame force-concludes a group's game
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// GetLeaderboard returns the standings of a group
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetRecentMatches returns a group's latest finished games, newest first
	GetRecentMatches(ctx context.Context, input *GetRecentMatchesInput) (*GetRecentMatchesOutput, error)

	// GetMatch returns one finished game of a group
	GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error)

	// EndAllGames force-concludes every live game, for shutdown
	EndAllGames(ctx context.Context, input *EndAllGamesInput) (*EndAllGamesOutput, error)
}

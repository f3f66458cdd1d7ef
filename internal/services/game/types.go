package game

import (
	"github.com/KirkDiggler/coupd/internal/common/clock"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/deck"
	"github.com/KirkDiggler/coupd/internal/models"
	historyRepo "github.com/KirkDiggler/coupd/internal/repositories/match_history"
	sessionRepo "github.com/KirkDiggler/coupd/internal/repositories/session"
)

// Config holds configuration for the game service
type Config struct {
	// Directory tracks live games by group and by player
	Directory sessionRepo.Repository

	// MatchHistory stores finished games. Optional; without it the
	// leaderboard is unavailable.
	MatchHistory historyRepo.Repository

	// Service dependencies
	Shuffler      deck.Shuffler
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Conclusion describes a game that just ended
type Conclusion struct {
	// GroupID is the chat group the game was played in
	GroupID string

	// Winner is the last player standing, nil when nobody won
	Winner *models.PlayerStatus

	// Holdings are the cards every remaining player held when the game ended,
	// so adapters can clean up whatever they showed for them
	Holdings []models.Holding

	// Forced indicates the game was ended by command
	Forced bool
}

// CreateGameInput contains parameters for opening a game
type CreateGameInput struct {
	// GroupID is the chat group the game is played in
	GroupID string
}

// CreateGameOutput contains the result of opening a game
type CreateGameOutput struct {
	GroupID string
}

// JoinGameInput contains parameters for joining a game
type JoinGameInput struct {
	GroupID    string
	PlayerID   string
	PlayerName string
}

// JoinGameOutput contains the result of joining a game
type JoinGameOutput struct {
	// PlayerCount is the roster size after joining
	PlayerCount int
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	GroupID string
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	// PlayerIDs is the closed roster in join order
	PlayerIDs []string

	// DeckSize is the number of cards built for the roster
	DeckSize int
}

// DealCardInput contains parameters for dealing a card
type DealCardInput struct {
	PlayerID   string
	ForeignAid bool
}

// DealCardOutput contains the dealt card
type DealCardOutput struct {
	GroupID string
	Card    models.Card
}

// HideCardInput contains parameters for hiding a card
type HideCardInput struct {
	PlayerID string
	CardID   string
}

// HideCardOutput contains the card after it was hidden
type HideCardOutput struct {
	GroupID string
	Card    models.Card
}

// ShowCardInput contains parameters for showing a card
type ShowCardInput struct {
	PlayerID string
	CardID   string
}

// ShowCardOutput contains the card after it was shown
type ShowCardOutput struct {
	GroupID string
	Card    models.Card
}

// RemoveCardInput contains parameters for discarding a card
type RemoveCardInput struct {
	PlayerID string
	CardID   string
}

// RemoveCardOutput contains the result of discarding a card
type RemoveCardOutput struct {
	GroupID    string
	PlayerName string

	// Result is what the engine did with the card and the player
	Result models.RemoveResult

	// Replacement is the card dealt after an open card was discarded outside foreign aid
	Replacement *models.Card

	// Conclusion is set when the discard ended the game
	Conclusion *Conclusion
}

// ForeignAidInput contains parameters for requesting foreign aid
type ForeignAidInput struct {
	PlayerID string
}

// ForeignAidOutput contains the cards dealt through foreign aid
type ForeignAidOutput struct {
	GroupID    string
	PlayerName string
	Cards      []models.Card
}

// LeaveGameInput contains parameters for leaving a game
type LeaveGameInput struct {
	PlayerID string
}

// LeaveGameOutput contains the result of leaving a game
type LeaveGameOutput struct {
	GroupID    string
	PlayerName string

	// Cards are the cards returned to the deck
	Cards []models.Card

	// Conclusion is set when the withdrawal ended the game
	Conclusion *Conclusion
}

// GetStatusInput contains parameters for a status lookup
type GetStatusInput struct {
	GroupID string
}

// GetStatusOutput contains the public view of a game
type GetStatusOutput struct {
	GroupID    string
	State      models.GameState
	Players    []models.PlayerStatus
	DeckSize   int
	TotalCards int
}

// GetHandInput contains parameters for a hand lookup
type GetHandInput struct {
	PlayerID string
}

// GetHandOutput contains a player's cards, open ones first
type GetHandOutput struct {
	GroupID string
	Cards   []models.Card
}

// EndGameInput contains parameters for force-ending a game
type EndGameInput struct {
	GroupID string
}

// EndGameOutput contains the result of force-ending a game
type EndGameOutput struct {
	Conclusion *Conclusion
}

// GetLeaderboardInput contains parameters for the standings lookup
type GetLeaderboardInput struct {
	GroupID string
	Limit   int
}

// GetLeaderboardOutput contains the standings of a group
type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry
}

// GetRecentMatchesInput contains parameters for the match history lookup
type GetRecentMatchesInput struct {
	GroupID string
	Limit   int
}

// GetRecentMatchesOutput contains a group's latest matches, newest first
type GetRecentMatchesOutput struct {
	Matches []*models.MatchResult
}

// GetMatchInput contains parameters for a single match lookup
type GetMatchInput struct {
	// GroupID scopes the lookup; matches of other groups are not found
	GroupID string
	MatchID string
}

// GetMatchOutput contains one finished match
type GetMatchOutput struct {
	Match *models.MatchResult
}

// EndAllGamesInput contains parameters for ending every live game
type EndAllGamesInput struct {
}

// EndAllGamesOutput contains the conclusion of every game that was still live
type EndAllGamesOutput struct {
	Conclusions []*Conclusion
}

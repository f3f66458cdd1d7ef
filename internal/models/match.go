package models

import (
	"time"
)

// MatchResult records how a finished game ended
type MatchResult struct {
	// ID is the unique identifier for the match record
	ID string

	// GroupID is the chat group the game was played in
	GroupID string

	// WinnerID is the ID of the last player standing, empty when nobody won
	WinnerID string

	// WinnerName is the display name of the winner
	WinnerName string

	// Participants are everyone who joined the game
	Participants []Participant

	// StartedAt is when the cards were first dealt
	StartedAt time.Time

	// EndedAt is when the game concluded
	EndedAt time.Time

	// Forced indicates the game was ended by command rather than by elimination
	Forced bool
}

// HasWinner returns true if the match ended with a single player standing
func (m *MatchResult) HasWinner() bool {
	return m.WinnerID != ""
}

package models

// LeaderboardEntry is one player's record within a group
type LeaderboardEntry struct {
	// PlayerID is the chat user ID of the player
	PlayerID string

	// PlayerName is the most recent display name of the player
	PlayerName string

	// Wins is the number of games the player won in the group
	Wins int

	// Played is the number of games the player took part in within the group
	Played int
}

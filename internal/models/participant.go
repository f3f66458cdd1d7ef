package models

// Participant is a player who took part in a game, kept after they leave the roster
type Participant struct {
	// ID is the chat user ID of the player
	ID string

	// Name is the display name the player joined with
	Name string
}

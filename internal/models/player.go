package models

// PlayerStatus is the public view of a player's hand
type PlayerStatus struct {
	// PlayerID is the chat user ID of the player
	PlayerID string

	// Name is the display name of the player
	Name string

	// OpenCount is how many cards the player is showing
	OpenCount int

	// HiddenCount is how many cards the player is concealing
	HiddenCount int

	// ForeignAidPending is how many foreign aid cards still need to be discarded
	ForeignAidPending int
}

// HandSize returns the total number of cards the player holds
func (p PlayerStatus) HandSize() int {
	return p.OpenCount + p.HiddenCount
}

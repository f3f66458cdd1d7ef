package models

// GameState represents where a game is in its lifecycle
type GameState string

const (
	// GameStateForming indicates the roster is open and no cards are dealt
	GameStateForming GameState = "forming"

	// GameStateActive indicates the deck is built and the roster is closed to newcomers
	GameStateActive GameState = "active"

	// GameStateConcluded indicates at most one player remains or the game was ended
	GameStateConcluded GameState = "concluded"
)

// IsForming returns true if players may still join
func (s GameState) IsForming() bool {
	return s == GameStateForming
}

// IsActive returns true if the game is being played
func (s GameState) IsActive() bool {
	return s == GameStateActive
}

// IsConcluded returns true if the game is over
func (s GameState) IsConcluded() bool {
	return s == GameStateConcluded
}

// Holding is what one player still held when a game was torn down
type Holding struct {
	PlayerID string
	Name     string
	Cards    []Card
}

// RemoveResult describes the effect of removing one card from a hand
type RemoveResult struct {
	// Card is the removed card as it was returned to the deck
	Card Card

	// WasHidden is true if the card came out of the concealed collection
	WasHidden bool

	// ForeignAid is true if the removal counted against a pending foreign aid
	ForeignAid bool

	// ForeignAidResolved is true if this removal settled the player's foreign aid
	ForeignAidResolved bool

	// Evicted is true if the player's hand emptied and they left the roster
	Evicted bool

	// Concluded is true if the removal ended the game
	Concluded bool

	// Replacement is the card dealt in place of a proved influence, nil otherwise
	Replacement *Card
}

// WithdrawResult describes a player quitting a game
type WithdrawResult struct {
	// Cards are the cards the player held, now back in the deck
	Cards []Card

	// Concluded is true if the withdrawal ended the game
	Concluded bool
}

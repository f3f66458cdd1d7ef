package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound       GameError = "game not found"
	ErrGameAlreadyExists  GameError = "game already exists for this group"
	ErrPlayerNotFound     GameError = "player is not in a game"
	ErrHistoryUnavailable GameError = "match history is not configured"
	ErrMatchNotFound      GameError = "match not found"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilDirectory       GameError = "session directory cannot be nil"
	ErrNilShuffler        GameError = "shuffler cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrNilUUIDGenerator   GameError = "UUID generator cannot be nil"
	ErrEmptyGroupID       GameError = "group ID cannot be empty"
	ErrEmptyPlayerID      GameError = "player ID cannot be empty"
)

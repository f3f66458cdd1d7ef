package models

// CoupError is a rules-engine failure the caller can recover from
type CoupError string

// Error implements the error interface
func (e CoupError) Error() string {
	return string(e)
}

// Engine errors. Operations wrap these with the offending player, card or count,
// so compare with errors.Is.
const (
	ErrUnsupportedPlayerCount CoupError = "unsupported player count"
	ErrGameAlreadyStarted     CoupError = "game already started"
	ErrGameNotStarted         CoupError = "game not started"
	ErrGameConcluded          CoupError = "game already concluded"
	ErrPlayerNotInGame        CoupError = "player not in game"
	ErrPlayerAlreadyInGame    CoupError = "player already in game"
	ErrCardNotFound           CoupError = "card not found"
	ErrForeignAidInProgress   CoupError = "foreign aid still in progress"
	ErrEmptyDeck              CoupError = "deck is empty"
)

package messaging

import "github.com/KirkDiggler/coupd/internal/models"

// Key identifies a message in the catalog
type Key string

const (
	KeyGameCreated         Key = "game.created"
	KeyGameJoined          Key = "game.joined"
	KeyGameStarted         Key = "game.started"
	KeyGameOver            Key = "game.over"
	KeyGameWinner          Key = "game.winner"
	KeyGameNoWinner        Key = "game.no_winner"
	KeyYouWon              Key = "game.you_won"
	KeyCardRemoved         Key = "card.removed"
	KeyCardReplaced        Key = "card.replaced"
	KeyCardHidden          Key = "card.hidden"
	KeyPlayerEliminated    Key = "player.eliminated"
	KeyPlayerLeft          Key = "player.left"
	KeyForeignAidRequested Key = "foreign_aid.requested"
	KeyForeignAidFinished  Key = "foreign_aid.finished"
	KeyStatusHeader        Key = "status.header"
	KeyStatusPlayer        Key = "status.player"
	KeyStatusDeck          Key = "status.deck"
	KeyStatusForming       Key = "status.forming"
	KeyLeaderboardHeader   Key = "leaderboard.header"
	KeyLeaderboardEntry    Key = "leaderboard.entry"
	KeyLeaderboardEmpty    Key = "leaderboard.empty"
	KeyHistoryHeader       Key = "history.header"
	KeyHistoryEntry        Key = "history.entry"
	KeyHistoryEntryNoWin   Key = "history.entry_no_winner"
	KeyMatchHeader         Key = "match.header"
	KeyMatchPlayers        Key = "match.players"
	KeyMatchPeriod         Key = "match.period"
	KeyMatchForced         Key = "match.forced"
	KeyButtonHide          Key = "button.hide"
	KeyButtonShow          Key = "button.show"
	KeyButtonRemove        Key = "button.remove"
	KeyRules               Key = "rules"
	KeyHelp                Key = "help"
	KeyHelpConsole         Key = "help.console"
	KeyColumnPlayer        Key = "column.player"
	KeyColumnOpen          Key = "column.open"
	KeyColumnHidden        Key = "column.hidden"
	KeyColumnForeignAid    Key = "column.foreign_aid"
	KeyColumnInfluence     Key = "column.influence"

	KeyErrUnsupportedPlayerCount Key = "error.unsupported_player_count"
	KeyErrGameAlreadyStarted     Key = "error.game_already_started"
	KeyErrGameNotStarted         Key = "error.game_not_started"
	KeyErrGameConcluded          Key = "error.game_concluded"
	KeyErrPlayerNotInGame        Key = "error.player_not_in_game"
	KeyErrPlayerAlreadyInGame    Key = "error.player_already_in_game"
	KeyErrCardNotFound           Key = "error.card_not_found"
	KeyErrForeignAidInProgress   Key = "error.foreign_aid_in_progress"
	KeyErrEmptyDeck              Key = "error.empty_deck"
	KeyErrGameNotFound           Key = "error.game_not_found"
	KeyErrGameAlreadyExists      Key = "error.game_already_exists"
	KeyErrHistoryUnavailable     Key = "error.history_unavailable"
	KeyErrMatchNotFound          Key = "error.match_not_found"
	KeyErrGroupOnly              Key = "error.group_only"
	KeyErrUnknown                Key = "error.unknown"
)

// Config holds configuration for the messaging service
type Config struct {
	// DefaultLocale is used when a request carries no locale or an unsupported one
	DefaultLocale string
}

// RenderInput contains parameters for rendering a message
type RenderInput struct {
	// Locale is the BCP 47 tag of the reader, e.g. "pt-BR"
	Locale string
	Key    Key
	Args   []any
}

// RenderOutput contains the rendered message
type RenderOutput struct {
	Text string
}

// ErrorMessageInput contains parameters for explaining an error
type ErrorMessageInput struct {
	Locale string
	Err    error
}

// ErrorMessageOutput contains the explanation and the key it came from
type ErrorMessageOutput struct {
	Key  Key
	Text string
}

// InfluenceNameInput contains parameters for naming an influence
type InfluenceNameInput struct {
	Locale    string
	Influence models.Influence
}

// InfluenceNameOutput contains the localized influence name
type InfluenceNameOutput struct {
	Name string
}

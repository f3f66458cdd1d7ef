// Package console runs a hot-seat game in the terminal: every player shares one
// keyboard and addresses their cards by position in their hand.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/pterm/pterm"
)

// DefaultGroupID is the group the console plays in when none is configured
const DefaultGroupID = "tabletop"

const (
	openingHandSize = 2
	historySize     = 10
	timeLayout      = "2006-01-02 15:04"
)

var (
	// ErrUsage is returned for a command with missing or malformed arguments
	ErrUsage = errors.New("usage")

	// ErrUnknownCommand is returned for a command the tabletop does not know
	ErrUnknownCommand = errors.New("unknown command")
)

// Config holds configuration for the tabletop
type Config struct {
	GameService      game.Service
	MessagingService messaging.Service

	// GroupID names the game; defaults to DefaultGroupID
	GroupID string

	// Locale is the language of every message
	Locale string

	// Out receives everything the tabletop prints
	Out io.Writer
}

// Tabletop dispatches typed commands to the game service
type Tabletop struct {
	gameService      game.Service
	messagingService messaging.Service
	groupID          string
	locale           string

	info    *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	fail    *pterm.PrefixPrinter
	table   *pterm.TablePrinter
}

// New creates a tabletop
func New(cfg *Config) (*Tabletop, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	groupID := cfg.GroupID
	if groupID == "" {
		groupID = DefaultGroupID
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	return &Tabletop{
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		groupID:          groupID,
		locale:           cfg.Locale,
		info:             pterm.Info.WithWriter(out),
		success:          pterm.Success.WithWriter(out),
		warning:          pterm.Warning.WithWriter(out),
		fail:             pterm.Error.WithWriter(out),
		table:            pterm.DefaultTable.WithHasHeader().WithWriter(out),
	}, nil
}

// Run reads commands line by line until quit or the end of input
func (t *Tabletop) Run(ctx context.Context, in io.Reader) error {
	t.info.Println(t.text(messaging.KeyHelpConsole))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := t.Execute(ctx, scanner.Text())
		if err != nil {
			t.fail.Println(t.explain(err))
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line and reports whether the tabletop should stop
func (t *Tabletop) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]
	switch command {
	case "quit", "exit":
		return true, nil
	case "help":
		t.info.Println(t.text(messaging.KeyHelpConsole))
		return false, nil
	case "rules":
		t.info.Println(t.text(messaging.KeyRules))
		return false, nil
	case "join":
		return false, t.join(ctx, args)
	case "start":
		return false, t.start(ctx)
	case "hand":
		return false, t.hand(ctx, args)
	case "hide", "show", "remove":
		return false, t.cardAction(ctx, command, args)
	case "aid":
		return false, t.aid(ctx, args)
	case "leave":
		return false, t.leave(ctx, args)
	case "status":
		return false, t.status(ctx)
	case "end":
		return false, t.end(ctx)
	case "leaderboard":
		return false, t.leaderboard(ctx)
	case "history":
		return false, t.history(ctx)
	case "match":
		return false, t.match(ctx, args)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// join seats a player, opening a game first when the table is empty
func (t *Tabletop) join(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: join <id> <name>", ErrUsage)
	}
	playerID, name := args[0], strings.Join(args[1:], " ")

	input := &game.JoinGameInput{
		GroupID:    t.groupID,
		PlayerID:   playerID,
		PlayerName: name,
	}

	output, err := t.gameService.JoinGame(ctx, input)
	if errors.Is(err, game.ErrGameNotFound) {
		if _, err = t.gameService.CreateGame(ctx, &game.CreateGameInput{GroupID: t.groupID}); err != nil {
			return err
		}
		output, err = t.gameService.JoinGame(ctx, input)
	}
	if err != nil {
		return err
	}

	t.success.Println(t.text(messaging.KeyGameJoined, name, output.PlayerCount))
	return nil
}

func (t *Tabletop) start(ctx context.Context) error {
	output, err := t.gameService.StartGame(ctx, &game.StartGameInput{
		GroupID: t.groupID,
	})
	if err != nil {
		return err
	}

	for _, playerID := range output.PlayerIDs {
		for n := 0; n < openingHandSize; n++ {
			if _, err := t.gameService.DealCard(ctx, &game.DealCardInput{PlayerID: playerID}); err != nil {
				return err
			}
		}
	}

	t.success.Println(t.text(messaging.KeyGameStarted))
	return nil
}

// hand prints a player's cards numbered the way hide, show and remove address them
func (t *Tabletop) hand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: hand <id>", ErrUsage)
	}

	output, err := t.gameService.GetHand(ctx, &game.GetHandInput{
		PlayerID: args[0],
	})
	if err != nil {
		return err
	}

	data := pterm.TableData{{"#", t.text(messaging.KeyColumnInfluence), t.text(messaging.KeyColumnHidden)}}
	for n, card := range output.Cards {
		hidden := ""
		if card.Hidden {
			hidden = t.text(messaging.KeyCardHidden)
		}
		data = append(data, []string{strconv.Itoa(n + 1), t.influenceName(card.Influence), hidden})
	}

	return t.table.WithData(data).Render()
}

func (t *Tabletop) cardAction(ctx context.Context, action string, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: %s <id> <n>", ErrUsage, action)
	}
	playerID := args[0]

	cardID, err := t.cardAt(ctx, playerID, args[1])
	if err != nil {
		return err
	}

	switch action {
	case "hide":
		if _, err := t.gameService.HideCard(ctx, &game.HideCardInput{PlayerID: playerID, CardID: cardID}); err != nil {
			return err
		}
		return t.hand(ctx, []string{playerID})
	case "show":
		if _, err := t.gameService.ShowCard(ctx, &game.ShowCardInput{PlayerID: playerID, CardID: cardID}); err != nil {
			return err
		}
		return t.hand(ctx, []string{playerID})
	}

	output, err := t.gameService.RemoveCard(ctx, &game.RemoveCardInput{
		PlayerID: playerID,
		CardID:   cardID,
	})
	if err != nil {
		return err
	}

	t.info.Println(t.text(messaging.KeyCardRemoved, output.PlayerName))
	if output.Replacement != nil {
		t.info.Println(t.text(messaging.KeyCardReplaced, output.PlayerName))
	}
	if output.Result.ForeignAidResolved {
		t.info.Println(t.text(messaging.KeyForeignAidFinished, output.PlayerName))
	}
	if output.Result.Evicted {
		t.warning.Println(t.text(messaging.KeyPlayerEliminated, output.PlayerName))
	}

	t.conclude(output.Conclusion)
	return nil
}

// cardAt resolves a 1-based hand position to a card ID
func (t *Tabletop) cardAt(ctx context.Context, playerID, position string) (string, error) {
	n, err := strconv.Atoi(position)
	if err != nil || n < 1 {
		return "", fmt.Errorf("%w: card position must be a number from 1", ErrUsage)
	}

	output, err := t.gameService.GetHand(ctx, &game.GetHandInput{
		PlayerID: playerID,
	})
	if err != nil {
		return "", err
	}

	if n > len(output.Cards) {
		return "", models.ErrCardNotFound
	}
	return output.Cards[n-1].ID, nil
}

func (t *Tabletop) aid(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: aid <id>", ErrUsage)
	}

	output, err := t.gameService.ForeignAid(ctx, &game.ForeignAidInput{
		PlayerID: args[0],
	})
	if err != nil {
		return err
	}

	t.info.Println(t.text(messaging.KeyForeignAidRequested, output.PlayerName, len(output.Cards)))
	return nil
}

func (t *Tabletop) leave(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: leave <id>", ErrUsage)
	}

	output, err := t.gameService.LeaveGame(ctx, &game.LeaveGameInput{
		PlayerID: args[0],
	})
	if err != nil {
		return err
	}

	t.warning.Println(t.text(messaging.KeyPlayerLeft, output.PlayerName))
	t.conclude(output.Conclusion)
	return nil
}

func (t *Tabletop) status(ctx context.Context) error {
	output, err := t.gameService.GetStatus(ctx, &game.GetStatusInput{
		GroupID: t.groupID,
	})
	if err != nil {
		return err
	}

	data := pterm.TableData{{
		t.text(messaging.KeyColumnPlayer),
		t.text(messaging.KeyColumnOpen),
		t.text(messaging.KeyColumnHidden),
		t.text(messaging.KeyColumnForeignAid),
	}}
	for _, player := range output.Players {
		data = append(data, []string{
			player.Name,
			strconv.Itoa(player.OpenCount),
			strconv.Itoa(player.HiddenCount),
			strconv.Itoa(player.ForeignAidPending),
		})
	}

	if err := t.table.WithData(data).Render(); err != nil {
		return err
	}

	if output.State.IsForming() {
		t.info.Println(t.text(messaging.KeyStatusForming))
	} else {
		t.info.Println(t.text(messaging.KeyStatusDeck, output.DeckSize, output.TotalCards))
	}
	return nil
}

func (t *Tabletop) end(ctx context.Context) error {
	output, err := t.gameService.EndGame(ctx, &game.EndGameInput{
		GroupID: t.groupID,
	})
	if err != nil {
		return err
	}

	t.conclude(output.Conclusion)
	return nil
}

func (t *Tabletop) leaderboard(ctx context.Context) error {
	output, err := t.gameService.GetLeaderboard(ctx, &game.GetLeaderboardInput{
		GroupID: t.groupID,
	})
	if err != nil {
		return err
	}

	if len(output.Entries) == 0 {
		t.info.Println(t.text(messaging.KeyLeaderboardEmpty))
		return nil
	}

	for n, entry := range output.Entries {
		t.info.Println(t.text(messaging.KeyLeaderboardEntry, n+1, entry.PlayerName, entry.Wins, entry.Played))
	}
	return nil
}

func (t *Tabletop) history(ctx context.Context) error {
	output, err := t.gameService.GetRecentMatches(ctx, &game.GetRecentMatchesInput{
		GroupID: t.groupID,
		Limit:   historySize,
	})
	if err != nil {
		return err
	}

	if len(output.Matches) == 0 {
		t.info.Println(t.text(messaging.KeyLeaderboardEmpty))
		return nil
	}

	t.info.Println(t.text(messaging.KeyHistoryHeader))
	for _, match := range output.Matches {
		ended := match.EndedAt.Format(timeLayout)
		if match.HasWinner() {
			t.info.Println(t.text(messaging.KeyHistoryEntry, match.ID, ended, match.WinnerName))
		} else {
			t.info.Println(t.text(messaging.KeyHistoryEntryNoWin, match.ID, ended))
		}
	}
	return nil
}

func (t *Tabletop) match(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: match <id>", ErrUsage)
	}

	output, err := t.gameService.GetMatch(ctx, &game.GetMatchInput{
		GroupID: t.groupID,
		MatchID: args[0],
	})
	if err != nil {
		return err
	}
	match := output.Match

	names := make([]string, 0, len(match.Participants))
	for _, participant := range match.Participants {
		names = append(names, participant.Name)
	}

	t.info.Println(t.text(messaging.KeyMatchHeader, match.ID))
	t.info.Println(t.text(messaging.KeyMatchPlayers, strings.Join(names, ", ")))
	t.info.Println(t.text(messaging.KeyMatchPeriod, match.StartedAt.Format(timeLayout), match.EndedAt.Format(timeLayout)))
	if match.HasWinner() {
		t.info.Println(t.text(messaging.KeyGameWinner, match.WinnerName))
	} else {
		t.info.Println(t.text(messaging.KeyGameNoWinner))
	}
	if match.Forced {
		t.info.Println(t.text(messaging.KeyMatchForced))
	}
	return nil
}

func (t *Tabletop) conclude(conclusion *game.Conclusion) {
	if conclusion == nil {
		return
	}

	t.success.Println(t.text(messaging.KeyGameOver))
	if conclusion.Winner != nil {
		t.success.Println(t.text(messaging.KeyGameWinner, conclusion.Winner.Name))
	} else {
		t.success.Println(t.text(messaging.KeyGameNoWinner))
	}
}

func (t *Tabletop) text(key messaging.Key, args ...any) string {
	output, err := t.messagingService.Render(context.Background(), &messaging.RenderInput{
		Locale: t.locale,
		Key:    key,
		Args:   args,
	})
	if err != nil {
		return string(key)
	}
	return output.Text
}

func (t *Tabletop) influenceName(influence models.Influence) string {
	output, err := t.messagingService.InfluenceName(context.Background(), &messaging.InfluenceNameInput{
		Locale:    t.locale,
		Influence: influence,
	})
	if err != nil {
		return string(influence)
	}
	return output.Name
}

// explain turns an error into something a player can act on
func (t *Tabletop) explain(err error) string {
	if errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownCommand) {
		return err.Error()
	}

	output, renderErr := t.messagingService.ErrorMessage(context.Background(), &messaging.ErrorMessageInput{
		Locale: t.locale,
		Err:    err,
	})
	if renderErr != nil {
		return err.Error()
	}
	return output.Text
}

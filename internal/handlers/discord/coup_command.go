package discord

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	// leaderboardSize is how many players the leaderboard shows
	leaderboardSize = 10

	// historySize is how many finished games the history shows
	historySize = 10

	timeLayout = "2006-01-02 15:04"
)

// errGroupOnly is returned for commands that need a server channel
var errGroupOnly = errors.New("command requires a server channel")

// CoupCommand handles the /coup command
type CoupCommand struct {
	BaseCommand
	*table
}

// NewCoupCommand creates a new coup command handler
func NewCoupCommand(t *table) *CoupCommand {
	return &CoupCommand{
		BaseCommand: BaseCommand{
			Name:        "coup",
			Description: "Coup card game commands",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("new", "Open a new game in this channel"),
				subcommand("join", "Take a seat in this channel's game"),
				subcommand("start", "Deal the cards and start the game"),
				subcommand("status", "Show how many cards every player holds"),
				subcommand("aid", "Draw foreign aid cards"),
				subcommand("leave", "Quit the game you're in"),
				subcommand("end", "End this channel's game for everyone"),
				subcommand("leaderboard", "Show this channel's standings"),
				subcommand("history", "List this channel's latest games"),
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "match",
					Description: "Show one finished game",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Game ID from /coup history",
							Required:    true,
						},
					},
				},
				subcommand("rules", "List the influences and their actions"),
				subcommand("help", "List the commands"),
			},
		},
		table: t,
	}
}

func subcommand(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
	}
}

// Handle processes a Discord interaction for the coup command
func (c *CoupCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	userID, username := interactionUser(i)

	switch data.Options[0].Name {
	case "new":
		return c.handleNew(ctx, s, i)
	case "join":
		return c.handleJoin(ctx, s, i, userID, username)
	case "start":
		return c.handleStart(ctx, s, i)
	case "status":
		return c.handleStatus(ctx, s, i)
	case "aid":
		return c.handleAid(ctx, s, i, userID)
	case "leave":
		return c.handleLeave(ctx, s, i, userID)
	case "end":
		return c.handleEnd(ctx, s, i)
	case "leaderboard":
		return c.handleLeaderboard(ctx, s, i)
	case "history":
		return c.handleHistory(ctx, s, i)
	case "match":
		matchID := ""
		if opts := data.Options[0].Options; len(opts) > 0 {
			matchID = opts[0].StringValue()
		}
		return c.handleMatch(ctx, s, i, matchID)
	case "rules":
		return RespondWithEphemeralMessage(s, i, c.text(locale(i), messaging.KeyRules))
	case "help":
		return RespondWithEphemeralMessage(s, i, c.text(locale(i), messaging.KeyHelp))
	default:
		return errors.New("unknown subcommand")
	}
}

// respondError explains a failed action to the player who asked for it
func (c *CoupCommand) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	if errors.Is(err, errGroupOnly) {
		return RespondWithError(s, i, c.text(locale(i), messaging.KeyErrGroupOnly))
	}
	return RespondWithError(s, i, c.errorText(locale(i), err))
}

func (c *CoupCommand) handleNew(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.GuildID == "" {
		return c.respondError(s, i, errGroupOnly)
	}

	_, err := c.gameService.CreateGame(ctx, &game.CreateGameInput{
		GroupID: i.ChannelID,
	})
	if err != nil {
		log.Printf("Error creating game: %v", err)
		return c.respondError(s, i, err)
	}

	return RespondWithMessage(s, i, c.text(c.locale, messaging.KeyGameCreated))
}

func (c *CoupCommand) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, username string) error {
	if i.GuildID == "" {
		return c.respondError(s, i, errGroupOnly)
	}

	output, err := c.gameService.JoinGame(ctx, &game.JoinGameInput{
		GroupID:    i.ChannelID,
		PlayerID:   userID,
		PlayerName: username,
	})
	if err != nil {
		log.Printf("Error joining game: %v", err)
		return c.respondError(s, i, err)
	}

	return RespondWithMessage(s, i, c.text(c.locale, messaging.KeyGameJoined, username, output.PlayerCount))
}

func (c *CoupCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.GuildID == "" {
		return c.respondError(s, i, errGroupOnly)
	}

	output, err := c.gameService.StartGame(ctx, &game.StartGameInput{
		GroupID: i.ChannelID,
	})
	if err != nil {
		log.Printf("Error starting game: %v", err)
		return c.respondError(s, i, err)
	}

	// Respond before dealing; the interaction expires long before every DM is out
	if err := RespondWithMessage(s, i, c.text(c.locale, messaging.KeyGameStarted)); err != nil {
		log.Printf("Error responding to start: %v", err)
	}

	c.dealOpeningHands(ctx, s, output.PlayerIDs)
	return nil
}

func (c *CoupCommand) handleStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.gameService.GetStatus(ctx, &game.GetStatusInput{
		GroupID: i.ChannelID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	lines := make([]string, 0, len(output.Players))
	for _, player := range output.Players {
		lines = append(lines, c.text(c.locale, messaging.KeyStatusPlayer,
			player.Name, player.OpenCount, player.HiddenCount, player.ForeignAidPending))
	}

	footer := c.text(c.locale, messaging.KeyStatusDeck, output.DeckSize, output.TotalCards)
	if output.State.IsForming() {
		footer = c.text(c.locale, messaging.KeyStatusForming)
	}

	embed := renderListEmbed(c.text(c.locale, messaging.KeyStatusHeader), lines, footer, colorInfo)
	return RespondWithEmbed(s, i, embed)
}

func (c *CoupCommand) handleAid(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	output, err := c.gameService.ForeignAid(ctx, &game.ForeignAidInput{
		PlayerID: userID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	if err := RespondWithMessage(s, i, c.text(c.locale, messaging.KeyForeignAidRequested, output.PlayerName, len(output.Cards))); err != nil {
		log.Printf("Error responding to foreign aid: %v", err)
	}

	for _, card := range output.Cards {
		if err := c.sendCard(s, userID, card); err != nil {
			log.Printf("Error sending foreign aid card to %s: %v", userID, err)
		}
	}
	return nil
}

func (c *CoupCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	output, err := c.gameService.LeaveGame(ctx, &game.LeaveGameInput{
		PlayerID: userID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	for _, card := range output.Cards {
		c.deleteCard(s, card.ID)
	}

	if err := RespondWithMessage(s, i, c.text(c.locale, messaging.KeyPlayerLeft, output.PlayerName)); err != nil {
		log.Printf("Error responding to leave: %v", err)
	}

	c.finish(s, output.Conclusion)
	return nil
}

func (c *CoupCommand) handleEnd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.gameService.EndGame(ctx, &game.EndGameInput{
		GroupID: i.ChannelID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	// The result goes out as a channel message from finish
	if err := RespondWithEphemeralMessage(s, i, c.text(locale(i), messaging.KeyGameOver)); err != nil {
		log.Printf("Error responding to end: %v", err)
	}

	c.finish(s, output.Conclusion)
	return nil
}

func (c *CoupCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.gameService.GetLeaderboard(ctx, &game.GetLeaderboardInput{
		GroupID: i.ChannelID,
		Limit:   leaderboardSize,
	})
	if err != nil {
		log.Printf("Error getting leaderboard: %v", err)
		return c.respondError(s, i, err)
	}

	title := c.text(c.locale, messaging.KeyLeaderboardHeader)
	if len(output.Entries) == 0 {
		return RespondWithEmbed(s, i, renderListEmbed(title, []string{c.text(c.locale, messaging.KeyLeaderboardEmpty)}, "", colorGold))
	}

	lines := make([]string, 0, len(output.Entries))
	for n, entry := range output.Entries {
		lines = append(lines, c.text(c.locale, messaging.KeyLeaderboardEntry, n+1, entry.PlayerName, entry.Wins, entry.Played))
	}

	return RespondWithEmbed(s, i, renderListEmbed(title, lines, "", colorGold))
}

func (c *CoupCommand) handleHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.gameService.GetRecentMatches(ctx, &game.GetRecentMatchesInput{
		GroupID: i.ChannelID,
		Limit:   historySize,
	})
	if err != nil {
		log.Printf("Error getting match history: %v", err)
		return c.respondError(s, i, err)
	}

	title := c.text(c.locale, messaging.KeyHistoryHeader)
	if len(output.Matches) == 0 {
		return RespondWithEmbed(s, i, renderListEmbed(title, []string{c.text(c.locale, messaging.KeyLeaderboardEmpty)}, "", colorInfo))
	}

	lines := make([]string, 0, len(output.Matches))
	for _, match := range output.Matches {
		ended := match.EndedAt.Format(timeLayout)
		if match.HasWinner() {
			lines = append(lines, c.text(c.locale, messaging.KeyHistoryEntry, match.ID, ended, match.WinnerName))
		} else {
			lines = append(lines, c.text(c.locale, messaging.KeyHistoryEntryNoWin, match.ID, ended))
		}
	}

	return RespondWithEmbed(s, i, renderListEmbed(title, lines, "", colorInfo))
}

func (c *CoupCommand) handleMatch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, matchID string) error {
	output, err := c.gameService.GetMatch(ctx, &game.GetMatchInput{
		GroupID: i.ChannelID,
		MatchID: matchID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}
	match := output.Match

	names := make([]string, 0, len(match.Participants))
	for _, participant := range match.Participants {
		names = append(names, participant.Name)
	}

	lines := []string{
		c.text(c.locale, messaging.KeyMatchPlayers, strings.Join(names, ", ")),
		c.text(c.locale, messaging.KeyMatchPeriod, match.StartedAt.Format(timeLayout), match.EndedAt.Format(timeLayout)),
	}
	if match.HasWinner() {
		lines = append(lines, c.text(c.locale, messaging.KeyGameWinner, match.WinnerName))
	} else {
		lines = append(lines, c.text(c.locale, messaging.KeyGameNoWinner))
	}
	if match.Forced {
		lines = append(lines, c.text(c.locale, messaging.KeyMatchForced))
	}

	embed := renderListEmbed(c.text(c.locale, messaging.KeyMatchHeader, match.ID), lines, "", colorGold)
	return RespondWithEmbed(s, i, embed)
}

// locale is the language of whoever triggered the interaction
func locale(i *discordgo.InteractionCreate) string {
	return string(i.Locale)
}

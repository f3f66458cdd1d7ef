package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	table      *table
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// DefaultLocale is the language of group announcements and card messages
	DefaultLocale string

	// Services
	GameService      game.Service
	MessagingService messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Card messages are sent by direct message
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		table: &table{
			gameService:      cfg.GameService,
			messagingService: cfg.MessagingService,
			cards:            NewCardMessages(),
			locale:           cfg.DefaultLocale,
		},
		config: cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewCoupCommand(b.table)); err != nil {
		return fmt.Errorf("failed to register coup command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop ends every live game, cleaning up its card messages and telling its
// channel, then shuts down the Discord connection
func (b *Bot) Stop() error {
	output, err := b.table.gameService.EndAllGames(context.Background(), &game.EndAllGamesInput{})
	if err != nil {
		log.Printf("Error ending games on shutdown: %v", err)
	} else {
		for _, conclusion := range output.Conclusions {
			b.table.finish(b.session, conclusion)
		}
	}

	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	if b.config.GuildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), b.config.GuildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// appID falls back to the session user when no application ID was configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles the buttons under a card message
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	action, cardID, ok := parseCardCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return fmt.Errorf("unknown component %s", i.MessageComponentData().CustomID)
	}

	ctx := context.Background()
	userID, _ := interactionUser(i)

	switch action {
	case ActionHide:
		return b.handleHide(ctx, s, i, userID, cardID)
	case ActionShow:
		return b.handleShow(ctx, s, i, userID, cardID)
	case ActionRemove:
		return b.handleRemove(ctx, s, i, userID, cardID)
	default:
		return fmt.Errorf("unknown card action %s", action)
	}
}

func (b *Bot) handleHide(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, cardID string) error {
	output, err := b.table.gameService.HideCard(ctx, &game.HideCardInput{
		PlayerID: userID,
		CardID:   cardID,
	})
	if err != nil {
		return RespondWithError(s, i, b.table.errorText(locale(i), err))
	}

	return s.InteractionRespond(i.Interaction,
		renderCardUpdate(b.table.cardText(output.Card), b.table.labels(), cardID, true))
}

func (b *Bot) handleShow(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, cardID string) error {
	output, err := b.table.gameService.ShowCard(ctx, &game.ShowCardInput{
		PlayerID: userID,
		CardID:   cardID,
	})
	if err != nil {
		return RespondWithError(s, i, b.table.errorText(locale(i), err))
	}

	return s.InteractionRespond(i.Interaction,
		renderCardUpdate(b.table.cardText(output.Card), b.table.labels(), cardID, false))
}

func (b *Bot) handleRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, cardID string) error {
	t := b.table

	output, err := t.gameService.RemoveCard(ctx, &game.RemoveCardInput{
		PlayerID: userID,
		CardID:   cardID,
	})
	if err != nil {
		return RespondWithError(s, i, t.errorText(locale(i), err))
	}

	if err := AcknowledgeUpdate(s, i); err != nil {
		log.Printf("Error acknowledging remove: %v", err)
	}

	if _, tracked := t.cards.Get(cardID); tracked {
		t.deleteCard(s, cardID)
	} else if i.Message != nil {
		if err := s.ChannelMessageDelete(i.ChannelID, i.Message.ID); err != nil {
			log.Printf("Error deleting card message %s: %v", i.Message.ID, err)
		}
	}

	lines := []string{t.text(t.locale, messaging.KeyCardRemoved, output.PlayerName)}

	if output.Replacement != nil {
		if err := t.sendCard(s, userID, *output.Replacement); err != nil {
			log.Printf("Error sending replacement card to %s: %v", userID, err)
		}
		lines = append(lines, t.text(t.locale, messaging.KeyCardReplaced, output.PlayerName))
	}

	if output.Result.ForeignAidResolved {
		lines = append(lines, t.text(t.locale, messaging.KeyForeignAidFinished, output.PlayerName))
	}

	if output.Result.Evicted {
		lines = append(lines, t.text(t.locale, messaging.KeyPlayerEliminated, output.PlayerName))
	}

	t.announce(s, output.GroupID, lines...)
	t.finish(s, output.Conclusion)
	return nil
}

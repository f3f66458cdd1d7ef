package discord

import (
	"context"
	"log"
	"strings"

	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// openingHandSize is how many cards each player is dealt when a game starts
const openingHandSize = 2

// table delivers game events to Discord: cards go to players by direct message
// and announcements go to the group channel
type table struct {
	gameService      game.Service
	messagingService messaging.Service
	cards            *CardMessages

	// locale is used for group announcements and card messages
	locale string
}

func (t *table) text(locale string, key messaging.Key, args ...any) string {
	if locale == "" {
		locale = t.locale
	}

	out, err := t.messagingService.Render(context.Background(), &messaging.RenderInput{
		Locale: locale,
		Key:    key,
		Args:   args,
	})
	if err != nil {
		log.Printf("Error rendering message %s: %v", key, err)
		return string(key)
	}
	return out.Text
}

func (t *table) errorText(locale string, err error) string {
	out, renderErr := t.messagingService.ErrorMessage(context.Background(), &messaging.ErrorMessageInput{
		Locale: locale,
		Err:    err,
	})
	if renderErr != nil {
		log.Printf("Error rendering error message for %v: %v", err, renderErr)
		return err.Error()
	}
	return out.Text
}

func (t *table) labels() buttonLabels {
	return buttonLabels{
		Hide:   t.text(t.locale, messaging.KeyButtonHide),
		Show:   t.text(t.locale, messaging.KeyButtonShow),
		Remove: t.text(t.locale, messaging.KeyButtonRemove),
	}
}

// cardText is what a card message shows: the influence, or a placeholder while hidden
func (t *table) cardText(card models.Card) string {
	if card.Hidden {
		return t.text(t.locale, messaging.KeyCardHidden)
	}

	out, err := t.messagingService.InfluenceName(context.Background(), &messaging.InfluenceNameInput{
		Locale:    t.locale,
		Influence: card.Influence,
	})
	if err != nil {
		log.Printf("Error naming influence %s: %v", card.Influence, err)
		return string(card.Influence)
	}
	return out.Name
}

// sendCard shows a dealt card to its holder in a direct message
func (t *table) sendCard(s *discordgo.Session, userID string, card models.Card) error {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		return err
	}

	msg, err := s.ChannelMessageSendComplex(channel.ID, renderCardMessage(t.cardText(card), t.labels(), card.ID))
	if err != nil {
		return err
	}

	t.cards.Track(CardMessage{
		CardID:    card.ID,
		UserID:    userID,
		ChannelID: channel.ID,
		MessageID: msg.ID,
	})
	return nil
}

// dealOpeningHands deals every player their first cards, one at a time
func (t *table) dealOpeningHands(ctx context.Context, s *discordgo.Session, playerIDs []string) {
	for _, playerID := range playerIDs {
		for n := 0; n < openingHandSize; n++ {
			out, err := t.gameService.DealCard(ctx, &game.DealCardInput{
				PlayerID: playerID,
			})
			if err != nil {
				log.Printf("Error dealing to %s: %v", playerID, err)
				break
			}

			if err := t.sendCard(s, playerID, out.Card); err != nil {
				log.Printf("Error sending card to %s: %v", playerID, err)
			}
		}
	}
}

// deleteCard removes the message that showed a card which went back to the deck
func (t *table) deleteCard(s *discordgo.Session, cardID string) {
	msg, ok := t.cards.Forget(cardID)
	if !ok {
		return
	}

	if err := s.ChannelMessageDelete(msg.ChannelID, msg.MessageID); err != nil {
		log.Printf("Error deleting card message %s: %v", msg.MessageID, err)
	}
}

func (t *table) announce(s *discordgo.Session, groupID string, lines ...string) {
	if _, err := s.ChannelMessageSend(groupID, strings.Join(lines, "\n")); err != nil {
		log.Printf("Error announcing in %s: %v", groupID, err)
	}
}

// finish cleans up after a game ended: every card message still showing goes
// away, the winner hears about it and the group gets the result
func (t *table) finish(s *discordgo.Session, conclusion *game.Conclusion) {
	if conclusion == nil {
		return
	}

	for _, holding := range conclusion.Holdings {
		for _, card := range holding.Cards {
			t.deleteCard(s, card.ID)
		}
		// Cards dealt but never shown still leave a tracked message behind
		for _, msg := range t.cards.ForgetUser(holding.PlayerID) {
			if err := s.ChannelMessageDelete(msg.ChannelID, msg.MessageID); err != nil {
				log.Printf("Error deleting card message %s: %v", msg.MessageID, err)
			}
		}
	}

	result := t.text(t.locale, messaging.KeyGameNoWinner)
	if conclusion.Winner != nil {
		result = t.text(t.locale, messaging.KeyGameWinner, conclusion.Winner.Name)

		if channel, err := s.UserChannelCreate(conclusion.Winner.PlayerID); err == nil {
			if _, err := s.ChannelMessageSend(channel.ID, t.text(t.locale, messaging.KeyYouWon)); err != nil {
				log.Printf("Error congratulating %s: %v", conclusion.Winner.PlayerID, err)
			}
		}
	}

	t.announce(s, conclusion.GroupID, t.text(t.locale, messaging.KeyGameOver), result)
}

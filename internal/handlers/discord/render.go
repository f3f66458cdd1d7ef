package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Card button actions
const (
	ActionHide   = "card_hide"
	ActionShow   = "card_show"
	ActionRemove = "card_remove"

	customIDSeparator = ":"
)

const (
	colorInfo  = 0x00ff00
	colorError = 0xff0000
	colorGold  = 0xffd700
)

// buttonLabels are the localized labels of the card buttons
type buttonLabels struct {
	Hide   string
	Show   string
	Remove string
}

// cardCustomID builds the custom ID of a card button
func cardCustomID(action, cardID string) string {
	return action + customIDSeparator + cardID
}

// parseCardCustomID splits a card button custom ID into its action and card ID
func parseCardCustomID(customID string) (action, cardID string, ok bool) {
	action, cardID, found := strings.Cut(customID, customIDSeparator)
	if !found || cardID == "" {
		return "", "", false
	}

	switch action {
	case ActionHide, ActionShow, ActionRemove:
		return action, cardID, true
	}
	return "", "", false
}

// cardComponents returns the buttons under a card message. An open card can be
// hidden, a hidden one shown, and either removed.
func cardComponents(labels buttonLabels, cardID string, hidden bool) []discordgo.MessageComponent {
	toggle := discordgo.Button{
		Label:    labels.Hide,
		Style:    discordgo.SecondaryButton,
		CustomID: cardCustomID(ActionHide, cardID),
	}
	if hidden {
		toggle = discordgo.Button{
			Label:    labels.Show,
			Style:    discordgo.PrimaryButton,
			CustomID: cardCustomID(ActionShow, cardID),
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				toggle,
				discordgo.Button{
					Label:    labels.Remove,
					Style:    discordgo.DangerButton,
					CustomID: cardCustomID(ActionRemove, cardID),
				},
			},
		},
	}
}

// renderCardMessage builds the direct message that shows a freshly dealt card
func renderCardMessage(content string, labels buttonLabels, cardID string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    content,
		Components: cardComponents(labels, cardID, false),
	}
}

// renderCardUpdate builds the in-place update of a card message after it was hidden or shown
func renderCardUpdate(content string, labels buttonLabels, cardID string, hidden bool) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: cardComponents(labels, cardID, hidden),
		},
	}
}

// renderListEmbed builds an embed listing one line per entry
func renderListEmbed(title string, lines []string, footer string, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Color:       color,
	}
	if footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}
	return embed
}

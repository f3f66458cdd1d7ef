package discord

import "sync"

// CardMessage locates the direct message that shows one dealt card
type CardMessage struct {
	CardID    string
	UserID    string
	ChannelID string
	MessageID string
}

// CardMessages tracks which direct message shows which card, so the message can
// be edited while the card is held and deleted once it goes back to the deck
type CardMessages struct {
	mu     sync.Mutex
	byCard map[string]CardMessage
}

// NewCardMessages creates an empty tracker
func NewCardMessages() *CardMessages {
	return &CardMessages{
		byCard: make(map[string]CardMessage),
	}
}

// Track records the message showing a card, replacing any earlier one
func (c *CardMessages) Track(msg CardMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byCard[msg.CardID] = msg
}

// Get returns the message showing a card
func (c *CardMessages) Get(cardID string) (CardMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg, ok := c.byCard[cardID]
	return msg, ok
}

// Forget stops tracking a card and returns the message that showed it
func (c *CardMessages) Forget(cardID string) (CardMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg, ok := c.byCard[cardID]
	if ok {
		delete(c.byCard, cardID)
	}
	return msg, ok
}

// ForgetUser stops tracking every card shown to a user
func (c *CardMessages) ForgetUser(userID string) []CardMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	var forgotten []CardMessage
	for cardID, msg := range c.byCard {
		if msg.UserID == userID {
			forgotten = append(forgotten, msg)
			delete(c.byCard, cardID)
		}
	}
	return forgotten
}

// Len returns how many cards are tracked
func (c *CardMessages) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.byCard)
}

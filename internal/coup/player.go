package coup

import (
	"fmt"

	"github.com/KirkDiggler/coupd/internal/models"
)

// Player owns one hand. Every held card lives in exactly one of open or hidden.
type Player struct {
	id   string
	name string

	open   []*models.Card
	hidden []*models.Card

	// foreignAidPending counts held cards from an unresolved foreign aid draw
	foreignAidPending int
}

// NewPlayer creates a player with an empty hand
func NewPlayer(id, name string) *Player {
	return &Player{
		id:   id,
		name: name,
	}
}

// ID returns the chat user ID of the player
func (p *Player) ID() string {
	return p.id
}

// Name returns the display name of the player
func (p *Player) Name() string {
	return p.name
}

// AddCard puts a card in the open collection
func (p *Player) AddCard(card *models.Card, foreignAid bool) {
	card.Hidden = false
	p.open = append(p.open, card)
	if foreignAid {
		p.foreignAidPending++
	}
}

// Hide moves a card from the open collection to the hidden one
func (p *Player) Hide(cardID string) error {
	card, ok := take(&p.open, cardID)
	if !ok {
		return fmt.Errorf("%w: %s is not open in %s's hand", models.ErrCardNotFound, cardID, p.id)
	}

	card.Hidden = true
	p.hidden = append(p.hidden, card)
	return nil
}

// Show moves a card from the hidden collection to the open one
func (p *Player) Show(cardID string) error {
	card, ok := take(&p.hidden, cardID)
	if !ok {
		return fmt.Errorf("%w: %s is not hidden in %s's hand", models.ErrCardNotFound, cardID, p.id)
	}

	card.Hidden = false
	p.open = append(p.open, card)
	return nil
}

// Remove takes a card out of the hand, looking in the hidden collection first.
// A removal while foreign aid is pending counts toward resolving it.
func (p *Player) Remove(cardID string) (*models.Card, bool, error) {
	wasHidden := true
	card, ok := take(&p.hidden, cardID)
	if !ok {
		wasHidden = false
		card, ok = take(&p.open, cardID)
	}
	if !ok {
		return nil, false, fmt.Errorf("%w: %s is not in %s's hand", models.ErrCardNotFound, cardID, p.id)
	}

	if p.foreignAidPending > 0 {
		p.foreignAidPending--
	}

	return card, wasHidden, nil
}

// IsHidden reports whether a held card is concealed
func (p *Player) IsHidden(cardID string) (bool, error) {
	if indexOf(p.hidden, cardID) >= 0 {
		return true, nil
	}
	if indexOf(p.open, cardID) >= 0 {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s is not in %s's hand", models.ErrCardNotFound, cardID, p.id)
}

// HandSize returns how many cards the player holds
func (p *Player) HandSize() int {
	return len(p.open) + len(p.hidden)
}

// ForeignAidPending returns how many foreign aid cards still have to be discarded
func (p *Player) ForeignAidPending() int {
	return p.foreignAidPending
}

// Cards returns copies of the held cards, open ones first
func (p *Player) Cards() []models.Card {
	out := make([]models.Card, 0, p.HandSize())
	for _, c := range p.open {
		out = append(out, *c)
	}
	for _, c := range p.hidden {
		out = append(out, *c)
	}
	return out
}

// Status returns the public view of the hand
func (p *Player) Status() models.PlayerStatus {
	return models.PlayerStatus{
		PlayerID:          p.id,
		Name:              p.name,
		OpenCount:         len(p.open),
		HiddenCount:       len(p.hidden),
		ForeignAidPending: p.foreignAidPending,
	}
}

// surrender empties the hand and returns every card it held
func (p *Player) surrender() []*models.Card {
	cards := make([]*models.Card, 0, p.HandSize())
	cards = append(cards, p.open...)
	cards = append(cards, p.hidden...)
	p.open = nil
	p.hidden = nil
	p.foreignAidPending = 0
	return cards
}

func indexOf(cards []*models.Card, cardID string) int {
	for i, c := range cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func take(cards *[]*models.Card, cardID string) (*models.Card, bool) {
	i := indexOf(*cards, cardID)
	if i < 0 {
		return nil, false
	}

	card := (*cards)[i]
	*cards = append((*cards)[:i], (*cards)[i+1:]...)
	return card, true
}

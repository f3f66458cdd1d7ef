package deck

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/models"
)

const (
	// MinPlayers is the smallest roster a deck can be built for
	MinPlayers = 1

	// MaxPlayers is the largest roster a deck can be built for
	MaxPlayers = 10
)

// cardsByPlayerCount is the court deck size for each supported roster size
var cardsByPlayerCount = map[int]int{
	1:  15,
	2:  15,
	3:  15,
	4:  15,
	5:  15,
	6:  15,
	7:  20,
	8:  20,
	9:  25,
	10: 25,
}

//go:generate mockgen -package=mocks -destination=mocks/mock_shuffler.go github.com/KirkDiggler/coupd/internal/deck Shuffler

// Shuffler permutes n elements through swap
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Config holds the dependencies of a deck
type Config struct {
	// Shuffler randomizes card order
	Shuffler Shuffler

	// UUIDGenerator assigns card identities
	UUIDGenerator uuid.UUID
}

// Deck is the shared draw pile of one game. It is not safe for concurrent use;
// the owning game serializes access.
type Deck struct {
	cards    []*models.Card
	total    int
	shuffler Shuffler
	ids      uuid.UUID
}

// New creates an empty deck
func New(cfg *Config) (*Deck, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Shuffler == nil {
		return nil, errors.New("shuffler cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	return &Deck{
		shuffler: cfg.Shuffler,
		ids:      cfg.UUIDGenerator,
	}, nil
}

// TotalFor returns how many cards a deck built for playerCount holds
func TotalFor(playerCount int) (int, error) {
	size, ok := cardsByPlayerCount[playerCount]
	if !ok {
		return 0, fmt.Errorf("%w: %d (supported %d-%d)", models.ErrUnsupportedPlayerCount, playerCount, MinPlayers, MaxPlayers)
	}

	perInfluence := size / len(models.Influences)
	return perInfluence * len(models.Influences), nil
}

// Build replaces the deck contents with a freshly shuffled court deck for playerCount players
func (d *Deck) Build(playerCount int) error {
	total, err := TotalFor(playerCount)
	if err != nil {
		return err
	}

	perInfluence := total / len(models.Influences)
	cards := make([]*models.Card, 0, total)
	for n := 0; n < perInfluence; n++ {
		for _, influence := range models.Influences {
			cards = append(cards, &models.Card{
				ID:        d.ids.NewUUID(),
				Influence: influence,
			})
		}
	}

	d.cards = cards
	d.total = total
	d.shuffle()

	return nil
}

// Draw removes and returns the top card
func (d *Deck) Draw() (*models.Card, error) {
	if len(d.cards) == 0 {
		return nil, models.ErrEmptyDeck
	}

	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards[last] = nil
	d.cards = d.cards[:last]

	return card, nil
}

// ReturnAndReshuffle puts a card back face up and reshuffles the whole deck
func (d *Deck) ReturnAndReshuffle(card *models.Card) {
	card.Hidden = false
	d.cards = append(d.cards, card)
	d.shuffle()
}

// Len returns how many cards are left to draw
func (d *Deck) Len() int {
	return len(d.cards)
}

// Total returns how many cards the deck was built with
func (d *Deck) Total() int {
	return d.total
}

// Cards returns a copy of the remaining cards, top of the deck last
func (d *Deck) Cards() []models.Card {
	out := make([]models.Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = *c
	}
	return out
}

func (d *Deck) shuffle() {
	d.shuffler.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

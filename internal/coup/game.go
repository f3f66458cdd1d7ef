package coup

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/coupd/internal/common/clock"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/deck"
	"github.com/KirkDiggler/coupd/internal/models"
)

// Config holds the identity and dependencies of a game
type Config struct {
	// GroupID is the chat group the game is played in
	GroupID string

	// Shuffler randomizes the deck
	Shuffler deck.Shuffler

	// UUIDGenerator assigns card identities
	UUIDGenerator uuid.UUID

	// Clock stamps lifecycle transitions
	Clock clock.Clock
}

// Game is one Coup match in one chat group. Every exported method holds the game
// lock for its whole duration, so operations are atomic with respect to each other.
type Game struct {
	mu sync.Mutex

	groupID string
	state   models.GameState
	clock   clock.Clock

	order   []string
	players map[string]*Player
	deck    *deck.Deck

	participants []models.Participant

	createdAt time.Time
	startedAt time.Time
	endedAt   time.Time
}

// New creates an empty game in the forming state
func New(cfg *Config) (*Game, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GroupID == "" {
		return nil, errors.New("group ID cannot be empty")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	d, err := deck.New(&deck.Config{
		Shuffler:      cfg.Shuffler,
		UUIDGenerator: cfg.UUIDGenerator,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	return &Game{
		groupID:   cfg.GroupID,
		state:     models.GameStateForming,
		clock:     cfg.Clock,
		players:   make(map[string]*Player),
		deck:      d,
		createdAt: cfg.Clock.Now(),
	}, nil
}

// GroupID returns the chat group the game belongs to
func (g *Game) GroupID() string {
	return g.groupID
}

// AddPlayer registers a player while the game is forming
func (g *Game) AddPlayer(userID, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.IsForming() {
		return fmt.Errorf("%w: %s cannot join %s", models.ErrGameAlreadyStarted, userID, g.groupID)
	}

	if _, ok := g.players[userID]; ok {
		return fmt.Errorf("%w: %s", models.ErrPlayerAlreadyInGame, userID)
	}

	g.players[userID] = NewPlayer(userID, name)
	g.order = append(g.order, userID)
	g.participants = append(g.participants, models.Participant{ID: userID, Name: name})

	return nil
}

// Start builds the deck for the current roster and closes the roster.
// Dealing is left to the caller, one DealCard at a time.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.IsForming() {
		return fmt.Errorf("%w: %s is %s", models.ErrGameAlreadyStarted, g.groupID, g.state)
	}

	if err := g.deck.Build(len(g.order)); err != nil {
		return err
	}

	g.state = models.GameStateActive
	g.startedAt = g.clock.Now()

	return nil
}

// DealCard draws one card into a player's open collection
func (g *Game) DealCard(userID string, foreignAid bool) (models.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.playable(userID)
	if err != nil {
		return models.Card{}, err
	}

	card, err := g.deck.Draw()
	if err != nil {
		return models.Card{}, fmt.Errorf("%w: dealing to %s in %s", err, userID, g.groupID)
	}

	player.AddCard(card, foreignAid)
	return *card, nil
}

// HideCard conceals one of a player's open cards
func (g *Game) HideCard(userID, cardID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.playable(userID)
	if err != nil {
		return err
	}

	return player.Hide(cardID)
}

// ShowCard reveals one of a player's hidden cards
func (g *Game) ShowCard(userID, cardID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.playable(userID)
	if err != nil {
		return err
	}

	return player.Show(cardID)
}

// RemoveCard discards a card back into the deck. A player left with no cards
// is evicted, and a started game left with one player or fewer concludes.
func (g *Game) RemoveCard(userID, cardID string) (models.RemoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.removeCard(userID, cardID)
}

// Discard is RemoveCard plus the replacement rule: a player who discards an open
// card outside foreign aid and still holds cards proved that influence, and is
// dealt a fresh card before anyone else can touch the hand.
func (g *Game) Discard(userID, cardID string) (models.RemoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result, err := g.removeCard(userID, cardID)
	if err != nil {
		return result, err
	}

	if result.Evicted || result.WasHidden || result.ForeignAid {
		return result, nil
	}

	// The discarded card is back in the deck, so there is always one to draw
	card, err := g.deck.Draw()
	if err != nil {
		return result, fmt.Errorf("%w: replacing for %s in %s", err, userID, g.groupID)
	}
	g.players[userID].AddCard(card, false)

	replacement := *card
	result.Replacement = &replacement
	return result, nil
}

// removeCard does the work of RemoveCard. Callers hold g.mu.
func (g *Game) removeCard(userID, cardID string) (models.RemoveResult, error) {
	player, err := g.playable(userID)
	if err != nil {
		return models.RemoveResult{}, err
	}

	pendingBefore := player.ForeignAidPending()
	card, wasHidden, err := player.Remove(cardID)
	if err != nil {
		return models.RemoveResult{}, err
	}

	g.deck.ReturnAndReshuffle(card)

	result := models.RemoveResult{
		Card:               *card,
		WasHidden:          wasHidden,
		ForeignAid:         pendingBefore > 0,
		ForeignAidResolved: pendingBefore > 0 && player.ForeignAidPending() == 0,
	}

	if player.HandSize() == 0 {
		g.evict(userID)
		result.Evicted = true
		result.Concluded = g.concludeIfDecided()
	}

	return result, nil
}

// ForeignAid deals the player as many extra cards as they currently hold.
// The player must discard that many before asking again.
func (g *Game) ForeignAid(userID string) ([]models.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.playable(userID)
	if err != nil {
		return nil, err
	}

	if pending := player.ForeignAidPending(); pending != 0 {
		return nil, fmt.Errorf("%w: %s must still discard %d", models.ErrForeignAidInProgress, userID, pending)
	}

	n := player.HandSize()
	if g.deck.Len() < n {
		return nil, fmt.Errorf("%w: %s needs %d cards, %d left", models.ErrEmptyDeck, userID, n, g.deck.Len())
	}

	dealt := make([]models.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return nil, err
		}
		player.AddCard(card, true)
		dealt = append(dealt, *card)
	}

	return dealt, nil
}

// Withdraw removes a player who quits, returning their whole hand to the deck
func (g *Game) Withdraw(userID string) (models.WithdrawResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.seated(userID)
	if err != nil {
		return models.WithdrawResult{}, err
	}

	cards := player.surrender()
	returned := make([]models.Card, 0, len(cards))
	for _, card := range cards {
		g.deck.ReturnAndReshuffle(card)
		returned = append(returned, *card)
	}

	g.evict(userID)

	return models.WithdrawResult{
		Cards:     returned,
		Concluded: g.concludeIfDecided(),
	}, nil
}

// ForceConclude ends the game from any state. Every remaining hand goes back to
// the deck and the roster empties; the returned holdings let the caller clean up.
func (g *Game) ForceConclude() []models.Holding {
	g.mu.Lock()
	defer g.mu.Unlock()

	holdings := make([]models.Holding, 0, len(g.order))
	for _, id := range g.order {
		player := g.players[id]
		holding := models.Holding{
			PlayerID: id,
			Name:     player.Name(),
			Cards:    player.Cards(),
		}
		for _, card := range player.surrender() {
			g.deck.ReturnAndReshuffle(card)
		}
		holdings = append(holdings, holding)
	}

	g.players = make(map[string]*Player)
	g.order = nil
	g.conclude()

	return holdings
}

// Status returns every player's public hand view in join order
func (g *Game) Status() []models.PlayerStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	statuses := make([]models.PlayerStatus, 0, len(g.order))
	for _, id := range g.order {
		statuses = append(statuses, g.players[id].Status())
	}
	return statuses
}

// Ended returns true once the game has concluded
func (g *Game) Ended() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.IsConcluded()
}

// State returns the lifecycle state
func (g *Game) State() models.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// Winner returns the sole remaining player of a concluded game
func (g *Game) Winner() (models.PlayerStatus, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.IsConcluded() || len(g.order) != 1 {
		return models.PlayerStatus{}, false
	}
	return g.players[g.order[0]].Status(), true
}

// Hand returns copies of a player's cards, open ones first
func (g *Game) Hand(userID string) ([]models.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.player(userID)
	if err != nil {
		return nil, err
	}
	return player.Cards(), nil
}

// IsHidden reports whether one of a player's cards is concealed
func (g *Game) IsHidden(userID, cardID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.player(userID)
	if err != nil {
		return false, err
	}
	return player.IsHidden(cardID)
}

// HasPlayer reports whether the user is on the roster
func (g *Game) HasPlayer(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players[userID]
	return ok
}

// PlayerIDs returns the roster in join order
func (g *Game) PlayerIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]string(nil), g.order...)
}

// Participants returns everyone who ever joined, including evicted players
func (g *Game) Participants() []models.Participant {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]models.Participant(nil), g.participants...)
}

// DeckSize returns how many cards are left to draw
func (g *Game) DeckSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.deck.Len()
}

// TotalCards returns how many cards the deck was built with
func (g *Game) TotalCards() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.deck.Total()
}

// CreatedAt returns when the game was opened
func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

// StartedAt returns when the deck was built, zero while forming
func (g *Game) StartedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.startedAt
}

// EndedAt returns when the game concluded, zero until then
func (g *Game) EndedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.endedAt
}

// player looks up a roster entry. Callers hold g.mu.
func (g *Game) player(userID string) (*Player, error) {
	player, ok := g.players[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", models.ErrPlayerNotInGame, userID, g.groupID)
	}
	return player, nil
}

// playable looks up a roster entry of a game whose cards are in play.
// Callers hold g.mu.
func (g *Game) playable(userID string) (*Player, error) {
	if g.state.IsForming() {
		return nil, fmt.Errorf("%w: %s", models.ErrGameNotStarted, g.groupID)
	}
	return g.seated(userID)
}

// seated looks up a roster entry of a game that is not over yet.
// Callers hold g.mu.
func (g *Game) seated(userID string) (*Player, error) {
	if g.state.IsConcluded() {
		return nil, fmt.Errorf("%w: %s", models.ErrGameConcluded, g.groupID)
	}
	return g.player(userID)
}

func (g *Game) evict(userID string) {
	delete(g.players, userID)
	for i, id := range g.order {
		if id == userID {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// concludeIfDecided ends a started game once one player or fewer remain
func (g *Game) concludeIfDecided() bool {
	if g.state.IsActive() && len(g.order) <= 1 {
		g.conclude()
		return true
	}
	return false
}

func (g *Game) conclude() {
	if g.state.IsConcluded() {
		return
	}
	g.state = models.GameStateConcluded
	g.endedAt = g.clock.Now()
}

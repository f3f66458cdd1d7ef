package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/coupd/internal/coup"
)

var (
	// ErrGameNotFound is returned when a group has no game
	ErrGameNotFound = errors.New("game not found")

	// ErrGameAlreadyExists is returned when a group already has a game
	ErrGameAlreadyExists = errors.New("game already exists")

	// ErrPlayerNotFound is returned when a player is not registered in any game
	ErrPlayerNotFound = errors.New("player not found")

	// ErrPlayerAlreadyInGame is returned when a player is already registered in a game
	ErrPlayerAlreadyInGame = errors.New("player already in a game")
)

// memoryRepository implements Repository with process-local maps
type memoryRepository struct {
	mu sync.RWMutex

	games   map[string]*coup.Game
	players map[string]string
}

// NewMemory creates an empty in-memory session directory
func NewMemory() *memoryRepository {
	return &memoryRepository{
		games:   make(map[string]*coup.Game),
		players: make(map[string]string),
	}
}

// CreateGame registers a game under its group ID
func (r *memoryRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	groupID := input.Game.GroupID()
	if _, ok := r.games[groupID]; ok {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, groupID)
	}

	r.games[groupID] = input.Game
	return nil
}

// GetGame retrieves the game of a group
func (r *memoryRepository) GetGame(ctx context.Context, input *GetGameInput) (*coup.Game, error) {
	if input == nil || input.GroupID == "" {
		return nil, errors.New("input and group ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[input.GroupID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// GetGameByPlayer retrieves the game a player is registered in
func (r *memoryRepository) GetGameByPlayer(ctx context.Context, input *GetGameByPlayerInput) (*coup.Game, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	groupID, ok := r.players[input.PlayerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	game, ok := r.games[groupID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// AddPlayer registers a player in a group's game. The check and the write happen
// under one lock, so two concurrent joins of the same user cannot both succeed.
func (r *memoryRepository) AddPlayer(ctx context.Context, input *AddPlayerInput) error {
	if input == nil || input.PlayerID == "" || input.GroupID == "" {
		return errors.New("input, player ID and group ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.games[input.GroupID]
	if !ok || (input.Game != nil && game != input.Game) {
		return ErrGameNotFound
	}

	if groupID, ok := r.players[input.PlayerID]; ok {
		return fmt.Errorf("%w: %s is playing in %s", ErrPlayerAlreadyInGame, input.PlayerID, groupID)
	}

	r.players[input.PlayerID] = input.GroupID
	return nil
}

// RemovePlayer drops a player's registration. Removing an unknown player is a no-op.
func (r *memoryRepository) RemovePlayer(ctx context.Context, input *RemovePlayerInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if input.GroupID != "" && r.players[input.PlayerID] != input.GroupID {
		return nil
	}

	delete(r.players, input.PlayerID)
	return nil
}

// DeleteGame removes a group's game and every player registered in it. Only one
// of several concurrent deletes of the same game succeeds.
func (r *memoryRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GroupID == "" {
		return errors.New("input and group ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.games[input.GroupID]
	if !ok || (input.Game != nil && input.Game != game) {
		return ErrGameNotFound
	}

	delete(r.games, input.GroupID)
	for playerID, groupID := range r.players {
		if groupID == input.GroupID {
			delete(r.players, playerID)
		}
	}

	return nil
}

// GetGames lists every registered game
func (r *memoryRepository) GetGames(ctx context.Context, input *GetGamesInput) (*GetGamesOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]*coup.Game, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, game)
	}

	return &GetGamesOutput{Games: games}, nil
}

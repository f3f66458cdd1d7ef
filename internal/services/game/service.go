package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/coupd/internal/common/clock"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/coup"
	"github.com/KirkDiggler/coupd/internal/deck"
	"github.com/KirkDiggler/coupd/internal/models"
	historyRepo "github.com/KirkDiggler/coupd/internal/repositories/match_history"
	sessionRepo "github.com/KirkDiggler/coupd/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	directory     sessionRepo.Repository
	matchHistory  historyRepo.Repository
	shuffler      deck.Shuffler
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Directory == nil {
		return nil, ErrNilDirectory
	}

	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		directory:     cfg.Directory,
		matchHistory:  cfg.MatchHistory,
		shuffler:      cfg.Shuffler,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// CreateGame opens a new game in a chat group
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	game, err := coup.New(&coup.Config{
		GroupID:       input.GroupID,
		Shuffler:      s.shuffler,
		UUIDGenerator: s.uuidGenerator,
		Clock:         s.clock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	err = s.directory.CreateGame(ctx, &sessionRepo.CreateGameInput{
		Game: game,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrGameAlreadyExists) {
			return nil, ErrGameAlreadyExists
		}
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return &CreateGameOutput{
		GroupID: input.GroupID,
	}, nil
}

// JoinGame adds a player to a forming game. The directory slot is reserved first
// and released again if the game turns the player away.
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByGroup(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// Reserving against this exact game fails if it ended and another took its place
	err = s.directory.AddPlayer(ctx, &sessionRepo.AddPlayerInput{
		PlayerID: input.PlayerID,
		GroupID:  input.GroupID,
		Game:     game,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrPlayerAlreadyInGame):
			return nil, fmt.Errorf("%w: %s", models.ErrPlayerAlreadyInGame, input.PlayerID)
		case errors.Is(err, sessionRepo.ErrGameNotFound):
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	if err := game.AddPlayer(input.PlayerID, input.PlayerName); err != nil {
		s.releasePlayer(ctx, game, input.PlayerID)
		return nil, err
	}

	return &JoinGameOutput{
		PlayerCount: len(game.PlayerIDs()),
	}, nil
}

// StartGame builds the deck and closes the roster. Cards are dealt afterwards
// through DealCard so each one can be delivered on its own.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	game, err := s.gameByGroup(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	if err := game.Start(); err != nil {
		return nil, err
	}

	return &StartGameOutput{
		PlayerIDs: game.PlayerIDs(),
		DeckSize:  game.DeckSize(),
	}, nil
}

// DealCard draws one card for a player
func (s *service) DealCard(ctx context.Context, input *DealCardInput) (*DealCardOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	card, err := game.DealCard(input.PlayerID, input.ForeignAid)
	if err != nil {
		return nil, err
	}

	return &DealCardOutput{
		GroupID: game.GroupID(),
		Card:    card,
	}, nil
}

// HideCard conceals one of a player's cards
func (s *service) HideCard(ctx context.Context, input *HideCardInput) (*HideCardOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if err := game.HideCard(input.PlayerID, input.CardID); err != nil {
		return nil, err
	}

	card, err := cardInHand(game, input.PlayerID, input.CardID)
	if err != nil {
		return nil, err
	}

	return &HideCardOutput{
		GroupID: game.GroupID(),
		Card:    card,
	}, nil
}

// ShowCard reveals one of a player's hidden cards
func (s *service) ShowCard(ctx context.Context, input *ShowCardInput) (*ShowCardOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if err := game.ShowCard(input.PlayerID, input.CardID); err != nil {
		return nil, err
	}

	card, err := cardInHand(game, input.PlayerID, input.CardID)
	if err != nil {
		return nil, err
	}

	return &ShowCardOutput{
		GroupID: game.GroupID(),
		Card:    card,
	}, nil
}

// RemoveCard discards a card. Discarding an open card outside foreign aid means
// the player proved that influence, so the game deals a fresh card in the same step.
func (s *service) RemoveCard(ctx context.Context, input *RemoveCardInput) (*RemoveCardOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	result, err := game.Discard(input.PlayerID, input.CardID)
	if err != nil {
		return nil, err
	}

	output := &RemoveCardOutput{
		GroupID:     game.GroupID(),
		PlayerName:  participantName(game, input.PlayerID),
		Result:      result,
		Replacement: result.Replacement,
	}

	switch {
	case result.Concluded:
		output.Conclusion = s.concludeAfterPlay(ctx, game)
	case result.Evicted:
		s.releasePlayer(ctx, game, input.PlayerID)
	}

	return output, nil
}

// ForeignAid deals a player as many extra cards as they hold
func (s *service) ForeignAid(ctx context.Context, input *ForeignAidInput) (*ForeignAidOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	cards, err := game.ForeignAid(input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &ForeignAidOutput{
		GroupID:    game.GroupID(),
		PlayerName: participantName(game, input.PlayerID),
		Cards:      cards,
	}, nil
}

// LeaveGame withdraws a player and returns their hand to the deck
func (s *service) LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	result, err := game.Withdraw(input.PlayerID)
	if err != nil {
		return nil, err
	}

	output := &LeaveGameOutput{
		GroupID:    game.GroupID(),
		PlayerName: participantName(game, input.PlayerID),
		Cards:      result.Cards,
	}

	if result.Concluded {
		output.Conclusion = s.concludeAfterPlay(ctx, game)
	} else {
		s.releasePlayer(ctx, game, input.PlayerID)
	}

	return output, nil
}

// GetStatus returns the public view of a group's game
func (s *service) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	game, err := s.gameByGroup(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	return &GetStatusOutput{
		GroupID:    game.GroupID(),
		State:      game.State(),
		Players:    game.Status(),
		DeckSize:   game.DeckSize(),
		TotalCards: game.TotalCards(),
	}, nil
}

// GetHand returns the private view of a player's cards
func (s *service) GetHand(ctx context.Context, input *GetHandInput) (*GetHandOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	game, err := s.gameByPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	cards, err := game.Hand(input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetHandOutput{
		GroupID: game.GroupID(),
		Cards:   cards,
	}, nil
}

// EndGame force-concludes a group's game from any state
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	game, err := s.gameByGroup(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	conclusion, err := s.conclude(ctx, game, true)
	if err != nil {
		return nil, err
	}

	return &EndGameOutput{
		Conclusion: conclusion,
	}, nil
}

// GetLeaderboard returns the standings of a group
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	if s.matchHistory == nil {
		return nil, ErrHistoryUnavailable
	}

	out, err := s.matchHistory.GetLeaderboard(ctx, &historyRepo.GetLeaderboardInput{
		GroupID: input.GroupID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return &GetLeaderboardOutput{
		Entries: out.Entries,
	}, nil
}

// GetRecentMatches returns a group's latest finished games
func (s *service) GetRecentMatches(ctx context.Context, input *GetRecentMatchesInput) (*GetRecentMatchesOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	if s.matchHistory == nil {
		return nil, ErrHistoryUnavailable
	}

	out, err := s.matchHistory.GetRecentMatches(ctx, &historyRepo.GetRecentMatchesInput{
		GroupID: input.GroupID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}

	return &GetRecentMatchesOutput{
		Matches: out.Matches,
	}, nil
}

// GetMatch returns one finished game, as long as it was played in the group asking
func (s *service) GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, ErrEmptyGroupID
	}

	if s.matchHistory == nil {
		return nil, ErrHistoryUnavailable
	}

	match, err := s.matchHistory.GetMatch(ctx, &historyRepo.GetMatchInput{
		MatchID: input.MatchID,
	})
	if err != nil {
		if errors.Is(err, historyRepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if match.GroupID != input.GroupID {
		return nil, ErrMatchNotFound
	}

	return &GetMatchOutput{
		Match: match,
	}, nil
}

// EndAllGames force-concludes every game in the directory. Games another caller
// concluded in the meantime are skipped.
func (s *service) EndAllGames(ctx context.Context, input *EndAllGamesInput) (*EndAllGamesOutput, error) {
	out, err := s.directory.GetGames(ctx, &sessionRepo.GetGamesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	conclusions := make([]*Conclusion, 0, len(out.Games))
	for _, game := range out.Games {
		conclusion, err := s.conclude(ctx, game, true)
		if err != nil {
			if !errors.Is(err, ErrGameNotFound) {
				log.Printf("Error ending game in %s: %v", game.GroupID(), err)
			}
			continue
		}
		conclusions = append(conclusions, conclusion)
	}

	return &EndAllGamesOutput{
		Conclusions: conclusions,
	}, nil
}

// concludeAfterPlay wraps up a game that ended through elimination or withdrawal.
// A concurrent EndGame may already have claimed it, in which case there is
// nothing left to report.
func (s *service) concludeAfterPlay(ctx context.Context, game *coup.Game) *Conclusion {
	conclusion, err := s.conclude(ctx, game, false)
	if err != nil {
		if !errors.Is(err, ErrGameNotFound) {
			log.Printf("Error concluding game in %s: %v", game.GroupID(), err)
		}
		return nil
	}
	return conclusion
}

// conclude removes the game from the directory, collects every remaining hand and
// records the match. Removing the directory entry first makes sure only one caller
// wraps up a given game.
func (s *service) conclude(ctx context.Context, game *coup.Game, forced bool) (*Conclusion, error) {
	err := s.directory.DeleteGame(ctx, &sessionRepo.DeleteGameInput{
		GroupID: game.GroupID(),
		Game:    game,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	winner, hasWinner := game.Winner()
	conclusion := &Conclusion{
		GroupID:  game.GroupID(),
		Holdings: game.ForceConclude(),
		Forced:   forced,
	}
	if hasWinner {
		conclusion.Winner = &winner
	}

	s.recordMatch(ctx, game, conclusion)

	return conclusion, nil
}

func (s *service) recordMatch(ctx context.Context, game *coup.Game, conclusion *Conclusion) {
	if s.matchHistory == nil || game.StartedAt().IsZero() {
		return
	}

	match := &models.MatchResult{
		ID:           s.uuidGenerator.NewUUID(),
		GroupID:      game.GroupID(),
		Participants: game.Participants(),
		StartedAt:    game.StartedAt(),
		EndedAt:      game.EndedAt(),
		Forced:       conclusion.Forced,
	}
	if conclusion.Winner != nil {
		match.WinnerID = conclusion.Winner.PlayerID
		match.WinnerName = conclusion.Winner.Name
	}

	err := s.matchHistory.RecordMatch(ctx, &historyRepo.RecordMatchInput{
		Match: match,
	})
	if err != nil {
		log.Printf("Error recording match for %s: %v", game.GroupID(), err)
	}
}

// releasePlayer frees a player's directory slot in the given game only, so a
// late release never drops a registration the player made elsewhere since
func (s *service) releasePlayer(ctx context.Context, game *coup.Game, playerID string) {
	err := s.directory.RemovePlayer(ctx, &sessionRepo.RemovePlayerInput{
		PlayerID: playerID,
		GroupID:  game.GroupID(),
	})
	if err != nil {
		log.Printf("Error releasing player %s: %v", playerID, err)
	}
}

func (s *service) gameByGroup(ctx context.Context, groupID string) (*coup.Game, error) {
	game, err := s.directory.GetGame(ctx, &sessionRepo.GetGameInput{
		GroupID: groupID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

func (s *service) gameByPlayer(ctx context.Context, playerID string) (*coup.Game, error) {
	game, err := s.directory.GetGameByPlayer(ctx, &sessionRepo.GetGameByPlayerInput{
		PlayerID: playerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, sessionRepo.ErrGameNotFound):
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game for player: %w", err)
	}
	return game, nil
}

func cardInHand(game *coup.Game, playerID, cardID string) (models.Card, error) {
	cards, err := game.Hand(playerID)
	if err != nil {
		return models.Card{}, err
	}
	for _, card := range cards {
		if card.ID == cardID {
			return card, nil
		}
	}
	return models.Card{}, fmt.Errorf("%w: %s", models.ErrCardNotFound, cardID)
}

// participantName looks the name up among everyone who joined, so it still
// resolves after the player was evicted
func participantName(game *coup.Game, playerID string) string {
	for _, p := range game.Participants() {
		if p.ID == playerID {
			return p.Name
		}
	}
	return ""
}

package match_history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/coupd/internal/repositories/match_history Repository

import (
	"context"

	"github.com/KirkDiggler/coupd/internal/models"
)

// Repository defines the interface for finished match persistence
type Repository interface {
	// RecordMatch stores a finished match and updates the group standings
	RecordMatch(ctx context.Context, input *RecordMatchInput) error

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, input *GetMatchInput) (*models.MatchResult, error)

	// GetRecentMatches retrieves a group's matches, newest first
	GetRecentMatches(ctx context.Context, input *GetRecentMatchesInput) (*GetRecentMatchesOutput, error)

	// GetLeaderboard retrieves a group's players ordered by wins
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}

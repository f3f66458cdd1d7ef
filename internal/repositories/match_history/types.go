package match_history

import "github.com/KirkDiggler/coupd/internal/models"

type RecordMatchInput struct {
	Match *models.MatchResult
}

type GetMatchInput struct {
	MatchID string
}

type GetRecentMatchesInput struct {
	GroupID string
	Limit   int
}

type GetRecentMatchesOutput struct {
	Matches []*models.MatchResult
}

type GetLeaderboardInput struct {
	GroupID string
	Limit   int
}

type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry
}

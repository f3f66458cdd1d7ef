package match_history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	matchKeyPrefix        = "match:"
	groupMatchesKeyPrefix = "group_matches:"
	groupWinsKeyPrefix    = "group_wins:"
	groupPlayedKeyPrefix  = "group_played:"
	playerNamesKey        = "player_names"

	defaultRecentLimit = 10
)

// ErrMatchNotFound is returned when a match is not found
var ErrMatchNotFound = errors.New("match not found")

// Config holds configuration for the Redis match history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed match history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// RecordMatch stores a finished match and updates the group standings
func (r *redisRepository) RecordMatch(ctx context.Context, input *RecordMatchInput) error {
	if input == nil || input.Match == nil {
		return errors.New("input and match cannot be nil")
	}

	match := input.Match
	if match.ID == "" {
		return errors.New("match ID cannot be empty")
	}
	if match.GroupID == "" {
		return errors.New("match group ID cannot be empty")
	}

	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	pipe := r.client.TxPipeline()

	pipe.Set(ctx, matchKeyPrefix+match.ID, matchJSON, 0)
	pipe.ZAdd(ctx, groupMatchesKeyPrefix+match.GroupID, redis.Z{
		Score:  float64(match.EndedAt.UnixNano()),
		Member: match.ID,
	})

	playedKey := groupPlayedKeyPrefix + match.GroupID
	for _, p := range match.Participants {
		pipe.ZIncrBy(ctx, playedKey, 1, p.ID)
		if p.Name != "" {
			pipe.HSet(ctx, playerNamesKey, p.ID, p.Name)
		}
	}

	if match.HasWinner() {
		pipe.ZIncrBy(ctx, groupWinsKeyPrefix+match.GroupID, 1, match.WinnerID)
		if match.WinnerName != "" {
			pipe.HSet(ctx, playerNamesKey, match.WinnerID, match.WinnerName)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}

	return nil
}

// GetMatch retrieves a match by ID
func (r *redisRepository) GetMatch(ctx context.Context, input *GetMatchInput) (*models.MatchResult, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	matchJSON, err := r.client.Get(ctx, matchKeyPrefix+input.MatchID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	var match models.MatchResult
	if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// GetRecentMatches retrieves a group's matches, newest first
func (r *redisRepository) GetRecentMatches(ctx context.Context, input *GetRecentMatchesInput) (*GetRecentMatchesOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, errors.New("input and group ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	matchIDs, err := r.client.ZRevRange(ctx, groupMatchesKeyPrefix+input.GroupID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get match IDs for group: %w", err)
	}

	if len(matchIDs) == 0 {
		return &GetRecentMatchesOutput{
			Matches: []*models.MatchResult{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(matchIDs))
	for i, matchID := range matchIDs {
		cmds[i] = pipe.Get(ctx, matchKeyPrefix+matchID)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	matches := make([]*models.MatchResult, 0, len(matchIDs))
	for i, cmd := range cmds {
		matchJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Match expired or was deleted after the index was read
				continue
			}
			return nil, fmt.Errorf("failed to get match %s: %w", matchIDs[i], err)
		}

		var match models.MatchResult
		if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match %s: %w", matchIDs[i], err)
		}

		matches = append(matches, &match)
	}

	return &GetRecentMatchesOutput{
		Matches: matches,
	}, nil
}

// GetLeaderboard retrieves a group's players ordered by wins, then by games played
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, errors.New("input and group ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	playedCmd := pipe.ZRangeWithScores(ctx, groupPlayedKeyPrefix+input.GroupID, 0, -1)
	winsCmd := pipe.ZRangeWithScores(ctx, groupWinsKeyPrefix+input.GroupID, 0, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	played := playedCmd.Val()
	if len(played) == 0 {
		return &GetLeaderboardOutput{
			Entries: []*models.LeaderboardEntry{},
		}, nil
	}

	wins := make(map[string]int, len(winsCmd.Val()))
	for _, z := range winsCmd.Val() {
		wins[z.Member.(string)] = int(z.Score)
	}

	playerIDs := make([]string, 0, len(played))
	entries := make([]*models.LeaderboardEntry, 0, len(played))
	for _, z := range played {
		playerID := z.Member.(string)
		playerIDs = append(playerIDs, playerID)
		entries = append(entries, &models.LeaderboardEntry{
			PlayerID: playerID,
			Wins:     wins[playerID],
			Played:   int(z.Score),
		})
	}

	names, err := r.client.HMGet(ctx, playerNamesKey, playerIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player names: %w", err)
	}
	for i, name := range names {
		if s, ok := name.(string); ok {
			entries[i].PlayerName = s
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Played != entries[j].Played {
			return entries[i].Played > entries[j].Played
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if input.Limit > 0 && len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}

	return &GetLeaderboardOutput{
		Entries: entries,
	}, nil
}

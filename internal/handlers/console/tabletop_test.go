package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/KirkDiggler/coupd/internal/common/clock"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	historyRepo "github.com/KirkDiggler/coupd/internal/repositories/match_history"
	sessionRepo "github.com/KirkDiggler/coupd/internal/repositories/session"
	"github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/KirkDiggler/coupd/internal/shuffle"
	"github.com/alicebob/miniredis/v2"
	"github.com/pterm/pterm"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type TabletopTestSuite struct {
	suite.Suite
	out      *bytes.Buffer
	tabletop *Tabletop
	ctx      context.Context
}

func (s *TabletopTestSuite) SetupSuite() {
	pterm.DisableStyling()
}

func (s *TabletopTestSuite) TearDownSuite() {
	pterm.EnableStyling()
}

func (s *TabletopTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tabletop, _ = s.newTabletop(nil)
}

// newTabletop seats a fresh tabletop on s.out, recording matches when history is set
func (s *TabletopTestSuite) newTabletop(history historyRepo.Repository) (*Tabletop, game.Service) {
	gameService, err := game.New(&game.Config{
		Directory:     sessionRepo.NewMemory(),
		MatchHistory:  history,
		Shuffler:      shuffle.New(&shuffle.Config{Seed: 7}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	messagingService, err := messaging.New(&messaging.Config{DefaultLocale: "en-US"})
	s.Require().NoError(err)

	s.out = &bytes.Buffer{}
	tabletop, err := New(&Config{
		GameService:      gameService,
		MessagingService: messagingService,
		Out:              s.out,
	})
	s.Require().NoError(err)
	return tabletop, gameService
}

func TestTabletopTestSuite(t *testing.T) {
	suite.Run(t, new(TabletopTestSuite))
}

func (s *TabletopTestSuite) exec(line string) {
	quit, err := s.tabletop.Execute(s.ctx, line)
	s.Require().NoError(err, line)
	s.False(quit)
}

func (s *TabletopTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)
}

func (s *TabletopTestSuite) TestExecute_Errors() {
	_, err := s.tabletop.Execute(s.ctx, "roll")
	s.ErrorIs(err, ErrUnknownCommand)

	_, err = s.tabletop.Execute(s.ctx, "join alice")
	s.ErrorIs(err, ErrUsage)

	_, err = s.tabletop.Execute(s.ctx, "hide alice one")
	s.ErrorIs(err, ErrUsage)

	_, err = s.tabletop.Execute(s.ctx, "start")
	s.ErrorIs(err, game.ErrGameNotFound)

	_, err = s.tabletop.Execute(s.ctx, "match")
	s.ErrorIs(err, ErrUsage)

	_, err = s.tabletop.Execute(s.ctx, "match one two")
	s.ErrorIs(err, ErrUsage)

	quit, err := s.tabletop.Execute(s.ctx, "   ")
	s.NoError(err)
	s.False(quit)
}

func (s *TabletopTestSuite) TestExecute_Quit() {
	quit, err := s.tabletop.Execute(s.ctx, "quit")
	s.NoError(err)
	s.True(quit)
}

func (s *TabletopTestSuite) TestJoin_OpensGame() {
	s.exec("join alice Alice Smith")
	s.Contains(s.out.String(), "Alice Smith joined the game. Players: 1")

	s.exec("join bob Bob")
	s.Contains(s.out.String(), "Bob joined the game. Players: 2")
}

func (s *TabletopTestSuite) TestStartAndStatus() {
	s.exec("join alice Alice")
	s.exec("join bob Bob")
	s.exec("status")
	s.Contains(s.out.String(), "Waiting for players to join.")

	s.exec("start")
	s.Contains(s.out.String(), "Game started!")

	s.out.Reset()
	s.exec("status")
	s.Contains(s.out.String(), "Deck: 11 of 15 cards")
	s.Contains(s.out.String(), "Alice")
}

func (s *TabletopTestSuite) TestRemoveOpenCardDealsReplacement() {
	s.exec("join alice Alice")
	s.exec("join bob Bob")
	s.exec("start")

	s.out.Reset()
	s.exec("remove alice 1")
	s.Contains(s.out.String(), "A card from Alice was discarded.")
	s.Contains(s.out.String(), "Alice drew a new card.")

	_, err := s.tabletop.Execute(s.ctx, "remove alice 3")
	s.Error(err)
}

func (s *TabletopTestSuite) TestEliminationConcludes() {
	s.exec("join alice Alice")
	s.exec("join bob Bob")
	s.exec("start")

	// Hidden cards are listed after open ones, so position 1 is always open here
	s.exec("hide alice 1")
	s.exec("hide alice 1")

	s.out.Reset()
	s.exec("remove alice 1")
	s.NotContains(s.out.String(), "drew a new card")

	s.exec("remove alice 1")
	s.Contains(s.out.String(), "Alice has no influence left and is out of the game.")
	s.Contains(s.out.String(), "Bob is the winner!")

	_, err := s.tabletop.Execute(s.ctx, "status")
	s.ErrorIs(err, game.ErrGameNotFound)
}

func (s *TabletopTestSuite) TestRun() {
	input := strings.Join([]string{
		"join alice Alice",
		"join bob Bob",
		"leaderboard",
		"history",
		"end",
		"quit",
		"join carol Carol",
	}, "\n")

	s.Require().NoError(s.tabletop.Run(s.ctx, strings.NewReader(input)))

	out := s.out.String()
	s.Equal(2, strings.Count(out, "Game records are not available on this server."))
	s.Contains(out, "Nobody won this one.")
	s.NotContains(out, "Carol")
}

func (s *TabletopTestSuite) TestHistoryAndMatch() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	history, err := historyRepo.NewRedis(&historyRepo.Config{RedisClient: client})
	s.Require().NoError(err)

	tabletop, gameService := s.newTabletop(history)
	exec := func(line string) {
		_, err := tabletop.Execute(s.ctx, line)
		s.Require().NoError(err, line)
	}

	exec("history")
	s.Contains(s.out.String(), "No finished games yet.")

	exec("join alice Alice")
	exec("join bob Bob")
	exec("start")
	exec("hide alice 1")
	exec("hide alice 1")
	exec("remove alice 1")
	exec("remove alice 1")

	s.out.Reset()
	exec("history")
	s.Contains(s.out.String(), "Recent games")
	s.Contains(s.out.String(), "won by Bob")

	recent, err := gameService.GetRecentMatches(s.ctx, &game.GetRecentMatchesInput{
		GroupID: DefaultGroupID,
	})
	s.Require().NoError(err)
	s.Require().Len(recent.Matches, 1)
	matchID := recent.Matches[0].ID

	s.out.Reset()
	exec("match " + matchID)
	out := s.out.String()
	s.Contains(out, "Game "+matchID)
	s.Contains(out, "Alice")
	s.Contains(out, "Bob is the winner!")
	s.NotContains(out, "Ended with")

	_, err = tabletop.Execute(s.ctx, "match missing")
	s.ErrorIs(err, game.ErrMatchNotFound)
}

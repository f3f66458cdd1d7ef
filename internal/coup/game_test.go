package coup

import (
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/coupd/internal/common/clock/mocks"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/KirkDiggler/coupd/internal/shuffle"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	testTime  time.Time
	game      *Game
}

func (s *GameTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.game = s.newGame("group-1")
}

func (s *GameTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameTestSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

func (s *GameTestSuite) newGame(groupID string) *Game {
	g, err := New(&Config{
		GroupID:       groupID,
		Shuffler:      shuffle.New(&shuffle.Config{Seed: 2024}),
		UUIDGenerator: uuid.New(),
		Clock:         s.mockClock,
	})
	s.Require().NoError(err)
	return g
}

// startWith registers the players, starts the game and deals two cards each
func (s *GameTestSuite) startWith(ids ...string) {
	for _, id := range ids {
		s.Require().NoError(s.game.AddPlayer(id, "name-"+id))
	}
	s.Require().NoError(s.game.Start())
	for _, id := range ids {
		for i := 0; i < 2; i++ {
			_, err := s.game.DealCard(id, false)
			s.Require().NoError(err)
		}
	}
}

func (s *GameTestSuite) assertCirculation() {
	s.game.mu.Lock()
	defer s.game.mu.Unlock()

	held := 0
	for _, p := range s.game.players {
		held += p.HandSize()
	}
	s.Equal(s.game.deck.Total(), s.game.deck.Len()+held)
}

func (s *GameTestSuite) hand(id string) []models.Card {
	cards, err := s.game.Hand(id)
	s.Require().NoError(err)
	return cards
}

func (s *GameTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Clock: s.mockClock, Shuffler: shuffle.New(nil), UUIDGenerator: uuid.New()})
	s.Error(err)

	_, err = New(&Config{GroupID: "g", Shuffler: shuffle.New(nil), UUIDGenerator: uuid.New()})
	s.Error(err)

	_, err = New(&Config{GroupID: "g", Clock: s.mockClock, UUIDGenerator: uuid.New()})
	s.Error(err)
}

func (s *GameTestSuite) TestNewGameIsForming() {
	s.Equal("group-1", s.game.GroupID())
	s.Equal(models.GameStateForming, s.game.State())
	s.False(s.game.Ended())
	s.Empty(s.game.Status())
	s.Equal(0, s.game.DeckSize())
	s.Equal(s.testTime, s.game.CreatedAt())
	s.True(s.game.StartedAt().IsZero())
}

func (s *GameTestSuite) TestAddPlayer_KeepsJoinOrder() {
	s.Require().NoError(s.game.AddPlayer("b", "Bob"))
	s.Require().NoError(s.game.AddPlayer("a", "Alice"))

	s.Equal([]string{"b", "a"}, s.game.PlayerIDs())
	s.True(s.game.HasPlayer("a"))
	s.False(s.game.HasPlayer("c"))

	status := s.game.Status()
	s.Require().Len(status, 2)
	s.Equal("Bob", status[0].Name)
	s.Equal("Alice", status[1].Name)
}

func (s *GameTestSuite) TestAddPlayer_Duplicate() {
	s.Require().NoError(s.game.AddPlayer("a", "Alice"))

	s.ErrorIs(s.game.AddPlayer("a", "Alice again"), models.ErrPlayerAlreadyInGame)
	s.Len(s.game.PlayerIDs(), 1)
}

func (s *GameTestSuite) TestAddPlayer_AfterStart() {
	s.startWith("a", "b")

	s.ErrorIs(s.game.AddPlayer("c", "Carol"), models.ErrGameAlreadyStarted)
	s.Equal([]string{"a", "b"}, s.game.PlayerIDs())
}

func (s *GameTestSuite) TestStart_BuildsDeckForRoster() {
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Require().NoError(s.game.AddPlayer(id, id))
	}

	s.Require().NoError(s.game.Start())

	s.Equal(models.GameStateActive, s.game.State())
	s.Equal(15, s.game.DeckSize())
	s.Equal(15, s.game.TotalCards())
	s.Equal(s.testTime, s.game.StartedAt())
}

func (s *GameTestSuite) TestStart_Twice() {
	s.startWith("a", "b")
	deckBefore := s.game.DeckSize()

	s.ErrorIs(s.game.Start(), models.ErrGameAlreadyStarted)

	s.Equal([]string{"a", "b"}, s.game.PlayerIDs())
	s.Equal(deckBefore, s.game.DeckSize())
	s.Equal(15, s.game.TotalCards())
	s.assertCirculation()
}

func (s *GameTestSuite) TestStart_EmptyRoster() {
	s.ErrorIs(s.game.Start(), models.ErrUnsupportedPlayerCount)
	s.Equal(models.GameStateForming, s.game.State())
}

func (s *GameTestSuite) TestStart_TooManyPlayers() {
	for i := 0; i < 11; i++ {
		s.Require().NoError(s.game.AddPlayer(string(rune('a'+i)), "p"))
	}

	s.ErrorIs(s.game.Start(), models.ErrUnsupportedPlayerCount)
	s.Equal(models.GameStateForming, s.game.State())
	s.Equal(0, s.game.DeckSize())
}

func (s *GameTestSuite) TestDealCard_UnknownPlayer() {
	s.startWith("a")

	_, err := s.game.DealCard("zz", false)
	s.ErrorIs(err, models.ErrPlayerNotInGame)
	s.assertCirculation()
}

func (s *GameTestSuite) TestDealCard_EmptyDeckLeavesPlayerUntouched() {
	s.startWith("a")
	for s.game.DeckSize() > 0 {
		_, err := s.game.DealCard("a", false)
		s.Require().NoError(err)
	}
	before := s.hand("a")

	_, err := s.game.DealCard("a", false)

	s.ErrorIs(err, models.ErrEmptyDeck)
	s.Equal(before, s.hand("a"))
	s.assertCirculation()
}

func (s *GameTestSuite) TestDealCard_BeforeStart() {
	s.Require().NoError(s.game.AddPlayer("a", "Alice"))

	_, err := s.game.DealCard("a", false)
	s.ErrorIs(err, models.ErrGameNotStarted)
	s.Empty(s.hand("a"))
}

func (s *GameTestSuite) TestCardMovement_BeforeStart() {
	s.Require().NoError(s.game.AddPlayer("a", "Alice"))
	s.Require().NoError(s.game.AddPlayer("b", "Bob"))

	cards, err := s.game.ForeignAid("a")
	s.ErrorIs(err, models.ErrGameNotStarted)
	s.Nil(cards)

	s.ErrorIs(s.game.HideCard("a", "card-1"), models.ErrGameNotStarted)
	s.ErrorIs(s.game.ShowCard("a", "card-1"), models.ErrGameNotStarted)

	_, err = s.game.RemoveCard("a", "card-1")
	s.ErrorIs(err, models.ErrGameNotStarted)

	_, err = s.game.Discard("a", "card-1")
	s.ErrorIs(err, models.ErrGameNotStarted)

	s.Equal(models.GameStateForming, s.game.State())
	s.Len(s.game.PlayerIDs(), 2)
}

func (s *GameTestSuite) TestHideShow_ThroughGame() {
	s.startWith("a", "b")
	card := s.hand("a")[0]

	s.Require().NoError(s.game.HideCard("a", card.ID))
	hidden, err := s.game.IsHidden("a", card.ID)
	s.Require().NoError(err)
	s.True(hidden)

	s.ErrorIs(s.game.HideCard("b", card.ID), models.ErrCardNotFound)
	s.ErrorIs(s.game.HideCard("zz", card.ID), models.ErrPlayerNotInGame)
	s.ErrorIs(s.game.ShowCard("zz", card.ID), models.ErrPlayerNotInGame)

	s.Require().NoError(s.game.ShowCard("a", card.ID))
	hidden, err = s.game.IsHidden("a", card.ID)
	s.Require().NoError(err)
	s.False(hidden)
	s.assertCirculation()
}

func (s *GameTestSuite) TestRemoveCard_ReturnsCardToDeck() {
	s.startWith("a", "b")
	card := s.hand("a")[0]
	s.Require().NoError(s.game.HideCard("a", card.ID))
	deckBefore := s.game.DeckSize()

	result, err := s.game.RemoveCard("a", card.ID)
	s.Require().NoError(err)

	s.Equal(card.ID, result.Card.ID)
	s.False(result.Card.Hidden)
	s.True(result.WasHidden)
	s.False(result.Evicted)
	s.False(result.Concluded)
	s.Equal(deckBefore+1, s.game.DeckSize())
	s.Len(s.hand("a"), 1)
	s.assertCirculation()

	_, err = s.game.RemoveCard("a", card.ID)
	s.ErrorIs(err, models.ErrCardNotFound)
	s.Equal(deckBefore+1, s.game.DeckSize())
}

func (s *GameTestSuite) TestRemoveCard_EliminationConcludesTwoPlayerGame() {
	s.startWith("a", "b")
	hand := s.hand("a")

	first, err := s.game.RemoveCard("a", hand[0].ID)
	s.Require().NoError(err)
	s.False(first.Evicted)

	second, err := s.game.RemoveCard("a", hand[1].ID)
	s.Require().NoError(err)

	s.True(second.Evicted)
	s.True(second.Concluded)
	s.Equal([]string{"b"}, s.game.PlayerIDs())
	s.True(s.game.Ended())
	s.Equal(s.testTime, s.game.EndedAt())

	winner, ok := s.game.Winner()
	s.True(ok)
	s.Equal("b", winner.PlayerID)
	s.Equal(2, winner.HandSize())
	s.assertCirculation()
}

func (s *GameTestSuite) TestRemoveCard_EliminationKeepsLargerGameActive() {
	s.startWith("a", "b", "c")
	for _, card := range s.hand("a") {
		_, err := s.game.RemoveCard("a", card.ID)
		s.Require().NoError(err)
	}

	s.False(s.game.Ended())
	s.Equal([]string{"b", "c"}, s.game.PlayerIDs())
	_, ok := s.game.Winner()
	s.False(ok)

	_, err := s.game.DealCard("a", false)
	s.ErrorIs(err, models.ErrPlayerNotInGame)
	s.assertCirculation()
}

func (s *GameTestSuite) TestConcludedGameRejectsCardMovement() {
	s.startWith("a", "b")
	for _, card := range s.hand("a") {
		_, err := s.game.RemoveCard("a", card.ID)
		s.Require().NoError(err)
	}
	card := s.hand("b")[0]

	_, err := s.game.DealCard("b", false)
	s.ErrorIs(err, models.ErrGameConcluded)
	_, err = s.game.ForeignAid("b")
	s.ErrorIs(err, models.ErrGameConcluded)
	_, err = s.game.RemoveCard("b", card.ID)
	s.ErrorIs(err, models.ErrGameConcluded)
	s.ErrorIs(s.game.HideCard("b", card.ID), models.ErrGameConcluded)
	s.ErrorIs(s.game.AddPlayer("c", "Carol"), models.ErrGameAlreadyStarted)
	s.ErrorIs(s.game.Start(), models.ErrGameAlreadyStarted)
	s.assertCirculation()
}

func (s *GameTestSuite) TestForeignAid_DoublesHand() {
	s.startWith("a", "b")

	cards, err := s.game.ForeignAid("a")
	s.Require().NoError(err)

	s.Len(cards, 2)
	s.Len(s.hand("a"), 4)
	status := s.game.Status()[0]
	s.Equal(2, status.ForeignAidPending)
	s.Equal(4, status.OpenCount)
	s.assertCirculation()

	_, err = s.game.ForeignAid("a")
	s.ErrorIs(err, models.ErrForeignAidInProgress)
	s.Len(s.hand("a"), 4)
}

func (s *GameTestSuite) TestForeignAid_ResolvedByDiscards() {
	s.startWith("a", "b")
	s.Require().NoError(s.game.HideCard("a", s.hand("a")[0].ID))
	dealt, err := s.game.ForeignAid("a")
	s.Require().NoError(err)

	first, err := s.game.RemoveCard("a", dealt[0].ID)
	s.Require().NoError(err)
	s.True(first.ForeignAid)
	s.False(first.ForeignAidResolved)
	s.False(first.WasHidden)

	second, err := s.game.RemoveCard("a", dealt[1].ID)
	s.Require().NoError(err)
	s.True(second.ForeignAid)
	s.True(second.ForeignAidResolved)

	s.Equal(0, s.game.Status()[0].ForeignAidPending)
	s.Len(s.hand("a"), 2)

	again, err := s.game.ForeignAid("a")
	s.Require().NoError(err)
	s.Len(again, 2)
	s.assertCirculation()
}

func (s *GameTestSuite) TestForeignAid_ShortDeckDealsNothing() {
	s.startWith("a")
	for s.game.DeckSize() > 1 {
		_, err := s.game.DealCard("a", false)
		s.Require().NoError(err)
	}
	before := s.hand("a")

	_, err := s.game.ForeignAid("a")

	s.ErrorIs(err, models.ErrEmptyDeck)
	s.Equal(before, s.hand("a"))
	s.Equal(0, s.game.Status()[0].ForeignAidPending)
	s.assertCirculation()
}

func (s *GameTestSuite) TestForeignAid_UnknownPlayer() {
	s.startWith("a", "b")

	_, err := s.game.ForeignAid("zz")
	s.ErrorIs(err, models.ErrPlayerNotInGame)
}

func (s *GameTestSuite) TestWithdraw_ReturnsHand() {
	s.startWith("a", "b", "c")
	deckBefore := s.game.DeckSize()

	result, err := s.game.Withdraw("b")
	s.Require().NoError(err)

	s.Len(result.Cards, 2)
	s.False(result.Concluded)
	s.Equal(deckBefore+2, s.game.DeckSize())
	s.Equal([]string{"a", "c"}, s.game.PlayerIDs())
	s.assertCirculation()

	result, err = s.game.Withdraw("c")
	s.Require().NoError(err)
	s.True(result.Concluded)
	s.True(s.game.Ended())

	winner, ok := s.game.Winner()
	s.True(ok)
	s.Equal("a", winner.PlayerID)
	s.assertCirculation()
}

func (s *GameTestSuite) TestWithdraw_WhileForming() {
	s.Require().NoError(s.game.AddPlayer("a", "Alice"))
	s.Require().NoError(s.game.AddPlayer("b", "Bob"))

	result, err := s.game.Withdraw("a")
	s.Require().NoError(err)

	s.Empty(result.Cards)
	s.False(result.Concluded)
	s.Equal(models.GameStateForming, s.game.State())
	s.Equal([]string{"b"}, s.game.PlayerIDs())
	s.Len(s.game.Participants(), 2)
}

func (s *GameTestSuite) TestForceConclude_ReturnsHoldings() {
	s.startWith("a", "b", "c")
	s.Require().NoError(s.game.HideCard("b", s.hand("b")[0].ID))

	holdings := s.game.ForceConclude()

	s.Require().Len(holdings, 3)
	s.Equal("a", holdings[0].PlayerID)
	s.Equal("name-b", holdings[1].Name)
	for _, h := range holdings {
		s.Len(h.Cards, 2)
	}
	s.True(holdings[1].Cards[1].Hidden)

	s.True(s.game.Ended())
	s.Empty(s.game.PlayerIDs())
	s.Equal(s.game.TotalCards(), s.game.DeckSize())
	_, ok := s.game.Winner()
	s.False(ok)
	s.assertCirculation()

	s.Empty(s.game.ForceConclude())
}

func (s *GameTestSuite) TestForceConclude_WhileForming() {
	s.Require().NoError(s.game.AddPlayer("a", "Alice"))

	holdings := s.game.ForceConclude()

	s.Require().Len(holdings, 1)
	s.Empty(holdings[0].Cards)
	s.True(s.game.Ended())
}

func (s *GameTestSuite) TestDiscard_OpenCardIsReplaced() {
	s.startWith("a", "b")
	card := s.hand("a")[0]

	result, err := s.game.Discard("a", card.ID)
	s.Require().NoError(err)

	s.Require().NotNil(result.Replacement)
	s.False(result.Evicted)
	s.NotEqual(card.ID, result.Replacement.ID)
	s.Len(s.hand("a"), 2)
	s.assertCirculation()
}

func (s *GameTestSuite) TestDiscard_NoReplacementForHiddenOrForeignAid() {
	s.startWith("a", "b")
	card := s.hand("a")[0]
	s.Require().NoError(s.game.HideCard("a", card.ID))

	result, err := s.game.Discard("a", card.ID)
	s.Require().NoError(err)
	s.True(result.WasHidden)
	s.Nil(result.Replacement)
	s.Len(s.hand("a"), 1)

	dealt, err := s.game.ForeignAid("a")
	s.Require().NoError(err)
	s.Require().Len(dealt, 1)

	result, err = s.game.Discard("a", dealt[0].ID)
	s.Require().NoError(err)
	s.True(result.ForeignAid)
	s.Nil(result.Replacement)
	s.Len(s.hand("a"), 1)
	s.assertCirculation()
}

func (s *GameTestSuite) TestDiscard_LastCardEvictsWithoutReplacement() {
	s.startWith("a", "b", "c")
	cards := s.hand("a")
	s.Require().NoError(s.game.HideCard("a", cards[0].ID))

	_, err := s.game.Discard("a", cards[0].ID)
	s.Require().NoError(err)

	result, err := s.game.Discard("a", cards[1].ID)
	s.Require().NoError(err)
	s.True(result.Evicted)
	s.Nil(result.Replacement)
	s.False(s.game.HasPlayer("a"))
	s.assertCirculation()
}

func (s *GameTestSuite) TestDiscard_ConcurrentOpenDiscardsKeepThePlayer() {
	for run := 0; run < 200; run++ {
		s.game = s.newGame("group-1")
		s.startWith("a", "b", "c")
		cards := s.hand("a")
		s.Require().Len(cards, 2)

		start := make(chan struct{})
		var wg sync.WaitGroup
		for _, card := range cards {
			wg.Add(1)
			go func(cardID string) {
				defer wg.Done()
				<-start
				_, err := s.game.Discard("a", cardID)
				s.NoError(err)
			}(card.ID)
		}
		close(start)
		wg.Wait()

		s.Require().True(s.game.HasPlayer("a"), "run %d", run)
		s.Len(s.hand("a"), 2)
		s.assertCirculation()
	}
}

func (s *GameTestSuite) TestCirculationUnderConcurrentPlay() {
	ids := []string{"a", "b", "c", "d", "e"}
	s.startWith(ids...)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				cards, err := s.game.Hand(id)
				if err != nil || len(cards) == 0 {
					return
				}
				_ = s.game.HideCard(id, cards[0].ID)
				if _, err := s.game.ForeignAid(id); err == nil {
					if dealt, err := s.game.Hand(id); err == nil {
						_, _ = s.game.RemoveCard(id, dealt[len(dealt)-1].ID)
					}
				}
				_, _ = s.game.DealCard(id, false)
				if cards, err := s.game.Hand(id); err == nil && len(cards) > 0 {
					_, _ = s.game.RemoveCard(id, cards[0].ID)
				}
			}
		}(id)
	}
	wg.Wait()

	s.assertCirculation()
}

package deck

import (
	"testing"

	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/deck/mocks"
	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/KirkDiggler/coupd/internal/shuffle"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DeckTestSuite struct {
	suite.Suite
	deck *Deck
}

func (s *DeckTestSuite) SetupTest() {
	d, err := New(&Config{
		Shuffler:      shuffle.New(&shuffle.Config{Seed: 99}),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.deck = d
}

func TestDeckTestSuite(t *testing.T) {
	suite.Run(t, new(DeckTestSuite))
}

func (s *DeckTestSuite) countByInfluence() map[models.Influence]int {
	counts := make(map[models.Influence]int)
	for _, c := range s.deck.Cards() {
		counts[c.Influence]++
	}
	return counts
}

func (s *DeckTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{UUIDGenerator: uuid.New()})
	s.Error(err)

	_, err = New(&Config{Shuffler: shuffle.New(nil)})
	s.Error(err)
}

func (s *DeckTestSuite) TestBuild_SizesByPlayerCount() {
	tests := []struct {
		players      int
		total        int
		perInfluence int
	}{
		{players: 1, total: 15, perInfluence: 3},
		{players: 4, total: 15, perInfluence: 3},
		{players: 6, total: 15, perInfluence: 3},
		{players: 7, total: 20, perInfluence: 4},
		{players: 8, total: 20, perInfluence: 4},
		{players: 9, total: 25, perInfluence: 5},
		{players: 10, total: 25, perInfluence: 5},
	}

	for _, tt := range tests {
		s.Require().NoError(s.deck.Build(tt.players))
		s.Equal(tt.total, s.deck.Len(), "players=%d", tt.players)
		s.Equal(tt.total, s.deck.Total(), "players=%d", tt.players)

		counts := s.countByInfluence()
		s.Len(counts, len(models.Influences))
		for _, influence := range models.Influences {
			s.Equal(tt.perInfluence, counts[influence], "players=%d influence=%s", tt.players, influence)
		}
	}
}

func (s *DeckTestSuite) TestBuild_UnsupportedPlayerCount() {
	for _, n := range []int{-1, 0, 11, 100} {
		err := s.deck.Build(n)
		s.ErrorIs(err, models.ErrUnsupportedPlayerCount, "players=%d", n)
		s.Equal(0, s.deck.Len())
		s.Equal(0, s.deck.Total())
	}
}

func (s *DeckTestSuite) TestBuild_FailureKeepsExistingDeck() {
	s.Require().NoError(s.deck.Build(4))

	s.ErrorIs(s.deck.Build(11), models.ErrUnsupportedPlayerCount)
	s.Equal(15, s.deck.Len())
}

func (s *DeckTestSuite) TestBuild_CardIDsAreUnique() {
	s.Require().NoError(s.deck.Build(10))

	seen := make(map[string]bool)
	for _, c := range s.deck.Cards() {
		s.NotEmpty(c.ID)
		s.False(seen[c.ID], "duplicate card id %s", c.ID)
		seen[c.ID] = true
	}
}

func (s *DeckTestSuite) TestDraw_UntilEmpty() {
	s.Require().NoError(s.deck.Build(2))

	for i := 15; i > 0; i-- {
		card, err := s.deck.Draw()
		s.Require().NoError(err)
		s.NotNil(card)
		s.Equal(i-1, s.deck.Len())
	}

	card, err := s.deck.Draw()
	s.ErrorIs(err, models.ErrEmptyDeck)
	s.Nil(card)
}

func (s *DeckTestSuite) TestDraw_EmptyUnbuiltDeck() {
	_, err := s.deck.Draw()
	s.ErrorIs(err, models.ErrEmptyDeck)
}

func (s *DeckTestSuite) TestReturnAndReshuffle_ClearsHiddenAndRestoresCount() {
	s.Require().NoError(s.deck.Build(3))

	card, err := s.deck.Draw()
	s.Require().NoError(err)
	card.Hidden = true

	s.deck.ReturnAndReshuffle(card)

	s.Equal(15, s.deck.Len())
	s.False(card.Hidden)

	found := 0
	for _, c := range s.deck.Cards() {
		s.False(c.Hidden)
		if c.ID == card.ID {
			found++
		}
	}
	s.Equal(1, found)
}

func (s *DeckTestSuite) TestTotalFor() {
	total, err := TotalFor(9)
	s.NoError(err)
	s.Equal(25, total)

	_, err = TotalFor(11)
	s.ErrorIs(err, models.ErrUnsupportedPlayerCount)
}

func TestReturnAndReshuffle_ReshufflesEveryReturn(t *testing.T) {
	ctrl := gomock.NewController(t)
	shuffler := mocks.NewMockShuffler(ctrl)

	d, err := New(&Config{Shuffler: shuffler, UUIDGenerator: uuid.New()})
	if err != nil {
		t.Fatal(err)
	}

	shuffler.EXPECT().Shuffle(15, gomock.Any())
	if err := d.Build(5); err != nil {
		t.Fatal(err)
	}

	first, _ := d.Draw()
	second, _ := d.Draw()

	gomock.InOrder(
		shuffler.EXPECT().Shuffle(14, gomock.Any()),
		shuffler.EXPECT().Shuffle(15, gomock.Any()),
	)
	d.ReturnAndReshuffle(first)
	d.ReturnAndReshuffle(second)
}

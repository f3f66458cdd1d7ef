package coup

import (
	"testing"

	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/stretchr/testify/suite"
)

type PlayerTestSuite struct {
	suite.Suite
	player *Player
	duke   *models.Card
	duke2  *models.Card
	capt   *models.Card
}

func (s *PlayerTestSuite) SetupTest() {
	s.player = NewPlayer("user-1", "Alice")
	s.duke = &models.Card{ID: "card-1", Influence: models.InfluenceDuke}
	s.duke2 = &models.Card{ID: "card-2", Influence: models.InfluenceDuke}
	s.capt = &models.Card{ID: "card-3", Influence: models.InfluenceCaptain}
}

func TestPlayerTestSuite(t *testing.T) {
	suite.Run(t, new(PlayerTestSuite))
}

func (s *PlayerTestSuite) TestAddCard() {
	s.player.AddCard(s.duke, false)
	s.player.AddCard(s.capt, true)

	s.Equal(2, s.player.HandSize())
	s.Equal(1, s.player.ForeignAidPending())

	status := s.player.Status()
	s.Equal("user-1", status.PlayerID)
	s.Equal("Alice", status.Name)
	s.Equal(2, status.OpenCount)
	s.Equal(0, status.HiddenCount)
}

func (s *PlayerTestSuite) TestHideThenShowRestoresMembership() {
	s.player.AddCard(s.duke, true)
	s.player.AddCard(s.capt, false)

	s.Require().NoError(s.player.Hide(s.duke.ID))
	hidden, err := s.player.IsHidden(s.duke.ID)
	s.Require().NoError(err)
	s.True(hidden)
	s.True(s.duke.Hidden)
	s.Equal(1, s.player.Status().HiddenCount)

	s.Require().NoError(s.player.Show(s.duke.ID))
	hidden, err = s.player.IsHidden(s.duke.ID)
	s.Require().NoError(err)
	s.False(hidden)
	s.False(s.duke.Hidden)

	s.Equal(2, s.player.HandSize())
	s.Equal(1, s.player.ForeignAidPending())
	s.Equal(models.PlayerStatus{
		PlayerID:          "user-1",
		Name:              "Alice",
		OpenCount:         2,
		ForeignAidPending: 1,
	}, s.player.Status())
}

func (s *PlayerTestSuite) TestHide_RequiresOpenCard() {
	s.player.AddCard(s.duke, false)
	s.Require().NoError(s.player.Hide(s.duke.ID))

	s.ErrorIs(s.player.Hide(s.duke.ID), models.ErrCardNotFound)
	s.ErrorIs(s.player.Hide("missing"), models.ErrCardNotFound)
}

func (s *PlayerTestSuite) TestShow_RequiresHiddenCard() {
	s.player.AddCard(s.duke, false)

	s.ErrorIs(s.player.Show(s.duke.ID), models.ErrCardNotFound)
	s.Equal(1, s.player.Status().OpenCount)
}

func (s *PlayerTestSuite) TestIdentityNotInfluence() {
	s.player.AddCard(s.duke, false)
	s.player.AddCard(s.duke2, false)

	s.Require().NoError(s.player.Hide(s.duke2.ID))

	hidden, err := s.player.IsHidden(s.duke.ID)
	s.Require().NoError(err)
	s.False(hidden)

	hidden, err = s.player.IsHidden(s.duke2.ID)
	s.Require().NoError(err)
	s.True(hidden)
}

func (s *PlayerTestSuite) TestRemove_HiddenAndOpen() {
	s.player.AddCard(s.duke, false)
	s.player.AddCard(s.capt, false)
	s.Require().NoError(s.player.Hide(s.capt.ID))

	card, wasHidden, err := s.player.Remove(s.capt.ID)
	s.Require().NoError(err)
	s.Same(s.capt, card)
	s.True(wasHidden)

	card, wasHidden, err = s.player.Remove(s.duke.ID)
	s.Require().NoError(err)
	s.Same(s.duke, card)
	s.False(wasHidden)

	s.Equal(0, s.player.HandSize())
}

func (s *PlayerTestSuite) TestRemove_NotHeld() {
	s.player.AddCard(s.duke, true)

	_, _, err := s.player.Remove("missing")
	s.ErrorIs(err, models.ErrCardNotFound)
	s.Equal(1, s.player.HandSize())
	s.Equal(1, s.player.ForeignAidPending())
}

func (s *PlayerTestSuite) TestRemove_DecrementsForeignAidWithFloor() {
	s.player.AddCard(s.duke, false)
	s.player.AddCard(s.duke2, true)
	s.player.AddCard(s.capt, true)
	s.Equal(2, s.player.ForeignAidPending())

	_, _, err := s.player.Remove(s.duke.ID)
	s.Require().NoError(err)
	s.Equal(1, s.player.ForeignAidPending())

	_, _, err = s.player.Remove(s.capt.ID)
	s.Require().NoError(err)
	s.Equal(0, s.player.ForeignAidPending())

	_, _, err = s.player.Remove(s.duke2.ID)
	s.Require().NoError(err)
	s.Equal(0, s.player.ForeignAidPending())
}

func (s *PlayerTestSuite) TestIsHidden_NotHeld() {
	_, err := s.player.IsHidden("missing")
	s.ErrorIs(err, models.ErrCardNotFound)
}

func (s *PlayerTestSuite) TestCards_OpenFirst() {
	s.player.AddCard(s.duke, false)
	s.player.AddCard(s.capt, false)
	s.Require().NoError(s.player.Hide(s.duke.ID))

	cards := s.player.Cards()
	s.Require().Len(cards, 2)
	s.Equal(s.capt.ID, cards[0].ID)
	s.Equal(s.duke.ID, cards[1].ID)
	s.True(cards[1].Hidden)
}

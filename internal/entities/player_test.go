package entities_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

type PlayerTestSuite struct {
	suite.Suite
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerTestSuite))
}

func (s *PlayerTestSuite) TestClampStaysInRange() {
	deltas := []int{-1000, -101, -100, -15, -1, 0, 1, 15, 100, 101, 1000}
	for _, start := range []int{0, 1, 50, 99, 100} {
		current := start
		for _, d := range deltas {
			current = entities.Clamp(current, d, entities.MaxStat)
			s.GreaterOrEqual(current, 0)
			s.LessOrEqual(current, entities.MaxStat)
		}
	}

	s.Equal(0, entities.Clamp(10, -15, 100))
	s.Equal(100, entities.Clamp(95, 10, 100))
	s.Equal(42, entities.Clamp(50, -8, 100))
}

func (s *PlayerTestSuite) TestClampSaturatesExtremeDeltas() {
	s.Equal(100, entities.Clamp(100, math.MaxInt, 100))
	s.Equal(100, entities.Clamp(1, math.MaxInt, 100))
	s.Equal(0, entities.Clamp(100, math.MinInt, 100))
	s.Equal(0, entities.Clamp(0, math.MinInt, 100))
	s.Equal(100, entities.Clamp(math.MaxInt, 0, 100))

	s.Equal(entities.MaxStat, entities.BoundDelta(math.MaxInt))
	s.Equal(-entities.MaxStat, entities.BoundDelta(math.MinInt))
	s.Equal(-17, entities.BoundDelta(-17))
}

func (s *PlayerTestSuite) TestTrimHistory() {
	var history []entities.ConversationEntry
	for i := 0; i < 15; i++ {
		history = append(history, entities.ConversationEntry{
			Role:    entities.RoleUser,
			Content: fmt.Sprintf("msg %d", i),
		})
	}

	trimmed := entities.TrimHistory(history, 10)
	s.Len(trimmed, 10)
	s.Equal("msg 5", trimmed[0].Content)
	s.Equal("msg 14", trimmed[9].Content)

	s.Len(entities.TrimHistory(history[:3], 10), 3)
}

func (s *PlayerTestSuite) TestCloneIsDeep() {
	p := &entities.Player{ID: "p1", Inventory: []string{"lantern"}}
	c := p.Clone()
	c.Inventory[0] = "knife"
	s.Equal("lantern", p.Inventory[0])
}

func (s *PlayerTestSuite) TestOutcomeHelpers() {
	failed := entities.FailedOutcome("the dark swallows your words")
	s.False(failed.Success)
	s.Zero(failed.HPDelta)
	s.Zero(failed.SanityDelta)
	_, moves := failed.MovesTo()
	s.False(moves)

	moved := &entities.ActionOutcome{NewLocationID: "loc_2"}
	dest, ok := moved.MovesTo()
	s.True(ok)
	s.Equal("loc_2", dest)

	s.True(entities.ActionFlee.Valid())
	s.False(entities.ActionKind("dance").Valid())
}

package rpgtoolkit_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/engine"
	"github.com/KirkDiggler/horror-bot/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// scriptedRoller returns queued values and records the die sizes it was asked for
type scriptedRoller struct {
	values []int
	sizes  []int
	err    error
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	r.sizes = append(r.sizes, size)
	if r.err != nil {
		return 0, r.err
	}
	if len(r.values) == 0 {
		return 1, nil
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type AdapterTestSuite struct {
	suite.Suite
	roller  *scriptedRoller
	adapter *rpgtoolkit.Adapter
	ctx     context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

func (s *AdapterTestSuite) SetupTest() {
	s.roller = &scriptedRoller{}
	s.ctx = context.Background()

	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{DiceRoller: s.roller})
	s.Require().NoError(err)
	s.adapter = adapter
}

func (s *AdapterTestSuite) TestNewAdapterValidation() {
	_, err := rpgtoolkit.NewAdapter(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{})
	s.True(errors.IsInvalidArgument(err))

	bad := engine.DefaultRateConfig()
	bad.MinRate = 0.9
	bad.MaxRate = 0.1
	_, err = rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{DiceRoller: s.roller, Rates: &bad})
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestCheckSuccess() {
	// accuracy 50, sanity 50 -> rate 0.65
	player := &entities.Player{Accuracy: 50, Agility: 0, Sanity: 50}

	testCases := []struct {
		name string
		roll int
		want bool
	}{
		{"low roll succeeds", 1, true},
		{"boundary roll succeeds", 65, true},
		{"high roll fails", 66, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.values = []int{tc.roll}
			out, err := s.adapter.CheckSuccess(s.ctx, &engine.CheckSuccessInput{
				Kind:   entities.ActionAttack,
				Player: player,
			})
			s.Require().NoError(err)
			s.Equal(tc.want, out.Success)
			s.InDelta(0.65, out.Rate, 1e-9)
			s.Equal(tc.roll, out.Roll)
		})
	}

	s.Equal(100, s.roller.sizes[0])
}

func (s *AdapterTestSuite) TestCheckSuccessErrors() {
	_, err := s.adapter.CheckSuccess(s.ctx, &engine.CheckSuccessInput{Kind: "dance", Player: &entities.Player{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.adapter.CheckSuccess(s.ctx, &engine.CheckSuccessInput{Kind: entities.ActionFlee})
	s.True(errors.IsInvalidArgument(err))

	s.roller.err = fmt.Errorf("entropy exhausted")
	_, err = s.adapter.CheckSuccess(s.ctx, &engine.CheckSuccessInput{
		Kind: entities.ActionSearch, Player: &entities.Player{Sanity: 80},
	})
	s.True(errors.IsInternal(err))
}

func (s *AdapterTestSuite) TestRollStatsRange() {
	base := engine.Stats{HP: 100, Sanity: 90, Agility: 60, Accuracy: 40}

	// spreads: hp 15, sanity 13, agility 9, accuracy 6
	s.roller.values = []int{1, 27, 10, 13}
	out, err := s.adapter.RollStats(s.ctx, &engine.RollStatsInput{Base: base})
	s.Require().NoError(err)

	s.Equal(85, out.Stats.HP)
	s.Equal(100, out.Stats.Sanity) // 90+13 clamped
	s.Equal(60, out.Stats.Agility)
	s.Equal(46, out.Stats.Accuracy)
	s.Equal([]int{31, 27, 19, 13}, s.roller.sizes)
}

func (s *AdapterTestSuite) TestRollStatsClampsSkills() {
	s.roller.values = []int{1, 1, 1, 115}
	out, err := s.adapter.RollStats(s.ctx, &engine.RollStatsInput{
		Base:             engine.Stats{HP: 5, Sanity: 5, Agility: 12, Accuracy: 190},
		VariationPercent: 30,
	})
	s.Require().NoError(err)
	s.GreaterOrEqual(out.Stats.HP, engine.MinVital)
	s.Equal(10, out.Stats.Agility)
	s.Equal(200, out.Stats.Accuracy)
}

func (s *AdapterTestSuite) TestPick() {
	s.roller.values = []int{3}
	idx, err := s.adapter.Pick(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(2, idx)

	idx, err = s.adapter.Pick(s.ctx, 1)
	s.Require().NoError(err)
	s.Zero(idx)

	_, err = s.adapter.Pick(s.ctx, 0)
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestEntitiesImplementCore() {
	var _ core.Entity = rpgtoolkit.WrapGame("game_1")
	var p core.Entity = rpgtoolkit.WrapPlayer(&entities.Player{ID: "p1"})
	s.Equal("p1", p.GetID())
	s.Equal(rpgtoolkit.EntityTypePlayer, p.GetType())
}

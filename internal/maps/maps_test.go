package maps_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	enginemock "github.com/KirkDiggler/horror-bot/internal/engine/mock"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/maps"
)

type GeneratorTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockEngine *enginemock.MockEngine
	generator  *maps.Generator
	ctx        context.Context
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (s *GeneratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.ctx = context.Background()

	g, err := maps.NewGenerator(&maps.Config{Engine: s.mockEngine})
	s.Require().NoError(err)
	s.generator = g
}

func (s *GeneratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *GeneratorTestSuite) TestTwoFloorsNoHoles() {
	// every Pick returns the last index: max sizes, no holes, stairwells at the last room
	s.mockEngine.EXPECT().Pick(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n int) (int, error) { return n - 1, nil }).
		AnyTimes()

	out, err := s.generator.Generate(s.ctx, &maps.GenerateInput{
		GameID:   "game_1",
		Scenario: &catalog.Scenario{ID: "asylum", MinFloors: 1, MaxFloors: 2, Rooms: []string{"Ward", "Cell"}},
	})
	s.Require().NoError(err)

	// 5x4 grid per floor
	s.Require().Len(out.Locations, 40)
	start := out.Locations[0]
	s.True(start.Start)
	s.Equal(1, start.Floor)
	s.Equal("Ward", start.Name)
	s.Equal("Cell", out.Locations[1].Name)
	s.Equal("Ward 2", out.Locations[2].Name)

	starts := 0
	byID := map[string]*entities.Location{}
	for _, l := range out.Locations {
		byID[l.ID] = l
		if l.Start {
			starts++
		}
		s.Equal("game_1", l.GameID)
	}
	s.Equal(1, starts)

	// exits are symmetric
	for _, l := range out.Locations {
		for _, exit := range l.Exits {
			s.Contains(byID[exit].Exits, l.ID)
		}
	}

	// floors are linked by exactly one stairwell
	crossings := 0
	for _, l := range out.Locations {
		for _, exit := range l.Exits {
			if byID[exit].Floor != l.Floor {
				crossings++
			}
		}
	}
	s.Equal(2, crossings)
}

func (s *GeneratorTestSuite) TestHolesKeepFloorConnected() {
	// minimum sizes, every non-origin cell is a hole
	s.mockEngine.EXPECT().Pick(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

	out, err := s.generator.Generate(s.ctx, &maps.GenerateInput{
		GameID:   "game_1",
		Scenario: &catalog.Scenario{ID: "mine", MinFloors: 2, MaxFloors: 2},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Locations, 2)
	s.Equal([]string{out.Locations[1].ID}, out.Locations[0].Exits)
	s.Equal("Room", out.Locations[0].Name)
}

func (s *GeneratorTestSuite) TestValidation() {
	_, err := s.generator.Generate(s.ctx, &maps.GenerateInput{GameID: "g"})
	s.True(errors.IsInvalidArgument(err))

	_, err = maps.NewGenerator(&maps.Config{})
	s.True(errors.IsInvalidArgument(err))
}

package rating_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/rating"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
	"github.com/KirkDiggler/horror-bot/internal/testutils"
	"github.com/KirkDiggler/horror-bot/internal/testutils/builders"
)

const gameID = "game_1"

type RatingTestSuite struct {
	suite.Suite
	playerRepo *players.InMemoryRepository
	gameRepo   *games.InMemoryRepository
	catalog    *catalog.Catalog
	svc        rating.Service
	ctx        context.Context
}

func TestRatingSuite(t *testing.T) {
	suite.Run(t, new(RatingTestSuite))
}

func (s *RatingTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.playerRepo = players.NewInMemory()
	s.gameRepo = games.NewInMemory()

	var err error
	s.catalog, err = catalog.Load()
	s.Require().NoError(err)

	s.svc, err = rating.NewOrchestrator(&rating.Config{
		PlayerRepo: s.playerRepo,
		GameRepo:   s.gameRepo,
		Objectives: s.catalog,
	})
	s.Require().NoError(err)
}

func (s *RatingTestSuite) addPlayer(p *entities.Player) {
	_, err := s.playerRepo.Create(s.ctx, &players.CreateInput{Player: p})
	s.Require().NoError(err)
}

func (s *RatingTestSuite) addGame(scenarioID string) {
	g := testutils.CreateTestGame(gameID)
	g.ScenarioID = scenarioID
	_, err := s.gameRepo.Create(s.ctx, &games.CreateInput{Game: g})
	s.Require().NoError(err)
}

func (s *RatingTestSuite) TestEvaluate() {
	s.addGame("asylum")
	s.addPlayer(builders.NewPlayerBuilder().WithID("p1").WithGameID(gameID).WithName("Mara").
		WithVitals(100, 100).WithSkills(50, 50).Build())
	s.addPlayer(builders.NewPlayerBuilder().WithID("p2").WithGameID(gameID).WithName("Theo").
		WithVitals(0, 50).WithSkills(50, 50).Build())

	eval, err := s.svc.Evaluate(s.ctx, gameID)
	s.Require().NoError(err)
	s.Require().NotNil(eval)

	s.Equal(gameID, eval.GameID)
	s.Equal(s.catalog.Objectives("asylum"), eval.Objectives)
	s.NotEmpty(eval.Objectives)
	s.Require().Len(eval.Players, 2)

	s.Equal("p1", eval.Players[0].PlayerID)
	s.Equal(entities.GradeB, eval.Players[0].Grade)
	s.InDelta(0.67, eval.Players[0].Score, 1e-9)
	s.Equal("Survived in good shape (HP: 100/100, Sanity: 100/100).", eval.Players[0].Reason)

	s.Equal(entities.GradeD, eval.Players[1].Grade)
	s.InDelta(0.275, eval.Players[1].Score, 1e-9)
	s.Equal(rating.ReasonEliminated, eval.Players[1].Reason)

	s.Equal(entities.GradeB, eval.OverallGrade)
}

func (s *RatingTestSuite) TestNoPlayersYieldsNothing() {
	s.addGame("asylum")

	eval, err := s.svc.Evaluate(s.ctx, gameID)
	s.NoError(err)
	s.Nil(eval)
}

func (s *RatingTestSuite) TestUnknownScenarioHasNoObjectives() {
	s.addGame("lighthouse")
	s.addPlayer(builders.NewPlayerBuilder().WithID("p1").WithGameID(gameID).Build())

	eval, err := s.svc.Evaluate(s.ctx, gameID)
	s.Require().NoError(err)
	s.Require().NotNil(eval)
	s.Empty(eval.Objectives)
	s.NotNil(eval.Objectives)
}

func (s *RatingTestSuite) TestMissingGameStillEvaluates() {
	s.addPlayer(builders.NewPlayerBuilder().WithID("p1").WithGameID(gameID).Build())

	eval, err := s.svc.Evaluate(s.ctx, gameID)
	s.Require().NoError(err)
	s.Require().NotNil(eval)
	s.Empty(eval.Objectives)
}

func (s *RatingTestSuite) TestValidation() {
	_, err := s.svc.Evaluate(s.ctx, "")
	s.True(errors.IsInvalidArgument(err))

	_, err = rating.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = rating.NewOrchestrator(&rating.Config{PlayerRepo: s.playerRepo})
	s.True(errors.IsInvalidArgument(err))
}

type ScoreTestSuite struct {
	suite.Suite
}

func TestScoreSuite(t *testing.T) {
	suite.Run(t, new(ScoreTestSuite))
}

func player(hp, sanity, agility, accuracy int) *entities.Player {
	return builders.NewPlayerBuilder().WithVitals(hp, sanity).WithSkills(agility, accuracy).Build()
}

func (s *ScoreTestSuite) TestScoreBounds() {
	s.InDelta(0.84, rating.Score(player(100, 100, 100, 100)), 1e-9)
	s.InDelta(0.0, rating.Score(player(0, 0, 0, 0)), 1e-9)
	s.InDelta(0.84, rating.Score(player(100, 100, 200, 200)), 1e-9)
}

func (s *ScoreTestSuite) TestGradeIsMonotonicInVitals() {
	rank := map[entities.Grade]int{
		entities.GradeF: 0, entities.GradeD: 1, entities.GradeC: 2, entities.GradeB: 3,
		entities.GradeA: 4, entities.GradeS: 5, entities.GradeSS: 6,
	}

	for _, skills := range [][2]int{{10, 10}, {50, 50}, {61, 20}, {100, 100}, {150, 40}} {
		for hp := 0; hp <= 100; hp += 5 {
			for sanity := 0; sanity <= 100; sanity += 5 {
				base := rating.Score(player(hp, sanity, skills[0], skills[1]))
				moreHP := rating.Score(player(min(hp+5, 100), sanity, skills[0], skills[1]))
				moreSanity := rating.Score(player(hp, min(sanity+5, 100), skills[0], skills[1]))

				s.GreaterOrEqual(moreHP, base)
				s.GreaterOrEqual(moreSanity, base)
				s.GreaterOrEqual(rank[rating.PlayerGrade(moreHP)], rank[rating.PlayerGrade(base)])
				s.GreaterOrEqual(rank[rating.PlayerGrade(moreSanity)], rank[rating.PlayerGrade(base)])
			}
		}
	}
}

func (s *ScoreTestSuite) TestGradeThresholds() {
	testCases := []struct {
		score   float64
		player  entities.Grade
		overall entities.Grade
	}{
		{0.95, entities.GradeSS, entities.GradeSS},
		{0.86, entities.GradeS, entities.GradeSS},
		{0.80, entities.GradeA, entities.GradeS},
		{0.65, entities.GradeB, entities.GradeA},
		{0.50, entities.GradeC, entities.GradeB},
		{0.35, entities.GradeD, entities.GradeC},
		{0.20, entities.GradeF, entities.GradeD},
		{0.10, entities.GradeF, entities.GradeF},
	}

	for _, tc := range testCases {
		s.Equal(tc.player, rating.PlayerGrade(tc.score), "player grade for %.2f", tc.score)
		s.Equal(tc.overall, rating.OverallGrade(tc.score), "overall grade for %.2f", tc.score)
	}
}

func (s *ScoreTestSuite) TestReasonUsesVisibleStatsOnly() {
	testCases := []struct {
		name   string
		p      *entities.Player
		reason string
	}{
		{"eliminated with full sanity", player(0, 100, 100, 100), rating.ReasonEliminated},
		{"broken", player(80, 20, 100, 100), rating.ReasonBroken},
		{"injured", player(30, 80, 10, 10), "Survived, badly injured (HP: 30/100)."},
		{"shaken", player(90, 40, 10, 10), "Survived with a damaged mind (Sanity: 40/100)."},
		{"well", player(90, 90, 10, 10), "Survived in good shape (HP: 90/100, Sanity: 90/100)."},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got := rating.Reason(tc.p)
			s.Equal(tc.reason, got)
			lower := strings.ToLower(got)
			s.NotContains(lower, "agility")
			s.NotContains(lower, "accuracy")
		})
	}

	s.Equal(rating.Reason(player(90, 90, 10, 10)), rating.Reason(player(90, 90, 100, 100)))
}

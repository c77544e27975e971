package action_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/horror-bot/internal/clients/oracle"
	oraclemock "github.com/KirkDiggler/horror-bot/internal/clients/oracle/mock"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	notifymock "github.com/KirkDiggler/horror-bot/internal/notify/mock"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/action"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/repositories/encounters"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
	"github.com/KirkDiggler/horror-bot/internal/testutils"
	"github.com/KirkDiggler/horror-bot/internal/testutils/builders"
)

const gameID = "game_1"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockOracle    *oraclemock.MockClient
	mockNotifier  *notifymock.MockNotifier
	playerRepo    *players.InMemoryRepository
	gameRepo      *games.InMemoryRepository
	encounterRepo *encounters.InMemoryRepository
	clock         *clock.Fake
	svc           action.Service
	ctx           context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockOracle = oraclemock.NewMockClient(s.ctrl)
	s.mockNotifier = notifymock.NewMockNotifier(s.ctrl)
	s.playerRepo = players.NewInMemory()
	s.gameRepo = games.NewInMemory()
	s.encounterRepo = encounters.NewInMemory()
	s.clock = clock.NewFake(time.Date(2026, 10, 17, 21, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	_, err := s.gameRepo.Create(s.ctx, &games.CreateInput{Game: testutils.CreateTestGame(gameID)})
	s.Require().NoError(err)
	_, err = s.gameRepo.SaveLocations(s.ctx, &games.SaveLocationsInput{
		GameID:    gameID,
		Locations: testutils.CreateTestLocations(gameID),
	})
	s.Require().NoError(err)

	s.addPlayer(builders.NewPlayerBuilder().WithID("p1").WithGameID(gameID).WithName("Mara").
		WithInventory("flashlight").Build())

	s.svc, err = action.NewOrchestrator(&action.Config{
		PlayerRepo:             s.playerRepo,
		GameRepo:               s.gameRepo,
		EncounterRepo:          s.encounterRepo,
		Oracle:                 s.mockOracle,
		Notifier:               s.mockNotifier,
		IDGenerator:            idgen.NewSequential("enc"),
		Clock:                  s.clock,
		OracleTimeout:          50 * time.Millisecond,
		ViolationSanityPenalty: action.DefaultViolationSanityPenalty,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) addPlayer(p *entities.Player) {
	_, err := s.playerRepo.Create(s.ctx, &players.CreateInput{Player: p})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) addHiddenRule(text string) {
	_, err := s.gameRepo.AddRules(s.ctx, &games.AddRulesInput{
		GameID: gameID,
		Rules:  []entities.Rule{{GameID: gameID, Text: text, Hidden: true}},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) resolve(text string) *action.ResolveOutput {
	out, err := s.svc.Resolve(s.ctx, &action.ResolveInput{GameID: gameID, PlayerID: "p1", ActionText: text})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) stored(playerID string) *entities.Player {
	out, err := s.playerRepo.Get(s.ctx, &players.GetInput{GameID: gameID, PlayerID: playerID})
	s.Require().NoError(err)
	return out.Player
}

func (s *OrchestratorTestSuite) TestResolveAppliesOutcome() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *oracle.ProcessActionInput) (*entities.ActionOutcome, error) {
			s.Equal("Asylum", in.Scenario)
			s.Equal("Reception Hall", in.LocationName)
			s.Require().Len(in.Exits, 1)
			s.Equal("f1_r1", in.Exits[0].ID)
			return &entities.ActionOutcome{
				Success:         true,
				Description:     "You push through the ward doors and find a rusted key.",
				HPDelta:         -5,
				SanityDelta:     -3,
				NewLocationID:   "f1_r1",
				DiscoveredItems: []string{"rusted key"},
			}, nil
		})
	s.mockNotifier.EXPECT().
		ActionResolved(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *notify.ActionResolvedInput) error {
			s.Equal("go to the ward", in.ActionText)
			s.Empty(in.ViolationNotice)
			return nil
		})

	out := s.resolve("go to the ward")

	s.True(out.Outcome.Success)
	s.Empty(out.ViolationNotice)
	s.Empty(out.EncounterText)

	p := s.stored("p1")
	s.Equal(95, p.HP)
	s.Equal(97, p.Sanity)
	s.Equal("f1_r1", p.LocationID)
	s.Equal([]string{"flashlight", "rusted key"}, p.Inventory)
	s.Require().Len(p.History, 2)
	s.Equal(entities.ConversationEntry{Role: entities.RoleUser, Content: "go to the ward"}, p.History[0])
	s.Equal(entities.RoleAssistant, p.History[1].Role)
}

// historyDown fails every conversation append and stores everything else
type historyDown struct {
	*players.InMemoryRepository
}

func (h historyDown) AppendConversation(context.Context, *players.AppendConversationInput) (*players.AppendConversationOutput, error) {
	return nil, errors.Unavailable("history store offline")
}

func (s *OrchestratorTestSuite) TestHistoryFailureKeepsOutcome() {
	svc, err := action.NewOrchestrator(&action.Config{
		PlayerRepo:    historyDown{s.playerRepo},
		GameRepo:      s.gameRepo,
		EncounterRepo: s.encounterRepo,
		Oracle:        s.mockOracle,
		Notifier:      s.mockNotifier,
		IDGenerator:   idgen.NewSequential("enc"),
		Clock:         s.clock,
		OracleTimeout: 50 * time.Millisecond,
	})
	s.Require().NoError(err)

	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{
			Description:   "The drawer snaps shut on your fingers.",
			HPDelta:       -8,
			NewLocationID: entities.SameLocation,
		}, nil)
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out, err := svc.Resolve(s.ctx, &action.ResolveInput{GameID: gameID, PlayerID: "p1", ActionText: "open the drawer"})
	s.Require().NoError(err)
	s.Equal("The drawer snaps shut on your fingers.", out.Outcome.Description)
	s.Equal(92, out.Player.HP)

	p := s.stored("p1")
	s.Equal(92, p.HP)
	s.Empty(p.History)
}

func (s *OrchestratorTestSuite) TestOracleFailureFallsBack() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("oracle reply is not valid JSON"))
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out := s.resolve("scream into the void")

	s.False(out.Outcome.Success)
	s.Equal(oracle.FallbackActionDescription, out.Outcome.Description)

	p := s.stored("p1")
	s.Equal(entities.MaxStat, p.HP)
	s.Equal(entities.MaxStat, p.Sanity)
	s.Equal("f1_r0", p.LocationID)
	s.Equal([]string{"flashlight"}, p.Inventory)
	s.Len(p.History, 2)
}

func (s *OrchestratorTestSuite) TestHiddenRuleViolation() {
	s.addHiddenRule("Never speak the doctor's name aloud.")

	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{
			Success:       true,
			Description:   "Your voice echoes down the hall.",
			SanityDelta:   -2,
			NewLocationID: entities.SameLocation,
		}, nil)
	s.mockOracle.EXPECT().
		CheckRuleViolation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *oracle.RuleCheckInput) (*oracle.RuleVerdict, error) {
			s.Equal([]string{"Never speak the doctor's name aloud."}, in.Rules)
			return &oracle.RuleVerdict{Violated: true, Rule: in.Rules[0], Reason: "said the name"}, nil
		})
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out := s.resolve("shout Dr. Harrow!")

	s.Equal(oracle.FallbackViolationNotice, out.ViolationNotice)
	s.Equal(-17, out.Outcome.SanityDelta)
	s.Equal(83, s.stored("p1").Sanity)
}

func (s *OrchestratorTestSuite) TestRuleCheckFailureIsNotViolation() {
	s.addHiddenRule("Do not look into mirrors.")

	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{Success: true, Description: "Nothing stirs.", NewLocationID: entities.SameLocation}, nil)
	s.mockOracle.EXPECT().
		CheckRuleViolation(gomock.Any(), gomock.Any()).
		Return(nil, errors.DeadlineExceeded("oracle call timed out"))
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out := s.resolve("look around")

	s.Empty(out.ViolationNotice)
	s.Equal(entities.MaxStat, s.stored("p1").Sanity)
}

func (s *OrchestratorTestSuite) TestStatsAreClamped() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{
			Description:   "The ceiling collapses.",
			HPDelta:       -250,
			SanityDelta:   40,
			NewLocationID: entities.SameLocation,
		}, nil)
	s.mockOracle.EXPECT().
		GenerateSceneSummary(gomock.Any(), []string{"Mara", "Asylum", "death", "despair", "darkness"}).
		Return("  Mara is gone beneath the plaster.  ", nil)
	s.mockNotifier.EXPECT().
		ActionResolved(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *notify.ActionResolvedInput) error {
			s.Equal("Mara is gone beneath the plaster.", in.DeathText)
			return nil
		})

	out := s.resolve("pull the chain")
	s.Equal("Mara is gone beneath the plaster.", out.DeathText)

	p := s.stored("p1")
	s.Equal(0, p.HP)
	s.Equal(entities.MaxStat, p.Sanity)
	s.False(p.IsAlive())
}

func (s *OrchestratorTestSuite) TestDeathNarrationFallsBack() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{Description: "The floor gives way.", HPDelta: -100, NewLocationID: entities.SameLocation}, nil)
	s.mockOracle.EXPECT().
		GenerateSceneSummary(gomock.Any(), gomock.Any()).
		Return("", errors.Unavailable("oracle offline"))
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out := s.resolve("jump")
	s.Equal("Mara has met their fate...", out.DeathText)
}

func (s *OrchestratorTestSuite) TestSurvivorGetsNoDeathText() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{Description: "A scratch.", HPDelta: -99, NewLocationID: entities.SameLocation}, nil)
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out := s.resolve("duck")
	s.Empty(out.DeathText)
	s.Equal(1, s.stored("p1").HP)
}

func (s *OrchestratorTestSuite) TestUnknownDestinationKeepsLocation() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{Success: true, Description: "You climb.", NewLocationID: "f9_r9"}, nil)
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	s.resolve("climb to the roof")

	s.Equal("f1_r0", s.stored("p1").LocationID)
}

func (s *OrchestratorTestSuite) TestHistoryIsBounded() {
	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *oracle.ProcessActionInput) (*entities.ActionOutcome, error) {
			return &entities.ActionOutcome{Description: "echo: " + in.ActionText, NewLocationID: entities.SameLocation}, nil
		}).
		Times(15)
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil).Times(15)

	for i := 0; i < 15; i++ {
		s.resolve(fmt.Sprintf("step %d", i))
	}

	history := s.stored("p1").History
	s.Require().Len(history, players.DefaultHistoryLimit)
	s.Equal("step 10", history[0].Content)
	s.Equal("echo: step 14", history[len(history)-1].Content)
}

func (s *OrchestratorTestSuite) TestEncounterUsesFallbackText() {
	s.addPlayer(builders.NewPlayerBuilder().WithID("p2").WithGameID(gameID).WithName("Theo").AtLocation("f1_r1").Build())
	s.addPlayer(builders.NewPlayerBuilder().WithID("p3").WithGameID(gameID).WithName("Ivy").AtLocation("f1_r1").Eliminated().Build())

	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{Success: true, Description: "You enter the ward.", NewLocationID: "f1_r1"}, nil)
	s.mockOracle.EXPECT().
		GenerateEncounterText(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *oracle.EncounterInput) (string, error) {
			s.Equal([]string{"Theo"}, in.Others)
			return "", errors.Unavailable("oracle offline")
		})
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(nil)

	out := s.resolve("go to the ward")

	s.Equal("You run into Theo... something feels wrong.", out.EncounterText)

	recorded, err := s.encounterRepo.ListByGame(s.ctx, &encounters.ListByGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Require().Len(recorded.Encounters, 1)
	s.Equal("enc_1", recorded.Encounters[0].ID)
	s.Equal("f1_r1", recorded.Encounters[0].LocationID)
	s.ElementsMatch([]string{"p1", "p2"}, recorded.Encounters[0].ParticipantIDs)
	s.Equal(s.clock.Now(), recorded.Encounters[0].CreatedAt)
}

func (s *OrchestratorTestSuite) TestPlayerCannotAct() {
	s.addPlayer(builders.NewPlayerBuilder().WithID("p4").WithGameID(gameID).WithName("Dead").Eliminated().Build())

	testCases := []struct {
		name     string
		playerID string
	}{
		{"unknown player", "ghost"},
		{"eliminated player", "p4"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.svc.Resolve(s.ctx, &action.ResolveInput{GameID: gameID, PlayerID: tc.playerID, ActionText: "run"})
			s.Require().NoError(err)
			s.False(out.Outcome.Success)
			s.Equal(action.DescriptionCannotAct, out.Outcome.Description)
			s.Nil(out.Player)
		})
	}
}

func (s *OrchestratorTestSuite) TestCompletionCheckRuns() {
	checked := 0
	svc, err := action.NewOrchestrator(&action.Config{
		PlayerRepo:    s.playerRepo,
		GameRepo:      s.gameRepo,
		EncounterRepo: s.encounterRepo,
		Oracle:        s.mockOracle,
		Notifier:      s.mockNotifier,
		IDGenerator:   idgen.NewSequential("enc"),
		CompletionCheck: func(_ context.Context, id string) (bool, error) {
			s.Equal(gameID, id)
			checked++
			return false, nil
		},
	})
	s.Require().NoError(err)

	s.mockOracle.EXPECT().
		ProcessAction(gomock.Any(), gomock.Any()).
		Return(&entities.ActionOutcome{Description: "ok", NewLocationID: entities.SameLocation}, nil)
	s.mockNotifier.EXPECT().ActionResolved(gomock.Any(), gomock.Any()).Return(errors.Unavailable("redis down"))

	_, err = svc.Resolve(s.ctx, &action.ResolveInput{GameID: gameID, PlayerID: "p1", ActionText: "wait"})
	s.Require().NoError(err)
	s.Equal(1, checked)
}

func (s *OrchestratorTestSuite) TestValidation() {
	_, err := s.svc.Resolve(s.ctx, &action.ResolveInput{GameID: gameID, PlayerID: "p1", ActionText: "  "})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.Resolve(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = action.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = action.NewOrchestrator(&action.Config{})
	s.True(errors.IsInvalidArgument(err))
}

package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	notifymock "github.com/KirkDiggler/horror-bot/internal/notify/mock"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/action"
	actionmock "github.com/KirkDiggler/horror-bot/internal/orchestrators/action/mock"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/horror-bot/internal/orchestrators/game/mock"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
	turnmock "github.com/KirkDiggler/horror-bot/internal/orchestrators/turn/mock"
	"github.com/KirkDiggler/horror-bot/internal/queue"
	"github.com/KirkDiggler/horror-bot/internal/testutils"
	"github.com/KirkDiggler/horror-bot/internal/worker"
)

const gameID = "game_1"

type cycles map[string]turn.Service

func (c cycles) Get(gameID string) (turn.Service, bool) {
	svc, ok := c[gameID]
	return svc, ok
}

type WorkerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockGames    *gamemock.MockService
	mockActions  *actionmock.MockService
	mockTurn     *turnmock.MockService
	mockNotifier *notifymock.MockNotifier
	mr           *miniredis.Miniredis
	queue        *queue.RedisQueue
	cycles       cycles
	worker       *worker.Worker
	cleanup      func()
	ctx          context.Context
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

func (s *WorkerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGames = gamemock.NewMockService(s.ctrl)
	s.mockActions = actionmock.NewMockService(s.ctrl)
	s.mockTurn = turnmock.NewMockService(s.ctrl)
	s.mockNotifier = notifymock.NewMockNotifier(s.ctrl)
	s.cycles = cycles{}
	s.ctx = context.Background()

	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup

	var err error
	s.queue, err = queue.NewRedisQueue(&queue.Config{Client: client})
	s.Require().NoError(err)

	s.worker, err = worker.New(&worker.Config{
		Queue:       s.queue,
		Client:      client,
		Games:       s.mockGames,
		Actions:     s.mockActions,
		Turns:       s.cycles,
		Notifier:    s.mockNotifier,
		ID:          "worker-test",
		PollWait:    time.Second,
		Concurrency: 1,
		LockTTL:     time.Second,
	})
	s.Require().NoError(err)
}

func (s *WorkerTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func (s *WorkerTestSuite) enqueue(cmd *queue.Command) *queue.Command {
	stamped, err := s.queue.Enqueue(s.ctx, cmd)
	s.Require().NoError(err)
	return stamped
}

func (s *WorkerTestSuite) TestCreateGameRepliesOnLobby() {
	cmd := s.enqueue(&queue.Command{Type: queue.CommandCreateGame, ScenarioID: "asylum", PlayerID: "host"})

	s.mockGames.EXPECT().
		CreateGame(gomock.Any(), &game.CreateGameInput{ScenarioID: "asylum", CreatorID: "host"}).
		Return(&game.CreateGameOutput{
			Game:     &entities.Game{ID: gameID, ScenarioID: "asylum", Active: true},
			Scenario: &catalog.Scenario{ID: "asylum"},
		}, nil)
	s.mockNotifier.EXPECT().
		CommandCompleted(gomock.Any(), notify.LobbyGameID, cmd.RequestID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, result map[string]any) error {
			s.Equal(gameID, result["game_id"])
			s.Equal("Asylum", result["scenario"])
			return nil
		})

	s.Require().NoError(s.worker.ProcessNext(s.ctx))
}

func (s *WorkerTestSuite) TestActDispatchesAndReleasesLock() {
	cmd := s.enqueue(&queue.Command{Type: queue.CommandAct, GameID: gameID, PlayerID: "p1", Text: "say his name"})

	s.mockActions.EXPECT().
		Resolve(gomock.Any(), &action.ResolveInput{GameID: gameID, PlayerID: "p1", ActionText: "say his name"}).
		DoAndReturn(func(context.Context, *action.ResolveInput) (*action.ResolveOutput, error) {
			s.True(s.mr.Exists("game-lock:" + gameID))
			return &action.ResolveOutput{
				Outcome:         &entities.ActionOutcome{Description: "The lights die.", SanityDelta: -17},
				ViolationNotice: "An uneasy feeling.",
			}, nil
		})
	s.mockNotifier.EXPECT().
		CommandCompleted(gomock.Any(), gameID, cmd.RequestID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, result map[string]any) error {
			s.Equal(-17, result["sanity_change"])
			s.Equal("An uneasy feeling.", result["notice"])
			s.NotContains(result, "encounter")
			return nil
		})

	s.Require().NoError(s.worker.ProcessNext(s.ctx))
	s.False(s.mr.Exists("game-lock:" + gameID))
}

func (s *WorkerTestSuite) TestTurnCommandsNeedLiveGame() {
	cmd := s.enqueue(&queue.Command{Type: queue.CommandRegisterAction, GameID: gameID, PlayerID: "p1", Kind: "flee"})

	s.mockNotifier.EXPECT().CommandFailed(gomock.Any(), gameID, cmd.RequestID, "game is not running").Return(nil)

	s.Require().NoError(s.worker.ProcessNext(s.ctx))
}

func (s *WorkerTestSuite) TestTurnCommandsReachCycle() {
	s.cycles[gameID] = s.mockTurn
	s.enqueue(&queue.Command{Type: queue.CommandRegisterAction, GameID: gameID, PlayerID: "p1", Kind: "flee"})
	s.enqueue(&queue.Command{Type: queue.CommandConfirmAction, GameID: gameID, PlayerID: "p1"})

	s.mockTurn.EXPECT().
		RegisterAction(gomock.Any(), &turn.RegisterActionInput{PlayerID: "p1", Kind: entities.ActionFlee}).
		Return(&turn.RegisterActionOutput{Accepted: true}, nil)
	s.mockTurn.EXPECT().
		ConfirmAction(gomock.Any(), &turn.ConfirmActionInput{PlayerID: "p1"}).
		Return(&turn.ConfirmActionOutput{Confirmed: true, Resolved: true}, nil)
	s.mockNotifier.EXPECT().CommandCompleted(gomock.Any(), gameID, gomock.Any(), gomock.Any()).Return(nil).Times(2)

	s.Require().NoError(s.worker.ProcessNext(s.ctx))
	s.Require().NoError(s.worker.ProcessNext(s.ctx))
}

func (s *WorkerTestSuite) TestBusyGameIsRequeued() {
	s.Require().NoError(s.mr.Set("game-lock:"+gameID, "other-worker"))
	cmd := s.enqueue(&queue.Command{Type: queue.CommandDashboard, GameID: gameID})

	s.Require().NoError(s.worker.ProcessNext(s.ctx))

	again, err := s.queue.Dequeue(s.ctx, time.Second)
	s.Require().NoError(err)
	s.Require().NotNil(again)
	s.Equal(cmd.RequestID, again.RequestID)
	s.Equal(1, again.Attempts)

	got, err := s.mr.Get("game-lock:" + gameID)
	s.Require().NoError(err)
	s.Equal("other-worker", got)
}

func (s *WorkerTestSuite) TestBusyGameWaitsForLockRelease() {
	s.Require().NoError(s.mr.Set("game-lock:"+gameID, "other-worker"))
	cmd := s.enqueue(&queue.Command{Type: queue.CommandDashboard, GameID: gameID})

	done := make(chan struct{})
	s.mockGames.EXPECT().
		Dashboard(gomock.Any(), &game.DashboardInput{GameID: gameID}).
		Return(&game.DashboardOutput{Game: &entities.Game{ID: gameID, Active: true}}, nil)
	s.mockNotifier.EXPECT().
		CommandCompleted(gomock.Any(), gameID, cmd.RequestID, gomock.Any()).
		DoAndReturn(func(context.Context, string, string, map[string]any) error {
			close(done)
			return nil
		})

	ctx, cancel := context.WithCancel(s.ctx)
	stopped := make(chan error, 1)
	go func() { stopped <- s.worker.Run(ctx) }()
	defer func() {
		cancel()
		<-stopped
	}()

	// held for a fifth of the lock TTL, far longer than 50 instant retries take
	time.Sleep(200 * time.Millisecond)
	s.mr.Del("game-lock:" + gameID)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.Fail("command never ran after the lock was released")
	}
}

func (s *WorkerTestSuite) TestBusyGameGivesUpEventually() {
	s.Require().NoError(s.mr.Set("game-lock:"+gameID, "other-worker"))
	cmd := s.enqueue(&queue.Command{Type: queue.CommandDashboard, GameID: gameID, Attempts: worker.MaxAttempts})

	s.mockNotifier.EXPECT().CommandFailed(gomock.Any(), gameID, cmd.RequestID, "game is busy, try again").Return(nil)

	s.Require().NoError(s.worker.ProcessNext(s.ctx))

	depth, err := s.queue.Depth(s.ctx)
	s.Require().NoError(err)
	s.Zero(depth)
}

func (s *WorkerTestSuite) TestFailedCreateRepliesOnLobby() {
	cmd := s.enqueue(&queue.Command{Type: queue.CommandCreateGame, ScenarioID: "lighthouse", PlayerID: "host"})

	s.mockGames.EXPECT().CreateGame(gomock.Any(), gomock.Any()).Return(nil, errors.NotFound("unknown scenario"))
	s.mockNotifier.EXPECT().CommandFailed(gomock.Any(), notify.LobbyGameID, cmd.RequestID, "unknown scenario").Return(nil)

	s.Require().NoError(s.worker.ProcessNext(s.ctx))
}

func (s *WorkerTestSuite) TestHandleUnknownType() {
	_, err := s.worker.Handle(s.ctx, &queue.Command{Type: "dance"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *WorkerTestSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.worker.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("worker did not stop")
	}
}

func (s *WorkerTestSuite) TestConfigValidation() {
	_, err := worker.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = worker.New(&worker.Config{})
	s.True(errors.IsInvalidArgument(err))
}

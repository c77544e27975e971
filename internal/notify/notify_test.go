package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/redis"
	"github.com/KirkDiggler/horror-bot/internal/testutils"
)

type NotifyTestSuite struct {
	suite.Suite
	ctx      context.Context
	bus      events.EventBus
	client   redis.Client
	cleanup  func()
	notifier *notify.BusNotifier
	relay    *notify.Relay
	now      time.Time
}

func TestNotifySuite(t *testing.T) {
	suite.Run(t, new(NotifyTestSuite))
}

func (s *NotifyTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = events.NewBus()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.now = time.Date(2026, 10, 17, 21, 0, 0, 0, time.UTC)

	var err error
	s.notifier, err = notify.NewBusNotifier(&notify.BusConfig{
		EventBus: s.bus,
		Clock:    clock.NewFake(s.now),
	})
	s.Require().NoError(err)

	s.relay, err = notify.NewRelay(&notify.RelayConfig{EventBus: s.bus, Client: s.client})
	s.Require().NoError(err)
	s.relay.Start()
}

func (s *NotifyTestSuite) TearDownTest() {
	s.relay.Stop()
	s.cleanup()
}

func (s *NotifyTestSuite) next(sub *notify.Subscription) *notify.Envelope {
	select {
	case env, ok := <-sub.Events():
		s.Require().True(ok, "subscription closed")
		return env
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
		return nil
	}
}

func (s *NotifyTestSuite) TestTurnResolvedReachesSubscribers() {
	sub, err := notify.Subscribe(s.ctx, s.client, "game_1")
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	err = s.notifier.TurnResolved(s.ctx, "game_1", 3, "Dust settles.", []string{"Mara attacks and hits."})
	s.Require().NoError(err)

	env := s.next(sub)
	s.Equal(notify.EventTurnResolved, env.Type)
	s.Equal("game_1", env.GameID)
	s.Equal("Dust settles.", env.Data["summary"])
	s.EqualValues(3, env.Data["turn"])
	s.True(env.Timestamp.Equal(s.now))
}

func (s *NotifyTestSuite) TestActionResolvedCarriesPlayer() {
	sub, err := notify.Subscribe(s.ctx, s.client, "game_1")
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	err = s.notifier.ActionResolved(s.ctx, &notify.ActionResolvedInput{
		GameID:          "game_1",
		Player:          &entities.Player{ID: "p1", GameID: "game_1", HP: 70, Sanity: 40},
		ActionText:      "whistle",
		Outcome:         &entities.ActionOutcome{Description: "The hall answers."},
		ViolationNotice: "uneasy",
	})
	s.Require().NoError(err)

	env := s.next(sub)
	s.Equal(notify.EventActionResolved, env.Type)
	s.Equal("p1", env.PlayerID)
	s.EqualValues(40, env.Data["sanity"])
	s.Equal("uneasy", env.Data["violation_notice"])
	s.NotContains(env.Data, "encounter")
	s.NotContains(env.Data, "death")
}

func (s *NotifyTestSuite) TestEventsStayOnTheirGameChannel() {
	sub, err := notify.Subscribe(s.ctx, s.client, "game_2")
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	s.Require().NoError(s.notifier.CommandFailed(s.ctx, "game_1", "req_1", "boom"))
	s.Require().NoError(s.notifier.CommandCompleted(s.ctx, "game_2", "req_2", map[string]any{"ok": true}))

	env := s.next(sub)
	s.Equal(notify.EventCommandCompleted, env.Type)
	s.Equal("req_2", env.RequestID)
}

func (s *NotifyTestSuite) TestGameEvaluated() {
	var captured *notify.Envelope
	s.bus.SubscribeFunc(notify.EventGameEvaluated, 10, func(_ context.Context, event events.Event) error {
		captured, _ = notify.EnvelopeFrom(event)
		return nil
	})

	err := s.notifier.GameEvaluated(s.ctx, &entities.Evaluation{
		GameID:       "game_1",
		OverallGrade: entities.GradeB,
		Players:      []entities.PlayerRating{{PlayerID: "p1", Name: "Mara", Grade: entities.GradeA}},
	})
	s.Require().NoError(err)
	s.Require().NotNil(captured)
	s.Equal("B", captured.Data["overall_grade"])

	s.True(errors.IsInvalidArgument(s.notifier.GameEvaluated(s.ctx, nil)))
}

func (s *NotifyTestSuite) TestConfigValidation() {
	_, err := notify.NewBusNotifier(&notify.BusConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = notify.NewRelay(&notify.RelayConfig{EventBus: s.bus})
	s.True(errors.IsInvalidArgument(err))

	_, err = notify.Subscribe(s.ctx, s.client, "")
	s.True(errors.IsInvalidArgument(err))
}

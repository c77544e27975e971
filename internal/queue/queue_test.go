package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/queue"
	"github.com/KirkDiggler/horror-bot/internal/testutils"
)

type QueueTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	queue   *queue.RedisQueue
	clock   *clock.Fake
	ctx     context.Context
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueTestSuite))
}

func (s *QueueTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.ctx = context.Background()
	s.clock = clock.NewFake(time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC))

	var err error
	s.queue, err = queue.NewRedisQueue(&queue.Config{
		Client:      client,
		IDGenerator: idgen.NewSequential("req"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)
}

func (s *QueueTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *QueueTestSuite) TestEnqueueStampsAndOrders() {
	first, err := s.queue.Enqueue(s.ctx, &queue.Command{Type: queue.CommandCreateGame, ScenarioID: "asylum", PlayerID: "host"})
	s.Require().NoError(err)
	s.Equal("req_1", first.RequestID)
	s.Equal(s.clock.Now(), first.EnqueuedAt)

	_, err = s.queue.Enqueue(s.ctx, &queue.Command{RequestID: "mine", Type: queue.CommandAct, GameID: "game_1", Text: "run"})
	s.Require().NoError(err)

	depth, err := s.queue.Depth(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, depth)

	items, err := s.mr.List(queue.DefaultKey)
	s.Require().NoError(err)
	s.Len(items, 2)

	got, err := s.queue.Dequeue(s.ctx, time.Second)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("req_1", got.RequestID)
	s.Equal(queue.CommandCreateGame, got.Type)
	s.Equal("asylum", got.ScenarioID)

	got, err = s.queue.Dequeue(s.ctx, time.Second)
	s.Require().NoError(err)
	s.Equal("mine", got.RequestID)
	s.Equal("run", got.Text)
}

func (s *QueueTestSuite) TestDequeueEmpty() {
	got, err := s.queue.Dequeue(s.ctx, time.Second)
	s.NoError(err)
	s.Nil(got)
}

func (s *QueueTestSuite) TestRequeueCountsAttempts() {
	cmd, err := s.queue.Enqueue(s.ctx, &queue.Command{Type: queue.CommandConfirmAction, GameID: "game_1", PlayerID: "p1"})
	s.Require().NoError(err)

	s.Require().NoError(s.queue.Requeue(s.ctx, cmd))

	_, err = s.queue.Dequeue(s.ctx, time.Second)
	s.Require().NoError(err)
	again, err := s.queue.Dequeue(s.ctx, time.Second)
	s.Require().NoError(err)
	s.Equal(cmd.RequestID, again.RequestID)
	s.Equal(1, again.Attempts)
}

func (s *QueueTestSuite) TestMalformedCommand() {
	_, err := s.mr.Lpush(queue.DefaultKey, "{not json")
	s.Require().NoError(err)

	_, err = s.queue.Dequeue(s.ctx, time.Second)
	s.True(errors.IsInvalidArgument(err))

	depth, err := s.queue.Depth(s.ctx)
	s.Require().NoError(err)
	s.Zero(depth)
}

func (s *QueueTestSuite) TestEnqueueRejectsUnknownType() {
	_, err := s.queue.Enqueue(s.ctx, &queue.Command{Type: "dance"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.queue.Enqueue(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = queue.NewRedisQueue(&queue.Config{})
	s.True(errors.IsInvalidArgument(err))
}

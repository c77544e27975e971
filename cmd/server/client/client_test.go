package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestAwaitReplySkipsOtherRequests() {
	envs := make(chan *notify.Envelope, 3)
	envs <- &notify.Envelope{Type: notify.EventCommandCompleted, RequestID: "req_other"}
	envs <- &notify.Envelope{Type: notify.EventTurnResolved, RequestID: "req_1"}
	envs <- &notify.Envelope{Type: notify.EventCommandFailed, RequestID: "req_1", Data: map[string]any{"error": "game is full"}}

	env, err := awaitReply(context.Background(), envs, "req_1")
	s.Require().NoError(err)
	s.Equal(notify.EventCommandFailed, env.Type)
}

func (s *ClientTestSuite) TestAwaitReplyTimesOut() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := awaitReply(ctx, make(chan *notify.Envelope), "req_1")
	s.True(errors.IsDeadlineExceeded(err))
}

func (s *ClientTestSuite) TestAwaitReplyClosedStream() {
	envs := make(chan *notify.Envelope)
	close(envs)

	_, err := awaitReply(context.Background(), envs, "req_1")
	s.True(errors.IsUnavailable(err))
}

func (s *ClientTestSuite) TestRenderEnvelope() {
	s.Run("turn summary and lines", func() {
		out := renderEnvelope(&notify.Envelope{
			Type:   notify.EventTurnResolved,
			GameID: "game_1",
			Data: map[string]any{
				"summary": "The lights flicker.",
				"lines":   []any{"Mara searches the ward.", "Theo flees."},
			},
		}, 80)
		s.Contains(out, "game_1")
		s.Contains(out, "The lights flicker.")
		s.Contains(out, "- Theo flees.")
	})

	s.Run("action with notice and encounter", func() {
		out := renderEnvelope(&notify.Envelope{
			Type:     notify.EventActionResolved,
			GameID:   "game_1",
			PlayerID: "p1",
			Data: map[string]any{
				"description":      "The drawer is empty.",
				"violation_notice": "Something noticed that.",
				"encounter":        "You run into Theo.",
			},
		}, 80)
		s.Contains(out, "p1")
		s.Contains(out, "Something noticed that.")
		s.Contains(out, "You run into Theo.")
	})

	s.Run("command reply lists fields", func() {
		out := renderEnvelope(&notify.Envelope{
			Type: notify.EventCommandCompleted,
			Data: map[string]any{
				"status": "completed",
				"result": map[string]any{"game_id": "game_9"},
			},
		}, 80)
		s.Contains(out, "game_9")
		s.Contains(out, "completed")
	})
}

func (s *ClientTestSuite) TestRenderScenario() {
	c, err := catalog.Load()
	s.Require().NoError(err)
	scenario, err := c.Scenario("asylum")
	s.Require().NoError(err)

	out := renderScenario(scenario, 60)
	s.Contains(out, "asylum")
	s.Contains(out, "Objectives:")
}

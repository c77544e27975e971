package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
)

type FakeClockTestSuite struct {
	suite.Suite
}

func TestFakeClockSuite(t *testing.T) {
	suite.Run(t, new(FakeClockTestSuite))
}

func (s *FakeClockTestSuite) TestAdvanceFiresDueTimers() {
	start := time.Unix(1700000000, 0)
	c := clock.NewFake(start)

	var fired []string
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "late") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "early") })
	stopped := c.AfterFunc(time.Second, func() { fired = append(fired, "stopped") })
	s.True(stopped.Stop())
	s.False(stopped.Stop())
	s.Equal(2, c.Pending())

	c.Advance(500 * time.Millisecond)
	s.Empty(fired)

	c.Advance(2 * time.Second)
	s.Equal([]string{"early", "late"}, fired)
	s.Equal(start.Add(2500*time.Millisecond), c.Now())
	s.Zero(c.Pending())
}

func (s *FakeClockTestSuite) TestRealClockTimer() {
	done := make(chan struct{})
	clock.New().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("timer never fired")
	}
}

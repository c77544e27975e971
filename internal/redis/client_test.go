package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestConnect() {
	mr := miniredis.RunT(s.T())

	client, err := redis.Connect(context.Background(), mr.Addr(), nil)
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	s.Require().NoError(client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	s.Require().NoError(err)
	s.Equal("v", got)
}

func (s *ClientTestSuite) TestConnectUnreachable() {
	mr := miniredis.RunT(s.T())
	addr := mr.Addr()
	mr.Close()

	_, err := redis.Connect(context.Background(), addr, &redis.Options{MaxRetries: -1})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *ClientTestSuite) TestEndpointRequired() {
	_, err := redis.NewClient("", nil)
	s.True(errors.IsInvalidArgument(err))
}

package registry_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/registry"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
	turnmock "github.com/KirkDiggler/horror-bot/internal/orchestrators/turn/mock"
)

type RegistryTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	ctx      context.Context
	built    atomic.Int32
	services map[string]*turnmock.MockService
	mu       sync.Mutex
	registry *registry.Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.built.Store(0)
	s.services = make(map[string]*turnmock.MockService)

	var err error
	s.registry, err = registry.New(&registry.Config{
		Factory: func(_ context.Context, gameID string) (turn.Service, error) {
			if gameID == "broken" {
				return nil, errors.Internal("no scenario")
			}
			s.built.Add(1)
			svc := turnmock.NewMockService(s.ctrl)
			s.mu.Lock()
			s.services[gameID] = svc
			s.mu.Unlock()
			return svc, nil
		},
	})
	s.Require().NoError(err)
}

func (s *RegistryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RegistryTestSuite) TestGetOrCreateReturnsSameInstance() {
	first, err := s.registry.GetOrCreate(s.ctx, "game_1")
	s.Require().NoError(err)
	second, err := s.registry.GetOrCreate(s.ctx, "game_1")
	s.Require().NoError(err)

	s.Same(first, second)
	s.EqualValues(1, s.built.Load())
	s.Equal(1, s.registry.Len())

	got, ok := s.registry.Get("game_1")
	s.True(ok)
	s.Same(first, got)
}

func (s *RegistryTestSuite) TestConcurrentGetOrCreateBuildsOnce() {
	var wg sync.WaitGroup
	results := make([]turn.Service, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc, err := s.registry.GetOrCreate(s.ctx, "game_1")
			if err == nil {
				results[i] = svc
			}
		}(i)
	}
	wg.Wait()

	s.EqualValues(1, s.built.Load())
	for _, svc := range results {
		s.Same(results[0], svc)
	}
}

func (s *RegistryTestSuite) TestEnd() {
	for i := 1; i <= 3; i++ {
		_, err := s.registry.GetOrCreate(s.ctx, fmt.Sprintf("game_%d", i))
		s.Require().NoError(err)
	}

	s.services["game_2"].EXPECT().Stop()
	s.registry.End("game_2")

	_, ok := s.registry.Get("game_2")
	s.False(ok)
	s.Equal(2, s.registry.Len())

	s.registry.End("unknown")
	s.Equal(2, s.registry.Len())

	s.services["game_1"].EXPECT().Stop()
	s.services["game_3"].EXPECT().Stop()
	s.registry.StopAll()
	s.Zero(s.registry.Len())
}

func (s *RegistryTestSuite) TestFactoryFailureIsNotCached() {
	_, err := s.registry.GetOrCreate(s.ctx, "broken")
	s.Require().Error(err)
	s.Zero(s.registry.Len())

	_, err = s.registry.GetOrCreate(s.ctx, "")
	s.True(errors.IsInvalidArgument(err))
}

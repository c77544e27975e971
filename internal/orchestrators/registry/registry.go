// Package registry keeps the live turn cycle of every running game. It is
// built once at process start; timers do not survive a restart.
package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
)

// Factory builds the turn cycle for a game
type Factory func(ctx context.Context, gameID string) (turn.Service, error)

// Config holds the registry dependencies
type Config struct {
	Factory Factory
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Factory == nil {
		vb.RequiredField("Factory")
	}
	return vb.Build()
}

// Registry maps game IDs to their single live turn cycle
type Registry struct {
	factory Factory

	mu    sync.Mutex
	games map[string]turn.Service
}

// New creates an empty registry
func New(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Registry{
		factory: cfg.Factory,
		games:   make(map[string]turn.Service),
	}, nil
}

// GetOrCreate returns the game's turn cycle, building it on first use. The
// lock is held through construction so two callers never build two cycles.
func (r *Registry) GetOrCreate(ctx context.Context, gameID string) (turn.Service, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.games[gameID]; ok {
		return svc, nil
	}

	svc, err := r.factory(ctx, gameID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build turn cycle for game %s", gameID)
	}
	r.games[gameID] = svc

	slog.DebugContext(ctx, "turn cycle registered", "game_id", gameID, "live_games", len(r.games))

	return svc, nil
}

// Get returns the game's turn cycle if one is live
func (r *Registry) Get(gameID string) (turn.Service, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.games[gameID]
	return svc, ok
}

// End stops and forgets the game's turn cycle. Unknown games are ignored.
func (r *Registry) End(gameID string) {
	r.mu.Lock()
	svc, ok := r.games[gameID]
	delete(r.games, gameID)
	r.mu.Unlock()

	if ok {
		svc.Stop()
	}
}

// Len reports how many games are live
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// StopAll ends every live cycle; used on shutdown
func (r *Registry) StopAll() {
	r.mu.Lock()
	games := r.games
	r.games = make(map[string]turn.Service)
	r.mu.Unlock()

	for _, svc := range games {
		svc.Stop()
	}
}

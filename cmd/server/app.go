package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/clients/oracle"
	"github.com/KirkDiggler/horror-bot/internal/config"
	"github.com/KirkDiggler/horror-bot/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/maps"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/action"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/game"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/rating"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/registry"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/queue"
	"github.com/KirkDiggler/horror-bot/internal/redis"
	"github.com/KirkDiggler/horror-bot/internal/repositories/encounters"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
	"github.com/KirkDiggler/horror-bot/internal/repositories/turns"
	"github.com/KirkDiggler/horror-bot/internal/sqlite"
	"github.com/KirkDiggler/horror-bot/internal/worker"
)

// stores groups the three relational repositories
type stores struct {
	games      games.Repository
	players    players.Repository
	encounters encounters.Repository
}

// app is the wired game core. Close releases what build opened.
type app struct {
	games    game.Service
	actions  action.Service
	registry *registry.Registry
	queue    *queue.RedisQueue
	worker   *worker.Worker
	relay    *notify.Relay
	stores   *stores

	closers []func() error
}

// appOptions selects backends that differ between production and tests
type appOptions struct {
	Redis    redis.Client
	InMemory bool
	Clock    clock.Clock
	Provider oracle.Provider
}

func buildApp(ctx context.Context, cfg *config.Config, opts *appOptions) (*app, error) {
	if cfg == nil || opts == nil || opts.Redis == nil {
		return nil, errors.InvalidArgument("config, options and redis client are required")
	}

	a := &app{}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	st, err := a.openStores(ctx, cfg, opts.InMemory)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.stores = st

	turnRepo, err := turns.NewRedisRepository(&turns.Config{Client: opts.Redis, Clock: clk})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create turn store")
	}

	provider := opts.Provider
	if provider == nil {
		provider, err = a.oracleProvider(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	oracleClient, err := oracle.New(&oracle.Config{Provider: provider})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create oracle client")
	}

	bus := events.NewBus()
	notifier, err := notify.NewBusNotifier(&notify.BusConfig{EventBus: bus, Clock: clk})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create notifier")
	}
	a.relay, err = notify.NewRelay(&notify.RelayConfig{EventBus: bus, Client: opts.Redis})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create relay")
	}
	a.relay.Start()

	eng, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{DiceRoller: dice.DefaultRoller})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create engine")
	}
	mapGen, err := maps.NewGenerator(&maps.Config{Engine: eng})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create map generator")
	}
	scenarios, err := catalog.Load()
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to load scenario catalog")
	}

	ratings, err := rating.NewOrchestrator(&rating.Config{
		PlayerRepo: st.players,
		GameRepo:   st.games,
		Objectives: scenarios,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create rating orchestrator")
	}

	// The turn factory and the lifecycle orchestrator need each other.
	completion := func(ctx context.Context, gameID string) (bool, error) {
		return a.games.CheckCompletion(ctx, gameID)
	}

	a.registry, err = registry.New(&registry.Config{
		Factory: func(ctx context.Context, gameID string) (turn.Service, error) {
			got, err := st.games.Get(ctx, &games.GetInput{ID: gameID})
			if err != nil {
				return nil, err
			}
			return turn.NewOrchestrator(&turn.Config{
				GameID:           gameID,
				ScenarioName:     catalog.DisplayName(got.Game.ScenarioID),
				PlayerRepo:       st.players,
				TurnRepo:         turnRepo,
				Engine:           eng,
				Oracle:           oracleClient,
				Notifier:         notifier,
				Clock:            clk,
				TurnDuration:     cfg.TurnDuration,
				OracleTimeout:    cfg.OracleTimeout,
				AFKSanityPenalty: cfg.AFKSanityPenalty,
				NarrateIntros:    cfg.OracleProvider != config.OracleDisabled,
				CompletionCheck:  completion,
			})
		},
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create registry")
	}

	a.games, err = game.NewOrchestrator(&game.Config{
		GameRepo:      st.games,
		PlayerRepo:    st.players,
		EncounterRepo: st.encounters,
		TurnRepo:      turnRepo,
		Catalog:       scenarios,
		Engine:        eng,
		Maps:          mapGen,
		Oracle:        oracleClient,
		Registry:      a.registry,
		Rating:        ratings,
		Notifier:      notifier,
		IDGenerator:   idgen.NewShort("game"),
		Clock:         clk,
		DarkRules:     cfg.OracleProvider != config.OracleDisabled,
		OracleTimeout: cfg.OracleTimeout,
		MaxPlayers:    cfg.MaxPlayers,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create game orchestrator")
	}

	a.actions, err = action.NewOrchestrator(&action.Config{
		PlayerRepo:             st.players,
		GameRepo:               st.games,
		EncounterRepo:          st.encounters,
		Oracle:                 oracleClient,
		Notifier:               notifier,
		IDGenerator:            idgen.NewShort("enc"),
		Clock:                  clk,
		OracleTimeout:          cfg.OracleTimeout,
		ViolationSanityPenalty: cfg.ViolationSanityPenalty,
		CompletionCheck:        completion,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create action orchestrator")
	}

	a.queue, err = queue.NewRedisQueue(&queue.Config{
		Client: opts.Redis,
		Key:    cfg.CommandQueue,
		Clock:  clk,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create command queue")
	}

	a.worker, err = worker.New(&worker.Config{
		Queue:    a.queue,
		Client:   opts.Redis,
		Games:    a.games,
		Actions:  a.actions,
		Turns:    a.registry,
		Notifier: notifier,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create worker")
	}

	return a, nil
}

func (a *app) openStores(ctx context.Context, cfg *config.Config, inMemory bool) (*stores, error) {
	if inMemory {
		slog.Info("using in-memory stores")
		return &stores{
			games:      games.NewInMemory(),
			players:    players.NewInMemoryWithLimit(cfg.HistoryLimit),
			encounters: encounters.NewInMemory(),
		}, nil
	}

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	if err := sqlite.ApplyMigrations(ctx, db); err != nil {
		return nil, err
	}

	return sqliteStores(db, cfg.HistoryLimit)
}

func sqliteStores(db *sql.DB, historyLimit int) (*stores, error) {
	gameRepo, err := games.NewSQLiteRepository(&games.SQLiteConfig{DB: db})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game repository")
	}
	playerRepo, err := players.NewSQLiteRepository(&players.SQLiteConfig{DB: db, HistoryLimit: historyLimit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create player repository")
	}
	encounterRepo, err := encounters.NewSQLiteRepository(&encounters.SQLiteConfig{DB: db})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create encounter repository")
	}

	return &stores{games: gameRepo, players: playerRepo, encounters: encounterRepo}, nil
}

func (a *app) oracleProvider(ctx context.Context, cfg *config.Config) (oracle.Provider, error) {
	switch cfg.OracleProvider {
	case config.OracleOllama:
		p, err := oracle.NewOllamaProvider(&oracle.OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.OllamaModel,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create ollama provider")
		}
		return p, nil
	case config.OracleGemini:
		p, err := oracle.NewGeminiProvider(ctx, &oracle.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create gemini provider")
		}
		a.closers = append(a.closers, p.Close)
		return p, nil
	default:
		slog.Warn("oracle disabled, narration falls back to fixed text")
		return oracle.UnavailableProvider{}, nil
	}
}

// resume reopens turn cycles for games that were running before a restart.
// Each one starts a fresh turn.
func (a *app) resume(ctx context.Context) {
	out, err := a.stores.games.ListActive(ctx, &games.ListActiveInput{})
	if err != nil {
		slog.Error("failed to list active games", "error", err)
		return
	}

	for _, g := range out.Games {
		if !g.Started {
			continue
		}
		svc, err := a.registry.GetOrCreate(ctx, g.ID)
		if err != nil {
			slog.Error("failed to resume game", "game_id", g.ID, "error", err)
			continue
		}
		if _, err := svc.StartTurn(ctx); err != nil {
			slog.Error("failed to start turn on resume", "game_id", g.ID, "error", err)
			continue
		}
		slog.Info("game resumed", "game_id", g.ID)
	}
}

// Close stops every turn cycle and the relay, then releases stores
func (a *app) Close() {
	if a.registry != nil {
		a.registry.StopAll()
	}
	if a.relay != nil {
		a.relay.Stop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
	a.closers = nil
}

// Package worker drains the command queue and dispatches each command to the
// game, turn and action orchestrators. Replies go out as command events.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/action"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/game"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/queue"
	"github.com/KirkDiggler/horror-bot/internal/redis"
)

const (
	// DefaultPollWait is how long one dequeue blocks before checking for shutdown
	DefaultPollWait = 5 * time.Second

	// DefaultConcurrency is the number of dequeue loops
	DefaultConcurrency = 4

	// DefaultLockTTL bounds how long one game stays locked by a crashed worker
	DefaultLockTTL = 30 * time.Second

	// MaxAttempts caps how often a command waiting on a game lock is requeued.
	// Requeues are spaced so the attempts together outlast LockTTL.
	MaxAttempts = 50

	errorBackoff = time.Second
)

// releaseLock deletes the lock only when this worker still owns it
var releaseLock = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// TurnCycles finds the live turn cycle of a game
type TurnCycles interface {
	Get(gameID string) (turn.Service, bool)
}

// Config holds the worker dependencies
type Config struct {
	Queue    queue.Queue
	Client   redis.Client
	Games    game.Service
	Actions  action.Service
	Turns    TurnCycles
	Notifier notify.Notifier

	ID          string
	PollWait    time.Duration
	Concurrency int
	LockTTL     time.Duration

	// RequeueDelay is the pause before a command blocked by a busy game goes
	// back on the queue. It never drops below LockTTL/MaxAttempts.
	RequeueDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Queue == nil {
		vb.RequiredField("Queue")
	}
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Games == nil {
		vb.RequiredField("Games")
	}
	if c.Actions == nil {
		vb.RequiredField("Actions")
	}
	if c.Turns == nil {
		vb.RequiredField("Turns")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.Concurrency < 0 {
		vb.Field("Concurrency", "must not be negative")
	}
	if c.RequeueDelay < 0 {
		vb.Field("RequeueDelay", "must not be negative")
	}

	return vb.Build()
}

// Worker processes queued commands
type Worker struct {
	id           string
	queue        queue.Queue
	client       redis.Client
	games        game.Service
	actions      action.Service
	turns        TurnCycles
	notifier     notify.Notifier
	pollWait     time.Duration
	concurrency  int
	lockTTL      time.Duration
	requeueDelay time.Duration
}

// New creates a worker
func New(cfg *Config) (*Worker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	w := &Worker{
		id:           cfg.ID,
		queue:        cfg.Queue,
		client:       cfg.Client,
		games:        cfg.Games,
		actions:      cfg.Actions,
		turns:        cfg.Turns,
		notifier:     cfg.Notifier,
		pollWait:     cfg.PollWait,
		concurrency:  cfg.Concurrency,
		lockTTL:      cfg.LockTTL,
		requeueDelay: cfg.RequeueDelay,
	}
	if w.id == "" {
		w.id = idgen.NewShort("worker").Generate()
	}
	if w.pollWait <= 0 {
		w.pollWait = DefaultPollWait
	}
	if w.concurrency == 0 {
		w.concurrency = DefaultConcurrency
	}
	if w.lockTTL <= 0 {
		w.lockTTL = DefaultLockTTL
	}
	if floor := w.lockTTL / MaxAttempts; w.requeueDelay < floor {
		w.requeueDelay = floor
	}

	return w, nil
}

// Run drains the queue until ctx is canceled
func (w *Worker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "worker starting", "worker_id", w.id, "concurrency", w.concurrency)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.loop(ctx)
		}()
	}
	wg.Wait()

	slog.InfoContext(ctx, "worker stopped", "worker_id", w.id)
	return nil
}

func (w *Worker) loop(ctx context.Context) {
	for ctx.Err() == nil {
		if err := w.ProcessNext(ctx); err != nil && ctx.Err() == nil {
			slog.ErrorContext(ctx, "error processing command", "worker_id", w.id, "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(errorBackoff):
			}
		}
	}
}

// ProcessNext handles at most one command. A nil error with nothing processed
// means the poll timed out.
func (w *Worker) ProcessNext(ctx context.Context) error {
	cmd, err := w.queue.Dequeue(ctx, w.pollWait)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}

	logger := slog.With("worker_id", w.id, "request_id", cmd.RequestID, "type", cmd.Type, "game_id", cmd.GameID)

	if cmd.GameID != "" {
		locked, err := w.acquire(ctx, cmd.GameID)
		if err != nil {
			return errors.Wrap(err, "failed to acquire game lock")
		}
		if !locked {
			if cmd.Attempts >= MaxAttempts {
				w.fail(ctx, cmd, errors.Unavailable("game is busy, try again"))
				return nil
			}
			logger.DebugContext(ctx, "game busy, requeueing", "attempts", cmd.Attempts, "delay", w.requeueDelay)
			w.wait(ctx, w.requeueDelay)
			return w.queue.Requeue(context.WithoutCancel(ctx), cmd)
		}
		defer w.release(context.WithoutCancel(ctx), cmd.GameID)
	}

	start := time.Now()
	result, err := w.Handle(ctx, cmd)
	if err != nil {
		logger.WarnContext(ctx, "command failed", "error", err)
		w.fail(ctx, cmd, err)
		return nil
	}

	if err := w.notifier.CommandCompleted(ctx, replyChannel(cmd), cmd.RequestID, result); err != nil {
		logger.WarnContext(ctx, "failed to publish completion", "error", err)
	}

	logger.InfoContext(ctx, "command processed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Handle dispatches one command and returns its reply payload
func (w *Worker) Handle(ctx context.Context, cmd *queue.Command) (map[string]any, error) {
	if cmd == nil {
		return nil, errors.InvalidArgument("command is required")
	}

	switch cmd.Type {
	case queue.CommandCreateGame:
		out, err := w.games.CreateGame(ctx, &game.CreateGameInput{ScenarioID: cmd.ScenarioID, CreatorID: cmd.PlayerID})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"game_id":  out.Game.ID,
			"scenario": out.Scenario.Name(),
		}, nil

	case queue.CommandJoinGame:
		out, err := w.games.JoinGame(ctx, &game.JoinGameInput{GameID: cmd.GameID, PlayerID: cmd.PlayerID, Name: cmd.Name})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"player_id":   out.Player.ID,
			"background":  out.Background.Name,
			"description": out.Background.Description,
			"hp":          out.Player.HP,
			"sanity":      out.Player.Sanity,
			"agility":     out.Player.Agility,
			"accuracy":    out.Player.Accuracy,
		}, nil

	case queue.CommandLeaveGame:
		if _, err := w.games.LeaveGame(ctx, &game.LeaveGameInput{GameID: cmd.GameID, PlayerID: cmd.PlayerID}); err != nil {
			return nil, err
		}
		return map[string]any{"left": cmd.PlayerID}, nil

	case queue.CommandStartGame:
		out, err := w.games.StartGame(ctx, &game.StartGameInput{GameID: cmd.GameID, RequesterID: cmd.PlayerID})
		if err != nil {
			return nil, err
		}
		result := map[string]any{
			"turn":         out.Turn,
			"greeting":     out.Greeting,
			"start":        out.Start.Name,
			"locations":    out.Locations,
			"public_rules": out.PublicRules,
		}
		if out.Intro != "" {
			result["intro"] = out.Intro
		}
		return result, nil

	case queue.CommandEndGame:
		out, err := w.games.EndGame(ctx, &game.EndGameInput{GameID: cmd.GameID})
		if err != nil {
			return nil, err
		}
		return map[string]any{"active": out.Game.Active}, nil

	case queue.CommandRegisterAction:
		cycle, err := w.cycle(cmd.GameID)
		if err != nil {
			return nil, err
		}
		out, err := cycle.RegisterAction(ctx, &turn.RegisterActionInput{
			PlayerID: cmd.PlayerID,
			Kind:     entities.ActionKind(cmd.Kind),
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"accepted": out.Accepted, "reason": out.Reason}, nil

	case queue.CommandConfirmAction:
		cycle, err := w.cycle(cmd.GameID)
		if err != nil {
			return nil, err
		}
		out, err := cycle.ConfirmAction(ctx, &turn.ConfirmActionInput{PlayerID: cmd.PlayerID})
		if err != nil {
			return nil, err
		}
		return map[string]any{"confirmed": out.Confirmed, "resolved": out.Resolved, "reason": out.Reason}, nil

	case queue.CommandAct:
		out, err := w.actions.Resolve(ctx, &action.ResolveInput{GameID: cmd.GameID, PlayerID: cmd.PlayerID, ActionText: cmd.Text})
		if err != nil {
			return nil, err
		}
		result := map[string]any{
			"success":       out.Outcome.Success,
			"description":   out.Outcome.Description,
			"hp_change":     out.Outcome.HPDelta,
			"sanity_change": out.Outcome.SanityDelta,
		}
		if out.ViolationNotice != "" {
			result["notice"] = out.ViolationNotice
		}
		if out.EncounterText != "" {
			result["encounter"] = out.EncounterText
		}
		if out.DeathText != "" {
			result["death"] = out.DeathText
		}
		return result, nil

	case queue.CommandDashboard:
		out, err := w.games.Dashboard(ctx, &game.DashboardInput{GameID: cmd.GameID})
		if err != nil {
			return nil, err
		}
		return dashboardResult(out), nil

	default:
		return nil, errors.InvalidArgumentf("unknown command type %q", cmd.Type)
	}
}

func (w *Worker) cycle(gameID string) (turn.Service, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}
	cycle, ok := w.turns.Get(gameID)
	if !ok {
		return nil, errors.FailedPrecondition("game is not running").WithMeta("game_id", gameID)
	}
	return cycle, nil
}

func (w *Worker) fail(ctx context.Context, cmd *queue.Command, cause error) {
	if err := w.notifier.CommandFailed(ctx, replyChannel(cmd), cmd.RequestID, errors.GetMessage(cause)); err != nil {
		slog.WarnContext(ctx, "failed to publish failure", "request_id", cmd.RequestID, "error", err)
	}
}

// replyChannel is the game a reply is published under. Commands without a
// game, like create_game, reply on the lobby.
func replyChannel(cmd *queue.Command) string {
	if cmd.GameID == "" {
		return notify.LobbyGameID
	}
	return cmd.GameID
}

func lockKey(gameID string) string {
	return fmt.Sprintf("game-lock:%s", gameID)
}

func (w *Worker) acquire(ctx context.Context, gameID string) (bool, error) {
	ok, err := w.client.SetNX(ctx, lockKey(gameID), w.id, w.lockTTL).Result()
	if err != nil {
		return false, errors.WrapWithCode(err, errors.CodeUnavailable, "redis unavailable")
	}
	return ok, nil
}

// wait sleeps for d or until ctx is done
func (w *Worker) wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (w *Worker) release(ctx context.Context, gameID string) {
	if err := releaseLock.Run(ctx, w.client, []string{lockKey(gameID)}, w.id).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to release game lock", "game_id", gameID, "error", err)
	}
}

func dashboardResult(out *game.DashboardOutput) map[string]any {
	roster := make([]map[string]any, 0, len(out.Players))
	for _, p := range out.Players {
		roster = append(roster, map[string]any{
			"player_id":  p.ID,
			"name":       p.Name,
			"background": p.Background,
			"hp":         p.HP,
			"sanity":     p.Sanity,
			"location":   p.LocationID,
			"inventory":  p.Inventory,
			"alive":      p.IsAlive(),
		})
	}

	result := map[string]any{
		"game_id":      out.Game.ID,
		"scenario":     out.ScenarioName,
		"active":       out.Game.Active,
		"started":      out.Game.Started,
		"players":      roster,
		"public_rules": out.PublicRules,
		"encounters":   len(out.Encounters),
	}
	if out.Turn != nil {
		result["turn"] = out.Turn.Turn
		result["state"] = string(out.Turn.State)
		result["deadline"] = out.Turn.Deadline
		result["summary"] = out.Turn.LastSummary
		if out.Turn.Intro != "" {
			result["intro"] = out.Turn.Intro
		}
	}
	return result
}

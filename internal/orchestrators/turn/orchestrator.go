// Package turn runs the turn cycle of one game: it collects and confirms
// player actions, resolves the turn once (all confirmed or deadline passed),
// penalizes players who did not act and opens the next turn.
package turn

//go:generate mockgen -destination=mock/mock_service.go -package=turnmock github.com/KirkDiggler/horror-bot/internal/orchestrators/turn Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/clients/oracle"
	"github.com/KirkDiggler/horror-bot/internal/engine"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
	"github.com/KirkDiggler/horror-bot/internal/repositories/turns"
)

const (
	// DefaultTurnDuration is how long players have to confirm
	DefaultTurnDuration = 60 * time.Second

	// DefaultOracleTimeout bounds the scene summary call
	DefaultOracleTimeout = 5 * time.Second

	// DefaultAFKSanityPenalty is lost by each living player who did not confirm
	DefaultAFKSanityPenalty = 5
)

// Service is the per-game turn cycle
type Service interface {
	// GameID returns the game this cycle belongs to
	GameID() string

	// StartTurn opens the next turn and arms its deadline
	StartTurn(ctx context.Context) (*StartTurnOutput, error)

	// RegisterAction records a player's pick; last write wins until confirmed
	RegisterAction(ctx context.Context, input *RegisterActionInput) (*RegisterActionOutput, error)

	// ConfirmAction locks in the pick and resolves the turn once everyone has
	ConfirmAction(ctx context.Context, input *ConfirmActionInput) (*ConfirmActionOutput, error)

	// Stop cancels the deadline and ends the cycle for good
	Stop()

	// Snapshot returns the current state
	Snapshot() *Snapshot
}

// CompletionFunc reports whether the game ended after a resolution
type CompletionFunc func(ctx context.Context, gameID string) (bool, error)

// Config holds the dependencies for one game's turn cycle
type Config struct {
	GameID       string
	ScenarioName string

	PlayerRepo players.Repository
	TurnRepo   turns.Repository
	Engine     engine.Engine
	Oracle     oracle.Client
	Notifier   notify.Notifier
	Clock      clock.Clock

	// Zero durations fall back to the package defaults
	TurnDuration  time.Duration
	OracleTimeout time.Duration

	AFKSanityPenalty int

	// NarrateIntros asks the oracle for a short opening line on every turn
	NarrateIntros bool

	// CompletionCheck is optional
	CompletionCheck CompletionFunc
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("GameID", c.GameID, vb)
	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.TurnRepo == nil {
		vb.RequiredField("TurnRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Oracle == nil {
		vb.RequiredField("Oracle")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.TurnDuration < 0 {
		vb.Field("TurnDuration", "must not be negative")
	}
	if c.OracleTimeout < 0 {
		vb.Field("OracleTimeout", "must not be negative")
	}
	errors.ValidateRange("AFKSanityPenalty", c.AFKSanityPenalty, 0, entities.MaxStat, vb)

	return vb.Build()
}

type orchestrator struct {
	gameID       string
	scenarioName string

	playerRepo players.Repository
	turnRepo   turns.Repository
	engine     engine.Engine
	oracle     oracle.Client
	notifier   notify.Notifier
	clock      clock.Clock
	completion CompletionFunc

	turnDuration  time.Duration
	oracleTimeout time.Duration
	afkPenalty    int
	intros        bool

	mu          sync.Mutex
	state       entities.TurnState
	turn        int
	deadline    time.Time
	actions     map[string]*entities.PlayerAction
	timer       clock.Timer
	lastSummary string
	intro       string
}

var _ Service = (*orchestrator)(nil)

// NewOrchestrator creates an idle turn cycle; call StartTurn to begin
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		gameID:        cfg.GameID,
		scenarioName:  cfg.ScenarioName,
		playerRepo:    cfg.PlayerRepo,
		turnRepo:      cfg.TurnRepo,
		engine:        cfg.Engine,
		oracle:        cfg.Oracle,
		notifier:      cfg.Notifier,
		clock:         cfg.Clock,
		completion:    cfg.CompletionCheck,
		turnDuration:  cfg.TurnDuration,
		oracleTimeout: cfg.OracleTimeout,
		afkPenalty:    cfg.AFKSanityPenalty,
		intros:        cfg.NarrateIntros,
		state:         entities.TurnIdle,
		actions:       make(map[string]*entities.PlayerAction),
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.turnDuration == 0 {
		o.turnDuration = DefaultTurnDuration
	}
	if o.oracleTimeout == 0 {
		o.oracleTimeout = DefaultOracleTimeout
	}

	return o, nil
}

func (o *orchestrator) GameID() string {
	return o.gameID
}

func (o *orchestrator) StartTurn(ctx context.Context) (*StartTurnOutput, error) {
	return o.beginTurn(ctx, false)
}

// beginTurn opens the next turn. Only the resolution that owns the Resolving
// state may pass fromResolution; the state check and the transition share
// one critical section.
func (o *orchestrator) beginTurn(ctx context.Context, fromResolution bool) (*StartTurnOutput, error) {
	o.mu.Lock()
	if o.state == entities.TurnEnded {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("game has ended").WithMeta("game_id", o.gameID)
	}
	if o.state == entities.TurnResolving && !fromResolution {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("turn is resolving").WithMeta("game_id", o.gameID)
	}

	o.turn++
	number := o.turn
	o.state = entities.TurnAwaitingActions
	o.deadline = o.clock.Now().Add(o.turnDuration)
	o.actions = make(map[string]*entities.PlayerAction)
	o.intro = ""
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = o.clock.AfterFunc(o.turnDuration, func() {
		o.onDeadline(number)
	})
	record := o.recordLocked()
	o.mu.Unlock()

	o.persist(ctx, record)

	out := &StartTurnOutput{Turn: number, Deadline: record.Deadline}
	if o.intros {
		out.Intro = o.introduce(ctx, number)
		o.mu.Lock()
		if o.turn == number {
			o.intro = out.Intro
		}
		o.mu.Unlock()
	}

	slog.InfoContext(ctx, "turn started",
		"game_id", o.gameID,
		"turn", number,
		"deadline", record.Deadline)

	return out, nil
}

// introduce sets the scene for a new turn without naming the threat
func (o *orchestrator) introduce(ctx context.Context, number int) string {
	ctx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
	defer cancel()

	intro, err := o.oracle.GenerateSceneSummary(ctx, oracle.TurnIntroKeywords(o.scenarioName, number))
	if err != nil || strings.TrimSpace(intro) == "" {
		slog.WarnContext(ctx, "turn intro unavailable, using fallback",
			"game_id", o.gameID,
			"turn", number,
			"error", err)
		return oracle.FallbackTurnIntro(o.scenarioName)
	}
	return oracle.ConcealThreat(strings.TrimSpace(intro))
}

func (o *orchestrator) RegisterAction(ctx context.Context, input *RegisterActionInput) (*RegisterActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player id is required")
	}
	if !input.Kind.Valid() {
		return &RegisterActionOutput{Reason: ReasonUnknownKind}, nil
	}

	reason, err := o.checkMember(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &RegisterActionOutput{Reason: reason}, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != entities.TurnAwaitingActions {
		return &RegisterActionOutput{Reason: ReasonNotAwaiting}, nil
	}
	if existing, ok := o.actions[input.PlayerID]; ok && existing.Confirmed {
		return &RegisterActionOutput{Reason: ReasonAlreadyConfirmed}, nil
	}
	o.actions[input.PlayerID] = &entities.PlayerAction{Kind: input.Kind}

	return &RegisterActionOutput{Accepted: true}, nil
}

func (o *orchestrator) ConfirmAction(ctx context.Context, input *ConfirmActionInput) (*ConfirmActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player id is required")
	}

	o.mu.Lock()
	if o.state != entities.TurnAwaitingActions {
		o.mu.Unlock()
		return &ConfirmActionOutput{Reason: ReasonNotAwaiting}, nil
	}
	action, ok := o.actions[input.PlayerID]
	if !ok {
		o.mu.Unlock()
		return &ConfirmActionOutput{Reason: ReasonNoRegisteredAction}, nil
	}
	if action.Confirmed {
		o.mu.Unlock()
		return &ConfirmActionOutput{Reason: ReasonAlreadyConfirmed}, nil
	}
	action.Confirmed = true
	number := o.turn
	o.mu.Unlock()

	living, err := o.playerRepo.ListLiving(ctx, &players.ListLivingInput{GameID: o.gameID})
	if err != nil {
		slog.WarnContext(ctx, "could not check turn completion, waiting for deadline",
			"game_id", o.gameID,
			"error", err)
		return &ConfirmActionOutput{Confirmed: true}, nil
	}
	if !o.allConfirmed(number, living.Players) {
		return &ConfirmActionOutput{Confirmed: true}, nil
	}

	resolved := o.resolve(context.WithoutCancel(ctx), number)
	return &ConfirmActionOutput{Confirmed: true, Resolved: resolved}, nil
}

func (o *orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.state = entities.TurnEnded
}

func (o *orchestrator) Snapshot() *Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	actions := make(map[string]entities.PlayerAction, len(o.actions))
	for id, a := range o.actions {
		actions[id] = *a
	}

	return &Snapshot{
		GameID:      o.gameID,
		State:       o.state,
		Turn:        o.turn,
		Deadline:    o.deadline,
		Actions:     actions,
		LastSummary: o.lastSummary,
		Intro:       o.intro,
	}
}

func (o *orchestrator) onDeadline(number int) {
	ctx := context.Background()
	if o.resolve(ctx, number) {
		slog.InfoContext(ctx, "turn resolved by deadline", "game_id", o.gameID, "turn", number)
	}
}

// resolve runs the resolution of turn number at most once. The losing caller
// of a confirm/deadline race gets false and does nothing.
func (o *orchestrator) resolve(ctx context.Context, number int) bool {
	o.mu.Lock()
	if o.state != entities.TurnAwaitingActions || o.turn != number {
		o.mu.Unlock()
		return false
	}
	o.state = entities.TurnResolving
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	actions := make(map[string]entities.PlayerAction, len(o.actions))
	for id, a := range o.actions {
		actions[id] = *a
	}
	o.mu.Unlock()

	logger := slog.With("game_id", o.gameID, "turn", number)

	var living []*entities.Player
	out, err := o.playerRepo.ListLiving(ctx, &players.ListLivingInput{GameID: o.gameID})
	if err != nil {
		logger.ErrorContext(ctx, "failed to list living players", "error", err)
	} else {
		living = out.Players
	}

	lines := o.applyAFK(ctx, living, actions)
	keywords := []string{}
	if o.scenarioName != "" {
		keywords = append(keywords, o.scenarioName)
	}
	seen := map[entities.ActionKind]bool{}

	for _, p := range living {
		action, ok := actions[p.ID]
		if !ok || !action.Confirmed {
			continue
		}
		lines = append(lines, o.interpret(ctx, p, action.Kind))
		if !seen[action.Kind] {
			seen[action.Kind] = true
			keywords = append(keywords, string(action.Kind))
		}
	}

	summary := o.summarize(ctx, keywords)

	o.mu.Lock()
	o.actions = make(map[string]*entities.PlayerAction)
	o.lastSummary = summary
	record := o.recordLocked()
	o.mu.Unlock()
	o.persist(ctx, record)

	if err := o.notifier.TurnResolved(ctx, o.gameID, number, summary, lines); err != nil {
		logger.WarnContext(ctx, "failed to announce turn", "error", err)
	}

	if o.completion != nil {
		ended, err := o.completion(ctx, o.gameID)
		if err != nil {
			logger.WarnContext(ctx, "completion check failed", "error", err)
		}
		if ended {
			o.Stop()
		}
	}

	if _, err := o.beginTurn(ctx, true); err != nil && !errors.IsFailedPrecondition(err) {
		logger.ErrorContext(ctx, "failed to start next turn", "error", err)
	}

	return true
}

func (o *orchestrator) applyAFK(ctx context.Context, living []*entities.Player, actions map[string]entities.PlayerAction) []string {
	var lines []string
	for _, p := range living {
		if a, ok := actions[p.ID]; ok && a.Confirmed {
			continue
		}

		if o.afkPenalty > 0 {
			_, err := o.playerRepo.UpdateStats(ctx, &players.UpdateStatsInput{
				GameID:      o.gameID,
				PlayerID:    p.ID,
				SanityDelta: -o.afkPenalty,
			})
			if err != nil {
				slog.WarnContext(ctx, "failed to apply idle penalty",
					"game_id", o.gameID,
					"player_id", p.ID,
					"error", err)
				continue
			}
		}
		lines = append(lines, fmt.Sprintf("%s froze in the dark and lost %d sanity.", p.Name, o.afkPenalty))
	}
	return lines
}

func (o *orchestrator) interpret(ctx context.Context, p *entities.Player, kind entities.ActionKind) string {
	success := false
	out, err := o.engine.CheckSuccess(ctx, &engine.CheckSuccessInput{Kind: kind, Player: p})
	if err != nil {
		slog.WarnContext(ctx, "success check failed, counting as a miss",
			"game_id", o.gameID,
			"player_id", p.ID,
			"error", err)
	} else {
		success = out.Success
	}

	return describeAction(p.Name, kind, success)
}

func (o *orchestrator) summarize(ctx context.Context, keywords []string) string {
	ctx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
	defer cancel()

	summary, err := o.oracle.GenerateSceneSummary(ctx, keywords)
	if err != nil || strings.TrimSpace(summary) == "" {
		slog.WarnContext(ctx, "scene summary unavailable, using fallback",
			"game_id", o.gameID,
			"error", err)
		return oracle.FallbackSceneSummary
	}
	return summary
}

func (o *orchestrator) allConfirmed(number int, living []*entities.Player) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.turn != number {
		return false
	}
	for _, p := range living {
		a, ok := o.actions[p.ID]
		if !ok || !a.Confirmed {
			return false
		}
	}
	return true
}

func (o *orchestrator) checkMember(ctx context.Context, playerID string) (string, error) {
	out, err := o.playerRepo.Get(ctx, &players.GetInput{GameID: o.gameID, PlayerID: playerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return ReasonNotInGame, nil
		}
		return "", errors.Wrap(err, "failed to load player")
	}
	if !out.Player.IsAlive() {
		return ReasonEliminated, nil
	}
	return "", nil
}

func (o *orchestrator) recordLocked() *entities.TurnRecord {
	actions := make(map[string]entities.PlayerAction, len(o.actions))
	for id, a := range o.actions {
		actions[id] = *a
	}
	return &entities.TurnRecord{
		GameID:   o.gameID,
		Number:   o.turn,
		State:    o.state,
		Deadline: o.deadline,
		Actions:  actions,
		Summary:  o.lastSummary,
	}
}

func (o *orchestrator) persist(ctx context.Context, record *entities.TurnRecord) {
	if _, err := o.turnRepo.Save(ctx, &turns.SaveInput{Record: record}); err != nil {
		slog.WarnContext(ctx, "failed to persist turn record",
			"game_id", o.gameID,
			"turn", record.Number,
			"error", err)
	}
}

func describeAction(name string, kind entities.ActionKind, success bool) string {
	switch kind {
	case entities.ActionAttack:
		if success {
			return fmt.Sprintf("%s strikes at the thing in the dark and lands a blow.", name)
		}
		return fmt.Sprintf("%s swings wildly and hits nothing but air.", name)
	case entities.ActionFlee:
		if success {
			return fmt.Sprintf("%s slips away from the danger.", name)
		}
		return fmt.Sprintf("%s tries to run but stumbles.", name)
	default:
		if success {
			return fmt.Sprintf("%s searches carefully and finds something useful.", name)
		}
		return fmt.Sprintf("%s searches, but the shadows give nothing away.", name)
	}
}

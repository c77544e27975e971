package notify

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/horror-bot/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
)

// envelopeKey is where the envelope rides in the event context
const envelopeKey = "horror.envelope"

// BusConfig holds the dependencies for a BusNotifier
type BusConfig struct {
	EventBus events.EventBus
	Clock    clock.Clock
}

// Validate checks the config
func (c *BusConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	return vb.Build()
}

// BusNotifier publishes notifications as rpg-toolkit events
type BusNotifier struct {
	bus   events.EventBus
	clock clock.Clock
}

var _ Notifier = (*BusNotifier)(nil)

// NewBusNotifier creates a notifier on top of an event bus
func NewBusNotifier(cfg *BusConfig) (*BusNotifier, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &BusNotifier{bus: cfg.EventBus, clock: c}, nil
}

// TurnResolved publishes turn.resolved
func (n *BusNotifier) TurnResolved(ctx context.Context, gameID string, turn int, summary string, lines []string) error {
	return n.publish(ctx, &Envelope{
		Type:   EventTurnResolved,
		GameID: gameID,
		Data: map[string]any{
			"turn":    turn,
			"summary": summary,
			"lines":   lines,
		},
	}, nil)
}

// ActionResolved publishes action.resolved with the player's refreshed stats
func (n *BusNotifier) ActionResolved(ctx context.Context, input *ActionResolvedInput) error {
	if input == nil || input.Player == nil || input.Outcome == nil {
		return errors.InvalidArgument("player and outcome are required")
	}

	p := input.Player
	data := map[string]any{
		"action":      input.ActionText,
		"success":     input.Outcome.Success,
		"description": input.Outcome.Description,
		"hp":          p.HP,
		"sanity":      p.Sanity,
		"location_id": p.LocationID,
		"inventory":   p.Inventory,
	}
	if input.ViolationNotice != "" {
		data["violation_notice"] = input.ViolationNotice
	}
	if input.EncounterText != "" {
		data["encounter"] = input.EncounterText
	}
	if input.DeathText != "" {
		data["death"] = input.DeathText
	}

	return n.publish(ctx, &Envelope{
		Type:     EventActionResolved,
		GameID:   input.GameID,
		PlayerID: p.ID,
		Data:     data,
	}, rpgtoolkit.WrapPlayer(p))
}

// GameEvaluated publishes game.evaluated
func (n *BusNotifier) GameEvaluated(ctx context.Context, evaluation *entities.Evaluation) error {
	if evaluation == nil {
		return errors.InvalidArgument("evaluation is required")
	}

	players := make([]map[string]any, 0, len(evaluation.Players))
	for _, r := range evaluation.Players {
		players = append(players, map[string]any{
			"player_id": r.PlayerID,
			"name":      r.Name,
			"grade":     string(r.Grade),
			"reason":    r.Reason,
		})
	}

	return n.publish(ctx, &Envelope{
		Type:   EventGameEvaluated,
		GameID: evaluation.GameID,
		Data: map[string]any{
			"overall_grade": string(evaluation.OverallGrade),
			"players":       players,
			"objectives":    evaluation.Objectives,
		},
	}, nil)
}

// CommandCompleted publishes command.completed
func (n *BusNotifier) CommandCompleted(ctx context.Context, gameID, requestID string, result map[string]any) error {
	return n.publish(ctx, &Envelope{
		Type:      EventCommandCompleted,
		GameID:    gameID,
		RequestID: requestID,
		Data:      map[string]any{"status": "completed", "result": result},
	}, nil)
}

// CommandFailed publishes command.failed
func (n *BusNotifier) CommandFailed(ctx context.Context, gameID, requestID, reason string) error {
	return n.publish(ctx, &Envelope{
		Type:      EventCommandFailed,
		GameID:    gameID,
		RequestID: requestID,
		Data:      map[string]any{"status": "failed", "error": reason},
	}, nil)
}

func (n *BusNotifier) publish(ctx context.Context, env *Envelope, target core.Entity) error {
	env.Timestamp = n.clock.Now().UTC()

	event := events.NewGameEvent(env.Type, rpgtoolkit.WrapGame(env.GameID), target)
	event.Context().Set(envelopeKey, env)

	if err := n.bus.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish game event",
			"type", env.Type,
			"game_id", env.GameID,
			"error", err)
		return errors.Wrapf(err, "failed to publish %s", env.Type)
	}

	return nil
}

// EnvelopeFrom extracts the envelope carried by a bus event
func EnvelopeFrom(event events.Event) (*Envelope, bool) {
	if event == nil || event.Context() == nil {
		return nil, false
	}
	raw, ok := event.Context().Get(envelopeKey)
	if !ok {
		return nil, false
	}
	env, ok := raw.(*Envelope)
	return env, ok && env != nil
}

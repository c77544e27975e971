// Package notify carries game results from the orchestrators to whatever
// front-end renders them. Orchestrators publish onto an in-process rpg-toolkit
// event bus; the Relay forwards every event to Redis Pub/Sub.
package notify

//go:generate mockgen -destination=mock/mock_notifier.go -package=notifymock github.com/KirkDiggler/horror-bot/internal/notify Notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Event types published on the bus and relayed to subscribers
const (
	EventTurnResolved     = "turn.resolved"
	EventActionResolved   = "action.resolved"
	EventGameEvaluated    = "game.evaluated"
	EventCommandCompleted = "command.completed"
	EventCommandFailed    = "command.failed"
)

// EventTypes lists every type the Relay forwards
var EventTypes = []string{
	EventTurnResolved,
	EventActionResolved,
	EventGameEvaluated,
	EventCommandCompleted,
	EventCommandFailed,
}

// Notifier is the presentation surface of the game core
type Notifier interface {
	// TurnResolved announces the summary and event lines of a finished turn
	TurnResolved(ctx context.Context, gameID string, turn int, summary string, lines []string) error

	// ActionResolved refreshes a player's dashboard after a free-form action
	ActionResolved(ctx context.Context, input *ActionResolvedInput) error

	// GameEvaluated publishes the final ratings
	GameEvaluated(ctx context.Context, evaluation *entities.Evaluation) error

	// CommandCompleted replies to a queued command
	CommandCompleted(ctx context.Context, gameID, requestID string, result map[string]any) error

	// CommandFailed reports a queued command that could not run
	CommandFailed(ctx context.Context, gameID, requestID, reason string) error
}

// ActionResolvedInput is the dashboard payload for one action
type ActionResolvedInput struct {
	GameID          string
	Player          *entities.Player
	ActionText      string
	Outcome         *entities.ActionOutcome
	ViolationNotice string
	EncounterText   string
	DeathText       string
}

// Envelope is the wire form of every published event
type Envelope struct {
	Type      string         `json:"type"`
	GameID    string         `json:"game_id"`
	PlayerID  string         `json:"player_id,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// LobbyGameID routes replies for commands that are not tied to a game yet
const LobbyGameID = "lobby"

// Channel is the Pub/Sub channel for a game's events
func Channel(gameID string) string {
	return fmt.Sprintf("game-events:%s", gameID)
}

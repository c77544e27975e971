// Package queue carries inbound commands from chat front-ends to the worker
// over a Redis list.
package queue

//go:generate mockgen -destination=mock/mock_queue.go -package=queuemock github.com/KirkDiggler/horror-bot/internal/queue Queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/redis"
)

// DefaultKey is the list commands are pushed onto
const DefaultKey = "horror:commands"

// CommandType names what a command asks for
type CommandType string

// Command types
const (
	CommandCreateGame     CommandType = "create_game"
	CommandJoinGame       CommandType = "join_game"
	CommandLeaveGame      CommandType = "leave_game"
	CommandStartGame      CommandType = "start_game"
	CommandEndGame        CommandType = "end_game"
	CommandRegisterAction CommandType = "register_action"
	CommandConfirmAction  CommandType = "confirm_action"
	CommandAct            CommandType = "act"
	CommandDashboard      CommandType = "dashboard"
)

// CommandTypes lists every known command type
var CommandTypes = []CommandType{
	CommandCreateGame,
	CommandJoinGame,
	CommandLeaveGame,
	CommandStartGame,
	CommandEndGame,
	CommandRegisterAction,
	CommandConfirmAction,
	CommandAct,
	CommandDashboard,
}

// Command is one request from a front-end. Which fields matter depends on Type.
type Command struct {
	RequestID  string      `json:"request_id"`
	Type       CommandType `json:"type"`
	GameID     string      `json:"game_id,omitempty"`
	PlayerID   string      `json:"player_id,omitempty"`
	Name       string      `json:"name,omitempty"`
	ScenarioID string      `json:"scenario_id,omitempty"`
	Kind       string      `json:"kind,omitempty"`
	Text       string      `json:"text,omitempty"`
	EnqueuedAt time.Time   `json:"enqueued_at"`
	Attempts   int         `json:"attempts,omitempty"`
}

// Queue is a FIFO of commands
type Queue interface {
	// Enqueue stamps a request ID and time when missing and appends the command
	Enqueue(ctx context.Context, cmd *Command) (*Command, error)

	// Requeue appends a command again as-is, counting the attempt
	Requeue(ctx context.Context, cmd *Command) error

	// Dequeue waits up to wait for the next command; nil when none arrived
	Dequeue(ctx context.Context, wait time.Duration) (*Command, error)

	// Depth reports how many commands are waiting
	Depth(ctx context.Context) (int, error)
}

// Config holds the Redis queue dependencies
type Config struct {
	Client      redis.Client
	Key         string
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

// RedisQueue implements Queue with RPUSH and BLPOP
type RedisQueue struct {
	client redis.Client
	key    string
	idGen  idgen.Generator
	clock  clock.Clock
}

var _ Queue = (*RedisQueue)(nil)

// NewRedisQueue creates a queue on the configured list
func NewRedisQueue(cfg *Config) (*RedisQueue, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	q := &RedisQueue{
		client: cfg.Client,
		key:    cfg.Key,
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
	}
	if q.key == "" {
		q.key = DefaultKey
	}
	if q.idGen == nil {
		q.idGen = idgen.NewUUID("req")
	}
	if q.clock == nil {
		q.clock = clock.New()
	}

	return q, nil
}

// Enqueue appends a command
func (q *RedisQueue) Enqueue(ctx context.Context, cmd *Command) (*Command, error) {
	if cmd == nil {
		return nil, errors.InvalidArgument("command is required")
	}
	if !knownType(cmd.Type) {
		return nil, errors.InvalidArgumentf("unknown command type %q", cmd.Type)
	}

	stamped := *cmd
	if stamped.RequestID == "" {
		stamped.RequestID = q.idGen.Generate()
	}
	if stamped.EnqueuedAt.IsZero() {
		stamped.EnqueuedAt = q.clock.Now().UTC()
	}

	if err := q.push(ctx, &stamped); err != nil {
		return nil, err
	}
	return &stamped, nil
}

// Requeue appends a command that could not be handled yet
func (q *RedisQueue) Requeue(ctx context.Context, cmd *Command) error {
	if cmd == nil {
		return errors.InvalidArgument("command is required")
	}
	again := *cmd
	again.Attempts++
	return q.push(ctx, &again)
}

// Dequeue pops the oldest command, blocking up to wait
func (q *RedisQueue) Dequeue(ctx context.Context, wait time.Duration) (*Command, error) {
	result, err := q.client.BLPop(ctx, wait, q.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, errors.FromContext(ctx.Err(), "dequeue interrupted")
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to dequeue command")
	}

	// BLPOP replies with [key, value]
	if len(result) != 2 {
		return nil, errors.Internalf("unexpected BLPOP reply of %d elements", len(result))
	}

	var cmd Command
	if err := json.Unmarshal([]byte(result[1]), &cmd); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed command")
	}

	return &cmd, nil
}

// Depth reports the list length
func (q *RedisQueue) Depth(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read queue depth")
	}
	return int(n), nil
}

func (q *RedisQueue) push(ctx context.Context, cmd *Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to encode command")
	}
	if err := q.client.RPush(ctx, q.key, data).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to enqueue command")
	}
	return nil
}

func knownType(t CommandType) bool {
	for _, known := range CommandTypes {
		if t == known {
			return true
		}
	}
	return false
}

package turns

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/horror-bot/internal/redis"
)

const (
	// Key pattern: turn:{game_id}
	turnKeyPrefix = "turn:"
	defaultTTL    = 24 * time.Hour

	// Error messages
	errRecordNil     = "turn record cannot be nil"
	errGameIDEmpty   = "game ID cannot be empty"
	errInputRequired = "input is required"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL defaults to 24h
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for turn records
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores the record, refreshing its TTL
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	record := *input.Record
	record.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(&record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal turn record")
	}

	if err := r.client.Set(ctx, buildKey(record.GameID), data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store turn record in Redis").
			WithMeta("game_id", record.GameID)
	}

	return &SaveOutput{}, nil
}

// Get retrieves the record for a game
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	data, err := r.client.Get(ctx, buildKey(input.GameID)).Bytes()
	if err != nil {
		if stderrors.Is(err, redisclient.Nil) {
			return nil, errors.NotFound("turn record not found").WithMeta("game_id", input.GameID)
		}
		return nil, errors.Wrapf(err, "failed to get turn record from Redis")
	}

	var record entities.TurnRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal turn record")
	}
	if record.Actions == nil {
		record.Actions = map[string]entities.PlayerAction{}
	}

	return &GetOutput{Record: &record}, nil
}

// Delete removes the record for a game
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	if err := r.client.Del(ctx, buildKey(input.GameID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete turn record from Redis")
	}

	return &DeleteOutput{}, nil
}

func buildKey(gameID string) string {
	return turnKeyPrefix + gameID
}

package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
	goredis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/redis"
)

// RelayConfig holds the dependencies for a Relay
type RelayConfig struct {
	EventBus events.EventBus
	Client   redis.Client
}

// Validate checks the config
func (c *RelayConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

// Relay forwards bus events to the per-game Redis channel
type Relay struct {
	bus    events.EventBus
	client redis.Client

	mu      sync.Mutex
	subIDs  []string
	started bool
}

// NewRelay creates a relay; call Start to begin forwarding
func NewRelay(cfg *RelayConfig) (*Relay, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Relay{bus: cfg.EventBus, client: cfg.Client}, nil
}

// Start subscribes to every notification type. Calling it twice is a no-op.
func (r *Relay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return
	}
	for _, eventType := range EventTypes {
		r.subIDs = append(r.subIDs, r.bus.SubscribeFunc(eventType, 0, r.forward))
	}
	r.started = true
}

// Stop unsubscribes from the bus
func (r *Relay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.subIDs {
		if err := r.bus.Unsubscribe(id); err != nil {
			slog.Warn("failed to unsubscribe relay", "subscription_id", id, "error", err)
		}
	}
	r.subIDs = nil
	r.started = false
}

func (r *Relay) forward(ctx context.Context, event events.Event) error {
	env, ok := EnvelopeFrom(event)
	if !ok {
		slog.WarnContext(ctx, "dropping event without envelope", "type", event.Type())
		return nil
	}

	data, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, "failed to marshal envelope")
	}

	channel := Channel(env.GameID)
	if err := r.client.Publish(ctx, channel, data).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to relay event",
			"channel", channel,
			"type", env.Type,
			"error", err)
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to publish event")
	}

	slog.DebugContext(ctx, "event relayed",
		"channel", channel,
		"type", env.Type,
		"request_id", env.RequestID)

	return nil
}

// Subscription streams decoded envelopes for one game
type Subscription struct {
	pubsub *goredis.PubSub
	out    chan *Envelope
	done   chan struct{}
	once   sync.Once
}

// Subscribe listens on a game's channel until Close is called
func Subscribe(ctx context.Context, client redis.Client, gameID string) (*Subscription, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client is required")
	}
	if gameID == "" {
		return nil, errors.InvalidArgument("game id is required")
	}

	pubsub := client.Subscribe(ctx, Channel(gameID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to subscribe")
	}

	s := &Subscription{
		pubsub: pubsub,
		out:    make(chan *Envelope, 16),
		done:   make(chan struct{}),
	}
	go s.run()

	return s, nil
}

// Events returns the envelope stream; it is closed after Close
func (s *Subscription) Events() <-chan *Envelope {
	return s.out
}

// Close stops the subscription
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *Subscription) run() {
	defer close(s.out)

	messages := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				slog.Warn("failed to decode event", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case s.out <- &env:
			case <-s.done:
				return
			}
		}
	}
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// RedisPublisher implements ports.EventPublisher on a redis channel. Each
// event goes to "<topic>.<event type>".
type RedisPublisher struct {
	client *redis.Client
	topic  string
	logger *slog.Logger
}

// NewRedisPublisher creates a publisher on client.
func NewRedisPublisher(client *redis.Client, topic string, logger *slog.Logger) *RedisPublisher {
	if client == nil {
		panic("events: redis client is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RedisPublisher{client: client, topic: topic, logger: logger}
}

// Channel returns the redis channel events of eventType are published on.
func (p *RedisPublisher) Channel(eventType string) string {
	return p.topic + "." + eventType
}

// Publish implements ports.EventPublisher.
func (p *RedisPublisher) Publish(ctx context.Context, event ports.Event) error {
	env, err := newEnvelope(event, time.Now())
	if err != nil {
		return err
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	channel := p.Channel(env.Type)

	receivers, err := p.client.Publish(ctx, channel, raw).Result()
	if err != nil {
		return domain.NewUnavailableError("redis", err.Error())
	}

	logging.FromContext(ctx).DebugContext(ctx, "event published",
		slog.String("channel", channel),
		slog.String("event_id", env.ID),
		slog.Int64("receivers", receivers),
	)

	return nil
}

// Subscribe delivers envelopes of eventType to handle until ctx is
// cancelled. It returns once the subscription is confirmed; delivery runs
// in the background.
func (p *RedisPublisher) Subscribe(ctx context.Context, eventType string, handle func(context.Context, *Envelope)) error {
	sub := p.client.Subscribe(ctx, p.Channel(eventType))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return domain.NewUnavailableError("redis", err.Error())
	}

	go func() {
		defer sub.Close() //nolint:errcheck // best effort on shutdown

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					p.logger.WarnContext(ctx, "dropping malformed event",
						slog.String("channel", msg.Channel),
						slog.Any("error", err),
					)

					continue
				}

				handle(ctx, &env)
			}
		}
	}()

	return nil
}

// Name implements ports.HealthChecker.
func (p *RedisPublisher) Name() string {
	return "events"
}

// Check pings the broker.
func (p *RedisPublisher) Check(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

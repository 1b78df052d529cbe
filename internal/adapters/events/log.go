package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// LogPublisher writes events to the logger instead of a broker. It is used
// when redis is disabled.
type LogPublisher struct {
	level slog.Level
}

// NewLogPublisher logs events at level.
func NewLogPublisher(level slog.Level) *LogPublisher {
	return &LogPublisher{level: level}
}

// Publish implements ports.EventPublisher.
func (p *LogPublisher) Publish(ctx context.Context, event ports.Event) error {
	env, err := newEnvelope(event, time.Now())
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Log(ctx, p.level, "event",
		slog.String("event_id", env.ID),
		slog.String("type", env.Type),
		slog.String("payload", string(env.Payload)),
	)

	return nil
}

// Name implements ports.HealthChecker.
func (p *LogPublisher) Name() string {
	return "events"
}

// Check always succeeds.
func (p *LogPublisher) Check(context.Context) error {
	return nil
}

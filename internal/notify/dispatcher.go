package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// QuoteSource supplies the quote a reminder shows.
type QuoteSource interface {
	Today(ctx context.Context) (*domain.Quote, error)
}

// DispatcherConfig holds the dependencies of Dispatcher.
type DispatcherConfig struct {
	Scheduler *Scheduler           // required
	Publisher ports.EventPublisher // required
	Quotes    QuoteSource
	Interval  time.Duration
	Workers   int
	Channel   string
	Clock     func() time.Time
	Logger    *slog.Logger
}

// Dispatcher publishes due reminders on a fixed interval.
type Dispatcher struct {
	scheduler *Scheduler
	publisher ports.EventPublisher
	quotes    QuoteSource
	interval  time.Duration
	workers   int
	channel   string
	now       func() time.Time
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. It panics when a required dependency
// is missing.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Scheduler == nil {
		panic("notify: Scheduler is required")
	}

	if cfg.Publisher == nil {
		panic("notify: Publisher is required")
	}

	d := &Dispatcher{
		scheduler: cfg.Scheduler,
		publisher: cfg.Publisher,
		quotes:    cfg.Quotes,
		interval:  cfg.Interval,
		workers:   cfg.Workers,
		channel:   cfg.Channel,
		now:       cfg.Clock,
		logger:    cfg.Logger,
	}

	if d.interval <= 0 {
		d.interval = time.Minute
	}

	if d.workers <= 0 {
		d.workers = 4
	}

	if d.now == nil {
		d.now = time.Now
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	d.logger = d.logger.With(slog.String("component", "reminder-dispatcher"))

	return d
}

// Run ticks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.InfoContext(ctx, "reminder dispatcher started", slog.Duration("interval", d.interval))

	for {
		select {
		case <-ctx.Done():
			d.logger.InfoContext(ctx, "reminder dispatcher stopped")
			return nil
		case <-ticker.C:
			if _, err := d.Tick(ctx); err != nil {
				d.logger.ErrorContext(ctx, "reminder tick failed", slog.Any("error", err))
			}
		}
	}
}

// Tick publishes every due reminder once and advances its schedule. It
// returns how many reminders were published.
func (d *Dispatcher) Tick(ctx context.Context) (int, error) {
	now := d.now()

	due, err := d.scheduler.Due(ctx, now)
	if err != nil {
		return 0, err
	}

	if len(due) == 0 {
		return 0, nil
	}

	msg := Content(d.todaysQuote(ctx))

	published := make(chan struct{}, len(due))

	err = app.FanOut(ctx, d.workers, due, func(ctx context.Context, sched Schedule) error {
		event := ReminderDue{UserID: sched.UserID, Channel: d.channel, Message: msg, FiredAt: now}

		if err := d.publisher.Publish(ctx, event); err != nil {
			// Leave the schedule due so the next tick retries.
			d.logger.WarnContext(ctx, "publishing reminder",
				slog.String("user_id", sched.UserID),
				slog.Any("error", err),
			)

			return nil
		}

		published <- struct{}{}

		if _, err := d.scheduler.Advance(ctx, sched, now); err != nil {
			d.logger.WarnContext(ctx, "advancing reminder",
				slog.String("user_id", sched.UserID),
				slog.Any("error", err),
			)
		}

		return nil
	})

	return len(published), err
}

func (d *Dispatcher) todaysQuote(ctx context.Context) *domain.Quote {
	if d.quotes == nil {
		return nil
	}

	q, err := d.quotes.Today(ctx)
	if err != nil {
		d.logger.WarnContext(ctx, "reminder without quote", slog.Any("error", err))
		return nil
	}

	return q
}

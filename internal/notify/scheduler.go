package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const keyPrefix = "reminder:"

// Schedule is one user's recurring daily reminder.
type Schedule struct {
	UserID   string          `json:"userId"`
	Reminder domain.Reminder `json:"reminder"`
	Location string          `json:"location"`
	Next     time.Time       `json:"next"`
}

// Scheduler persists reminder schedules in the key-value store. A user has
// at most one schedule.
type Scheduler struct {
	store  ports.KeyValueStore
	now    func() time.Time
	logger *slog.Logger
}

// NewScheduler creates a scheduler. clock may be nil.
func NewScheduler(store ports.KeyValueStore, clock func() time.Time, logger *slog.Logger) *Scheduler {
	if store == nil {
		panic("notify: store is required")
	}

	if clock == nil {
		clock = time.Now
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{store: store, now: clock, logger: logger}
}

func scheduleKey(userID string) string {
	return keyPrefix + userID
}

// Schedule replaces any existing schedule for userID with one firing daily
// at r in the named IANA location (UTC when empty).
func (s *Scheduler) Schedule(ctx context.Context, userID string, r domain.Reminder, location string) (*Schedule, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	loc, err := loadLocation(location)
	if err != nil {
		return nil, err
	}

	if err := s.Cancel(ctx, userID); err != nil {
		return nil, err
	}

	sched := &Schedule{
		UserID:   userID,
		Reminder: r,
		Location: loc.String(),
		Next:     NextTrigger(s.now().In(loc), r),
	}

	if err := s.save(ctx, sched); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "reminder scheduled",
		slog.String("user_id", userID),
		slog.String("at", r.String()),
		slog.Time("next", sched.Next),
	)

	return sched, nil
}

// Cancel removes the user's schedule. Cancelling nothing is not an error.
func (s *Scheduler) Cancel(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, scheduleKey(userID)); err != nil {
		return fmt.Errorf("cancelling reminder: %w", err)
	}

	return nil
}

// Follow brings the stored schedule in line with p. With push off the
// schedule is cancelled; otherwise it is replaced by one at p.Reminder in
// the previous schedule's location, or UTC when there was none. The
// resulting schedule is nil after a cancel.
func (s *Scheduler) Follow(ctx context.Context, userID string, p domain.Preferences) (*Schedule, error) {
	if !p.PushEnabled {
		return nil, s.Cancel(ctx, userID)
	}

	location := ""

	prev, err := s.Get(ctx, userID)
	switch {
	case err == nil:
		location = prev.Location
	case !domain.IsNotFound(err):
		s.logger.WarnContext(ctx, "replacing unreadable reminder", slog.String("user_id", userID), slog.Any("error", err))
	}

	return s.Schedule(ctx, userID, p.Reminder, location)
}

// Get returns the user's schedule or domain.ErrNotFound.
func (s *Scheduler) Get(ctx context.Context, userID string) (*Schedule, error) {
	raw, err := s.store.Get(ctx, scheduleKey(userID))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("Reminder", userID)
		}

		return nil, err
	}

	var sched Schedule
	if err := json.Unmarshal([]byte(raw), &sched); err != nil {
		return nil, fmt.Errorf("decoding reminder: %w", err)
	}

	return &sched, nil
}

// Due returns every schedule whose next trigger is at or before now,
// ordered by trigger time.
func (s *Scheduler) Due(ctx context.Context, now time.Time) ([]Schedule, error) {
	keys, err := s.store.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}

	due := make([]Schedule, 0, len(keys))
	for _, key := range keys {
		sched, err := s.Get(ctx, strings.TrimPrefix(key, keyPrefix))
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}

		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable reminder", slog.String("key", key), slog.Any("error", err))
			continue
		}

		if !sched.Next.After(now) {
			due = append(due, *sched)
		}
	}

	sort.Slice(due, func(i, j int) bool { return due[i].Next.Before(due[j].Next) })

	return due, nil
}

// Advance moves sched to its first trigger after now and stores it.
func (s *Scheduler) Advance(ctx context.Context, sched Schedule, now time.Time) (*Schedule, error) {
	loc, err := loadLocation(sched.Location)
	if err != nil {
		return nil, err
	}

	sched.Next = NextTrigger(now.In(loc), sched.Reminder)
	if err := s.save(ctx, &sched); err != nil {
		return nil, err
	}

	return &sched, nil
}

func (s *Scheduler) save(ctx context.Context, sched *Schedule) error {
	raw, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("encoding reminder: %w", err)
	}

	if err := s.store.Set(ctx, scheduleKey(sched.UserID), string(raw), 0); err != nil {
		return fmt.Errorf("saving reminder: %w", err)
	}

	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewValidationErrorWithValue("timezone", "unknown time zone", name)
	}

	return loc, nil
}

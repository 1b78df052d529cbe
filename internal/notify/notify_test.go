package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/kv"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/mocks"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func TestContent(t *testing.T) {
	msg := Content(&domain.Quote{Content: "Stay hungry."})
	assert.Equal(t, "Quote of the Day 🌿", msg.Title)
	assert.Equal(t, `"Stay hungry."`, msg.Body)
	assert.Equal(t, map[string]string{"screen": "QuoteOfTheDay"}, msg.Data)

	assert.Equal(t, `"Your daily wisdom is waiting."`, Content(nil).Body)
}

func TestNextTrigger(t *testing.T) {
	nine := domain.Reminder{Hour: 9}

	tests := []struct {
		name string
		now  time.Time
		r    domain.Reminder
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			r:    nine,
			want: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly now rolls to tomorrow",
			now:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			r:    nine,
			want: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "month end",
			now:  time.Date(2025, 6, 30, 22, 0, 0, 0, time.UTC),
			r:    domain.Reminder{Hour: 7, Minute: 30},
			want: time.Date(2025, 7, 1, 7, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextTrigger(tt.now, tt.r))
		})
	}
}

func TestNextTrigger_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	next := NextTrigger(time.Date(2025, 6, 1, 23, 0, 0, 0, loc), domain.Reminder{Hour: 6})

	assert.Equal(t, time.Date(2025, 6, 2, 6, 0, 0, 0, loc), next)
	assert.Equal(t, loc, next.Location())
}

func TestReminderDue_IsEvent(t *testing.T) {
	var e ports.Event = ReminderDue{UserID: "u1"}

	assert.Equal(t, "reminder.due", e.EventType())
	assert.Equal(t, "u1", e.Payload().(ReminderDue).UserID)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

func TestScheduler_ScheduleReplacesExisting(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	s := NewScheduler(kv.NewMemoryStore(nil), clk.Now, nil)

	_, err := s.Schedule(ctx, "u1", domain.Reminder{Hour: 9}, "")
	require.NoError(t, err)

	sched, err := s.Schedule(ctx, "u1", domain.Reminder{Hour: 20, Minute: 15}, "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 20, 15, 0, 0, time.UTC), sched.Next)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.Reminder{Hour: 20, Minute: 15}, got.Reminder)

	due, err := s.Due(ctx, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestScheduler_Validation(t *testing.T) {
	s := NewScheduler(kv.NewMemoryStore(nil), nil, nil)

	_, err := s.Schedule(context.Background(), "u1", domain.Reminder{Hour: 25}, "")
	assert.True(t, domain.IsValidation(err))

	_, err = s.Schedule(context.Background(), "u1", domain.Reminder{Hour: 8}, "Mars/Olympus_Mons")
	assert.True(t, domain.IsValidation(err))
}

func TestScheduler_CancelAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewScheduler(kv.NewMemoryStore(nil), nil, nil)

	require.NoError(t, s.Cancel(ctx, "nobody"))

	_, err := s.Schedule(ctx, "u1", domain.DefaultReminder, "")
	require.NoError(t, err)
	require.NoError(t, s.Cancel(ctx, "u1"))

	_, err = s.Get(ctx, "u1")
	assert.True(t, domain.IsNotFound(err))
}

func TestScheduler_Follow(t *testing.T) {
	at := func(hour, minute int) domain.Preferences {
		p := domain.DefaultPreferences()
		p.Reminder = domain.Reminder{Hour: hour, Minute: minute}
		return p
	}
	off := domain.DefaultPreferences()
	off.PushEnabled = false

	tests := []struct {
		name     string
		existing *domain.Reminder
		location string
		prefs    domain.Preferences
		want     *domain.Reminder
		wantLoc  string
		wantDue  int
	}{
		{
			name:     "push off cancels",
			existing: &domain.Reminder{Hour: 9},
			prefs:    off,
			wantDue:  0,
		},
		{
			name:     "new time moves the reminder",
			existing: &domain.Reminder{Hour: 9},
			location: "Europe/Berlin",
			prefs:    at(15, 30),
			want:     &domain.Reminder{Hour: 15, Minute: 30},
			wantLoc:  "Europe/Berlin",
			wantDue:  0,
		},
		{
			name:    "push on without a schedule creates one",
			prefs:   at(7, 0),
			want:    &domain.Reminder{Hour: 7},
			wantLoc: "UTC",
			wantDue: 1,
		},
		{
			name:    "push off without a schedule is a no-op",
			prefs:   off,
			wantDue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			clk := &clock{now: time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)}
			s := NewScheduler(kv.NewMemoryStore(nil), clk.Now, nil)

			if tt.existing != nil {
				_, err := s.Schedule(ctx, "u1", *tt.existing, tt.location)
				require.NoError(t, err)
			}

			sched, err := s.Follow(ctx, "u1", tt.prefs)
			require.NoError(t, err)

			got, getErr := s.Get(ctx, "u1")
			if tt.want == nil {
				assert.Nil(t, sched)
				assert.True(t, domain.IsNotFound(getErr))
			} else {
				require.NoError(t, getErr)
				assert.Equal(t, *tt.want, got.Reminder)
				assert.Equal(t, tt.wantLoc, got.Location)
			}

			// 09:01 UTC is past the old 09:00 reminder and before every new one
			// except 07:00.
			due, err := s.Due(ctx, time.Date(2025, 6, 1, 9, 1, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Len(t, due, tt.wantDue)
		})
	}
}

func TestDispatcher_Tick(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	scheduler := NewScheduler(kv.NewMemoryStore(nil), clk.Now, nil)

	for _, u := range []string{"u1", "u2"} {
		_, err := scheduler.Schedule(ctx, u, domain.Reminder{Hour: 9}, "")
		require.NoError(t, err)
	}

	_, err := scheduler.Schedule(ctx, "late", domain.Reminder{Hour: 21}, "")
	require.NoError(t, err)

	publisher := mocks.NewMockEventPublisher(t)
	var (
		mu   sync.Mutex
		sent []string
	)

	publisher.EXPECT().Publish(mock.Anything, mock.AnythingOfType("notify.ReminderDue")).
		Run(func(_ context.Context, event ports.Event) {
			mu.Lock()
			defer mu.Unlock()

			due := event.(ReminderDue)
			assert.Equal(t, `"Your daily wisdom is waiting."`, due.Message.Body)
			assert.Equal(t, "daily-quotes", due.Channel)
			sent = append(sent, due.UserID)
		}).
		Return(nil).Times(2)

	d := NewDispatcher(DispatcherConfig{
		Scheduler: scheduler,
		Publisher: publisher,
		Workers:   2,
		Channel:   "daily-quotes",
		Clock:     clk.Now,
	})

	clk.Set(time.Date(2025, 6, 1, 9, 0, 30, 0, time.UTC))

	n, err := d.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"u1", "u2"}, sent)

	// Already advanced to tomorrow.
	n, err = d.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	next, err := scheduler.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), next.Next)
}

type fixedQuote struct{ q *domain.Quote }

func (f fixedQuote) Today(context.Context) (*domain.Quote, error) { return f.q, nil }

func TestDispatcher_PublishFailureRetriesNextTick(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	scheduler := NewScheduler(kv.NewMemoryStore(nil), clk.Now, nil)

	_, err := scheduler.Schedule(ctx, "u1", domain.Reminder{Hour: 9}, "")
	require.NoError(t, err)

	publisher := mocks.NewMockEventPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Return(domain.NewUnavailableError("redis", "down")).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.(ReminderDue).Message.Body == `"Carpe diem."`
	})).Return(nil).Once()

	d := NewDispatcher(DispatcherConfig{
		Scheduler: scheduler,
		Publisher: publisher,
		Quotes:    fixedQuote{q: &domain.Quote{Content: "Carpe diem."}},
		Clock:     clk.Now,
	})

	clk.Set(time.Date(2025, 6, 1, 9, 1, 0, 0, time.UTC))

	n, err := d.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = d.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDispatcher_RunStopsOnCancel(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{
		Scheduler: NewScheduler(kv.NewMemoryStore(nil), nil, nil),
		Publisher: mocks.NewMockEventPublisher(t),
		Interval:  time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- d.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

// Package notify schedules the daily reminder and publishes a reminder.due
// event for every user whose reminder time has passed.
package notify

import (
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/navigation"
)

const (
	// Title heads every reminder.
	Title = "Quote of the Day 🌿"

	// FallbackBody is quoted in the body when no quote is available.
	FallbackBody = "Your daily wisdom is waiting."

	// EventReminderDue is the routing key of published reminders.
	EventReminderDue = "reminder.due"
)

// Message is the content of a reminder notification.
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// Content builds the reminder for q. A nil q uses the fallback body.
func Content(q *domain.Quote) Message {
	body := FallbackBody
	if q != nil && q.Content != "" {
		body = q.Content
	}

	return Message{
		Title: Title,
		Body:  `"` + body + `"`,
		Data:  map[string]string{navigation.NotificationScreenKey: navigation.NotificationDailyScreen},
	}
}

// NextTrigger returns the first time strictly after now at which the
// reminder fires, in now's location.
func NextTrigger(now time.Time, r domain.Reminder) time.Time {
	y, m, d := now.Date()

	next := time.Date(y, m, d, r.Hour, r.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, r.Hour, r.Minute, 0, 0, now.Location())
	}

	return next
}

// ReminderDue is published when a user's reminder fires.
type ReminderDue struct {
	UserID  string    `json:"userId"`
	Channel string    `json:"channel"`
	Message Message   `json:"message"`
	FiredAt time.Time `json:"firedAt"`
}

// EventType implements ports.Event.
func (e ReminderDue) EventType() string { return EventReminderDue }

// Payload implements ports.Event.
func (e ReminderDue) Payload() any { return e }

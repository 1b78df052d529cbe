package navigation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Scheme is the URL scheme the client registers for.
	Scheme = "quotevault"

	// DailyLink opens the Daily tab; the widget and notifications use it.
	DailyLink = Scheme + "://daily"

	// NotificationScreenKey is the notification data key naming the target.
	NotificationScreenKey = "screen"

	// NotificationDailyScreen is the value that targets the Daily tab.
	NotificationDailyScreen = "QuoteOfTheDay"
)

// ErrUnknownLink is returned for links the client does not route.
var ErrUnknownLink = errors.New("unknown link")

// Target is where a deep link lands.
type Target struct {
	Tab Tab `json:"tab"`
}

// ParseURL resolves a deep link. Any link whose host or path is "daily", or
// which mentions "daily" anywhere, opens the Daily tab.
func ParseURL(raw string) (Target, error) {
	if u, err := url.Parse(raw); err == nil {
		if u.Host == "daily" || strings.Trim(u.Path, "/") == "daily" {
			return Target{Tab: TabDaily}, nil
		}
	}

	if strings.Contains(raw, "daily") {
		return Target{Tab: TabDaily}, nil
	}

	return Target{}, fmt.Errorf("%w: %q", ErrUnknownLink, raw)
}

// FromNotification resolves the data attached to a tapped notification.
func FromNotification(data map[string]string) (Target, error) {
	if data[NotificationScreenKey] == NotificationDailyScreen {
		return Target{Tab: TabDaily}, nil
	}

	return Target{}, fmt.Errorf("%w: notification screen %q", ErrUnknownLink, data[NotificationScreenKey])
}

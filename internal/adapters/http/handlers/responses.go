package handlers

import (
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// QuoteResponse is the HTTP representation of a quote.
type QuoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func toQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:        q.ID,
		Content:   q.Content,
		Author:    q.Author,
		Category:  q.Category,
		CreatedAt: q.CreatedAt,
	}
}

// toQuoteResponses never returns nil so lists encode as [].
func toQuoteResponses(qs []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for i := range qs {
		out = append(out, toQuoteResponse(&qs[i]))
	}

	return out
}

// CollectionResponse is the HTTP representation of a collection.
type CollectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCollectionResponse(c *domain.Collection) CollectionResponse {
	return CollectionResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toCollectionResponses(cs []domain.Collection) []CollectionResponse {
	out := make([]CollectionResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toCollectionResponse(&cs[i]))
	}

	return out
}

// ProfileResponse is the HTTP representation of a profile.
type ProfileResponse struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullName"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	resp := ProfileResponse{ID: p.ID, FullName: p.FullName, AvatarURL: p.AvatarURL}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		resp.UpdatedAt = &t
	}

	return resp
}

// UserResponse is the signed-in account.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// SessionResponse is returned by sign-up and sign-in.
type SessionResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		AccessToken: s.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   s.ExpiresAt,
		User: UserResponse{
			ID:       s.User.ID,
			Email:    s.User.Email,
			FullName: s.User.FullName,
		},
	}
}

// PreferencesResponse is the HTTP representation of a user's settings.
type PreferencesResponse struct {
	Theme          domain.ThemeName   `json:"theme"`
	DarkMode       bool               `json:"darkMode"`
	FontScale      domain.FontScale   `json:"fontScale"`
	WidgetTheme    domain.WidgetTheme `json:"widgetTheme"`
	ReminderHour   int                `json:"reminderHour"`
	ReminderMinute int                `json:"reminderMinute"`
	PushEnabled    bool               `json:"pushEnabled"`
}

func toPreferencesResponse(p domain.Preferences) PreferencesResponse {
	return PreferencesResponse{
		Theme:          p.Theme,
		DarkMode:       p.DarkMode,
		FontScale:      p.FontScale,
		WidgetTheme:    p.WidgetTheme,
		ReminderHour:   p.Reminder.Hour,
		ReminderMinute: p.Reminder.Minute,
		PushEnabled:    p.PushEnabled,
	}
}

// Package acl is the anti-corruption layer between the terminal client and
// the QuoteVault API. Wire DTOs stay inside this package; callers only see
// domain types and domain errors.
package acl

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/notify"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

const (
	// DefaultServiceName identifies the API in logs, traces and errors.
	DefaultServiceName = "quotevault-api"

	apiPrefix  = "/api/v1"
	healthPath = "/-/live"

	// maxImageBytes bounds a rendered share image.
	maxImageBytes = 8 << 20
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// VaultClientConfig configures the API client.
type VaultClientConfig struct {
	// BaseURL is the service root, without the /api/v1 prefix.
	BaseURL string

	// ServiceName defaults to DefaultServiceName.
	ServiceName string

	Timeout   time.Duration
	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Token is an access token restored from a previous session.
	Token string

	Logger *slog.Logger
}

// VaultClient calls the QuoteVault API on behalf of one signed-in user.
type VaultClient struct {
	BaseAdapter

	mu    sync.RWMutex
	token string

	logger *slog.Logger
}

// NewVaultClient builds the instrumented HTTP client and the adapter on top
// of it. Every request carries the current bearer token, re-read on retry.
func NewVaultClient(cfg VaultClientConfig) (*VaultClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("vault client: base URL is required")
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	vc := &VaultClient{
		token:  cfg.Token,
		logger: logger.With(slog.String("component", "acl.VaultClient")),
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.BaseURL,
		ServiceName: cfg.ServiceName,
		Timeout:     cfg.Timeout,
		Retry:       cfg.Retry,
		Circuit:     cfg.Circuit,
		Transport:   cfg.Transport,
		AuthFunc:    vc.authorize,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}

	vc.BaseAdapter = NewBaseAdapter(client, cfg.ServiceName)

	return vc, nil
}

func (c *VaultClient) authorize(req *http.Request) {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Del("Authorization")
	}
}

// Token returns the current access token, empty when signed out.
func (c *VaultClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// SetToken replaces the access token.
func (c *VaultClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SignedIn reports whether a token is held.
func (c *VaultClient) SignedIn() bool {
	return c.Token() != ""
}

// --- wire types ---

type quoteDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type collectionDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileDTO struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullName"`
	AvatarURL string     `json:"avatarUrl"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type userDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type sessionDTO struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        userDTO   `json:"user"`
}

type feedDTO struct {
	Quotes      []quoteDTO `json:"quotes"`
	FavoriteIDs []string   `json:"favoriteIds"`
}

type searchDTO struct {
	Query      string     `json:"query"`
	Quotes     []quoteDTO `json:"quotes"`
	Suggestion string     `json:"suggestion"`
}

type overviewDTO struct {
	Profile     profileDTO      `json:"profile"`
	Collections []collectionDTO `json:"collections"`
	Favorites   []quoteDTO      `json:"favorites"`
}

type preferencesDTO struct {
	Theme          *domain.ThemeName   `json:"theme,omitempty"`
	DarkMode       *bool               `json:"darkMode,omitempty"`
	FontScale      *domain.FontScale   `json:"fontScale,omitempty"`
	WidgetTheme    *domain.WidgetTheme `json:"widgetTheme,omitempty"`
	ReminderHour   *int                `json:"reminderHour,omitempty"`
	ReminderMinute *int                `json:"reminderMinute,omitempty"`
	PushEnabled    *bool               `json:"pushEnabled,omitempty"`
}

type reminderDTO struct {
	Hour     int       `json:"hour"`
	Minute   int       `json:"minute"`
	Location string    `json:"location"`
	Next     time.Time `json:"next"`
}

type favoriteStateDTO struct {
	QuoteID   string `json:"quoteId"`
	Favorited bool   `json:"favorited"`
}

// --- translation ---

func translateQuote(ext *quoteDTO) (domain.Quote, error) {
	if err := ValidateRequired(ext.ID, "id"); err != nil {
		return domain.Quote{}, err
	}

	if err := ValidateRequired(ext.Content, "content"); err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		ID:        ext.ID,
		Content:   ext.Content,
		Author:    ext.Author,
		Category:  ext.Category,
		CreatedAt: ext.CreatedAt,
	}, nil
}

func translateCollection(ext *collectionDTO) (domain.Collection, error) {
	if err := ValidateRequired(ext.ID, "id"); err != nil {
		return domain.Collection{}, err
	}

	return domain.Collection{ID: ext.ID, Name: ext.Name, CreatedAt: ext.CreatedAt}, nil
}

func translateProfile(ext *profileDTO) *domain.Profile {
	p := &domain.Profile{ID: ext.ID, FullName: ext.FullName, AvatarURL: ext.AvatarURL}
	if ext.UpdatedAt != nil {
		p.UpdatedAt = *ext.UpdatedAt
	}

	return p
}

func translatePreferences(ext *preferencesDTO) domain.Preferences {
	p := domain.DefaultPreferences()

	if ext.Theme != nil {
		p.Theme = *ext.Theme
	}

	if ext.DarkMode != nil {
		p.DarkMode = *ext.DarkMode
	}

	if ext.FontScale != nil {
		p.FontScale = *ext.FontScale
	}

	if ext.WidgetTheme != nil {
		p.WidgetTheme = *ext.WidgetTheme
	}

	if ext.ReminderHour != nil {
		p.Reminder.Hour = *ext.ReminderHour
	}

	if ext.ReminderMinute != nil {
		p.Reminder.Minute = *ext.ReminderMinute
	}

	if ext.PushEnabled != nil {
		p.PushEnabled = *ext.PushEnabled
	}

	return p
}

// --- helpers ---

func getJSON[T any](ctx context.Context, c *VaultClient, path, operation, entityID string) (*T, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	body, err := c.Send(ctx, Call{
		Method:    http.MethodGet,
		Path:      apiPrefix + path,
		Operation: operation,
		EntityID:  entityID,
	})
	if err != nil {
		return nil, err
	}

	return DecodeResponse[T](body)
}

func sendJSON[T any](ctx context.Context, c *VaultClient, call Call) (*T, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("method", call.Method), slog.String("path", call.Path))

	call.Path = apiPrefix + call.Path

	body, err := c.Send(ctx, call)
	if err != nil {
		return nil, err
	}

	return DecodeResponse[T](body)
}

func (c *VaultClient) exec(ctx context.Context, call Call) error {
	call.Path = apiPrefix + call.Path

	return c.Exec(ctx, call)
}

// --- auth ---

func (c *VaultClient) startSession(ext *sessionDTO) (*domain.Session, error) {
	if err := ValidateRequired(ext.AccessToken, "accessToken"); err != nil {
		return nil, err
	}

	c.SetToken(ext.AccessToken)

	return &domain.Session{
		AccessToken: ext.AccessToken,
		ExpiresAt:   ext.ExpiresAt,
		User:        domain.User{ID: ext.User.ID, Email: ext.User.Email, FullName: ext.User.FullName},
	}, nil
}

// SignUp creates an account and keeps its session.
func (c *VaultClient) SignUp(ctx context.Context, email, password, fullName string) (*domain.Session, error) {
	ext, err := sendJSON[sessionDTO](ctx, c, Call{
		Method:    http.MethodPost,
		Path:      "/auth/signup",
		Body:      map[string]string{"email": email, "password": password, "fullName": fullName},
		Operation: "sign up",
	})
	if err != nil {
		return nil, err
	}

	return c.startSession(ext)
}

// SignIn exchanges credentials for a session and keeps its token.
func (c *VaultClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	ext, err := sendJSON[sessionDTO](ctx, c, Call{
		Method:    http.MethodPost,
		Path:      "/auth/signin",
		Body:      map[string]string{"email": email, "password": password},
		Operation: "sign in",
	})
	if err != nil {
		return nil, err
	}

	return c.startSession(ext)
}

// SignOut revokes the session. The local token is dropped even when the
// call fails.
func (c *VaultClient) SignOut(ctx context.Context) error {
	defer c.SetToken("")

	return c.exec(ctx, Call{Method: http.MethodPost, Path: "/auth/signout", Operation: "sign out"})
}

// ChangePassword sets a new password for the signed-in user.
func (c *VaultClient) ChangePassword(ctx context.Context, password, confirm string) error {
	return c.exec(ctx, Call{
		Method:    http.MethodPut,
		Path:      "/auth/password",
		Body:      map[string]string{"password": password, "confirm": confirm},
		Operation: "change password",
	})
}

// --- quotes ---

// Feed returns the home feed with the user's favorite ids.
func (c *VaultClient) Feed(ctx context.Context) (*app.Feed, error) {
	ext, err := getJSON[feedDTO](ctx, c, "/quotes/feed", "get feed", "")
	if err != nil {
		return nil, err
	}

	quotes, err := TranslateSlice(ext.Quotes, translateQuote)
	if err != nil {
		return nil, err
	}

	return &app.Feed{Quotes: quotes, FavoriteIDs: ext.FavoriteIDs}, nil
}

// Search runs a search and records it in the user's history.
func (c *VaultClient) Search(ctx context.Context, query string) (*app.SearchResult, error) {
	ext, err := getJSON[searchDTO](ctx, c, "/quotes/search?q="+url.QueryEscape(query), "search quotes", "")
	if err != nil {
		return nil, err
	}

	quotes, err := TranslateSlice(ext.Quotes, translateQuote)
	if err != nil {
		return nil, err
	}

	return &app.SearchResult{Query: ext.Query, Quotes: quotes, Suggestion: ext.Suggestion}, nil
}

// History returns recent searches, newest first.
func (c *VaultClient) History(ctx context.Context) ([]string, error) {
	ext, err := getJSON[struct {
		Queries []string `json:"queries"`
	}](ctx, c, "/quotes/search/history", "get search history", "")
	if err != nil {
		return nil, err
	}

	return ext.Queries, nil
}

// ClearHistory forgets the user's searches.
func (c *VaultClient) ClearHistory(ctx context.Context) error {
	return c.exec(ctx, Call{Method: http.MethodDelete, Path: "/quotes/search/history", Operation: "clear search history"})
}

// Quote fetches one quote.
func (c *VaultClient) Quote(ctx context.Context, id string) (*domain.Quote, error) {
	ext, err := getJSON[quoteDTO](ctx, c, "/quotes/"+url.PathEscape(id), "get quote", id)
	if err != nil {
		return nil, err
	}

	q, err := translateQuote(ext)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// Daily returns the quote of the day.
func (c *VaultClient) Daily(ctx context.Context) (*domain.Quote, error) {
	ext, err := getJSON[quoteDTO](ctx, c, "/daily", "get daily quote", "")
	if err != nil {
		return nil, err
	}

	q, err := translateQuote(ext)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// ShareText returns the text pasted when a quote is shared.
func (c *VaultClient) ShareText(ctx context.Context, id string) (string, error) {
	ext, err := getJSON[struct {
		Text string `json:"text"`
	}](ctx, c, "/quotes/"+url.PathEscape(id)+"/share/text", "share quote", id)
	if err != nil {
		return "", err
	}

	return ext.Text, nil
}

// Templates lists the share image templates in display order.
func (c *VaultClient) Templates(ctx context.Context) ([]app.TemplateInfo, error) {
	ext, err := getJSON[[]app.TemplateInfo](ctx, c, "/templates", "list templates", "")
	if err != nil {
		return nil, err
	}

	return *ext, nil
}

// SharePNG returns the quote rendered with template as PNG bytes.
func (c *VaultClient) SharePNG(ctx context.Context, id, template string) ([]byte, error) {
	body, err := c.Send(ctx, Call{
		Method:    http.MethodGet,
		Path:      apiPrefix + "/quotes/" + url.PathEscape(id) + "/share?template=" + url.QueryEscape(template),
		Operation: "render share image",
		EntityID:  id,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, maxImageBytes+1))
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), "reading share image: "+err.Error())
	}

	if len(data) > maxImageBytes || !bytes.HasPrefix(data, pngSignature) {
		return nil, domain.NewUnavailableError(c.ServiceName(), "share image is not a PNG")
	}

	return data, nil
}

// --- favorites ---

// Favorites lists the user's favorite quotes, newest first.
func (c *VaultClient) Favorites(ctx context.Context) ([]domain.Quote, error) {
	ext, err := getJSON[[]quoteDTO](ctx, c, "/favorites", "list favorites", "")
	if err != nil {
		return nil, err
	}

	return TranslateSlice(*ext, translateQuote)
}

// FavoriteIDs returns the authoritative favorite set.
func (c *VaultClient) FavoriteIDs(ctx context.Context) ([]string, error) {
	ext, err := getJSON[struct {
		IDs []string `json:"ids"`
	}](ctx, c, "/favorites/ids", "list favorite ids", "")
	if err != nil {
		return nil, err
	}

	return ext.IDs, nil
}

// ToggleFavorite flips the favorite and returns the new state.
func (c *VaultClient) ToggleFavorite(ctx context.Context, quoteID string) (bool, error) {
	ext, err := sendJSON[favoriteStateDTO](ctx, c, Call{
		Method:    http.MethodPost,
		Path:      "/favorites/" + url.PathEscape(quoteID) + "/toggle",
		Operation: "toggle favorite",
		EntityID:  quoteID,
	})
	if err != nil {
		return false, err
	}

	return ext.Favorited, nil
}

// SetFavorite sets the favorite state; repeating it is harmless.
func (c *VaultClient) SetFavorite(ctx context.Context, quoteID string, on bool) error {
	method := http.MethodDelete
	if on {
		method = http.MethodPut
	}

	return c.exec(ctx, Call{
		Method:    method,
		Path:      "/favorites/" + url.PathEscape(quoteID),
		Operation: "set favorite",
		EntityID:  quoteID,
	})
}

// --- collections ---

// Collections lists the user's collections in the given order.
func (c *VaultClient) Collections(ctx context.Context, order domain.CollectionOrder) ([]domain.Collection, error) {
	ext, err := getJSON[[]collectionDTO](ctx, c, "/collections?order="+url.QueryEscape(string(order)), "list collections", "")
	if err != nil {
		return nil, err
	}

	return TranslateSlice(*ext, translateCollection)
}

// CreateCollection creates an empty collection.
func (c *VaultClient) CreateCollection(ctx context.Context, name string) (*domain.Collection, error) {
	return c.createCollection(ctx, "/collections", map[string]string{"name": name})
}

// CreateCollectionWithQuote creates a collection holding quoteID. The server
// removes the collection again if the quote cannot be added.
func (c *VaultClient) CreateCollectionWithQuote(ctx context.Context, name, quoteID string) (*domain.Collection, error) {
	return c.createCollection(ctx, "/collections/with-quote", map[string]string{"name": name, "quoteId": quoteID})
}

func (c *VaultClient) createCollection(ctx context.Context, path string, body map[string]string) (*domain.Collection, error) {
	ext, err := sendJSON[collectionDTO](ctx, c, Call{
		Method:    http.MethodPost,
		Path:      path,
		Body:      body,
		Operation: "create collection",
	})
	if err != nil {
		return nil, err
	}

	col, err := translateCollection(ext)
	if err != nil {
		return nil, err
	}

	return &col, nil
}

// DeleteCollection removes a collection and its entries.
func (c *VaultClient) DeleteCollection(ctx context.Context, id string) error {
	return c.exec(ctx, Call{
		Method:    http.MethodDelete,
		Path:      "/collections/" + url.PathEscape(id),
		Operation: "delete collection",
		EntityID:  id,
	})
}

// CollectionQuotes lists the quotes in a collection.
func (c *VaultClient) CollectionQuotes(ctx context.Context, id string) ([]domain.Quote, error) {
	ext, err := getJSON[[]quoteDTO](ctx, c, "/collections/"+url.PathEscape(id)+"/quotes", "list collection quotes", id)
	if err != nil {
		return nil, err
	}

	return TranslateSlice(*ext, translateQuote)
}

// AddToCollection adds a quote. A duplicate is a ConflictError.
func (c *VaultClient) AddToCollection(ctx context.Context, collectionID, quoteID string) error {
	return c.exec(ctx, Call{
		Method:    http.MethodPost,
		Path:      "/collections/" + url.PathEscape(collectionID) + "/quotes",
		Body:      map[string]string{"quoteId": quoteID},
		Operation: "add to collection",
		EntityID:  collectionID,
	})
}

// RemoveFromCollection removes a quote from a collection.
func (c *VaultClient) RemoveFromCollection(ctx context.Context, collectionID, quoteID string) error {
	return c.exec(ctx, Call{
		Method:    http.MethodDelete,
		Path:      "/collections/" + url.PathEscape(collectionID) + "/quotes/" + url.PathEscape(quoteID),
		Operation: "remove from collection",
		EntityID:  collectionID,
	})
}

// --- profile ---

// Profile returns the signed-in user's profile.
func (c *VaultClient) Profile(ctx context.Context) (*domain.Profile, error) {
	ext, err := getJSON[profileDTO](ctx, c, "/profile", "get profile", "")
	if err != nil {
		return nil, err
	}

	return translateProfile(ext), nil
}

// Overview returns the profile tab in one call.
func (c *VaultClient) Overview(ctx context.Context) (*app.Overview, error) {
	ext, err := getJSON[overviewDTO](ctx, c, "/profile/overview", "get profile overview", "")
	if err != nil {
		return nil, err
	}

	cols, err := TranslateSlice(ext.Collections, translateCollection)
	if err != nil {
		return nil, err
	}

	favs, err := TranslateSlice(ext.Favorites, translateQuote)
	if err != nil {
		return nil, err
	}

	return &app.Overview{Profile: translateProfile(&ext.Profile), Collections: cols, Favorites: favs}, nil
}

// UpdateProfile renames the user and, when avatar is non-nil, uploads it as
// the new JPEG avatar.
func (c *VaultClient) UpdateProfile(ctx context.Context, fullName string, avatar []byte) (*domain.Profile, error) {
	body := map[string]string{"fullName": fullName}
	if avatar != nil {
		body["avatar"] = base64.StdEncoding.EncodeToString(avatar)
	}

	ext, err := sendJSON[profileDTO](ctx, c, Call{
		Method:    http.MethodPut,
		Path:      "/profile",
		Body:      body,
		Operation: "update profile",
	})
	if err != nil {
		return nil, err
	}

	return translateProfile(ext), nil
}

// --- preferences ---

// Preferences returns the user's settings.
func (c *VaultClient) Preferences(ctx context.Context) (domain.Preferences, error) {
	ext, err := getJSON[preferencesDTO](ctx, c, "/preferences", "get preferences", "")
	if err != nil {
		return domain.Preferences{}, err
	}

	return translatePreferences(ext), nil
}

// UpdatePreferences persists the provided fields and returns the result.
func (c *VaultClient) UpdatePreferences(ctx context.Context, u app.PreferencesUpdate) (domain.Preferences, error) {
	ext, err := sendJSON[preferencesDTO](ctx, c, Call{
		Method: http.MethodPut,
		Path:   "/preferences",
		Body: preferencesDTO{
			Theme:          u.Theme,
			DarkMode:       u.DarkMode,
			FontScale:      u.FontScale,
			WidgetTheme:    u.WidgetTheme,
			ReminderHour:   u.ReminderHour,
			ReminderMinute: u.ReminderMinute,
			PushEnabled:    u.PushEnabled,
		},
		Operation: "update preferences",
	})
	if err != nil {
		return domain.Preferences{}, err
	}

	return translatePreferences(ext), nil
}

// --- reminder ---

func translateReminder(ext *reminderDTO) *notify.Schedule {
	return &notify.Schedule{
		Reminder: domain.Reminder{Hour: ext.Hour, Minute: ext.Minute},
		Location: ext.Location,
		Next:     ext.Next,
	}
}

// Reminder returns the daily reminder schedule, or a NotFoundError when
// none is set.
func (c *VaultClient) Reminder(ctx context.Context) (*notify.Schedule, error) {
	ext, err := getJSON[reminderDTO](ctx, c, "/notifications/reminder", "get reminder", "")
	if err != nil {
		return nil, err
	}

	return translateReminder(ext), nil
}

// ScheduleReminder sets the daily reminder at r in the IANA location (UTC
// when empty). The server also turns notifications on.
func (c *VaultClient) ScheduleReminder(ctx context.Context, r domain.Reminder, location string) (*notify.Schedule, error) {
	ext, err := sendJSON[reminderDTO](ctx, c, Call{
		Method:    http.MethodPut,
		Path:      "/notifications/reminder",
		Body:      map[string]any{"hour": r.Hour, "minute": r.Minute, "location": location},
		Operation: "schedule reminder",
	})
	if err != nil {
		return nil, err
	}

	return translateReminder(ext), nil
}

// CancelReminder removes the reminder and turns notifications off.
func (c *VaultClient) CancelReminder(ctx context.Context) error {
	return c.exec(ctx, Call{Method: http.MethodDelete, Path: "/notifications/reminder", Operation: "cancel reminder"})
}

// --- health ---

// Name implements ports.HealthChecker.
func (c *VaultClient) Name() string {
	return c.ServiceName()
}

// Check calls the liveness endpoint.
func (c *VaultClient) Check(ctx context.Context) error {
	return c.Exec(ctx, Call{Method: http.MethodGet, Path: healthPath, Operation: "health check"})
}

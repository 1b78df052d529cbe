package acl

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

const senecaJSON = `{"id":"q1","content":"We suffer more often in imagination than in reality.","author":"Seneca","category":"Wisdom","createdAt":"2025-01-02T03:04:05Z"}`

func newTestClient(t *testing.T, mux *http.ServeMux) *VaultClient {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := NewVaultClient(VaultClientConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	})
	require.NoError(t, err)

	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewVaultClient_RequiresBaseURL(t *testing.T) {
	_, err := NewVaultClient(VaultClientConfig{})
	assert.Error(t, err)
}

func TestVaultClient_SignInStoresToken(t *testing.T) {
	var gotBody map[string]string
	var gotAuth atomic.Value

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, `{"accessToken":"tok","tokenType":"Bearer","expiresAt":"2030-01-01T00:00:00Z","user":{"id":"u1","email":"ada@example.com","fullName":"Ada"}}`)
	})
	mux.HandleFunc("GET /api/v1/daily", func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, senecaJSON)
	})

	c := newTestClient(t, mux)
	assert.False(t, c.SignedIn())

	session, err := c.SignIn(t.Context(), "ada@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, map[string]string{"email": "ada@example.com", "password": "secret1"}, gotBody)
	assert.True(t, c.SignedIn())

	q, err := c.Daily(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Seneca", q.Author)
	assert.Equal(t, "Bearer tok", gotAuth.Load())
}

func TestVaultClient_SignInRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signin", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"code":"UNAUTHORIZED","message":"invalid email or password"}}`)
	})

	c := newTestClient(t, mux)

	_, err := c.SignIn(t.Context(), "ada@example.com", "nope")

	assert.True(t, domain.IsUnauthorized(err))
	assert.False(t, c.SignedIn())
}

func TestVaultClient_SignOutDropsTokenOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signout", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, `{"error":{"code":"SERVICE_UNAVAILABLE","message":"down"}}`)
	})

	c := newTestClient(t, mux)
	c.SetToken("tok")

	err := c.SignOut(t.Context())

	assert.True(t, domain.IsUnavailable(err))
	assert.Empty(t, c.Token())
}

func TestVaultClient_Feed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/quotes/feed", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"quotes":[`+senecaJSON+`],"favoriteIds":["q1"]}`)
	})

	c := newTestClient(t, mux)

	feed, err := c.Feed(t.Context())
	require.NoError(t, err)

	require.Len(t, feed.Quotes, 1)
	assert.Equal(t, "q1", feed.Quotes[0].ID)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), feed.Quotes[0].CreatedAt)
	assert.Equal(t, []string{"q1"}, feed.FavoriteIDs)
}

func TestVaultClient_FeedRejectsIncompleteQuote(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/quotes/feed", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"quotes":[{"id":"q1"}],"favoriteIds":[]}`)
	})

	c := newTestClient(t, mux)

	_, err := c.Feed(t.Context())

	assert.True(t, domain.IsValidation(err))
}

func TestVaultClient_SearchEscapesQuery(t *testing.T) {
	var gotQuery string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/quotes/search", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		writeJSON(w, http.StatusOK, `{"query":"motivaton & co","quotes":[],"suggestion":"Motivation"}`)
	})

	c := newTestClient(t, mux)

	res, err := c.Search(t.Context(), "motivaton & co")
	require.NoError(t, err)

	assert.Equal(t, "motivaton & co", gotQuery)
	assert.Empty(t, res.Quotes)
	assert.Equal(t, "Motivation", res.Suggestion)
}

func TestVaultClient_Favorites(t *testing.T) {
	var toggles atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/favorites/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
		toggles.Add(1)
		writeJSON(w, http.StatusOK, `{"quoteId":"`+r.PathValue("id")+`","favorited":true}`)
	})
	mux.HandleFunc("GET /api/v1/favorites/ids", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"ids":["q1","q2"]}`)
	})
	mux.HandleFunc("PUT /api/v1/favorites/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"quoteId":"q1","favorited":true}`)
	})
	mux.HandleFunc("DELETE /api/v1/favorites/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "missing" {
			writeJSON(w, http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"quote not found"}}`)
			return
		}

		writeJSON(w, http.StatusOK, `{"quoteId":"q1","favorited":false}`)
	})

	c := newTestClient(t, mux)

	on, err := c.ToggleFavorite(t.Context(), "q1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, int32(1), toggles.Load())

	ids, err := c.FavoriteIDs(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, ids)

	require.NoError(t, c.SetFavorite(t.Context(), "q1", true))
	require.NoError(t, c.SetFavorite(t.Context(), "q1", false))

	err = c.SetFavorite(t.Context(), "missing", false)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)
}

func TestVaultClient_Collections(t *testing.T) {
	var gotOrder string
	var gotCreate map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		gotOrder = r.URL.Query().Get("order")
		writeJSON(w, http.StatusOK, `[{"id":"c1","name":"Stoics","createdAt":"2025-01-01T00:00:00Z"}]`)
	})
	mux.HandleFunc("POST /api/v1/collections/with-quote", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotCreate)
		writeJSON(w, http.StatusCreated, `{"id":"c2","name":"Calm","createdAt":"2025-01-01T00:00:00Z"}`)
	})
	mux.HandleFunc("POST /api/v1/collections/{id}/quotes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusConflict, `{"error":{"code":"CONFLICT","message":"already in that collection"}}`)
	})
	mux.HandleFunc("GET /api/v1/collections/{id}/quotes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[`+senecaJSON+`]`)
	})

	c := newTestClient(t, mux)

	cols, err := c.Collections(t.Context(), domain.CollectionOrderName)
	require.NoError(t, err)
	assert.Equal(t, "name", gotOrder)
	require.Len(t, cols, 1)
	assert.Equal(t, "Stoics", cols[0].Name)

	col, err := c.CreateCollectionWithQuote(t.Context(), "Calm", "q1")
	require.NoError(t, err)
	assert.Equal(t, "c2", col.ID)
	assert.Equal(t, map[string]string{"name": "Calm", "quoteId": "q1"}, gotCreate)

	err = c.AddToCollection(t.Context(), "c1", "q1")
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "already in that collection", ce.Reason)

	quotes, err := c.CollectionQuotes(t.Context(), "c1")
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
}

func TestVaultClient_UpdateProfileEncodesAvatar(t *testing.T) {
	avatar := []byte{0xFF, 0xD8, 0xFF}
	var got map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{"id":"u1","fullName":"Ada","avatarUrl":"http://x/a.jpg","updatedAt":"2025-03-04T05:06:07Z"}`)
	})

	c := newTestClient(t, mux)

	p, err := c.UpdateProfile(t.Context(), "Ada", avatar)
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(avatar), got["avatar"])
	assert.Equal(t, "http://x/a.jpg", p.AvatarURL)
	assert.Equal(t, time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC), p.UpdatedAt)
}

func TestVaultClient_Preferences(t *testing.T) {
	var got map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/preferences", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"theme":"Ocean","darkMode":false,"fontScale":1.2,"widgetTheme":"Gold","reminderHour":7,"reminderMinute":30,"pushEnabled":true}`)
	})
	mux.HandleFunc("PUT /api/v1/preferences", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{"theme":"Nature","darkMode":true,"fontScale":1,"widgetTheme":"Dark","reminderHour":9,"reminderMinute":0,"pushEnabled":true}`)
	})

	c := newTestClient(t, mux)

	p, err := c.Preferences(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeOcean, p.Theme)
	assert.False(t, p.DarkMode)
	assert.Equal(t, domain.FontLarge, p.FontScale)
	assert.Equal(t, domain.Reminder{Hour: 7, Minute: 30}, p.Reminder)

	nature := domain.ThemeNature
	p, err = c.UpdatePreferences(t.Context(), app.PreferencesUpdate{Theme: &nature})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"theme": "Nature"}, got)
	assert.Equal(t, domain.ThemeNature, p.Theme)
}

func TestVaultClient_Check(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /-/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"ok"}`)
	})

	c := newTestClient(t, mux)

	assert.Equal(t, DefaultServiceName, c.Name())
	assert.NoError(t, c.Check(t.Context()))
}

func TestVaultClient_Templates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/templates", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"name":"Classic","background":"#1a1a2e","text":"#ffffff"},{"name":"Sunset","background":"#ff7e5f","text":"#ffffff"}]`)
	})

	c := newTestClient(t, mux)

	got, err := c.Templates(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Sunset", got[1].Name)
}

func TestVaultClient_SharePNG(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), 0, 0, 0, 13)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    []byte
		check   func(error) bool
	}{
		{
			name: "returns image bytes",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("template") != "Neon Glow" {
					writeJSON(w, http.StatusBadRequest, `{"error":{"code":"VALIDATION_ERROR","message":"unknown template"}}`)
					return
				}
				w.Header().Set("Content-Type", "image/png")
				_, _ = w.Write(png)
			},
			want: png,
		},
		{
			name: "rejects a body that is not a PNG",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"ok":true}`)
			},
			check: domain.IsUnavailable,
		},
		{
			name: "maps render errors",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusBadRequest, `{"error":{"code":"VALIDATION_ERROR","message":"unknown template"}}`)
			},
			check: domain.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/v1/quotes/q1/share", tt.handler)

			c := newTestClient(t, mux)

			got, err := c.SharePNG(t.Context(), "q1", "Neon Glow")
			if tt.check != nil {
				require.Error(t, err)
				assert.True(t, tt.check(err), "unexpected error %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVaultClient_Reminder(t *testing.T) {
	var (
		got       map[string]any
		cancelled atomic.Bool
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/notifications/reminder", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"Reminder not found"}}`)
	})
	mux.HandleFunc("PUT /api/v1/notifications/reminder", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{"hour":7,"minute":30,"time":"07:30","location":"Europe/Paris","next":"2025-06-02T05:30:00Z"}`)
	})
	mux.HandleFunc("DELETE /api/v1/notifications/reminder", func(w http.ResponseWriter, _ *http.Request) {
		cancelled.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, mux)

	_, err := c.Reminder(t.Context())
	assert.True(t, domain.IsNotFound(err))

	sched, err := c.ScheduleReminder(t.Context(), domain.Reminder{Hour: 7, Minute: 30}, "Europe/Paris")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hour": float64(7), "minute": float64(30), "location": "Europe/Paris"}, got)
	assert.Equal(t, domain.Reminder{Hour: 7, Minute: 30}, sched.Reminder)
	assert.Equal(t, time.Date(2025, 6, 2, 5, 30, 0, 0, time.UTC), sched.Next.UTC())

	require.NoError(t, c.CancelReminder(t.Context()))
	assert.True(t, cancelled.Load())
}

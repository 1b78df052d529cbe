//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

const twainID = "00000000-0000-4000-8000-000000000001"

// newVaultClient returns a client for baseURL with fast retries.
func newVaultClient(t *testing.T, baseURL string) *acl.VaultClient {
	t.Helper()

	client, err := acl.NewVaultClient(acl.VaultClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 2,
		},
	})
	require.NoError(t, err)

	return client
}

// signedUpClient registers a fresh account against a new stack and returns
// the client with the stack's base URL.
func signedUpClient(t *testing.T) (*acl.VaultClient, string) {
	t.Helper()

	baseURL := startStack(t)
	client := newVaultClient(t, baseURL)

	session, err := client.SignUp(context.Background(), "ada@example.com", "secret1", "Ada Lovelace")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.True(t, client.SignedIn())

	return client, baseURL
}

func TestVaultClient_Auth_Integration(t *testing.T) {
	ctx := context.Background()
	client, baseURL := signedUpClient(t)

	t.Run("duplicate sign up conflicts", func(t *testing.T) {
		other := newVaultClient(t, baseURL)
		_, err := other.SignUp(ctx, "ADA@example.com", "secret1", "")
		assert.True(t, domain.IsConflict(err), "got %v", err)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		other := newVaultClient(t, baseURL)
		_, err := other.SignIn(ctx, "ada@example.com", "nope-nope")
		assert.True(t, domain.IsUnauthorized(err), "got %v", err)
		assert.False(t, other.SignedIn())
	})

	t.Run("signed out token is rejected", func(t *testing.T) {
		token := client.Token()
		require.NoError(t, client.SignOut(ctx))
		assert.False(t, client.SignedIn())

		client.SetToken(token)
		_, err := client.Feed(ctx)
		assert.True(t, domain.IsUnauthorized(err), "got %v", err)

		_, err = client.SignIn(ctx, "ada@example.com", "secret1")
		require.NoError(t, err)
		_, err = client.Feed(ctx)
		require.NoError(t, err)
	})

	t.Run("password change", func(t *testing.T) {
		err := client.ChangePassword(ctx, "secret2", "secret3")
		assert.True(t, domain.IsValidation(err), "got %v", err)

		require.NoError(t, client.ChangePassword(ctx, "secret2", "secret2"))

		other := newVaultClient(t, baseURL)
		_, err = other.SignIn(ctx, "ada@example.com", "secret2")
		require.NoError(t, err)
	})
}

func TestVaultClient_FeedAndFavorites_Integration(t *testing.T) {
	ctx := context.Background()
	client, _ := signedUpClient(t)

	feed, err := client.Feed(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, feed.Quotes)
	assert.Empty(t, feed.FavoriteIDs)

	require.NoError(t, client.SetFavorite(ctx, twainID, true))
	// Setting the same state again is harmless.
	require.NoError(t, client.SetFavorite(ctx, twainID, true))

	ids, err := client.FavoriteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{twainID}, ids)

	favs, err := client.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Mark Twain", favs[0].Author)

	on, err := client.ToggleFavorite(ctx, twainID)
	require.NoError(t, err)
	assert.False(t, on)

	err = client.SetFavorite(ctx, "missing-quote", true)
	assert.True(t, domain.IsNotFound(err), "got %v", err)
}

func TestVaultClient_Search_Integration(t *testing.T) {
	ctx := context.Background()
	client, _ := signedUpClient(t)

	res, err := client.Search(ctx, "twain")
	require.NoError(t, err)
	require.NotEmpty(t, res.Quotes)
	assert.Equal(t, "Mark Twain", res.Quotes[0].Author)
	assert.Empty(t, res.Suggestion)

	res, err = client.Search(ctx, "Motivaton")
	require.NoError(t, err)
	assert.Empty(t, res.Quotes)
	assert.Equal(t, "Motivation", res.Suggestion)

	history, err := client.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Motivaton", "twain"}, history)

	require.NoError(t, client.ClearHistory(ctx))
	history, err = client.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestVaultClient_Collections_Integration(t *testing.T) {
	ctx := context.Background()
	client, _ := signedUpClient(t)

	col, err := client.CreateCollectionWithQuote(ctx, "Mornings", twainID)
	require.NoError(t, err)
	assert.Equal(t, "Mornings", col.Name)

	_, err = client.CreateCollection(ctx, "Evenings")
	require.NoError(t, err)

	cols, err := client.Collections(ctx, domain.CollectionOrderName)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "Evenings", cols[0].Name)

	err = client.AddToCollection(ctx, col.ID, twainID)
	assert.True(t, domain.IsConflict(err), "got %v", err)

	quotes, err := client.CollectionQuotes(ctx, col.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, twainID, quotes[0].ID)

	require.NoError(t, client.RemoveFromCollection(ctx, col.ID, twainID))
	quotes, err = client.CollectionQuotes(ctx, col.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	require.NoError(t, client.DeleteCollection(ctx, col.ID))
	cols, err = client.Collections(ctx, domain.CollectionOrderRecent)
	require.NoError(t, err)
	assert.Len(t, cols, 1)
}

func TestVaultClient_ProfileAndPreferences_Integration(t *testing.T) {
	ctx := context.Background()
	client, _ := signedUpClient(t)

	profile, err := client.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.FullName)

	profile, err = client.UpdateProfile(ctx, "Ada King", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", profile.FullName)

	prefs, err := client.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), prefs)

	ocean := domain.ThemeOcean
	hour := 7
	prefs, err = client.UpdatePreferences(ctx, app.PreferencesUpdate{Theme: &ocean, ReminderHour: &hour})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeOcean, prefs.Theme)
	assert.Equal(t, 7, prefs.Reminder.Hour)

	overview, err := client.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", overview.Profile.FullName)
	assert.Empty(t, overview.Collections)
}

func TestVaultClient_DailyAndShare_Integration(t *testing.T) {
	ctx := context.Background()
	client, _ := signedUpClient(t)

	first, err := client.Daily(ctx)
	require.NoError(t, err)

	second, err := client.Daily(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the daily quote is stable within a day")

	text, err := client.ShareText(ctx, twainID)
	require.NoError(t, err)
	assert.Equal(t, "\"The secret of getting ahead is getting started.\" — Mark Twain\n\nShared via QuoteVault", text)

	require.NoError(t, client.Check(ctx))
}

// TestVaultClient_CircuitOpen_Integration verifies that an open circuit
// fails fast as UnavailableError without reaching the server.
func TestVaultClient_CircuitOpen_Integration(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newVaultClient(t, server.URL)

	for range 3 {
		_, err := client.Daily(context.Background())
		require.True(t, domain.IsUnavailable(err), "got %v", err)
	}

	before := calls.Load()
	_, err := client.Daily(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, before, calls.Load(), "no server call when circuit is open")
}

package flags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func testFlags() *ConfigFlags {
	return New(map[string]string{
		"daily-quote-sample-size":   "50",
		"SEARCH_RESULT_LIMIT":       " 30 ",
		"search-suggestions":        "true",
		"search-suggestions@u-beta": "false",
		"broken-int":                "thirty",
		"ratio":                     "0.25",
		"onboarding":                `{"steps":["theme","reminder"]}`,
	}, nil)
}

func TestScalarFlags(t *testing.T) {
	f := testFlags()
	ctx := context.Background()

	assert.Equal(t, 50, f.GetInt(ctx, "daily-quote-sample-size", 10))
	assert.Equal(t, 30, f.GetInt(ctx, "search-result-limit", 10))
	assert.Equal(t, 7, f.GetInt(ctx, "missing", 7))
	assert.Equal(t, 7, f.GetInt(ctx, "broken-int", 7))
	assert.True(t, f.IsEnabled(ctx, "search-suggestions", false))
	assert.False(t, f.IsEnabled(ctx, "broken-int", false))
	assert.InDelta(t, 0.25, f.GetFloat(ctx, "ratio", 1), 1e-9)
	assert.InDelta(t, 1.0, f.GetFloat(ctx, "broken-int", 1), 1e-9)
	assert.Equal(t, "30", f.GetString(ctx, "search_result_limit", ""))
	assert.Equal(t, "fallback", f.GetString(ctx, "missing", "fallback"))
}

func TestPerUserOverride(t *testing.T) {
	f := testFlags()

	beta := ports.WithFeatureFlagUser(context.Background(), &ports.FeatureFlagUser{ID: "u-beta"})
	other := ports.WithFeatureFlagUser(context.Background(), &ports.FeatureFlagUser{ID: "u-other"})
	anon := ports.WithFeatureFlagUser(context.Background(), &ports.FeatureFlagUser{ID: "u-beta", Anonymous: true})

	assert.False(t, f.IsEnabled(beta, "search-suggestions", true))
	assert.True(t, f.IsEnabled(other, "search-suggestions", false))
	assert.True(t, f.IsEnabled(anon, "search-suggestions", false))
}

func TestGetJSON(t *testing.T) {
	f := testFlags()
	ctx := context.Background()

	var onboarding struct {
		Steps []string `json:"steps"`
	}
	require.NoError(t, f.GetJSON(ctx, "onboarding", &onboarding))
	assert.Equal(t, []string{"theme", "reminder"}, onboarding.Steps)

	assert.True(t, domain.IsNotFound(f.GetJSON(ctx, "missing", &onboarding)))
	assert.Error(t, f.GetJSON(ctx, "broken-int", &onboarding))
}

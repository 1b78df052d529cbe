// Package flags evaluates feature flags from the "features" config section.
//
// Keys are matched case-insensitively with "_" and "-" treated alike, so
// APP_FEATURES__SEARCH_RESULT_LIMIT overrides search-result-limit. A key of
// the form "<flag>@<user id>" overrides the flag for one user.
package flags

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// ConfigFlags implements ports.FeatureFlags over a static map.
type ConfigFlags struct {
	values map[string]string
	logger *slog.Logger
}

// New normalizes values into a flag set.
func New(values map[string]string, logger *slog.Logger) *ConfigFlags {
	if logger == nil {
		logger = slog.Default()
	}

	normalized := make(map[string]string, len(values))
	for k, v := range values {
		normalized[normalize(k)] = strings.TrimSpace(v)
	}

	return &ConfigFlags{values: normalized, logger: logger}
}

func normalize(key string) string {
	flag, user, hasUser := strings.Cut(key, "@")

	flag = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(flag)), "_", "-")
	if hasUser {
		return flag + "@" + strings.TrimSpace(user)
	}

	return flag
}

func (f *ConfigFlags) lookup(ctx context.Context, flag string) (string, bool) {
	key := normalize(flag)

	if user := ports.GetFeatureFlagUser(ctx); user != nil && !user.Anonymous && user.ID != "" {
		if v, ok := f.values[key+"@"+user.ID]; ok {
			return v, true
		}
	}

	v, ok := f.values[key]

	return v, ok
}

// IsEnabled implements ports.FeatureFlags.
func (f *ConfigFlags) IsEnabled(ctx context.Context, flag string, defaultValue bool) bool {
	raw, ok := f.lookup(ctx, flag)
	if !ok {
		return defaultValue
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		f.malformed(ctx, flag, raw)
		return defaultValue
	}

	return v
}

// GetString implements ports.FeatureFlags.
func (f *ConfigFlags) GetString(ctx context.Context, flag string, defaultValue string) string {
	if raw, ok := f.lookup(ctx, flag); ok {
		return raw
	}

	return defaultValue
}

// GetInt implements ports.FeatureFlags.
func (f *ConfigFlags) GetInt(ctx context.Context, flag string, defaultValue int) int {
	raw, ok := f.lookup(ctx, flag)
	if !ok {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		f.malformed(ctx, flag, raw)
		return defaultValue
	}

	return v
}

// GetFloat implements ports.FeatureFlags.
func (f *ConfigFlags) GetFloat(ctx context.Context, flag string, defaultValue float64) float64 {
	raw, ok := f.lookup(ctx, flag)
	if !ok {
		return defaultValue
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.malformed(ctx, flag, raw)
		return defaultValue
	}

	return v
}

// GetJSON implements ports.FeatureFlags.
func (f *ConfigFlags) GetJSON(ctx context.Context, flag string, target any) error {
	raw, ok := f.lookup(ctx, flag)
	if !ok {
		return domain.NewNotFoundError("FeatureFlag", flag)
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("decoding flag %s: %w", flag, err)
	}

	return nil
}

func (f *ConfigFlags) malformed(ctx context.Context, flag, raw string) {
	f.logger.WarnContext(ctx, "ignoring malformed feature flag",
		slog.String("flag", flag),
		slog.String("value", raw),
	)
}

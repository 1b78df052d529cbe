package ports

import "context"

// FeatureFlags evaluates runtime switches such as "daily-quote-sample-size".
// Every getter falls back to defaultValue when the flag is unset or malformed,
// so callers never branch on evaluation errors.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
	GetString(ctx context.Context, flag string, defaultValue string) string
	GetInt(ctx context.Context, flag string, defaultValue int) int
	GetFloat(ctx context.Context, flag string, defaultValue float64) float64

	// GetJSON decodes a structured flag into target. Unlike the scalar
	// getters it reports a missing or undecodable flag as an error.
	GetJSON(ctx context.Context, flag string, target any) error
}

// FeatureFlagUser identifies the caller a flag is evaluated for, allowing
// per-user overrides.
type FeatureFlagUser struct {
	ID        string
	Anonymous bool

	// Attributes carries extra targeting data, e.g. {"email": "..."}.
	Attributes map[string]any
}

type flagUserKey struct{}

// WithFeatureFlagUser returns ctx carrying the user flags are evaluated for.
// RequireAuth sets it for every signed-in request.
func WithFeatureFlagUser(ctx context.Context, user *FeatureFlagUser) context.Context {
	return context.WithValue(ctx, flagUserKey{}, user)
}

// GetFeatureFlagUser returns the user on ctx, or nil.
func GetFeatureFlagUser(ctx context.Context) *FeatureFlagUser {
	user, _ := ctx.Value(flagUserKey{}).(*FeatureFlagUser)
	return user
}

package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// redactedFields are attribute and struct field names whose values never
// reach a sink: credentials, session tokens and avatar payloads.
var redactedFields = []string{
	"password", "Password", "PasswordHash", "password_hash", "confirm",
	"newPassword", "currentPassword",
	"token", "accessToken", "AccessToken", "access_token",
	"refreshToken", "refresh_token", "bearer", "authorization", "auth",
	"cookie", "session", "credential", "credentials",
	"apiKey", "apikey", "api_key",
	"jwt_secret", "JWTSecret",
	"avatar", "Avatar", "avatarBase64",
}

var (
	jwtValue    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	authzHeader = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)
)

// DefaultRedactOptions returns the masq options applied to every handler.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(redactedFields)+4)
	for _, name := range redactedFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(jwtValue),
		masq.WithRegex(authzHeader),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts with
// DefaultRedactOptions plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}

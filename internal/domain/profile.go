package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at sign-up and change.
const MinPasswordLength = 6

// User is an authentication identity. FullName is the metadata profiles fall
// back to when no profile row exists yet.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

// Profile is the public face of a user.
type Profile struct {
	ID        string
	FullName  string
	AvatarURL string
	UpdatedAt time.Time
}

// Session is an issued access token for a user.
type Session struct {
	AccessToken string
	TokenID     string
	ExpiresAt   time.Time
	User        User
}

// ProfileFromUser builds the fallback profile shown before a row is saved.
func ProfileFromUser(u *User) *Profile {
	return &Profile{ID: u.ID, FullName: u.FullName}
}

// NormalizeEmail lowercases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", NewValidationError("email", "email is required")
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", NewValidationErrorWithValue("email", "must be a valid email address", trimmed)
	}

	return trimmed, nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return NewValidationError("password", "must be at least 6 characters")
	}

	return nil
}

// ValidatePasswordChange checks the new password and its confirmation.
func ValidatePasswordChange(password, confirm string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	if password != confirm {
		return NewValidationError("confirm", "passwords do not match")
	}

	return nil
}

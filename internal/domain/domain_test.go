package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_ShareText(t *testing.T) {
	q := &Quote{Content: "Know thyself.", Author: "Socrates"}

	assert.Equal(t, "\"Know thyself.\" — Socrates\n\nShared via QuoteVault", q.ShareText())
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Wisdom", NormalizeCategory("  wisdom "))
	assert.Equal(t, "Stoicism", NormalizeCategory("Stoicism"))
}

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trimmed", input: "  Stoics ", want: "Stoics"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("x", MaxCollectionNameLength+1), wantErr: true},
		{name: "exactly max", input: strings.Repeat("y", MaxCollectionNameLength), want: strings.Repeat("y", MaxCollectionNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCollectionName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCollectionOrder(t *testing.T) {
	assert.Equal(t, CollectionOrderName, ParseCollectionOrder("NAME"))
	assert.Equal(t, CollectionOrderRecent, ParseCollectionOrder(""))
	assert.Equal(t, CollectionOrderRecent, ParseCollectionOrder("bogus"))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Reader@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", got)

	for _, bad := range []string{"", "not-an-email", "Name <a@b.c>"} {
		_, err := NormalizeEmail(bad)
		assert.True(t, IsValidation(err), "input %q", bad)
	}
}

func TestValidatePasswordChange(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		field    string
	}{
		{name: "ok", password: "secret1", confirm: "secret1"},
		{name: "too short", password: "abc", confirm: "abc", field: "password"},
		{name: "mismatch", password: "secret1", confirm: "secret2", field: "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordChange(tt.password, tt.confirm)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestPreferences_Validate(t *testing.T) {
	assert.NoError(t, DefaultPreferences().Validate())

	p := DefaultPreferences()
	p.Theme = "Sunset"
	assert.True(t, IsValidation(p.Validate()))

	p = DefaultPreferences()
	p.FontScale = 1.5
	assert.True(t, IsValidation(p.Validate()))

	p = DefaultPreferences()
	p.WidgetTheme = "Neon"
	assert.True(t, IsValidation(p.Validate()))

	p = DefaultPreferences()
	p.Reminder = Reminder{Hour: 24}
	assert.True(t, IsValidation(p.Validate()))

	p = DefaultPreferences()
	p.Reminder = Reminder{Hour: 7, Minute: 60}
	assert.True(t, IsValidation(p.Validate()))
}

func TestReminder_String(t *testing.T) {
	assert.Equal(t, "09:00", DefaultReminder.String())
	assert.Equal(t, "21:05", Reminder{Hour: 21, Minute: 5}.String())
}

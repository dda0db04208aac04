package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain name", input: "Jane Doe", want: "Jane Doe"},
		{name: "whitespace collapsed", input: "  Jane \t  Doe \n", want: "Jane Doe"},
		{name: "minimum length", input: "Jo", want: "Jo"},
		{name: "too short", input: "J", wantErr: true},
		{name: "too short after trim", input: "  J  ", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "bare digits", input: "9876543210"},
		{name: "international format", input: "+91 98765 43210"},
		{name: "hyphenated", input: "040-2345-678"},
		{name: "surrounding spaces trimmed", input: "  9876543210  "},
		{name: "too short", input: "123456", wantErr: true},
		{name: "too long", input: strings.Repeat("9", 21), wantErr: true},
		{name: "letters rejected", input: "98765abcde", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateContact(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNotes(t *testing.T) {
	t.Run("empty allowed", func(t *testing.T) {
		got, err := validateNotes("")
		assert.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		got, err := validateNotes("  prefers   morning \n slots ")
		assert.NoError(t, err)
		assert.Equal(t, "prefers morning slots", got)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := validateNotes(strings.Repeat("x", 1001))
		assert.Error(t, err)
	})
}

func TestValidateReason(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid reason", input: "patient travelling"},
		{name: "minimum length", input: "ill"},
		{name: "too short", input: "no", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("r", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateReason(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFutureDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("future date passes and is normalized to UTC", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		date := time.Date(2026, 3, 12, 10, 0, 0, 0, ist)
		got, err := validateFutureDate(date, now)
		assert.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())
		assert.True(t, got.Equal(date))
	})

	t.Run("past date rejected", func(t *testing.T) {
		_, err := validateFutureDate(now.Add(-time.Second), now)
		assert.Error(t, err)
	})

	t.Run("exactly now rejected", func(t *testing.T) {
		_, err := validateFutureDate(now, now)
		assert.Error(t, err)
	})
}

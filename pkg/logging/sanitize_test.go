package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "password parameter",
			input:    "host=db password=secret123 dbname=plms",
			expected: "host=db password=[REDACTED] dbname=plms",
		},
		{
			name:     "mysql dsn with credentials",
			input:    "plms:s3cret@tcp(db:3306)/transactionalplms",
			expected: "[REDACTED]@tcp(db:3306)/transactionalplms",
		},
		{
			name:     "url with credentials",
			input:    "mysql://plms:s3cret@db:3306/transactionalplms",
			expected: "mysql://[REDACTED]@db:3306/transactionalplms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeDSN(tt.input))
		})
	}
}

func TestSanitizeQueryTruncates(t *testing.T) {
	long := "SELECT DISTINCT vehicleNumber FROM transactionalplms.vw_trip_info WHERE " +
		strings.Repeat("x", MaxQueryLogLength)
	got := SanitizeQuery(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, MaxQueryLogLength+3)
}

func TestSanitizeQueryRedactsKeys(t *testing.T) {
	got := SanitizeQuery("SELECT 1 -- api_key=abcdefghijklmnopqrstuvwx")
	assert.NotContains(t, got, "abcdefghijklmnopqrstuvwx")
	assert.Contains(t, got, RedactedText)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 5))
	assert.Equal(t, "ab...", TruncateString("abcdef", 2))
}

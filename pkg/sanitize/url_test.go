package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "brainpin/pkg/errors"
)

func TestValidateHTTPURL_Accepts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com/a?b=1", "https://example.com/a?b=1"},
		{"http://example.com", "http://example.com"},
		{"  https://example.com/path  ", "https://example.com/path"},
	}

	for _, tt := range tests {
		got, err := ValidateHTTPURL(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidateHTTPURL_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"ftp://example.com",
		"tel:+49151234",
		"example.com",
		"://missing-scheme",
	}

	for _, input := range inputs {
		_, err := ValidateHTTPURL(input)
		require.Error(t, err, input)
		assert.True(t, apperrors.IsValidation(err), input)
	}
}

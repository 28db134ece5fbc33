package sanitize

import (
	"net/url"
	"strings"

	apperrors "brainpin/pkg/errors"
)

// ValidateHTTPURL checks that the trimmed value parses as an absolute http or
// https URL and returns the trimmed value.
func ValidateHTTPURL(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewValidationError("url cannot be empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", apperrors.NewValidationError("url is not valid").WithCause(err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", apperrors.NewValidationError("url must use http or https")
	}
	if parsed.Host == "" {
		return "", apperrors.NewValidationError("url must be absolute")
	}

	return trimmed, nil
}

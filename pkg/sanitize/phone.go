package sanitize

import (
	"regexp"
	"strings"

	apperrors "brainpin/pkg/errors"
)

// DefaultCountryCode is prefixed to local phone numbers when the caller does
// not configure one. It must carry the leading "+" so that sanitizing an
// already-sanitized number is a no-op.
const DefaultCountryCode = "+49"

const telScheme = "tel:"

// separators covers the formatting characters users paste into phone fields.
var separators = regexp.MustCompile(`[\s().\-/]`)

// PhoneNumber is the result of sanitizing a raw phone input.
type PhoneNumber struct {
	// Normalized is the canonical form: "+<digits>" for international
	// numbers, "<countryCode><digits>" for local ones.
	Normalized string

	// Changed reports whether the input was adjusted, so the UI can show a
	// "we corrected your input" notice.
	Changed bool
}

// IsTelephoneURL reports whether the trimmed, lower-cased value starts with
// the tel: scheme.
func IsTelephoneURL(value string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), telScheme)
}

// ExtractPhoneNumber strips a leading tel: prefix (case-insensitive) and
// returns the input unchanged when it is not a telephone URL.
func ExtractPhoneNumber(value string) string {
	if !IsTelephoneURL(value) {
		return value
	}
	return strings.TrimSpace(value)[len(telScheme):]
}

// SanitizePhoneNumber normalizes a raw phone string. Whitespace, parentheses,
// dots, slashes and hyphens are stripped, a leading "00" becomes "+", and
// local numbers lose their leading zeros and gain countryCode. An empty
// countryCode selects DefaultCountryCode.
func SanitizePhoneNumber(raw, countryCode string) (PhoneNumber, error) {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	stripped := separators.ReplaceAllString(raw, "")
	if stripped == "" {
		return PhoneNumber{}, apperrors.NewValidationError("phone number cannot be empty")
	}

	if strings.Count(stripped, "+") > 1 {
		return PhoneNumber{}, apperrors.NewValidationError("phone number contains more than one '+'")
	}
	if idx := strings.Index(stripped, "+"); idx > 0 {
		return PhoneNumber{}, apperrors.NewValidationError("'+' is only allowed at the start of a phone number")
	}

	// An international 00 prefix is equivalent to "+".
	if strings.HasPrefix(stripped, "00") {
		stripped = "+" + stripped[2:]
	}

	international := strings.HasPrefix(stripped, "+")
	digits := stripped
	if international {
		digits = stripped[1:]
	}
	if !isAllDigits(digits) {
		return PhoneNumber{}, apperrors.NewValidationError("phone number may only contain digits aside from a leading '+'")
	}

	var normalized string
	if international {
		// Catches degenerate inputs like "0000", which the 00 prefix rule
		// turns into "+00".
		if strings.TrimLeft(digits, "0") == "" {
			return PhoneNumber{}, apperrors.NewValidationError("phone number has no significant digits")
		}
		normalized = "+" + digits
	} else {
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			return PhoneNumber{}, apperrors.NewValidationError("phone number has no digits after the leading zeros")
		}
		normalized = countryCode + digits
	}

	return PhoneNumber{
		Normalized: normalized,
		Changed:    normalized != raw,
	}, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

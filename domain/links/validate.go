package links

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "brainpin/pkg/errors"
	"brainpin/pkg/sanitize"
)

const (
	// MaxNameLength bounds link, category and sublink names.
	MaxNameLength = 16

	// MaxDescriptionLength bounds optional descriptions.
	MaxDescriptionLength = 512
)

// ValidateName trims the name and checks it is non-empty and within bounds.
func ValidateName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	err := validation.Validate(trimmed,
		validation.Required.Error("name cannot be empty"),
		validation.RuneLength(0, MaxNameLength).Error(
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength)),
	)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}
	return trimmed, nil
}

// ValidateDescription trims the description, collapsing empty values to nil.
func ValidateDescription(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	err := validation.Validate(trimmed,
		validation.RuneLength(0, MaxDescriptionLength).Error(
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength)),
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return &trimmed, nil
}

// ValidateLinkURL accepts http(s) URLs and tel: URLs. Telephone URLs come
// back with their number in sanitized form, so equal contacts compare equal.
func ValidateLinkURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.NewValidationError("url cannot be empty")
	}

	if sanitize.IsTelephoneURL(trimmed) {
		phone, err := sanitize.SanitizePhoneNumber(sanitize.ExtractPhoneNumber(trimmed), "")
		if err != nil {
			return "", err
		}
		return "tel:" + phone.Normalized, nil
	}

	return sanitize.ValidateHTTPURL(trimmed)
}

// ValidateCategoryIDs trims and de-duplicates the ids and requires at least
// one. The sentinel id is rejected: it exists only client-side.
func ValidateCategoryIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, apperrors.NewValidationError("category ids cannot be empty")
		}
		if id == SentinelCategoryID {
			return nil, apperrors.NewValidationErrorf("category id %q is reserved", SentinelCategoryID)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, apperrors.NewValidationError("at least one category must be selected")
	}
	return out, nil
}

// ValidateSublinks validates every sublink of a link as a group: ids must be
// present and unique, names and urls follow the usual rules, and at most one
// sublink may be a telephone contact.
func ValidateSublinks(subs []Sublink) ([]Sublink, error) {
	out := make([]Sublink, 0, len(subs))
	seen := make(map[string]struct{}, len(subs))
	telephones := 0

	for i, sub := range subs {
		id := strings.TrimSpace(sub.ID)
		if id == "" {
			return nil, apperrors.NewValidationErrorf("sublinks[%d] is missing an id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, apperrors.NewValidationError("sublink identifiers must be unique")
		}
		seen[id] = struct{}{}

		name, err := ValidateName(sub.Name)
		if err != nil {
			return nil, apperrors.Wrap(err, fmt.Sprintf("sublinks[%d]", i))
		}
		url, err := ValidateLinkURL(sub.URL)
		if err != nil {
			return nil, apperrors.Wrap(err, fmt.Sprintf("sublinks[%d]", i))
		}
		description, err := ValidateDescription(sub.Description)
		if err != nil {
			return nil, apperrors.Wrap(err, fmt.Sprintf("sublinks[%d]", i))
		}

		if sanitize.IsTelephoneURL(url) {
			telephones++
			if telephones > 1 {
				return nil, apperrors.NewValidationError("a link may have at most one telephone sublink")
			}
		}

		out = append(out, Sublink{ID: id, Name: name, URL: url, Description: description})
	}

	return out, nil
}

// ValidateLinkPayload sanitizes a full link payload before it goes anywhere
// near the network.
func ValidateLinkPayload(p LinkPayload) (LinkPayload, error) {
	name, err := ValidateName(p.Name)
	if err != nil {
		return LinkPayload{}, err
	}
	url, err := ValidateLinkURL(p.URL)
	if err != nil {
		return LinkPayload{}, err
	}
	categoryIDs, err := ValidateCategoryIDs(p.CategoryIDs)
	if err != nil {
		return LinkPayload{}, err
	}
	description, err := ValidateDescription(p.Description)
	if err != nil {
		return LinkPayload{}, err
	}
	sublinks, err := ValidateSublinks(p.Sublinks)
	if err != nil {
		return LinkPayload{}, err
	}

	return LinkPayload{
		Name:        name,
		URL:         url,
		CategoryIDs: categoryIDs,
		Description: description,
		Sublinks:    sublinks,
	}, nil
}

// ValidateCategoryPayload sanitizes a category payload.
func ValidateCategoryPayload(p CategoryPayload) (CategoryPayload, error) {
	name, err := ValidateName(p.Name)
	if err != nil {
		return CategoryPayload{}, err
	}
	description, err := ValidateDescription(p.Description)
	if err != nil {
		return CategoryPayload{}, err
	}
	return CategoryPayload{Name: name, Description: description}, nil
}

package links

import (
	"strings"

	apperrors "brainpin/pkg/errors"
)

// RawLink mirrors the wire shape of a link with deliberately loose typing.
// Responses pass through Normalize before anything else trusts them.
type RawLink struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	URL         string        `json:"url"`
	CategoryIDs []interface{} `json:"categoryIds"`
	Description *string       `json:"description"`
	Sublinks    []RawSublink  `json:"sublinks"`
}

// RawSublink mirrors the wire shape of a sublink.
type RawSublink struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
}

// RawCategory mirrors the wire shape of a category.
type RawCategory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Normalize coerces the wire object into the strict domain shape: category
// ids are de-duplicated with non-string entries dropped, an absent sublink
// list becomes an empty slice, and malformed sublink entries are skipped.
func (r RawLink) Normalize() (Link, error) {
	if r.ID == "" || r.Name == "" || r.URL == "" {
		return Link{}, apperrors.NewFormatError("link object is missing id, name or url")
	}

	categoryIDs := make([]string, 0, len(r.CategoryIDs))
	seen := make(map[string]struct{}, len(r.CategoryIDs))
	for _, candidate := range r.CategoryIDs {
		id, ok := candidate.(string)
		if !ok {
			continue
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		categoryIDs = append(categoryIDs, id)
	}

	sublinks := make([]Sublink, 0, len(r.Sublinks))
	for _, raw := range r.Sublinks {
		if raw.ID == "" || raw.Name == "" || raw.URL == "" {
			continue
		}
		sublinks = append(sublinks, Sublink{
			ID:          raw.ID,
			Name:        raw.Name,
			URL:         raw.URL,
			Description: normalizeDescription(raw.Description),
		})
	}

	return Link{
		ID:          r.ID,
		Name:        r.Name,
		URL:         r.URL,
		CategoryIDs: categoryIDs,
		Description: normalizeDescription(r.Description),
		Sublinks:    sublinks,
	}, nil
}

// Normalize coerces the wire category into the domain shape.
func (r RawCategory) Normalize() (Category, error) {
	if r.ID == "" || r.Name == "" {
		return Category{}, apperrors.NewFormatError("category object is missing id or name")
	}
	return Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: normalizeDescription(r.Description),
	}, nil
}

func normalizeDescription(d *string) *string {
	if d == nil || strings.TrimSpace(*d) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	return &trimmed
}

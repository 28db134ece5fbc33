package links

// LinkPayload carries the fields needed to create a link.
type LinkPayload struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	CategoryIDs []string  `json:"categoryIds"`
	Description *string   `json:"description,omitempty"`
	Sublinks    []Sublink `json:"sublinks,omitempty"`
}

// LinkPatch is a partial update: only non-nil fields are applied. Setting
// Description to an empty string clears it.
type LinkPatch struct {
	Name        *string    `json:"name,omitempty"`
	URL         *string    `json:"url,omitempty"`
	CategoryIDs *[]string  `json:"categoryIds,omitempty"`
	Description *string    `json:"description,omitempty"`
	Sublinks    *[]Sublink `json:"sublinks,omitempty"`
}

// IsEmpty reports whether the patch contains no fields to apply.
func (p LinkPatch) IsEmpty() bool {
	return p.Name == nil && p.URL == nil && p.CategoryIDs == nil &&
		p.Description == nil && p.Sublinks == nil
}

// CategoryPayload carries the fields needed to create a category.
type CategoryPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch contains no fields to apply.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// SublinkPayload carries the fields needed to create a sublink. The id is
// optional; the backend assigns one when it is empty.
type SublinkPayload struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
}

// SublinkPatch is a partial sublink update.
type SublinkPatch struct {
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch contains no fields to apply.
func (p SublinkPatch) IsEmpty() bool {
	return p.Name == nil && p.URL == nil && p.Description == nil
}

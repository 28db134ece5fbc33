package links

// Category groups links. The id is server-assigned and globally unique.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Sublink belongs to exactly one Link; there is no sharing between links.
type Sublink struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
}

// Link is the central entity: a bookmark with categories and owned sublinks.
type Link struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	CategoryIDs []string  `json:"categoryIds"`
	Description *string   `json:"description,omitempty"`
	Sublinks    []Sublink `json:"sublinks"`
}

// SentinelCategoryID marks the synthetic "show everything" category. It is
// never persisted and must never be sent to the backend.
const SentinelCategoryID = "all"

// SentinelCategory returns the synthetic category prefixed to every loaded
// category list.
func SentinelCategory() Category {
	return Category{ID: SentinelCategoryID, Name: "All"}
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	out.Description = cloneStringPtr(c.Description)
	return out
}

// Clone returns a deep copy of the sublink.
func (s Sublink) Clone() Sublink {
	out := s
	out.Description = cloneStringPtr(s.Description)
	return out
}

// Clone returns a deep copy of the link, including category ids and sublinks.
func (l Link) Clone() Link {
	out := l
	out.Description = cloneStringPtr(l.Description)
	if l.CategoryIDs != nil {
		out.CategoryIDs = append([]string(nil), l.CategoryIDs...)
	}
	if l.Sublinks != nil {
		out.Sublinks = make([]Sublink, len(l.Sublinks))
		for i, s := range l.Sublinks {
			out.Sublinks[i] = s.Clone()
		}
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

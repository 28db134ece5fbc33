package links

// Filter is the category filter applied to the link list. It is a tagged
// variant: either "no filter" or "links in one category". The sentinel "all"
// id maps to the unfiltered variant at construction, so nothing downstream
// needs to special-case it.
type Filter struct {
	categoryID string
}

// NoFilter returns the unfiltered variant.
func NoFilter() Filter {
	return Filter{}
}

// ByCategory returns a filter for the given category id. An empty id or the
// sentinel id yields the unfiltered variant.
func ByCategory(id string) Filter {
	if id == "" || id == SentinelCategoryID {
		return Filter{}
	}
	return Filter{categoryID: id}
}

// IsAll reports whether the filter shows every link.
func (f Filter) IsAll() bool {
	return f.categoryID == ""
}

// CategoryID returns the filtered category id and whether one is set.
func (f Filter) CategoryID() (string, bool) {
	return f.categoryID, f.categoryID != ""
}

// Matches reports whether the link passes the filter.
func (f Filter) Matches(l Link) bool {
	if f.IsAll() {
		return true
	}
	for _, id := range l.CategoryIDs {
		if id == f.categoryID {
			return true
		}
	}
	return false
}

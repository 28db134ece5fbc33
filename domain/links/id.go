package links

import (
	"strings"

	"github.com/google/uuid"
)

// Entity ids are a short prefix plus the first 12 hex characters of a v4
// UUID, which keeps them readable in URLs and log lines.

// NewLinkID returns a fresh link id.
func NewLinkID() string {
	return "lnk-" + shortUUID()
}

// NewCategoryID returns a fresh category id.
func NewCategoryID() string {
	return "cat-" + shortUUID()
}

// NewSublinkID returns a fresh sublink id.
func NewSublinkID() string {
	return "sln-" + shortUUID()
}

func shortUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

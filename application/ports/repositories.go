// Package ports declares the persistence interfaces the application layer
// depends on. Implementations live under infrastructure/persistence.
package ports

import (
	"context"

	"brainpin/domain/links"
)

// LinkRepository persists links.
type LinkRepository interface {
	// List returns every stored link.
	List(ctx context.Context) ([]links.Link, error)

	// Get returns the link with the given id, or a not found error.
	Get(ctx context.Context, id string) (links.Link, error)

	// Create stores a new link. Fails with a conflict when the id is taken.
	Create(ctx context.Context, link links.Link) error

	// Update applies the non-nil patch fields and returns the updated link.
	// Fails with a not found error when the link does not exist.
	Update(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error)

	// Put overwrites an existing link wholesale. Used by the sublink flows,
	// which read-modify-write the parent link.
	Put(ctx context.Context, link links.Link) error

	// Delete removes a link. Fails with a not found error when absent.
	Delete(ctx context.Context, id string) error

	// AnyReferencingCategory reports whether any link carries the category id.
	AnyReferencingCategory(ctx context.Context, categoryID string) (bool, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]links.Category, error)
	Get(ctx context.Context, id string) (links.Category, error)
	Create(ctx context.Context, category links.Category) error
	Update(ctx context.Context, id string, patch links.CategoryPatch) (links.Category, error)
	Delete(ctx context.Context, id string) error
}

// Package store holds the client-side snapshot of categories and links. It
// is the single source of truth for the view layer: every mutation is
// validated locally, sent through the API, and the authoritative server
// response is merged back, so the store never invents entity state.
package store

import (
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
	"brainpin/pkg/sanitize"
)

// API is the slice of the backend client the store depends on.
type API interface {
	ListLinks(ctx context.Context) ([]links.Link, error)
	CreateLink(ctx context.Context, payload links.LinkPayload) (links.Link, error)
	UpdateLink(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error)
	DeleteLink(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]links.Category, error)
	CreateCategory(ctx context.Context, payload links.CategoryPayload) (links.Category, error)
	UpdateCategory(ctx context.Context, id string, patch links.CategoryPatch) (links.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error)
	UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error)
	DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error)
}

// State is a point-in-time copy of the store contents, safe to hand to the
// view layer.
type State struct {
	Categories []links.Category
	Links      []links.Link
	Filter     links.Filter
	IsLoading  bool
	HasLoaded  bool
	Err        string
}

// Store is an explicit, injectable state container; construct one per
// consumer (and per test) instead of sharing a package-level singleton.
type Store struct {
	api    API
	logger *zap.Logger

	mu         sync.Mutex
	categories []links.Category
	links      []links.Link
	filter     links.Filter
	isLoading  bool
	hasLoaded  bool
	lastErr    string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store backed by the given API.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:    api,
		logger: zap.NewNop(),
		filter: links.NoFilter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches links and categories and replaces the snapshot. It is a no-op
// while another load is in flight, or when data is already present and force
// is unset. Failures never corrupt the snapshot: they are absorbed into the
// error state, and previously loaded data stays visible unless the failed
// attempt was a forced reload.
func (s *Store) Load(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.isLoading || (s.hasLoaded && !force) {
		s.mu.Unlock()
		return
	}
	s.isLoading = true
	s.mu.Unlock()

	var (
		wg            sync.WaitGroup
		fetchedLinks  []links.Link
		fetchedCats   []links.Category
		linksErr      error
		categoriesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fetchedLinks, linksErr = s.api.ListLinks(ctx)
	}()
	go func() {
		defer wg.Done()
		fetchedCats, categoriesErr = s.api.ListCategories(ctx)
	}()
	wg.Wait()

	err := linksErr
	if err == nil {
		err = categoriesErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		s.logger.Warn("load failed", zap.Error(err))
		s.lastErr = messageOf(err)
		if force {
			s.hasLoaded = false
		}
		return
	}

	categories := make([]links.Category, 0, len(fetchedCats)+1)
	categories = append(categories, links.SentinelCategory())
	categories = append(categories, fetchedCats...)
	s.categories = categories

	s.links = make([]links.Link, 0, len(fetchedLinks))
	for _, l := range fetchedLinks {
		s.links = append(s.links, withSublinks(l))
	}

	// A filter pointing at a category that no longer exists falls back to
	// showing everything.
	if id, ok := s.filter.CategoryID(); ok && !s.hasCategoryLocked(id) {
		s.filter = links.NoFilter()
	}

	s.hasLoaded = true
	s.lastErr = ""
}

// AddCategory validates the name and creates the category, splicing the
// server copy into the snapshot.
func (s *Store) AddCategory(ctx context.Context, name string) (links.Category, error) {
	payload, err := links.ValidateCategoryPayload(links.CategoryPayload{Name: name})
	if err != nil {
		return links.Category{}, err
	}

	created, err := s.api.CreateCategory(ctx, payload)
	if err != nil {
		return links.Category{}, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, created)
	s.lastErr = ""
	return created.Clone(), nil
}

// UpdateCategory renames a category.
func (s *Store) UpdateCategory(ctx context.Context, id, name string) (links.Category, error) {
	validName, err := links.ValidateName(name)
	if err != nil {
		return links.Category{}, err
	}

	updated, err := s.api.UpdateCategory(ctx, id, links.CategoryPatch{Name: &validName})
	if err != nil {
		return links.Category{}, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == updated.ID {
			s.categories[i] = updated
			break
		}
	}
	s.lastErr = ""
	return updated.Clone(), nil
}

// DeleteCategory removes a category. Deleting the sentinel is a no-op: it
// only exists client-side.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if id == links.SentinelCategoryID {
		return nil
	}

	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	if filtered, ok := s.filter.CategoryID(); ok && filtered == id {
		s.filter = links.NoFilter()
	}
	s.lastErr = ""
	return nil
}

// AddLink validates and sanitizes the payload, creates the link, and appends
// the server copy.
func (s *Store) AddLink(ctx context.Context, payload links.LinkPayload) (links.Link, error) {
	valid, err := links.ValidateLinkPayload(payload)
	if err != nil {
		return links.Link{}, err
	}

	created, err := s.api.CreateLink(ctx, valid)
	if err != nil {
		return links.Link{}, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, withSublinks(created))
	s.lastErr = ""
	return created.Clone(), nil
}

// UpdateLink applies a partial update. Fields equal to the current state are
// dropped from the patch; an empty diff issues no network call.
func (s *Store) UpdateLink(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error) {
	diff, current, err := s.buildLinkDiff(id, patch)
	if err != nil {
		return links.Link{}, err
	}
	if diff.IsEmpty() {
		return current, nil
	}

	updated, err := s.api.UpdateLink(ctx, id, diff)
	if err != nil {
		return links.Link{}, s.fail(err)
	}

	s.replaceLink(updated)
	return updated.Clone(), nil
}

// DeleteLink removes a link.
func (s *Store) DeleteLink(ctx context.Context, id string) error {
	if err := s.api.DeleteLink(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.links[:0]
	for _, l := range s.links {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.links = kept
	s.lastErr = ""
	return nil
}

// AddSublink creates a sublink; the server answers with the entire parent
// link, which replaces the stored one and is returned so dialogs can refresh
// without a second round trip.
func (s *Store) AddSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error) {
	name, err := links.ValidateName(payload.Name)
	if err != nil {
		return links.Link{}, err
	}
	url, err := links.ValidateLinkURL(payload.URL)
	if err != nil {
		return links.Link{}, err
	}
	description, err := links.ValidateDescription(payload.Description)
	if err != nil {
		return links.Link{}, err
	}
	if sanitize.IsTelephoneURL(url) && s.hasTelephoneSublink(linkID, "") {
		return links.Link{}, apperrors.NewValidationError("a link may have at most one telephone sublink")
	}

	updated, err := s.api.CreateSublink(ctx, linkID, links.SublinkPayload{
		ID:          payload.ID,
		Name:        name,
		URL:         url,
		Description: description,
	})
	if err != nil {
		return links.Link{}, s.fail(err)
	}

	s.replaceLink(updated)
	return updated.Clone(), nil
}

// UpdateSublink applies a partial sublink update and merges the returned
// parent link.
func (s *Store) UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error) {
	if patch.Name != nil {
		name, err := links.ValidateName(*patch.Name)
		if err != nil {
			return links.Link{}, err
		}
		patch.Name = &name
	}
	if patch.URL != nil {
		url, err := links.ValidateLinkURL(*patch.URL)
		if err != nil {
			return links.Link{}, err
		}
		if sanitize.IsTelephoneURL(url) && s.hasTelephoneSublink(linkID, sublinkID) {
			return links.Link{}, apperrors.NewValidationError("a link may have at most one telephone sublink")
		}
		patch.URL = &url
	}

	updated, err := s.api.UpdateSublink(ctx, linkID, sublinkID, patch)
	if err != nil {
		return links.Link{}, s.fail(err)
	}

	s.replaceLink(updated)
	return updated.Clone(), nil
}

// DeleteSublink removes a sublink and merges the returned parent link.
func (s *Store) DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error) {
	updated, err := s.api.DeleteSublink(ctx, linkID, sublinkID)
	if err != nil {
		return links.Link{}, s.fail(err)
	}

	s.replaceLink(updated)
	return updated.Clone(), nil
}

// SetFilter assigns the active category filter. Pure state, no network.
func (s *Store) SetFilter(f links.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filter returns the active filter.
func (s *Store) Filter() links.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// FilteredLinks returns deep copies of the links passing the active filter.
func (s *Store) FilteredLinks() []links.Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]links.Link, 0, len(s.links))
	for _, l := range s.links {
		if s.filter.Matches(l) {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Snapshot returns a deep copy of the whole store state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Categories: make([]links.Category, 0, len(s.categories)),
		Links:      make([]links.Link, 0, len(s.links)),
		Filter:     s.filter,
		IsLoading:  s.isLoading,
		HasLoaded:  s.hasLoaded,
		Err:        s.lastErr,
	}
	for _, c := range s.categories {
		state.Categories = append(state.Categories, c.Clone())
	}
	for _, l := range s.links {
		state.Links = append(state.Links, l.Clone())
	}
	return state
}

// buildLinkDiff validates the provided patch fields and drops the ones equal
// to the current link state. The second return value is a copy of the current
// link, used as the result of an empty update.
func (s *Store) buildLinkDiff(id string, patch links.LinkPatch) (links.LinkPatch, links.Link, error) {
	var diff links.LinkPatch

	s.mu.Lock()
	var current links.Link
	var found bool
	for _, l := range s.links {
		if l.ID == id {
			current = l.Clone()
			found = true
			break
		}
	}
	s.mu.Unlock()

	if patch.Name != nil {
		name, err := links.ValidateName(*patch.Name)
		if err != nil {
			return diff, current, err
		}
		if !found || name != current.Name {
			diff.Name = &name
		}
	}
	if patch.URL != nil {
		url, err := links.ValidateLinkURL(*patch.URL)
		if err != nil {
			return diff, current, err
		}
		if !found || url != current.URL {
			diff.URL = &url
		}
	}
	if patch.CategoryIDs != nil {
		ids, err := links.ValidateCategoryIDs(*patch.CategoryIDs)
		if err != nil {
			return diff, current, err
		}
		if !found || !reflect.DeepEqual(ids, current.CategoryIDs) {
			diff.CategoryIDs = &ids
		}
	}
	if patch.Description != nil {
		description, err := links.ValidateDescription(patch.Description)
		if err != nil {
			return diff, current, err
		}
		if description == nil {
			// Explicitly provided but blank: the caller wants it cleared.
			if !found || current.Description != nil {
				empty := ""
				diff.Description = &empty
			}
		} else if !found || current.Description == nil || *current.Description != *description {
			diff.Description = description
		}
	}
	if patch.Sublinks != nil {
		sublinks, err := links.ValidateSublinks(*patch.Sublinks)
		if err != nil {
			return diff, current, err
		}
		if !found || !reflect.DeepEqual(sublinks, current.Sublinks) {
			diff.Sublinks = &sublinks
		}
	}

	return diff, current, nil
}

// replaceLink swaps the stored link carrying the same id, or appends when it
// is new, and clears the error state.
func (s *Store) replaceLink(updated links.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated = withSublinks(updated)
	for i, l := range s.links {
		if l.ID == updated.ID {
			s.links[i] = updated
			s.lastErr = ""
			return
		}
	}
	s.links = append(s.links, updated)
	s.lastErr = ""
}

func (s *Store) hasCategoryLocked(id string) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// hasTelephoneSublink reports whether the link already has a tel: sublink,
// ignoring the one being edited.
func (s *Store) hasTelephoneSublink(linkID, excludeSublinkID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.links {
		if l.ID != linkID {
			continue
		}
		for _, sub := range l.Sublinks {
			if sub.ID == excludeSublinkID {
				continue
			}
			if sanitize.IsTelephoneURL(sub.URL) {
				return true
			}
		}
	}
	return false
}

// fail records the failure message for the global error banner and hands the
// error back so the call site can react locally too.
func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.lastErr = messageOf(err)
	s.mu.Unlock()
	s.logger.Warn("store mutation failed", zap.Error(err))
	return err
}

func messageOf(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}

// withSublinks guarantees the sublink slice is never nil so the view layer
// can range over it unconditionally.
func withSublinks(l links.Link) links.Link {
	if l.Sublinks == nil {
		l.Sublinks = []links.Sublink{}
	}
	return l
}

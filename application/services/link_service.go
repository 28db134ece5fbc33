// Package services contains the application-level use cases. Services
// validate input with the domain rules, enforce cross-entity invariants, and
// delegate persistence to the repository ports.
package services

import (
	"context"

	"go.uber.org/zap"

	"brainpin/application/ports"
	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
	"brainpin/pkg/sanitize"
)

// LinkService implements the link use cases.
type LinkService struct {
	linkRepo     ports.LinkRepository
	categoryRepo ports.CategoryRepository
	logger       *zap.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(linkRepo ports.LinkRepository, categoryRepo ports.CategoryRepository, logger *zap.Logger) *LinkService {
	return &LinkService{
		linkRepo:     linkRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns every stored link.
func (s *LinkService) List(ctx context.Context) ([]links.Link, error) {
	return s.linkRepo.List(ctx)
}

// Get returns a single link by id.
func (s *LinkService) Get(ctx context.Context, id string) (links.Link, error) {
	return s.linkRepo.Get(ctx, id)
}

// Create validates the payload, checks that every referenced category
// exists, and stores the link under a fresh id.
func (s *LinkService) Create(ctx context.Context, payload links.LinkPayload) (links.Link, error) {
	valid, err := links.ValidateLinkPayload(payload)
	if err != nil {
		return links.Link{}, err
	}
	if err := s.ensureCategoriesExist(ctx, valid.CategoryIDs); err != nil {
		return links.Link{}, err
	}

	link := links.Link{
		ID:          links.NewLinkID(),
		Name:        valid.Name,
		URL:         valid.URL,
		CategoryIDs: valid.CategoryIDs,
		Description: valid.Description,
		Sublinks:    valid.Sublinks,
	}
	if link.Sublinks == nil {
		link.Sublinks = []links.Sublink{}
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		return links.Link{}, err
	}

	s.logger.Info("link created", zap.String("linkID", link.ID))
	return link, nil
}

// Update validates the provided patch fields and applies them. An empty
// patch returns the current link untouched.
func (s *LinkService) Update(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error) {
	validated, err := s.validateLinkPatch(ctx, patch)
	if err != nil {
		return links.Link{}, err
	}
	if validated.IsEmpty() {
		return s.linkRepo.Get(ctx, id)
	}
	return s.linkRepo.Update(ctx, id, validated)
}

// Delete removes a link.
func (s *LinkService) Delete(ctx context.Context, id string) error {
	if err := s.linkRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("link deleted", zap.String("linkID", id))
	return nil
}

// CreateSublink appends a sublink to the link and returns the whole updated
// parent. An id may be supplied by the caller; a fresh one is assigned
// otherwise.
func (s *LinkService) CreateSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error) {
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

	link, err := s.linkRepo.Get(ctx, linkID)
	if err != nil {
		return links.Link{}, err
	}

	id := payload.ID
	if id == "" {
		id = links.NewSublinkID()
	}
	for _, sub := range link.Sublinks {
		if sub.ID == id {
			return links.Link{}, apperrors.NewConflictError("Sublink already exists")
		}
	}
	if sanitize.IsTelephoneURL(url) && hasTelephoneSublink(link, "") {
		return links.Link{}, apperrors.NewValidationError("a link may have at most one telephone sublink")
	}

	link.Sublinks = append(link.Sublinks, links.Sublink{
		ID:          id,
		Name:        name,
		URL:         url,
		Description: description,
	})

	if err := s.linkRepo.Put(ctx, link); err != nil {
		return links.Link{}, err
	}
	return link, nil
}

// UpdateSublink applies a partial update to one sublink and returns the
// whole updated parent link.
func (s *LinkService) UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error) {
	link, err := s.linkRepo.Get(ctx, linkID)
	if err != nil {
		return links.Link{}, err
	}

	idx := -1
	for i, sub := range link.Sublinks {
		if sub.ID == sublinkID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return links.Link{}, apperrors.NewNotFoundError("Sublink")
	}

	sub := link.Sublinks[idx]
	if patch.Name != nil {
		name, err := links.ValidateName(*patch.Name)
		if err != nil {
			return links.Link{}, err
		}
		sub.Name = name
	}
	if patch.URL != nil {
		url, err := links.ValidateLinkURL(*patch.URL)
		if err != nil {
			return links.Link{}, err
		}
		if sanitize.IsTelephoneURL(url) && hasTelephoneSublink(link, sublinkID) {
			return links.Link{}, apperrors.NewValidationError("a link may have at most one telephone sublink")
		}
		sub.URL = url
	}
	if patch.Description != nil {
		description, err := links.ValidateDescription(patch.Description)
		if err != nil {
			return links.Link{}, err
		}
		sub.Description = description
	}
	link.Sublinks[idx] = sub

	if err := s.linkRepo.Put(ctx, link); err != nil {
		return links.Link{}, err
	}
	return link, nil
}

// DeleteSublink removes one sublink and returns the whole updated parent.
func (s *LinkService) DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error) {
	link, err := s.linkRepo.Get(ctx, linkID)
	if err != nil {
		return links.Link{}, err
	}

	kept := make([]links.Sublink, 0, len(link.Sublinks))
	found := false
	for _, sub := range link.Sublinks {
		if sub.ID == sublinkID {
			found = true
			continue
		}
		kept = append(kept, sub)
	}
	if !found {
		return links.Link{}, apperrors.NewNotFoundError("Sublink")
	}
	link.Sublinks = kept

	if err := s.linkRepo.Put(ctx, link); err != nil {
		return links.Link{}, err
	}
	return link, nil
}

// validateLinkPatch runs the domain rules over the provided fields and
// checks referenced categories when the patch changes them.
func (s *LinkService) validateLinkPatch(ctx context.Context, patch links.LinkPatch) (links.LinkPatch, error) {
	var out links.LinkPatch

	if patch.Name != nil {
		name, err := links.ValidateName(*patch.Name)
		if err != nil {
			return out, err
		}
		out.Name = &name
	}
	if patch.URL != nil {
		url, err := links.ValidateLinkURL(*patch.URL)
		if err != nil {
			return out, err
		}
		out.URL = &url
	}
	if patch.CategoryIDs != nil {
		ids, err := links.ValidateCategoryIDs(*patch.CategoryIDs)
		if err != nil {
			return out, err
		}
		if err := s.ensureCategoriesExist(ctx, ids); err != nil {
			return out, err
		}
		out.CategoryIDs = &ids
	}
	if patch.Description != nil {
		description, err := links.ValidateDescription(patch.Description)
		if err != nil {
			return out, err
		}
		if description == nil {
			empty := ""
			out.Description = &empty
		} else {
			out.Description = description
		}
	}
	if patch.Sublinks != nil {
		sublinks, err := links.ValidateSublinks(*patch.Sublinks)
		if err != nil {
			return out, err
		}
		out.Sublinks = &sublinks
	}

	return out, nil
}

func (s *LinkService) ensureCategoriesExist(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.categoryRepo.Get(ctx, id); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationErrorf("category %q does not exist", id)
			}
			return err
		}
	}
	return nil
}

func hasTelephoneSublink(link links.Link, excludeID string) bool {
	for _, sub := range link.Sublinks {
		if sub.ID == excludeID {
			continue
		}
		if sanitize.IsTelephoneURL(sub.URL) {
			return true
		}
	}
	return false
}

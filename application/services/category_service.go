package services

import (
	"context"

	"go.uber.org/zap"

	"brainpin/application/ports"
	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
)

// CategoryService implements the category use cases.
type CategoryService struct {
	categoryRepo ports.CategoryRepository
	linkRepo     ports.LinkRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo ports.CategoryRepository, linkRepo ports.LinkRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		linkRepo:     linkRepo,
		logger:       logger,
	}
}

// List returns every stored category.
func (s *CategoryService) List(ctx context.Context) ([]links.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get returns a single category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (links.Category, error) {
	return s.categoryRepo.Get(ctx, id)
}

// Create validates the payload and stores the category under a fresh id.
func (s *CategoryService) Create(ctx context.Context, payload links.CategoryPayload) (links.Category, error) {
	valid, err := links.ValidateCategoryPayload(payload)
	if err != nil {
		return links.Category{}, err
	}

	category := links.Category{
		ID:          links.NewCategoryID(),
		Name:        valid.Name,
		Description: valid.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return links.Category{}, err
	}

	s.logger.Info("category created", zap.String("categoryID", category.ID))
	return category, nil
}

// Update validates the provided patch fields and applies them.
func (s *CategoryService) Update(ctx context.Context, id string, patch links.CategoryPatch) (links.Category, error) {
	var validated links.CategoryPatch
	if patch.Name != nil {
		name, err := links.ValidateName(*patch.Name)
		if err != nil {
			return links.Category{}, err
		}
		validated.Name = &name
	}
	if patch.Description != nil {
		description, err := links.ValidateDescription(patch.Description)
		if err != nil {
			return links.Category{}, err
		}
		if description == nil {
			empty := ""
			validated.Description = &empty
		} else {
			validated.Description = description
		}
	}
	if validated.IsEmpty() {
		return s.categoryRepo.Get(ctx, id)
	}
	return s.categoryRepo.Update(ctx, id, validated)
}

// Delete removes a category unless a link still references it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	inUse, err := s.linkRepo.AnyReferencingCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.NewConflictError("Category is in use by one or more links")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("categoryID", id))
	return nil
}

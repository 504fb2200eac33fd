package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/khunglong92/dogiadung-sub001/internal/core"
	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
)

// CategoryServiceOptions groups dependencies for CategoryService.
type CategoryServiceOptions struct {
	CategoryRepo core.CategoryRepository
}

// CategoryService orchestrates category CRUD.
type CategoryService struct {
	categories core.CategoryRepository
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(opts CategoryServiceOptions) *CategoryService {
	return &CategoryService{categories: opts.CategoryRepo}
}

// Create creates a category.
func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, apperrors.Validation("create category request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	cat, err := s.categories.Create(ctx, req)
	if err != nil {
		return nil, mapCategoryErr(err)
	}
	return cat, nil
}

// GetByID retrieves a category by ID.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*model.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, mapCategoryErr(err)
	}
	return cat, nil
}

// List returns one page of categories plus the total matching count. The page
// query and the count query run concurrently.
func (s *CategoryService) List(ctx context.Context, opts model.CategoriesListOptions) (*Page[model.Category], error) {
	var page Page[model.Category]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.categories.List(gctx, opts)
		if err != nil {
			return err
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.categories.Count(gctx, opts)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &page, nil
}

// Update updates a category.
func (s *CategoryService) Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	cat, err := s.categories.Update(ctx, id, req)
	if err != nil {
		return nil, mapCategoryErr(err)
	}
	return cat, nil
}

// Delete deletes a category by ID.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ok, err := s.categories.Delete(ctx, id)
	if err != nil {
		return mapCategoryErr(err)
	}
	if !ok {
		return apperrors.NotFound("category not found")
	}
	return nil
}

func mapCategoryErr(err error) error {
	switch {
	case errors.Is(err, data.ErrCategoryNotFound):
		return apperrors.NotFound("category not found")
	case errors.Is(err, data.ErrCategoryNameExists):
		return apperrors.Conflict("a category with this name already exists")
	case errors.Is(err, data.ErrForeignKey):
		return apperrors.ForeignKey("category is referenced by existing products")
	default:
		return err
	}
}

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

// ProductServiceOptions groups dependencies for ProductService.
type ProductServiceOptions struct {
	ProductRepo  core.ProductRepository
	CategoryRepo core.CategoryRepository
}

// ProductService orchestrates product CRUD. Products reference a category,
// so writes verify the category exists up front to return a field-level
// validation error instead of a bare FK violation.
type ProductService struct {
	products   core.ProductRepository
	categories core.CategoryRepository
}

// NewProductService constructs a new ProductService.
func NewProductService(opts ProductServiceOptions) *ProductService {
	return &ProductService{products: opts.ProductRepo, categories: opts.CategoryRepo}
}

// Create creates a product after verifying its category exists.
func (s *ProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, apperrors.Validation("create product request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	product, err := s.products.Create(ctx, req)
	if err != nil {
		return nil, mapProductErr(err)
	}
	return product, nil
}

// GetByID retrieves a product by ID.
func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}
	return product, nil
}

// List returns one page of products plus the total matching count.
func (s *ProductService) List(ctx context.Context, opts model.ProductsListOptions) (*Page[model.Product], error) {
	var page Page[model.Product]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.products.List(gctx, opts)
		if err != nil {
			return err
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.products.Count(gctx, opts)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &page, nil
}

// Update updates a product, verifying any new category reference first.
func (s *ProductService) Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	product, err := s.products.Update(ctx, id, req)
	if err != nil {
		return nil, mapProductErr(err)
	}
	return product, nil
}

// Delete deletes a product by ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return mapProductErr(err)
	}
	if !ok {
		return apperrors.NotFound("product not found")
	}
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, data.ErrCategoryNotFound) {
			return apperrors.ValidationField("category_id", "category does not exist")
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

func mapProductErr(err error) error {
	switch {
	case errors.Is(err, data.ErrProductNotFound):
		return apperrors.NotFound("product not found")
	case errors.Is(err, data.ErrProductNameExists):
		return apperrors.Conflict("a product with this name already exists")
	case errors.Is(err, data.ErrForeignKey):
		return apperrors.ValidationField("category_id", "category does not exist")
	default:
		return err
	}
}

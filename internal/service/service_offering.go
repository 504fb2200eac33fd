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

// OfferingServiceOptions groups dependencies for OfferingService.
type OfferingServiceOptions struct {
	ServiceRepo core.ServiceRepository
}

// OfferingService orchestrates CRUD for the services the company offers.
// Named OfferingService to avoid stuttering with the package name.
type OfferingService struct {
	offerings core.ServiceRepository
}

// NewOfferingService constructs a new OfferingService.
func NewOfferingService(opts OfferingServiceOptions) *OfferingService {
	return &OfferingService{offerings: opts.ServiceRepo}
}

// Create creates a service offering.
func (s *OfferingService) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.ServiceOffering, error) {
	if req == nil {
		return nil, apperrors.Validation("create service request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	offering, err := s.offerings.Create(ctx, req)
	if err != nil {
		return nil, mapOfferingErr(err)
	}
	return offering, nil
}

// GetByID retrieves a service offering by ID.
func (s *OfferingService) GetByID(ctx context.Context, id string) (*model.ServiceOffering, error) {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, mapOfferingErr(err)
	}
	return offering, nil
}

// List returns one page of service offerings plus the total matching count.
func (s *OfferingService) List(ctx context.Context, opts model.ServicesListOptions) (*Page[model.ServiceOffering], error) {
	var page Page[model.ServiceOffering]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.offerings.List(gctx, opts)
		if err != nil {
			return err
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.offerings.Count(gctx, opts)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return &page, nil
}

// Update updates a service offering.
func (s *OfferingService) Update(ctx context.Context, id string, req model.UpdateServiceRequest) (*model.ServiceOffering, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	offering, err := s.offerings.Update(ctx, id, req)
	if err != nil {
		return nil, mapOfferingErr(err)
	}
	return offering, nil
}

// Delete deletes a service offering by ID.
func (s *OfferingService) Delete(ctx context.Context, id string) error {
	ok, err := s.offerings.Delete(ctx, id)
	if err != nil {
		return mapOfferingErr(err)
	}
	if !ok {
		return apperrors.NotFound("service not found")
	}
	return nil
}

func mapOfferingErr(err error) error {
	switch {
	case errors.Is(err, data.ErrServiceNotFound):
		return apperrors.NotFound("service not found")
	case errors.Is(err, data.ErrServiceNameExists):
		return apperrors.Conflict("a service with this name already exists")
	default:
		return err
	}
}

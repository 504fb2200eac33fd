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

// ProjectServiceOptions groups dependencies for ProjectService.
type ProjectServiceOptions struct {
	ProjectRepo core.ProjectRepository
}

// ProjectService orchestrates project portfolio CRUD.
type ProjectService struct {
	projects core.ProjectRepository
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(opts ProjectServiceOptions) *ProjectService {
	return &ProjectService{projects: opts.ProjectRepo}
}

// Create creates a project.
func (s *ProjectService) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	if req == nil {
		return nil, apperrors.Validation("create project request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	project, err := s.projects.Create(ctx, req)
	if err != nil {
		return nil, mapProjectErr(err)
	}
	return project, nil
}

// GetByID retrieves a project by ID.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, mapProjectErr(err)
	}
	return project, nil
}

// List returns one page of projects plus the total matching count.
func (s *ProjectService) List(ctx context.Context, opts model.ProjectsListOptions) (*Page[model.Project], error) {
	var page Page[model.Project]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.projects.List(gctx, opts)
		if err != nil {
			return err
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.projects.Count(gctx, opts)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return &page, nil
}

// Update updates a project.
func (s *ProjectService) Update(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	project, err := s.projects.Update(ctx, id, req)
	if err != nil {
		return nil, mapProjectErr(err)
	}
	return project, nil
}

// Delete deletes a project by ID.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ok, err := s.projects.Delete(ctx, id)
	if err != nil {
		return mapProjectErr(err)
	}
	if !ok {
		return apperrors.NotFound("project not found")
	}
	return nil
}

func mapProjectErr(err error) error {
	switch {
	case errors.Is(err, data.ErrProjectNotFound):
		return apperrors.NotFound("project not found")
	case errors.Is(err, data.ErrProjectNameExists):
		return apperrors.Conflict("a project with this name already exists")
	default:
		return err
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/khunglong92/dogiadung-sub001/internal/core"
	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	UserRepo core.UserRepository
	// BcryptCost overrides the hashing cost. Zero means bcrypt.DefaultCost;
	// tests lower it to keep hashing fast.
	BcryptCost int
}

// UserService orchestrates dashboard account CRUD. Plaintext passwords stop
// here: both create and update hash before touching the repository.
type UserService struct {
	users core.UserRepository
	cost  int
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{users: opts.UserRepo, cost: cost}
}

// Create creates a user with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req, string(hash))
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// List returns one page of users plus the total matching count.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) (*Page[model.User], error) {
	var page Page[model.User]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.users.List(gctx, opts)
		if err != nil {
			return err
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.users.Count(gctx, opts)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &page, nil
}

// Update updates a user, hashing any new password.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var hash *string
	if req.Password != nil {
		b, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h := string(b)
		hash = &h
	}

	user, err := s.users.Update(ctx, id, req, hash)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// Delete deletes a user by ID. A user cannot delete their own account; the
// handler enforces that with the caller's claims.
func (s *UserService) Delete(ctx context.Context, id string) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return mapUserErr(err)
	}
	if !ok {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, data.ErrUserNotFound):
		return apperrors.NotFound("user not found")
	case errors.Is(err, data.ErrUserEmailExists):
		return apperrors.Conflict("a user with this email already exists")
	default:
		return err
	}
}

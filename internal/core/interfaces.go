package core

import (
	"context"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context, opts model.CategoriesListOptions) ([]*model.Category, error)
	Count(ctx context.Context, opts model.CategoriesListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, opts model.ProductsListOptions) ([]*model.Product, error)
	Count(ctx context.Context, opts model.ProductsListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ServiceRepository defines the interface for service offering data operations.
type ServiceRepository interface {
	Create(ctx context.Context, req *model.CreateServiceRequest) (*model.ServiceOffering, error)
	GetByID(ctx context.Context, id string) (*model.ServiceOffering, error)
	List(ctx context.Context, opts model.ServicesListOptions) ([]*model.ServiceOffering, error)
	Count(ctx context.Context, opts model.ServicesListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateServiceRequest) (*model.ServiceOffering, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProjectRepository defines the interface for project data operations.
type ProjectRepository interface {
	Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, opts model.ProjectsListOptions) ([]*model.Project, error)
	Count(ctx context.Context, opts model.ProjectsListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ContactRepository defines the interface for contact request data operations.
type ContactRepository interface {
	Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	List(ctx context.Context, opts model.ContactsListOptions) ([]*model.Contact, error)
	Count(ctx context.Context, opts model.ContactsListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateContactRequest) (*model.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository defines the interface for user data operations.
// Create and Update take an already-hashed password; the service layer owns hashing.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	Count(ctx context.Context, opts model.UsersListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest, passwordHash *string) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// WebhookSinkRepository defines the interface for webhook sink data operations.
type WebhookSinkRepository interface {
	Create(ctx context.Context, req *model.CreateWebhookSinkRequest) (*model.WebhookSink, error)
	GetByID(ctx context.Context, id string) (*model.WebhookSink, error)
	List(ctx context.Context, opts model.WebhookSinksListOptions) ([]*model.WebhookSink, error)
	ListEnabled(ctx context.Context) ([]*model.WebhookSink, error)
	Count(ctx context.Context, opts model.WebhookSinksListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateWebhookSinkRequest) (*model.WebhookSink, error)
	Delete(ctx context.Context, id string) (bool, error)
}

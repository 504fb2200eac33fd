// Package dash wires the admin client core: one API client, one session
// manager, and one CRUD controller per manageable entity.
package dash

import (
	"fmt"

	"github.com/khunglong92/dogiadung-sub001/internal/dash/api"
	"github.com/khunglong92/dogiadung-sub001/internal/dash/crud"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// UserDraft is the editable shape for dashboard accounts. Password is
// omitted from the payload when left empty, so editing a user without
// typing a new password keeps the old one.
type UserDraft struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     model.UserRole `json:"role"`
	Password string         `json:"password,omitempty"`
}

// ContactDraft carries the one field admins may change on a contact
// request: its triage status.
type ContactDraft struct {
	Status model.ContactStatus `json:"status,omitempty"`
}

// Controllers bundles the per-entity CRUD controllers. Search policy per
// entity: categories, services, and projects are small bounded collections
// filtered client-side; products, contacts, users, and webhook sinks grow
// without bound and filter server-side.
type Controllers struct {
	Categories *crud.Controller[model.Category, model.CreateCategoryRequest]
	Products   *crud.Controller[model.Product, model.CreateProductRequest]
	Offerings  *crud.Controller[model.ServiceOffering, model.CreateServiceRequest]
	Projects   *crud.Controller[model.Project, model.CreateProjectRequest]
	Contacts   *crud.Controller[model.Contact, ContactDraft]
	Users      *crud.Controller[model.User, UserDraft]
	Sinks      *crud.Controller[model.WebhookSink, model.CreateWebhookSinkRequest]
}

// ControllersOptions groups dependencies for NewControllers.
type ControllersOptions struct {
	Client   *api.Client
	Notifier crud.Notifier
	Cache    *crud.Cache // optional, shared across controllers when set
}

// NewControllers builds every entity controller against one API client.
func NewControllers(opts ControllersOptions) (*Controllers, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("api client is required")
	}
	cache := opts.Cache
	if cache == nil {
		cache = crud.NewCache()
	}
	shared := crud.ControllerOptions{Cache: cache, Notifier: opts.Notifier}

	categories, err := crud.NewController(crud.Config[model.Category, model.CreateCategoryRequest]{
		Entity: "category",
		Data:   api.NewResource[model.Category](opts.Client, "/api/categories"),
		NewDraft: func() model.CreateCategoryRequest {
			return model.CreateCategoryRequest{}
		},
		DraftFrom: func(c model.Category) model.CreateCategoryRequest {
			return model.CreateCategoryRequest{Name: c.Name, Description: c.Description}
		},
		ID:           func(c model.Category) string { return c.ID },
		PrimaryField: func(d model.CreateCategoryRequest) string { return d.Name },
		SearchText:   func(c model.Category) string { return c.Name + " " + deref(c.Description) },
		Search:       crud.ClientFilter,
	}, shared)
	if err != nil {
		return nil, err
	}

	products, err := crud.NewController(crud.Config[model.Product, model.CreateProductRequest]{
		Entity: "product",
		Data:   api.NewResource[model.Product](opts.Client, "/api/products"),
		NewDraft: func() model.CreateProductRequest {
			return model.CreateProductRequest{}
		},
		DraftFrom: func(p model.Product) model.CreateProductRequest {
			return model.CreateProductRequest{
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				ImageURL:    p.ImageURL,
				CategoryID:  p.CategoryID,
			}
		},
		ID:                     func(p model.Product) string { return p.ID },
		PrimaryField:           func(d model.CreateProductRequest) string { return d.Name },
		Search:                 crud.ServerFilter,
		ResetPageOnLimitChange: true,
	}, shared)
	if err != nil {
		return nil, err
	}

	offerings, err := crud.NewController(crud.Config[model.ServiceOffering, model.CreateServiceRequest]{
		Entity: "service",
		Data:   api.NewResource[model.ServiceOffering](opts.Client, "/api/services"),
		NewDraft: func() model.CreateServiceRequest {
			return model.CreateServiceRequest{}
		},
		DraftFrom: func(s model.ServiceOffering) model.CreateServiceRequest {
			return model.CreateServiceRequest{Name: s.Name, Description: s.Description, ImageURL: s.ImageURL}
		},
		ID:           func(s model.ServiceOffering) string { return s.ID },
		PrimaryField: func(d model.CreateServiceRequest) string { return d.Name },
		SearchText:   func(s model.ServiceOffering) string { return s.Name + " " + deref(s.Description) },
		Search:       crud.ClientFilter,
	}, shared)
	if err != nil {
		return nil, err
	}

	projects, err := crud.NewController(crud.Config[model.Project, model.CreateProjectRequest]{
		Entity: "project",
		Data:   api.NewResource[model.Project](opts.Client, "/api/projects"),
		NewDraft: func() model.CreateProjectRequest {
			return model.CreateProjectRequest{}
		},
		DraftFrom: func(p model.Project) model.CreateProjectRequest {
			return model.CreateProjectRequest{
				Name:        p.Name,
				Description: p.Description,
				ImageURL:    p.ImageURL,
				Location:    p.Location,
			}
		},
		ID:           func(p model.Project) string { return p.ID },
		PrimaryField: func(d model.CreateProjectRequest) string { return d.Name },
		SearchText:   func(p model.Project) string { return p.Name + " " + deref(p.Description) },
		Search:       crud.ClientFilter,
	}, shared)
	if err != nil {
		return nil, err
	}

	contacts, err := crud.NewController(crud.Config[model.Contact, ContactDraft]{
		Entity: "contact",
		Data:   api.NewResource[model.Contact](opts.Client, "/api/contacts"),
		NewDraft: func() ContactDraft {
			return ContactDraft{Status: model.ContactStatusNew}
		},
		DraftFrom: func(c model.Contact) ContactDraft {
			return ContactDraft{Status: c.Status}
		},
		ID:                     func(c model.Contact) string { return c.ID },
		PrimaryField:           func(d ContactDraft) string { return string(d.Status) },
		Search:                 crud.ServerFilter,
		ResetPageOnLimitChange: true,
	}, shared)
	if err != nil {
		return nil, err
	}

	users, err := crud.NewController(crud.Config[model.User, UserDraft]{
		Entity: "user",
		Data:   api.NewResource[model.User](opts.Client, "/api/users"),
		NewDraft: func() UserDraft {
			return UserDraft{Role: model.UserRoleUser}
		},
		DraftFrom: func(u model.User) UserDraft {
			return UserDraft{Name: u.Name, Email: u.Email, Role: u.Role}
		},
		ID:                     func(u model.User) string { return u.ID },
		PrimaryField:           func(d UserDraft) string { return d.Name },
		Search:                 crud.ServerFilter,
		ResetPageOnLimitChange: true,
	}, shared)
	if err != nil {
		return nil, err
	}

	sinks, err := crud.NewController(crud.Config[model.WebhookSink, model.CreateWebhookSinkRequest]{
		Entity: "webhook sink",
		Data:   api.NewResource[model.WebhookSink](opts.Client, "/api/webhook-sinks"),
		NewDraft: func() model.CreateWebhookSinkRequest {
			return model.CreateWebhookSinkRequest{Method: "POST"}
		},
		DraftFrom: func(s model.WebhookSink) model.CreateWebhookSinkRequest {
			enabled := s.Enabled
			return model.CreateWebhookSinkRequest{
				Name:    s.Name,
				URL:     s.URL,
				Method:  s.Method,
				Headers: s.Headers,
				Extract: s.Extract,
				Enabled: &enabled,
			}
		},
		ID:           func(s model.WebhookSink) string { return s.ID },
		PrimaryField: func(d model.CreateWebhookSinkRequest) string { return d.Name },
		Search:       crud.ServerFilter,
	}, shared)
	if err != nil {
		return nil, err
	}

	return &Controllers{
		Categories: categories,
		Products:   products,
		Offerings:  offerings,
		Projects:   projects,
		Contacts:   contacts,
		Users:      users,
		Sinks:      sinks,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

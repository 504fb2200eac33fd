package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/khunglong92/dogiadung-sub001/internal/dash"
	"github.com/khunglong92/dogiadung-sub001/internal/dash/api"
	"github.com/khunglong92/dogiadung-sub001/internal/dash/crud"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// entityOps binds the generic subcommands to one entity's controller.
type entityOps struct {
	name   string
	list   func(ctx context.Context, q string, page, limit int) error
	create func(ctx context.Context, draftJSON string) error
	update func(ctx context.Context, id, draftJSON string) error
	remove func(ctx context.Context, id string) error
}

type entityParams[T, D any] struct {
	Name       string
	Controller *crud.Controller[T, D]
	Resource   *api.Resource[T]
	Header     []string
	Row        func(record T) []string
}

func newEntityOps[T, D any](p entityParams[T, D]) *entityOps {
	return &entityOps{
		name: p.Name,
		list: func(ctx context.Context, q string, page, limit int) error {
			p.Controller.SetSearch(q)
			p.Controller.SetLimit(limit)
			p.Controller.SetPage(page)
			result, err := p.Controller.List(ctx)
			if err != nil {
				return err
			}
			return renderTable(p.Header, result.Items, p.Row, result.Total)
		},
		create: func(ctx context.Context, draftJSON string) error {
			p.Controller.OpenCreate()
			draft := p.Controller.Draft()
			if err := json.Unmarshal([]byte(draftJSON), &draft); err != nil {
				return fmt.Errorf("parse -json: %w", err)
			}
			p.Controller.SetDraft(draft)
			if !p.Controller.Submit(ctx) {
				return fmt.Errorf("%s not created", p.Name)
			}
			return nil
		},
		update: func(ctx context.Context, id, draftJSON string) error {
			record, err := p.Resource.FindByID(ctx, id)
			if err != nil {
				return err
			}
			p.Controller.OpenEdit(record)
			// The draft starts as a copy of the record; the JSON overlays
			// only the fields the caller wants changed.
			draft := p.Controller.Draft()
			if err := json.Unmarshal([]byte(draftJSON), &draft); err != nil {
				return fmt.Errorf("parse -json: %w", err)
			}
			p.Controller.SetDraft(draft)
			if !p.Controller.Submit(ctx) {
				return fmt.Errorf("%s not updated", p.Name)
			}
			return nil
		},
		remove: func(ctx context.Context, id string) error {
			if !p.Controller.Remove(ctx, id) {
				return fmt.Errorf("%s not deleted", p.Name)
			}
			return nil
		},
	}
}

func renderTable[T any](header []string, items []T, row func(T) []string, total int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	line := ""
	for i, h := range header {
		if i > 0 {
			line += "\t"
		}
		line += h
	}
	if err := writeln(w, line); err != nil {
		return err
	}
	for _, item := range items {
		cells := row(item)
		line = ""
		for i, c := range cells {
			if i > 0 {
				line += "\t"
			}
			line += c
		}
		if err := writeln(w, line); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "\n%d total\n", total)
}

func entityNames() []string {
	return []string{"category", "product", "service", "project", "contact", "user", "webhook-sink"}
}

func entities(c *dash.Controllers, client *api.Client) map[string]*entityOps {
	return map[string]*entityOps{
		"category": newEntityOps(entityParams[model.Category, model.CreateCategoryRequest]{
			Name:       "category",
			Controller: c.Categories,
			Resource:   api.NewResource[model.Category](client, "/api/categories"),
			Header:     []string{"ID", "NAME", "DESCRIPTION"},
			Row: func(r model.Category) []string {
				return []string{r.ID, r.Name, truncate(deref(r.Description), 48)}
			},
		}),
		"product": newEntityOps(entityParams[model.Product, model.CreateProductRequest]{
			Name:       "product",
			Controller: c.Products,
			Resource:   api.NewResource[model.Product](client, "/api/products"),
			Header:     []string{"ID", "NAME", "PRICE", "CATEGORY"},
			Row: func(r model.Product) []string {
				return []string{r.ID, r.Name, strconv.FormatInt(r.Price, 10), r.CategoryID}
			},
		}),
		"service": newEntityOps(entityParams[model.ServiceOffering, model.CreateServiceRequest]{
			Name:       "service",
			Controller: c.Offerings,
			Resource:   api.NewResource[model.ServiceOffering](client, "/api/services"),
			Header:     []string{"ID", "NAME", "DESCRIPTION"},
			Row: func(r model.ServiceOffering) []string {
				return []string{r.ID, r.Name, truncate(deref(r.Description), 48)}
			},
		}),
		"project": newEntityOps(entityParams[model.Project, model.CreateProjectRequest]{
			Name:       "project",
			Controller: c.Projects,
			Resource:   api.NewResource[model.Project](client, "/api/projects"),
			Header:     []string{"ID", "NAME", "LOCATION"},
			Row: func(r model.Project) []string {
				return []string{r.ID, r.Name, deref(r.Location)}
			},
		}),
		"contact": newEntityOps(entityParams[model.Contact, dash.ContactDraft]{
			Name:       "contact",
			Controller: c.Contacts,
			Resource:   api.NewResource[model.Contact](client, "/api/contacts"),
			Header:     []string{"ID", "NAME", "EMAIL", "STATUS"},
			Row: func(r model.Contact) []string {
				return []string{r.ID, r.Name, r.Email, string(r.Status)}
			},
		}),
		"user": newEntityOps(entityParams[model.User, dash.UserDraft]{
			Name:       "user",
			Controller: c.Users,
			Resource:   api.NewResource[model.User](client, "/api/users"),
			Header:     []string{"ID", "NAME", "EMAIL", "ROLE"},
			Row: func(r model.User) []string {
				return []string{r.ID, r.Name, r.Email, string(r.Role)}
			},
		}),
		"webhook-sink": newEntityOps(entityParams[model.WebhookSink, model.CreateWebhookSinkRequest]{
			Name:       "webhook sink",
			Controller: c.Sinks,
			Resource:   api.NewResource[model.WebhookSink](client, "/api/webhook-sinks"),
			Header:     []string{"ID", "NAME", "URL", "ENABLED"},
			Row: func(r model.WebhookSink) []string {
				return []string{r.ID, r.Name, r.URL, strconv.FormatBool(r.Enabled)}
			},
		}),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

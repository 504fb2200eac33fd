package api

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is the typed data-access contract for one entity collection.
// It maps directly onto the server's REST layout: list and get are reads,
// create/update/delete are mutations.
type Resource[T any] struct {
	client *Client
	base   string // e.g. "/api/categories"
}

// NewResource builds a Resource rooted at base (e.g. "/api/products").
func NewResource[T any](client *Client, base string) *Resource[T] {
	return &Resource[T]{client: client, base: base}
}

// FindAll fetches one page of the collection.
func (r *Resource[T]) FindAll(ctx context.Context, params ListParams) (Page[T], error) {
	var page Page[T]
	if err := r.client.do(ctx, http.MethodGet, r.base, params.encode(), nil, &page); err != nil {
		return Page[T]{}, err
	}
	return page, nil
}

// FindByID fetches a single record.
func (r *Resource[T]) FindByID(ctx context.Context, id string) (T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodGet, r.base+"/"+url.PathEscape(id), "", nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Create posts a new record and returns the stored row.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.base, "", payload, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update puts changed fields onto an existing record and returns the stored row.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPut, r.base+"/"+url.PathEscape(id), "", payload, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete removes a record.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.base+"/"+url.PathEscape(id), "", nil, nil)
}

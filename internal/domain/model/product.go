package model

import (
	"errors"
	"strings"
	"time"
)

// Product is a storefront item belonging to a category.
type Product struct {
	ID          string    `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       int64     `json:"price"                 db:"price"` // VND, whole units
	ImageURL    *string   `json:"image_url,omitempty"   db:"image_url"`
	CategoryID  string    `json:"category_id"           db:"category_id"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// ProductsListOptions controls paging and filtering for listing products.
// Products are an unbounded collection: search and paging are always
// resolved server-side (Q matches name and description via ILIKE).
type ProductsListOptions struct {
	Limit      int
	Offset     int
	Q          *string
	CategoryID *string // exact match
	Sort       string  // allowed: "created_at", "name", "price"
	Dir        string  // allowed: "asc", "desc"
}

// CreateProductRequest represents parameters to create a Product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
	ImageURL    *string `json:"image_url,omitempty"`
	CategoryID  string  `json:"category_id"`
}

// UpdateProductRequest represents parameters to update a Product.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// Validate validates CreateProductRequest.
func (r *CreateProductRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	if err := validateOptionalDescription(r.Description); err != nil {
		return err
	}
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if strings.TrimSpace(r.CategoryID) == "" {
		return errors.New("category_id is required")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateProductRequest.
func (r *UpdateProductRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil || r.Price != nil || r.ImageURL != nil || r.CategoryID != nil
}

// Validate validates UpdateProductRequest, ensuring at least one field is set and values are sane.
func (r *UpdateProductRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateRequiredName(*r.Name); err != nil {
			return err
		}
	}
	if err := validateOptionalDescription(r.Description); err != nil {
		return err
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) == "" {
		return errors.New("category_id cannot be empty")
	}
	return nil
}

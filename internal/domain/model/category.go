//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 2000
)

// Category groups products on the storefront (kitchen, furniture, lighting, ...).
type Category struct {
	ID          string    `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// CategoriesListOptions controls paging and filtering for listing categories.
// Q matches name via ILIKE substring; Sort supports "created_at" and "name".
type CategoriesListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Sort   string
	Dir    string
}

// CreateCategoryRequest represents parameters to create a Category.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateCategoryRequest represents parameters to update a Category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate validates CreateCategoryRequest.
func (r *CreateCategoryRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	return validateOptionalDescription(r.Description)
}

// HasUpdates reports whether any field is set in UpdateCategoryRequest.
func (r *UpdateCategoryRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil
}

// Validate validates UpdateCategoryRequest, ensuring at least one field is set and values are sane.
func (r *UpdateCategoryRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateRequiredName(*r.Name); err != nil {
			return err
		}
	}
	return validateOptionalDescription(r.Description)
}

// validateRequiredName enforces the shared non-empty, length-capped name policy.
func validateRequiredName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(n) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	return nil
}

func validateOptionalDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return errors.New("description cannot exceed 2000 characters")
	}
	return nil
}

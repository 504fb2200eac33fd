package model

import (
	"errors"
	"time"
)

// ServiceOffering is a service the business advertises (installation, repair, ...).
type ServiceOffering struct {
	ID          string    `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty"   db:"image_url"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// ServicesListOptions controls paging and filtering for listing service offerings.
type ServicesListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Sort   string
	Dir    string
}

// CreateServiceRequest represents parameters to create a ServiceOffering.
type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// UpdateServiceRequest represents parameters to update a ServiceOffering.
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Validate validates CreateServiceRequest.
func (r *CreateServiceRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	return validateOptionalDescription(r.Description)
}

// HasUpdates reports whether any field is set in UpdateServiceRequest.
func (r *UpdateServiceRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil || r.ImageURL != nil
}

// Validate validates UpdateServiceRequest.
func (r *UpdateServiceRequest) Validate() error {
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

package model

import (
	"errors"
	"time"
)

// Project is a completed reference installation shown on the marketing site.
type Project struct {
	ID          string    `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty"   db:"image_url"`
	Location    *string   `json:"location,omitempty"    db:"location"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// ProjectsListOptions controls paging and filtering for listing projects.
type ProjectsListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Sort   string
	Dir    string
}

// CreateProjectRequest represents parameters to create a Project.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// UpdateProjectRequest represents parameters to update a Project.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// Validate validates CreateProjectRequest.
func (r *CreateProjectRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	return validateOptionalDescription(r.Description)
}

// HasUpdates reports whether any field is set in UpdateProjectRequest.
func (r *UpdateProjectRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil || r.ImageURL != nil || r.Location != nil
}

// Validate validates UpdateProjectRequest.
func (r *UpdateProjectRequest) Validate() error {
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

package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxWebhookURLLen = 1024

// WebhookSink is an admin-configured HTTP endpoint notified when a new
// contact request arrives. Extract, when set, is a JMESPath expression
// applied to the contact JSON to shape the delivered payload.
type WebhookSink struct {
	ID        string    `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	URL       string    `json:"url"               db:"url"`
	Method    string    `json:"method"            db:"method"`
	Headers   *string   `json:"headers,omitempty" db:"headers"` // JSON object of header name -> value
	Extract   *string   `json:"extract,omitempty" db:"extract"`
	Enabled   bool      `json:"enabled"           db:"enabled"`
	CreatedAt time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"        db:"updated_at"`
}

// WebhookSinksListOptions controls paging and filtering for listing webhook sinks.
type WebhookSinksListOptions struct {
	Limit   int
	Offset  int
	Q       *string
	Enabled *bool
	Sort    string
	Dir     string
}

// CreateWebhookSinkRequest represents parameters to create a WebhookSink.
type CreateWebhookSinkRequest struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Method  string  `json:"method"`
	Headers *string `json:"headers,omitempty"`
	Extract *string `json:"extract,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// UpdateWebhookSinkRequest represents parameters to update a WebhookSink.
type UpdateWebhookSinkRequest struct {
	Name    *string `json:"name,omitempty"`
	URL     *string `json:"url,omitempty"`
	Method  *string `json:"method,omitempty"`
	Headers *string `json:"headers,omitempty"`
	Extract *string `json:"extract,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// Normalize normalizes the CreateWebhookSinkRequest fields.
func (r *CreateWebhookSinkRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.URL = strings.TrimSpace(r.URL)
	r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
	if r.Method == "" {
		r.Method = "POST"
	}
}

// Validate validates the CreateWebhookSinkRequest fields.
func (r *CreateWebhookSinkRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	if err := validateWebhookURL(r.URL); err != nil {
		return err
	}
	return validateWebhookMethod(r.Method)
}

// HasUpdates reports whether any field is set in UpdateWebhookSinkRequest.
func (r *UpdateWebhookSinkRequest) HasUpdates() bool {
	return r.Name != nil || r.URL != nil || r.Method != nil || r.Headers != nil || r.Extract != nil ||
		r.Enabled != nil
}

// Normalize normalizes the UpdateWebhookSinkRequest fields.
func (r *UpdateWebhookSinkRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.URL != nil {
		u := strings.TrimSpace(*r.URL)
		r.URL = &u
	}
	if r.Method != nil {
		m := strings.ToUpper(strings.TrimSpace(*r.Method))
		r.Method = &m
	}
}

// Validate validates the UpdateWebhookSinkRequest fields and ensures at least one field is being updated.
func (r *UpdateWebhookSinkRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateRequiredName(*r.Name); err != nil {
			return err
		}
	}
	if r.URL != nil {
		if err := validateWebhookURL(*r.URL); err != nil {
			return err
		}
	}
	if r.Method != nil {
		if err := validateWebhookMethod(*r.Method); err != nil {
			return err
		}
	}
	return nil
}

func validateWebhookURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}
	if utf8.RuneCountInString(raw) > maxWebhookURLLen {
		return errors.New("url cannot exceed 1024 characters")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("url must be a valid http(s) URL")
	}
	return nil
}

func validateWebhookMethod(method string) error {
	switch method {
	case "POST", "PUT", "PATCH":
		return nil
	default:
		return errors.New("method must be one of POST, PUT, PATCH")
	}
}

package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageLen = 5000

// ContactStatus tracks how far along a contact request is.
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusHandled ContactStatus = "handled"
)

// Valid reports whether the contact status is supported.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusHandled:
		return true
	default:
		return false
	}
}

// ParseContactStatus normalizes a status string and reports whether it is supported.
func ParseContactStatus(value string) (ContactStatus, bool) {
	s := ContactStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string        `json:"id"              db:"id"`
	Name      string        `json:"name"            db:"name"`
	Email     string        `json:"email"           db:"email"`
	Phone     *string       `json:"phone,omitempty" db:"phone"`
	Message   string        `json:"message"         db:"message"`
	Status    ContactStatus `json:"status"          db:"status"`
	CreatedAt time.Time     `json:"created_at"      db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"      db:"updated_at"`
}

// ContactsListOptions controls paging and filtering for listing contacts.
// Contacts grow without bound, so search and paging are always server-side.
type ContactsListOptions struct {
	Limit  int
	Offset int
	Q      *string        // substring match on name and email (ILIKE)
	Status *ContactStatus // exact match
	Sort   string         // allowed: "created_at", "name"
	Dir    string         // allowed: "asc", "desc"
}

// CreateContactRequest represents a public contact-form submission.
type CreateContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message"`
}

// UpdateContactRequest represents parameters to update a Contact (admin only).
type UpdateContactRequest struct {
	Status *ContactStatus `json:"status,omitempty"`
}

// Validate validates CreateContactRequest.
func (r *CreateContactRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required")
	}
	// Intentionally loose: one @ with something on both sides. Deliverability
	// is the mail server's problem.
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email is not valid")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(r.Message) > maxMessageLen {
		return errors.New("message cannot exceed 5000 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateContactRequest.
func (r *UpdateContactRequest) HasUpdates() bool {
	return r.Status != nil
}

// Validate validates UpdateContactRequest.
func (r *UpdateContactRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

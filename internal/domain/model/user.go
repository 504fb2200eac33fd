package model

import (
	"errors"
	"strings"
	"time"
)

// UserRole is an application authorization role.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// Valid reports whether the role is supported.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser:
		return true
	default:
		return false
	}
}

// ParseUserRole normalizes a role string and reports whether it is supported.
func ParseUserRole(value string) (UserRole, bool) {
	r := UserRole(strings.ToLower(strings.TrimSpace(value)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// User is a dashboard account. PasswordHash is bcrypt and never serialized.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Name         string    `json:"name"       db:"name"`
	Email        string    `json:"email"      db:"email"`
	Role         UserRole  `json:"role"       db:"role"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UsersListOptions controls paging and filtering for listing users.
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string   // substring match on name and email (ILIKE)
	Role   *UserRole // exact match
	Sort   string
	Dir    string
}

// CreateUserRequest represents parameters to create a User.
// Password is the plaintext credential; hashing happens in the service layer.
type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Password string   `json:"password"`
}

// UpdateUserRequest represents parameters to update a User.
type UpdateUserRequest struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Role     *UserRole `json:"role,omitempty"`
	Password *string   `json:"password,omitempty"`
}

const minPasswordLen = 8

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	if err := validateRequiredName(r.Name); err != nil {
		return err
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	role, ok := ParseUserRole(string(r.Role))
	if !ok {
		return errors.New("invalid role")
	}
	r.Role = role
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Role != nil || r.Password != nil
}

// Validate validates UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateRequiredName(*r.Name); err != nil {
			return err
		}
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return errors.New("email cannot be empty")
	}
	if r.Role != nil {
		role, ok := ParseUserRole(string(*r.Role))
		if !ok {
			return errors.New("invalid role")
		}
		*r.Role = role
	}
	if r.Password != nil && len(*r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

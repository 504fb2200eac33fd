package auth

// Package auth contains domain-level types for authentication and tokens.
// It is pure and free of framework/adapter concerns.

import (
	"time"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// Identity represents an authenticated principal returned by an external IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject   string // stable user identifier from the provider
	Name      string
	Email     string
	ExpiresAt time.Time
}

// TokenPair is what a successful login or refresh hands to the client.
// AccessToken is a signed JWT; RefreshToken is an opaque identifier whose
// server-side record lives in the refresh-token store.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// RefreshRecord is the server-side state behind an opaque refresh token.
type RefreshRecord struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Role      model.UserRole `json:"role"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Claims are the verified contents of an access token.
type Claims struct {
	UserID string
	Email  string
	Role   model.UserRole
}

// IsAdmin reports whether the claims carry the admin role.
func (c Claims) IsAdmin() bool { return c.Role == model.UserRoleAdmin }

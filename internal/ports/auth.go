package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
)

// BeginInput carries inputs for initiating an OAuth auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
// Only used when the server runs in oauth mode; password mode never touches it.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// RefreshTokenStore persists and retrieves opaque refresh tokens.
type RefreshTokenStore interface {
	Save(ctx context.Context, rec domainauth.RefreshRecord) error
	Get(ctx context.Context, id string) (domainauth.RefreshRecord, error)
	Delete(ctx context.Context, id string) error
}

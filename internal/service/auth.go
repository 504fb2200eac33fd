package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/khunglong92/dogiadung-sub001/internal/core"
	"github.com/khunglong92/dogiadung-sub001/internal/data"
	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
	"github.com/khunglong92/dogiadung-sub001/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users      core.UserRepository
	Tokens     *domainauth.TokenIssuer
	Refresh    ports.RefreshTokenStore
	Provider   ports.AuthProvider // nil unless running in oauth mode
	RefreshTTL time.Duration
}

// AuthService orchestrates login, token refresh, and logout.
//
// A successful login hands out a TokenPair: a short-lived signed access token
// plus an opaque refresh token whose record lives in the refresh store.
// Refresh rotates the pair: the presented refresh token is consumed and a new
// one issued, so a stolen token stops working the moment its owner refreshes.
type AuthService struct {
	users      core.UserRepository
	tokens     *domainauth.TokenIssuer
	refresh    ports.RefreshTokenStore
	provider   ports.AuthProvider
	refreshTTL time.Duration
	now        func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.RefreshTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      opts.Users,
		tokens:     opts.Tokens,
		refresh:    opts.Refresh,
		provider:   opts.Provider,
		refreshTTL: ttl,
		now:        time.Now,
	}
}

// LoginResult contains the authenticated user and their token pair.
type LoginResult struct {
	User   *model.User
	Tokens domainauth.TokenPair
}

// Login verifies email/password credentials and issues a token pair.
// Unknown emails and wrong passwords produce the same unauthorized error so
// the endpoint cannot be used to probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// CompleteOAuthLogin maps an IdP identity onto a local account and issues a
// token pair. Accounts are not auto-provisioned: an identity whose email has
// no account is rejected.
func (s *AuthService) CompleteOAuthLogin(ctx context.Context, in ports.ExchangeInput) (*LoginResult, error) {
	if s.provider == nil {
		return nil, apperrors.Unauthorized("oauth login is not enabled")
	}

	identity, err := s.provider.Exchange(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("no account for this identity")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// BeginOAuthLogin starts the OAuth flow. Only valid in oauth mode.
func (s *AuthService) BeginOAuthLogin(ctx context.Context, redirectURL string) (authURL, state, nonce string, err error) {
	if s.provider == nil {
		return "", "", "", apperrors.Unauthorized("oauth login is not enabled")
	}
	return s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// presented token is deleted before the new pair is issued (rotation).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("refresh token is required")
	}

	rec, err := s.refresh.Get(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	if delErr := s.refresh.Delete(ctx, refreshToken); delErr != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", delErr)
	}

	user, err := s.users.GetByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// Logout revokes a refresh token. Access tokens are short-lived and simply
// age out; only the refresh side has server state to destroy.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.refresh.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// Profile returns the account behind verified access-token claims.
func (s *AuthService) Profile(ctx context.Context, claims domainauth.Claims) (*model.User, error) {
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func (s *AuthService) VerifyAccessToken(token string) (domainauth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domainauth.Claims{}, apperrors.Unauthorized("invalid access token")
	}
	return claims, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *model.User) (domainauth.TokenPair, error) {
	access, accessExp, err := s.tokens.Issue(user)
	if err != nil {
		return domainauth.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	refreshID := uuid.New().String()
	refreshExp := s.now().UTC().Add(s.refreshTTL)
	rec := domainauth.RefreshRecord{
		ID:        refreshID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: refreshExp,
	}
	if saveErr := s.refresh.Save(ctx, rec); saveErr != nil {
		return domainauth.TokenPair{}, fmt.Errorf("save refresh token: %w", saveErr)
	}

	return domainauth.TokenPair{
		AccessToken:      access,
		RefreshToken:     refreshID,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

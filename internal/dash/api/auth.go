package api

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// LoginResult mirrors the server's login/refresh response body.
type LoginResult struct {
	User   *model.User          `json:"user"`
	Tokens domainauth.TokenPair `json:"tokens"`
}

// Login exchanges email/password credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh rotates the token pair. The presented refresh token is consumed
// server-side whether or not the caller keeps the result.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes a refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh_token": refreshToken}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", "", body, nil)
}

// Profile fetches the authenticated user's account using the current token.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OAuthBegin holds the authorization URL and the CSRF material the caller
// must present again on completion.
type OAuthBegin struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
	Nonce   string `json:"nonce"`
}

// BeginOAuth starts the OAuth login flow.
func (c *Client) BeginOAuth(ctx context.Context, redirectURL string) (*OAuthBegin, error) {
	q := url.Values{}
	if redirectURL != "" {
		q.Set("redirect_url", redirectURL)
	}
	var out OAuthBegin
	if err := c.do(ctx, http.MethodGet, "/api/auth/oauth/begin", q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteOAuth finishes the OAuth login flow with the provider's code.
func (c *Client) CompleteOAuth(ctx context.Context, code, state, nonce string) (*LoginResult, error) {
	body := map[string]string{"code": code, "state": state, "nonce": nonce}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/oauth/complete", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

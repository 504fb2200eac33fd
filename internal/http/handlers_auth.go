package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/ports"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// AuthHandlers provides HTTP handlers for login, refresh, and logout.
type AuthHandlers struct {
	Svc    *service.AuthService
	Logger *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User   any                  `json:"user"`
	Tokens domainauth.TokenPair `json:"tokens"`
}

// Login handles password logins.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.logAuth(r, "login", result.User.ID)
	WriteJSON(w, http.StatusOK, loginResponse{User: result.User, Tokens: result.Tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{User: result.User, Tokens: result.Tokens})
}

// Logout revokes the presented refresh token.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.Logout(r.Context(), req.RefreshToken); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"logged_out": true})
}

// Profile returns the account behind the caller's access token.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	user, err := h.Svc.Profile(r.Context(), claims)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// BeginOAuth starts the OAuth login flow. The client stores the returned
// state and nonce and presents them again on completion.
func (h *AuthHandlers) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	redirectURL := r.URL.Query().Get("redirect_url")

	authURL, state, nonce, err := h.Svc.BeginOAuthLogin(r.Context(), redirectURL)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
		"nonce":    nonce,
	})
}

type oauthCompleteRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
	Nonce string `json:"nonce"`
}

// CompleteOAuth finishes the OAuth login flow and issues a token pair.
func (h *AuthHandlers) CompleteOAuth(w http.ResponseWriter, r *http.Request) {
	var req oauthCompleteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.CompleteOAuthLogin(r.Context(), ports.ExchangeInput{
		Code:  req.Code,
		State: req.State,
		Nonce: req.Nonce,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.logAuth(r, "oauth_login", result.User.ID)
	WriteJSON(w, http.StatusOK, loginResponse{User: result.User, Tokens: result.Tokens})
}

func (h *AuthHandlers) logAuth(r *http.Request, event, userID string) {
	if h.Logger == nil {
		return
	}
	h.Logger.InfoContext(r.Context(), "auth",
		slog.String("event", event),
		slog.String("user_id", userID))
}

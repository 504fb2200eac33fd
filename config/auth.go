package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword uses first-party email/password login.
	AuthModePassword AuthMode = "password"
	// AuthModeOAuth uses OAuth/OIDC for admin login, issuing the same token pair afterwards.
	AuthModeOAuth AuthMode = "oauth"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "oauth":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oauth)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration (used when Mode=oauth).
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"dogiadung"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"dogiadung"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/api/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// TokenConfig controls access and refresh token issuing.
type TokenConfig struct {
	// SigningKey is the HMAC key used to sign access tokens. Required outside dev.
	SigningKey string `env:"SIGNING_KEY" envDefault:"dev-signing-key"`

	// Issuer is embedded in the iss claim of issued access tokens.
	Issuer string `env:"ISSUER" envDefault:"dogiadung"`

	// AccessTTL is the lifetime of issued access tokens.
	AccessTTL time.Duration `env:"ACCESS_TTL" envDefault:"15m"`

	// RefreshTTL is the lifetime of issued refresh tokens.
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"168h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which login flow is exposed.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// Token issuing configuration.
	Token TokenConfig `envPrefix:"TOKEN_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Token.AccessTTL <= 0 {
		a.Token.AccessTTL = 15 * time.Minute
	}
	if a.Token.RefreshTTL <= 0 {
		a.Token.RefreshTTL = 7 * 24 * time.Hour
	}
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// ErrInvalidToken is returned when an access token fails verification.
var ErrInvalidToken = errors.New("invalid access token")

// TokenIssuerOptions groups parameters for NewTokenIssuer.
type TokenIssuerOptions struct {
	SigningKey string
	Issuer     string
	AccessTTL  time.Duration
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	key       []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer.
func NewTokenIssuer(opts TokenIssuerOptions) *TokenIssuer {
	ttl := opts.AccessTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &TokenIssuer{
		key:       []byte(opts.SigningKey),
		issuer:    opts.Issuer,
		accessTTL: ttl,
		now:       time.Now,
	}
}

// accessClaims is the JWT claim set carried by issued access tokens.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs an access token for the given user and returns it with its expiry.
func (t *TokenIssuer) Issue(user *model.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("user is required")
	}
	now := t.now().UTC()
	exp := now.Add(t.accessTTL)
	claims := accessClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses and validates an access token, returning its claims.
func (t *TokenIssuer) Verify(token string) (Claims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Header["alg"])
		}
		return t.key, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	role, ok := model.ParseUserRole(claims.Role)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    "user-1",
		Name:  "Admin",
		Email: "admin@example.com",
		Role:  model.UserRoleAdmin,
	}
}

func TestTokenIssuer_IssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(TokenIssuerOptions{
		SigningKey: "test-key",
		Issuer:     "dogiadung-test",
		AccessTTL:  15 * time.Minute,
	})

	token, exp, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, time.Minute)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, model.UserRoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin())
}

func TestTokenIssuer_Issue_NilUser(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(TokenIssuerOptions{SigningKey: "test-key"})
	_, _, err := issuer.Issue(nil)
	assert.Error(t, err)
}

func TestTokenIssuer_Verify_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(TokenIssuerOptions{SigningKey: "key-a", Issuer: "dogiadung-test"})
	other := NewTokenIssuer(TokenIssuerOptions{SigningKey: "key-b", Issuer: "dogiadung-test"})

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Verify_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(TokenIssuerOptions{SigningKey: "test-key", Issuer: "someone-else"})
	verifier := NewTokenIssuer(TokenIssuerOptions{SigningKey: "test-key", Issuer: "dogiadung-test"})

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Verify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(TokenIssuerOptions{
		SigningKey: "test-key",
		Issuer:     "dogiadung-test",
		AccessTTL:  time.Minute,
	})
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	// Restore the real clock; the token is now an hour past expiry.
	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Verify_Garbage(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(TokenIssuerOptions{SigningKey: "test-key", Issuer: "dogiadung-test"})
	_, err := issuer.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

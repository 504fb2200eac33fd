package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/khunglong92/dogiadung-sub001/internal/data"
	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
	"github.com/khunglong92/dogiadung-sub001/internal/mocks"
	authmocks "github.com/khunglong92/dogiadung-sub001/internal/mocks/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/ports"
)

const testPassword = "correct-horse"

func newAuthService(t *testing.T) (*mocks.MockUserRepository, *authmocks.MemoryRefreshStore, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	refresh := authmocks.NewMemoryRefreshStore()

	svc := NewAuthService(AuthServiceOptions{
		Users: users,
		Tokens: domainauth.NewTokenIssuer(domainauth.TokenIssuerOptions{
			SigningKey: "test-key",
			Issuer:     "dogiadung-test",
			AccessTTL:  15 * time.Minute,
		}),
		Refresh:    refresh,
		RefreshTTL: time.Hour,
	})

	return users, refresh, svc
}

func authTestUser(t *testing.T) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           "user-1",
		Name:         "Admin",
		Email:        "admin@example.com",
		Role:         model.UserRoleAdmin,
		PasswordHash: string(hash),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()
	users, refresh, svc := newAuthService(t)
	user := authTestUser(t)

	users.EXPECT().GetByEmail(gomock.Any(), "admin@example.com").Return(user, nil)

	result, err := svc.Login(context.Background(), "admin@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user, result.User)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, 1, refresh.Len())

	// The issued access token verifies back to the same account.
	claims, err := svc.VerifyAccessToken(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.IsAdmin())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()
	users, _, svc := newAuthService(t)

	users.EXPECT().GetByEmail(gomock.Any(), "admin@example.com").Return(authTestUser(t), nil)

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()
	users, _, svc := newAuthService(t)

	users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, data.ErrUserNotFound)

	_, err := svc.Login(context.Background(), "ghost@example.com", testPassword)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	// Same message as a wrong password so the endpoint cannot probe accounts.
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "", "")
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	t.Parallel()
	users, refresh, svc := newAuthService(t)
	user := authTestUser(t)

	users.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	ctx := context.Background()
	login, err := svc.Login(ctx, user.Email, testPassword)
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, rotated.Tokens.RefreshToken)
	assert.Equal(t, 1, refresh.Len())

	// The consumed token is gone; presenting it again must fail.
	_, err = svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t)

	_, err := svc.Refresh(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Logout_DeletesRefreshToken(t *testing.T) {
	t.Parallel()
	users, refresh, svc := newAuthService(t)
	user := authTestUser(t)

	users.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	ctx := context.Background()
	login, err := svc.Login(ctx, user.Email, testPassword)
	require.NoError(t, err)
	require.Equal(t, 1, refresh.Len())

	require.NoError(t, svc.Logout(ctx, login.Tokens.RefreshToken))
	assert.Equal(t, 0, refresh.Len())

	// Logout with no token is a no-op, not an error.
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthService_Profile(t *testing.T) {
	t.Parallel()
	users, _, svc := newAuthService(t)
	user := authTestUser(t)

	users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	got, err := svc.Profile(context.Background(), domainauth.Claims{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuthService_Profile_DeletedAccount(t *testing.T) {
	t.Parallel()
	users, _, svc := newAuthService(t)

	users.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, data.ErrUserNotFound)

	_, err := svc.Profile(context.Background(), domainauth.Claims{UserID: "gone"})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_OAuth_Disabled(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t)

	_, _, _, err := svc.BeginOAuthLogin(context.Background(), "http://localhost/callback")
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.CompleteOAuthLogin(context.Background(), ports.ExchangeInput{Code: "code"})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_CompleteOAuthLogin(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	provider := authmocks.NewMockAuthProvider()
	user := authTestUser(t)
	provider.DefaultIdentity.Email = user.Email

	svc := NewAuthService(AuthServiceOptions{
		Users: users,
		Tokens: domainauth.NewTokenIssuer(domainauth.TokenIssuerOptions{
			SigningKey: "test-key",
			Issuer:     "dogiadung-test",
		}),
		Refresh:  authmocks.NewMemoryRefreshStore(),
		Provider: provider,
	})

	users.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	result, err := svc.CompleteOAuthLogin(context.Background(), ports.ExchangeInput{Code: "code", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, user, result.User)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestAuthService_CompleteOAuthLogin_NoAccount(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	provider := authmocks.NewMockAuthProvider()

	svc := NewAuthService(AuthServiceOptions{
		Users: users,
		Tokens: domainauth.NewTokenIssuer(domainauth.TokenIssuerOptions{
			SigningKey: "test-key",
			Issuer:     "dogiadung-test",
		}),
		Refresh:  authmocks.NewMemoryRefreshStore(),
		Provider: provider,
	})

	// Accounts are not auto-provisioned for unknown identities.
	users.EXPECT().GetByEmail(gomock.Any(), provider.DefaultIdentity.Email).Return(nil, data.ErrUserNotFound)

	_, err := svc.CompleteOAuthLogin(context.Background(), ports.ExchangeInput{Code: "code"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

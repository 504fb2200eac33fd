package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
	"github.com/khunglong92/dogiadung-sub001/internal/mocks"
)

func newUserService(t *testing.T) (*mocks.MockUserRepository, *UserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(UserServiceOptions{UserRepo: repo, BcryptCost: bcrypt.MinCost})
	return repo, svc
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	req := &model.CreateUserRequest{
		Name:     "Minh Tran",
		Email:    "minh@example.com",
		Role:     model.UserRoleAdmin,
		Password: "correct horse",
	}

	var storedHash string
	repo.EXPECT().
		Create(gomock.Any(), req, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *model.CreateUserRequest, hash string) (*model.User, error) {
			storedHash = hash
			return &model.User{ID: "user-1", Name: r.Name, Email: r.Email, Role: r.Role}, nil
		})

	user, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	// The repository must receive a bcrypt hash, never the plaintext.
	assert.NotEqual(t, req.Password, storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)))
}

func TestUserService_Create_Validation(t *testing.T) {
	t.Parallel()
	_, svc := newUserService(t)

	_, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Name:     "Minh Tran",
		Email:    "minh@example.com",
		Role:     model.UserRoleUser,
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_Create_EmailConflict(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, data.ErrUserEmailExists)

	_, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Name:     "Minh Tran",
		Email:    "minh@example.com",
		Role:     model.UserRoleUser,
		Password: "correct horse",
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserService_Update_WithPassword(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	password := "fresh password"
	req := model.UpdateUserRequest{Password: &password}

	repo.EXPECT().
		Update(gomock.Any(), "user-1", req, gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, _ model.UpdateUserRequest, hash *string) (*model.User, error) {
			require.NotNil(t, hash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)))
			return &model.User{ID: id}, nil
		})

	_, err := svc.Update(context.Background(), "user-1", req)
	require.NoError(t, err)
}

func TestUserService_Update_WithoutPassword(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	name := "Renamed"
	req := model.UpdateUserRequest{Name: &name}

	repo.EXPECT().Update(gomock.Any(), "user-1", req, nil).Return(&model.User{ID: "user-1", Name: name}, nil)

	user, err := svc.Update(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, name, user.Name)
}

func TestUserService_Update_NoFields(t *testing.T) {
	t.Parallel()
	_, svc := newUserService(t)

	_, err := svc.Update(context.Background(), "user-1", model.UpdateUserRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_List(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	opts := model.UsersListOptions{Limit: 20}
	items := []*model.User{{ID: "user-1"}, {ID: "user-2"}}

	repo.EXPECT().List(gomock.Any(), opts).Return(items, nil)
	repo.EXPECT().Count(gomock.Any(), opts).Return(2, nil)

	page, err := svc.List(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, items, page.Items)
	assert.Equal(t, 2, page.Total)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	repo.EXPECT().Delete(gomock.Any(), "missing").Return(false, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
	"github.com/khunglong92/dogiadung-sub001/internal/mocks"
)

func newCategoryService(t *testing.T) (*mocks.MockCategoryRepository, *CategoryService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockCategoryRepository(ctrl)
	svc := NewCategoryService(CategoryServiceOptions{CategoryRepo: repo})
	return repo, svc
}

func TestCategoryService_Create_Success(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	req := &model.CreateCategoryRequest{Name: "Kitchen"}
	expected := &model.Category{ID: "cat-1", Name: "Kitchen", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	repo.EXPECT().Create(gomock.Any(), req).Return(expected, nil)

	got, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestCategoryService_Create_ValidationError(t *testing.T) {
	t.Parallel()
	_, svc := newCategoryService(t)

	// The repository must never see an invalid request.
	_, err := svc.Create(context.Background(), &model.CreateCategoryRequest{Name: "  "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCategoryService_Create_NameConflict(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, data.ErrCategoryNameExists)

	_, err := svc.Create(context.Background(), &model.CreateCategoryRequest{Name: "Kitchen"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCategoryService_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, data.ErrCategoryNotFound)

	_, err := svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_List(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	opts := model.CategoriesListOptions{Limit: 10}
	items := []*model.Category{{ID: "cat-1", Name: "Kitchen"}, {ID: "cat-2", Name: "Lighting"}}

	repo.EXPECT().List(gomock.Any(), opts).Return(items, nil)
	repo.EXPECT().Count(gomock.Any(), opts).Return(42, nil)

	page, err := svc.List(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, items, page.Items)
	assert.Equal(t, 42, page.Total)
}

func TestCategoryService_List_CountError(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	opts := model.CategoriesListOptions{}
	repo.EXPECT().List(gomock.Any(), opts).Return(nil, nil).AnyTimes()
	repo.EXPECT().Count(gomock.Any(), opts).Return(0, errors.New("boom"))

	_, err := svc.List(context.Background(), opts)
	assert.Error(t, err)
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	name := "Lighting"
	req := model.UpdateCategoryRequest{Name: &name}
	repo.EXPECT().Update(gomock.Any(), "missing", req).Return(nil, data.ErrCategoryNotFound)

	_, err := svc.Update(context.Background(), "missing", req)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_Update_NoFields(t *testing.T) {
	t.Parallel()
	_, svc := newCategoryService(t)

	_, err := svc.Update(context.Background(), "cat-1", model.UpdateCategoryRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCategoryService_Delete(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	repo.EXPECT().Delete(gomock.Any(), "cat-1").Return(true, nil)
	assert.NoError(t, svc.Delete(context.Background(), "cat-1"))
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	repo.EXPECT().Delete(gomock.Any(), "missing").Return(false, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_Delete_Referenced(t *testing.T) {
	t.Parallel()
	repo, svc := newCategoryService(t)

	repo.EXPECT().Delete(gomock.Any(), "cat-1").Return(false, data.ErrForeignKey)

	err := svc.Delete(context.Background(), "cat-1")
	assert.True(t, apperrors.IsForeignKey(err))
}

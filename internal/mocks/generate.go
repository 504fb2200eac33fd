// Package mocks provides mock implementations of the repository interfaces
// in internal/core, generated with go.uber.org/mock (gomock).
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	t.Cleanup(ctrl.Finish)
//	repo := mocks.NewMockCategoryRepository(ctrl)
//	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(category, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=category_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core CategoryRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=product_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core ProductRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=service_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core ServiceRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=project_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core ProjectRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=contact_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core ContactRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core UserRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=webhook_sink_repository_mock.go github.com/khunglong92/dogiadung-sub001/internal/core WebhookSinkRepository

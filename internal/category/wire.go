//go:build wireinject
// +build wireinject

package category

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/category/delivery/http"
	"github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/internal/category/repository"
	"github.com/connectchain/admin-api/internal/category/usecase/command"
	"github.com/connectchain/admin-api/internal/category/usecase/query"
	"github.com/connectchain/admin-api/internal/middleware"
)

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// Command Handlers Providers
func ProvideCreateCategoryHandler(repo domain.CategoryRepository) *command.CreateCategoryHandler {
	return command.NewCreateCategoryHandler(repo)
}

func ProvideUpdateCategoryHandler(repo domain.CategoryRepository) *command.UpdateCategoryHandler {
	return command.NewUpdateCategoryHandler(repo)
}

func ProvideSetCategoryStatusHandler(repo domain.CategoryRepository, events command.EventPublisher) *command.SetCategoryStatusHandler {
	return command.NewSetCategoryStatusHandler(repo, events)
}

func ProvideDeleteCategoryHandler(repo domain.CategoryRepository) *command.DeleteCategoryHandler {
	return command.NewDeleteCategoryHandler(repo)
}

// Query Handlers Providers
func ProvideGetCategoryHandler(repo domain.CategoryRepository) *query.GetCategoryHandler {
	return query.NewGetCategoryHandler(repo)
}

func ProvideListCategoriesHandler(repo domain.CategoryRepository) *query.ListCategoriesHandler {
	return query.NewListCategoriesHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCategoryRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCreateCategoryHandler,
	ProvideUpdateCategoryHandler,
	ProvideSetCategoryStatusHandler,
	ProvideDeleteCategoryHandler,
	ProvideGetCategoryHandler,
	ProvideListCategoriesHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, events command.EventPublisher, metrics *middleware.Metrics) (*http.CategoryHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewCategoryHandler,
	)
	return nil, nil
}

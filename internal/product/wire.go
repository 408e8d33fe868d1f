//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/internal/product/delivery/http"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/internal/product/repository"
	"github.com/connectchain/admin-api/internal/product/usecase/command"
	"github.com/connectchain/admin-api/internal/product/usecase/query"
	"github.com/connectchain/admin-api/pkg/media"
)

// ProvideProductRepository provides the product repository with tracing
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// Command Handlers Providers
func ProvideCreateProductHandler(repo domain.ProductRepository, categories command.CategoryChecker, partners command.PartnerChecker, storage media.Storage, events command.EventPublisher) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo, categories, partners, storage, events)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository, categories command.CategoryChecker, partners command.PartnerChecker, storage media.Storage, events command.EventPublisher) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo, categories, partners, storage, events)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository, events command.EventPublisher) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo, events)
}

// Query Handlers Providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideListProductsHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, categories command.CategoryChecker, partners command.PartnerChecker, storage media.Storage, events command.EventPublisher, metrics *middleware.Metrics) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewProductHandler,
	)
	return nil, nil
}

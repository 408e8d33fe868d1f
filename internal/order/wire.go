//go:build wireinject
// +build wireinject

package order

import (
	"database/sql"

	"github.com/google/wire"

	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/internal/order/delivery/http"
	"github.com/connectchain/admin-api/internal/order/domain"
	"github.com/connectchain/admin-api/internal/order/repository"
	"github.com/connectchain/admin-api/internal/order/usecase/command"
	"github.com/connectchain/admin-api/internal/order/usecase/query"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *sql.DB) domain.OrderRepository {
	return repository.NewPostgresOrderRepository(db)
}

func ProvideUpdateOrderStatusHandler(repo domain.OrderRepository, events command.EventPublisher) *command.UpdateOrderStatusHandler {
	return command.NewUpdateOrderStatusHandler(repo, events)
}

func ProvideGetOrderHandler(repo domain.OrderRepository) *query.GetOrderHandler {
	return query.NewGetOrderHandler(repo)
}

func ProvideListOrdersHandler(repo domain.OrderRepository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
)

var HandlerSet = wire.NewSet(
	ProvideUpdateOrderStatusHandler,
	ProvideGetOrderHandler,
	ProvideListOrdersHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *sql.DB, events command.EventPublisher, metrics *middleware.Metrics) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewOrderHandler,
	)
	return nil, nil
}

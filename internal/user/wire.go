//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/internal/user/delivery/http"
	"github.com/connectchain/admin-api/internal/user/domain"
	"github.com/connectchain/admin-api/internal/user/repository"
	"github.com/connectchain/admin-api/internal/user/usecase/command"
	"github.com/connectchain/admin-api/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// Command Handlers Providers
func ProvideCreateUserHandler(repo domain.UserRepository) *command.CreateUserHandler {
	return command.NewCreateUserHandler(repo)
}

func ProvideUpdateUserHandler(repo domain.UserRepository) *command.UpdateUserHandler {
	return command.NewUpdateUserHandler(repo)
}

func ProvideToggleActiveHandler(repo domain.UserRepository) *command.ToggleActiveHandler {
	return command.NewToggleActiveHandler(repo)
}

// Query Handlers Providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCreateUserHandler,
	ProvideUpdateUserHandler,
	ProvideToggleActiveHandler,
	ProvideGetUserHandler,
	ProvideListUsersHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, metrics *middleware.Metrics) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewUserHandler,
	)
	return nil, nil
}

package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/user/domain"
	"github.com/connectchain/admin-api/pkg/auth"
)

// CreateUserCommand represents the command to create a supplier or customer
// account. Password is optional; without one a temporary password is issued.
type CreateUserCommand struct {
	Username    string
	Email       string
	FullName    string
	CompanyName string
	Phone       string
	Address     string
	Role        string
	Password    string
}

// CreateUserHandler handles user creation
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	// Validation
	if strings.TrimSpace(cmd.Username) == "" {
		return nil, apperr.Validation("username is required")
	}
	if strings.TrimSpace(cmd.Email) == "" || !strings.Contains(cmd.Email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if strings.TrimSpace(cmd.FullName) == "" {
		return nil, apperr.Validation("full name is required")
	}
	if cmd.Role != domain.RoleSupplier && cmd.Role != domain.RoleCustomer {
		return nil, apperr.Validation("role must be supplier or customer")
	}

	password := cmd.Password
	if password == "" {
		password = uuid.NewString()
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:    strings.TrimSpace(cmd.Username),
		Email:       strings.ToLower(strings.TrimSpace(cmd.Email)),
		Password:    hashed,
		FullName:    strings.TrimSpace(cmd.FullName),
		CompanyName: cmd.CompanyName,
		Phone:       cmd.Phone,
		Address:     cmd.Address,
		Role:        cmd.Role,
		IsActive:    true,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

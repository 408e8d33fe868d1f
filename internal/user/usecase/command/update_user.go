package command

import (
	"context"
	"strings"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/user/domain"
)

// UpdateUserCommand represents the command to update a user's profile. Nil
// fields are left untouched. Role is immutable.
type UpdateUserCommand struct {
	ID          uint
	FullName    *string
	Email       *string
	CompanyName *string
	Phone       *string
	Address     *string
	IsVerified  *bool
}

// UpdateUserHandler handles user updates
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.ID == 0 {
		return nil, apperr.Validation("user id is required")
	}

	user, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.FullName != nil {
		name := strings.TrimSpace(*cmd.FullName)
		if name == "" {
			return nil, apperr.Validation("full name must not be empty")
		}
		user.FullName = name
	}
	if cmd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*cmd.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperr.Validation("a valid email is required")
		}
		user.Email = email
	}
	if cmd.CompanyName != nil {
		user.CompanyName = *cmd.CompanyName
	}
	if cmd.Phone != nil {
		user.Phone = *cmd.Phone
	}
	if cmd.Address != nil {
		user.Address = *cmd.Address
	}
	if cmd.IsVerified != nil {
		if user.Role != domain.RoleSupplier {
			return nil, apperr.Validation("only suppliers can be verified")
		}
		user.IsVerified = *cmd.IsVerified
	}

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

package command

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/user/domain"
)

// ToggleActiveCommand represents the command to activate or deactivate a
// user account
type ToggleActiveCommand struct {
	UserID   uint
	IsActive bool
}

// ToggleActiveHandler handles user activation toggles
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command. Repeating the current state is
// rejected as a state conflict.
func (h *ToggleActiveHandler) Handle(ctx context.Context, cmd ToggleActiveCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, apperr.Validation("user id is required")
	}
	return h.repo.SetActive(ctx, cmd.UserID, cmd.IsActive)
}

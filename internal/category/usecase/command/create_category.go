package command

import (
	"context"
	"strings"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	category := &domain.Category{
		Name:        name,
		Description: cmd.Description,
		IsActive:    true,
	}
	if err := h.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

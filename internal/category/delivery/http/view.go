package http

import (
	"time"

	"github.com/connectchain/admin-api/internal/category/domain"
)

// CategoryView is the outbound shape of a category
type CategoryView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	ProductCount int64  `json:"productCount"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// NewCategoryView maps a category to its response shape
func NewCategoryView(c domain.Category, productCount int64) CategoryView {
	status := "inactive"
	if c.IsActive {
		status = "active"
	}
	return CategoryView{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Status:       status,
		ProductCount: productCount,
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
}

// NewCategoryViews maps a counted category page
func NewCategoryViews(categories []domain.CategoryWithCount) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, NewCategoryView(c.Category, c.ProductCount))
	}
	return views
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

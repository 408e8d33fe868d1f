package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/connectchain/admin-api/pkg/listing"
)

// Category is a container for products
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;index"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryWithCount pairs a category with its live product count. The count
// is computed with the exact predicate the product listing uses, so the
// advertised number always matches what the listing returns.
type CategoryWithCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}

// CategoryFilter is the structured predicate behind category listings
type CategoryFilter struct {
	Search      string
	Status      string // "", "active", "inactive"
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, filter CategoryFilter, page listing.Page, sort listing.Sort) ([]CategoryWithCount, int64, error)
	Update(ctx context.Context, category *Category) error
	// SetStatus flips the category status and cascades it to the category's
	// products inside one transaction.
	SetStatus(ctx context.Context, id uint, active bool) (*Category, error)
	SoftDelete(ctx context.Context, id uint) error
}

package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
	proddomain "github.com/connectchain/admin-api/internal/product/domain"
	prodrepo "github.com/connectchain/admin-api/internal/product/repository"
	"github.com/connectchain/admin-api/pkg/listing"
)

// GormCategoryRepository is the GORM-backed category repository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// AutoMigrate migrates the categories table
func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{})
}

func filterScope(f domain.CategoryFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Where("LOWER(name) LIKE ?", pattern)
		}
		switch f.Status {
		case "active":
			db = db.Where("is_active = ?", true)
		case "inactive":
			db = db.Where("is_active = ?", false)
		}
		if f.CreatedFrom != nil {
			db = db.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			db = db.Where("created_at <= ?", *f.CreatedTo)
		}
		return db
	}
}

// Create inserts a new category. Reusing the name of a live category is a
// conflict; soft-deleted rows do not reserve their name.
func (r *GormCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Category
		err := tx.Where("LOWER(name) = ?", strings.ToLower(category.Name)).First(&existing).Error
		if err == nil {
			return apperr.Conflict("category %q already exists", category.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(category).Error
	})
}

// FindByID retrieves a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName retrieves a live category by name, case-insensitive
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns one page of categories with their live product counts plus the
// total count. Product counts run through the product listing predicate, so a
// category never advertises products its own listing would not show.
func (r *GormCategoryRepository) List(ctx context.Context, filter domain.CategoryFilter, page listing.Page, sort listing.Sort) ([]domain.CategoryWithCount, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Scopes(filterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []domain.Category
	err := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Order(sort.OrderClause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		id := category.ID
		var count int64
		err := r.db.WithContext(ctx).
			Model(&proddomain.Product{}).
			Scopes(prodrepo.FilterScope(proddomain.ProductFilter{CategoryID: &id})).
			Count(&count).Error
		if err != nil {
			return nil, 0, err
		}
		result = append(result, domain.CategoryWithCount{Category: category, ProductCount: count})
	}
	return result, total, nil
}

// Update persists category changes. Renaming onto another live category's
// name is a conflict.
func (r *GormCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Category
		err := tx.Where("LOWER(name) = ? AND id <> ?", strings.ToLower(category.Name), category.ID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("category %q already exists", category.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Save(category).Error
	})
}

// SetStatus flips the category status and cascades it to the category's
// products inside one transaction. Setting the status it already has is a
// state conflict.
func (r *GormCategoryRepository) SetStatus(ctx context.Context, id uint, active bool) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("category %d not found", id)
			}
			return err
		}
		if category.IsActive == active {
			return apperr.StateConflict("category %d is already %s", id, statusWord(active))
		}

		if err := tx.Model(&category).Update("is_active", active).Error; err != nil {
			return err
		}
		return tx.Model(&proddomain.Product{}).
			Where("category_id = ?", id).
			Update("is_active", active).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SoftDelete soft-deletes the category; its products keep their rows
func (r *GormCategoryRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category %d not found", id)
	}
	return nil
}

func statusWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

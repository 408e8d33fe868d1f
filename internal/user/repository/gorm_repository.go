package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/user/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// GormUserRepository is the GORM-backed user repository
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// AutoMigrate migrates the users table
func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

func filterScope(f domain.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Role != "" {
			db = db.Where("role = ?", f.Role)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company_name) LIKE ?", pattern, pattern, pattern)
		}
		switch f.Status {
		case "active":
			db = db.Where("is_active = ?", true)
		case "inactive":
			db = db.Where("is_active = ?", false)
		}
		if f.Verified != nil {
			db = db.Where("is_verified = ?", *f.Verified)
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

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("user with this username or email already exists")
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user with email %q not found", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns one page of users matching the filter plus the total count
func (r *GormUserRepository) List(ctx context.Context, filter domain.UserFilter, page listing.Page, sort listing.Sort) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Scopes(filterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Order(sort.OrderClause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update persists user changes
func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("user with this username or email already exists")
		}
		return err
	}
	return nil
}

// SetActive flips the user's active flag. Setting the state it already has
// is a state conflict.
func (r *GormUserRepository) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user %d not found", id)
			}
			return err
		}
		if user.IsActive == active {
			if active {
				return apperr.StateConflict("user %d is already active", id)
			}
			return apperr.StateConflict("user %d is already inactive", id)
		}
		return tx.Model(&user).Update("is_active", active).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SoftDelete soft-deletes a user
func (r *GormUserRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user %d not found", id)
	}
	return nil
}

// ExistsWithRole reports whether a live user with the given ID and role
// exists. Product partner reference checks go through this.
func (r *GormUserRepository) ExistsWithRole(ctx context.Context, id uint, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

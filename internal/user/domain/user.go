package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/connectchain/admin-api/pkg/listing"
)

// Role types
const (
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
	RoleCustomer = "customer"
)

// User represents a marketplace participant. Suppliers and customers share
// the table; the role column tells them apart.
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Username    string         `json:"username" gorm:"uniqueIndex;not null"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"not null"` // Never expose password in JSON
	FullName    string         `json:"full_name" gorm:"not null"`
	CompanyName string         `json:"company_name"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	Role        string         `json:"role" gorm:"not null;index"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	IsVerified  bool           `json:"is_verified" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFilter is the structured predicate behind supplier and customer
// listings. Role is always set by the delivery surface, never by the client.
type UserFilter struct {
	Role        string
	Search      string
	Status      string // "", "active", "inactive"
	Verified    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter, page listing.Page, sort listing.Sort) ([]User, int64, error)
	Update(ctx context.Context, user *User) error
	SetActive(ctx context.Context, id uint, active bool) (*User, error)
	SoftDelete(ctx context.Context, id uint) error
	ExistsWithRole(ctx context.Context, id uint, role string) (bool, error)
}

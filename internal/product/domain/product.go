package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	catdomain "github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// Product represents the product aggregate root
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	MinStock    int            `json:"min_stock" gorm:"not null;default:0"`
	SKU         string         `json:"sku" gorm:"uniqueIndex;not null"`
	CategoryID  uint           `json:"category_id" gorm:"not null;index"`
	SupplierID  *uint          `json:"supplier_id" gorm:"index"`
	CustomerID  *uint          `json:"customer_id" gorm:"index"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Category   *catdomain.Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Attributes []ProductAttribute  `json:"attributes" gorm:"foreignKey:ProductID"`
	Variants   []ProductVariant    `json:"variants" gorm:"foreignKey:ProductID"`
	Images     []ProductImage      `json:"images" gorm:"foreignKey:ProductID"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether the product has sellable stock
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductAttribute is a key/value pair owned by one product
type ProductAttribute struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	Key       string         `json:"key" gorm:"column:attr_key;not null"`
	Value     string         `json:"value" gorm:"column:attr_value;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (ProductAttribute) TableName() string {
	return "product_attributes"
}

// ProductVariant is a sellable variation owned by one product, with its own
// price and stock
type ProductVariant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Type      string         `json:"type"`
	Price     float64        `json:"price" gorm:"not null"`
	Stock     int            `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductImage references externally hosted media. The storage identifier is
// persisted so deletion never depends on parsing the URL.
type ProductImage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	URL       string         `json:"url" gorm:"not null"`
	StorageID string         `json:"-" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (ProductImage) TableName() string {
	return "product_images"
}

// Action tags a child operation inside an aggregate update
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ChildOp is one tagged operation on a dependent child collection.
// Create ignores ID; Update and Delete require it.
type ChildOp[F any] struct {
	Action Action
	ID     uint
	Fields F
}

// AttributeFields carries the mutable fields of an attribute op
type AttributeFields struct {
	Key   string
	Value string
}

// VariantFields carries the mutable fields of a variant op
type VariantFields struct {
	Name  string
	Type  string
	Price float64
	Stock int
}

// AttributeOp is a tagged operation on the attributes collection
type AttributeOp = ChildOp[AttributeFields]

// VariantOp is a tagged operation on the variants collection
type VariantOp = ChildOp[VariantFields]

// ProductPatch is a partial update of the parent product fields. Nil means
// "leave unchanged". SKU is immutable and therefore absent.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	MinStock    *int
	CategoryID  *uint
	SupplierID  *uint
	CustomerID  *uint
	IsActive    *bool
}

// ImageRef is a stored media reference recorded during reconciliation
type ImageRef struct {
	URL       string
	StorageID string
}

// ReconcileSet is everything one aggregate update applies atomically
type ReconcileSet struct {
	Patch          ProductPatch
	AttributeOps   []AttributeOp
	VariantOps     []VariantOp
	NewImages      []ImageRef
	RemoveImageIDs []uint
}

// ProductFilter is the structured predicate behind product listings. The
// same filter drives listing, total counts and category product counts.
type ProductFilter struct {
	Search      string
	CategoryID  *uint
	SupplierID  *uint
	InStock     *bool
	Status      string // "", "active", "inactive"
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, filter ProductFilter, page listing.Page, sort listing.Sort) ([]Product, int64, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	// Reconcile applies the full set atomically and returns the materialized
	// aggregate plus the storage IDs of images removed by the set.
	Reconcile(ctx context.Context, id uint, set ReconcileSet) (*Product, []string, error)
	SoftDelete(ctx context.Context, id uint) error
}

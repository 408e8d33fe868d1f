package http

import (
	"strconv"
	"time"

	"github.com/connectchain/admin-api/internal/product/domain"
)

// Status labels exposed by the API
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOutOfStock = "out_of_stock"
)

// ProductView is the external shape of a product aggregate
type ProductView struct {
	ID                  uint            `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Price               string          `json:"price"`
	Stock               int             `json:"stock"`
	MinStock            int             `json:"minStock"`
	SKU                 string          `json:"sku"`
	Status              string          `json:"status"`
	CategoryID          uint            `json:"categoryId"`
	CategoryName        string          `json:"categoryName,omitempty"`
	CategoryDescription string          `json:"categoryDescription,omitempty"`
	SupplierID          *uint           `json:"supplierId,omitempty"`
	CustomerID          *uint           `json:"customerId,omitempty"`
	PrimaryImage        string          `json:"primaryImage,omitempty"`
	Images              []ImageView     `json:"images"`
	Attributes          []AttributeView `json:"attributes"`
	Variants            []VariantView   `json:"variants"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`
}

// AttributeView is the external shape of a product attribute
type AttributeView struct {
	ID    uint   `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// VariantView is the external shape of a product variant
type VariantView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Price  string `json:"price"`
	Stock  int    `json:"stock"`
	Status string `json:"status"`
}

// ImageView is the external shape of a product image
type ImageView struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// NewProductView maps a product aggregate to its external shape. Pure
// function: no I/O, soft-deleted children are never serialized.
func NewProductView(p domain.Product) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       formatPrice(p.Price),
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		SKU:         p.SKU,
		Status:      productStatus(p),
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		CustomerID:  p.CustomerID,
		Images:      []ImageView{},
		Attributes:  []AttributeView{},
		Variants:    []VariantView{},
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}

	if p.Category != nil {
		view.CategoryName = p.Category.Name
		view.CategoryDescription = p.Category.Description
	}

	for _, img := range p.Images {
		if img.DeletedAt.Valid {
			continue
		}
		view.Images = append(view.Images, ImageView{ID: img.ID, URL: img.URL})
	}
	// First live image by insertion order is the primary one
	if len(view.Images) > 0 {
		view.PrimaryImage = view.Images[0].URL
	}

	for _, attr := range p.Attributes {
		if attr.DeletedAt.Valid {
			continue
		}
		view.Attributes = append(view.Attributes, AttributeView{ID: attr.ID, Key: attr.Key, Value: attr.Value})
	}

	for _, v := range p.Variants {
		if v.DeletedAt.Valid {
			continue
		}
		view.Variants = append(view.Variants, VariantView{
			ID:     v.ID,
			Name:   v.Name,
			Type:   v.Type,
			Price:  formatPrice(v.Price),
			Stock:  v.Stock,
			Status: variantStatus(v),
		})
	}

	return view
}

// NewProductViews maps a slice of product aggregates
func NewProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

func productStatus(p domain.Product) string {
	if !p.IsActive {
		return StatusInactive
	}
	if p.Stock <= 0 {
		return StatusOutOfStock
	}
	return StatusActive
}

func variantStatus(v domain.ProductVariant) string {
	if v.Stock <= 0 {
		return StatusOutOfStock
	}
	return StatusActive
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

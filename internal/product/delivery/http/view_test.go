package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catdomain "github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/internal/product/domain"
)

func sampleProduct() domain.Product {
	supplierID := uint(4)
	return domain.Product{
		ID:          7,
		Name:        "Steel Widget",
		Description: "A widget",
		Price:       19.9,
		Stock:       3,
		MinStock:    1,
		SKU:         "CC-ABC123",
		CategoryID:  2,
		SupplierID:  &supplierID,
		IsActive:    true,
		Category:    &catdomain.Category{ID: 2, Name: "Widgets", Description: "All widgets"},
		Attributes: []domain.ProductAttribute{
			{ID: 1, ProductID: 7, Key: "Color", Value: "Red"},
		},
		Variants: []domain.ProductVariant{
			{ID: 3, ProductID: 7, Name: "Large", Type: "size", Price: 24.5, Stock: 0},
		},
		Images: []domain.ProductImage{
			{ID: 10, ProductID: 7, URL: "https://media.test/products/a.png"},
			{ID: 11, ProductID: 7, URL: "https://media.test/products/b.png"},
		},
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewProductView(t *testing.T) {
	view := NewProductView(sampleProduct())

	assert.Equal(t, uint(7), view.ID)
	assert.Equal(t, "19.90", view.Price, "prices carry exactly two decimals")
	assert.Equal(t, StatusActive, view.Status)
	assert.Equal(t, "Widgets", view.CategoryName)
	assert.Equal(t, "https://media.test/products/a.png", view.PrimaryImage, "first image is primary")
	assert.Equal(t, "2026-03-14T09:26:53Z", view.CreatedAt)

	require.Len(t, view.Variants, 1)
	assert.Equal(t, "24.50", view.Variants[0].Price)
	assert.Equal(t, StatusOutOfStock, view.Variants[0].Status)
}

func TestNewProductView_StatusLabels(t *testing.T) {
	p := sampleProduct()

	p.IsActive = false
	assert.Equal(t, StatusInactive, NewProductView(p).Status, "inactive wins over stock")

	p.IsActive = true
	p.Stock = 0
	assert.Equal(t, StatusOutOfStock, NewProductView(p).Status)

	p.Stock = 5
	assert.Equal(t, StatusActive, NewProductView(p).Status)
}

func TestNewProductView_SkipsSoftDeletedChildren(t *testing.T) {
	p := sampleProduct()
	deleted := gorm.DeletedAt{Time: time.Now(), Valid: true}
	p.Attributes[0].DeletedAt = deleted
	p.Images[0].DeletedAt = deleted

	view := NewProductView(p)
	assert.Empty(t, view.Attributes)
	require.Len(t, view.Images, 1)
	assert.Equal(t, "https://media.test/products/b.png", view.PrimaryImage,
		"primary image is the first live one")
}

func TestNewProductView_EmptyCollectionsSerializeAsArrays(t *testing.T) {
	p := sampleProduct()
	p.Attributes = nil
	p.Variants = nil
	p.Images = nil

	raw, err := json.Marshal(NewProductView(p))
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"attributes":[]`)
	assert.Contains(t, body, `"variants":[]`)
	assert.Contains(t, body, `"images":[]`)
}

func TestNewProductView_CamelCaseKeys(t *testing.T) {
	raw, err := json.Marshal(NewProductView(sampleProduct()))
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))

	for _, key := range []string{"minStock", "categoryId", "categoryName", "supplierId", "primaryImage", "createdAt", "updatedAt"} {
		assert.Contains(t, keys, key)
	}
	assert.NotContains(t, keys, "MinStock")
	assert.NotContains(t, keys, "category_id")
}

func TestNewProductViews_PreservesOrder(t *testing.T) {
	first := sampleProduct()
	second := sampleProduct()
	second.ID = 8
	second.Name = "Brass Widget"

	views := NewProductViews([]domain.Product{first, second})
	require.Len(t, views, 2)
	assert.Equal(t, uint(7), views[0].ID)
	assert.Equal(t, uint(8), views[1].ID)
}

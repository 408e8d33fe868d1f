package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/media"
)

type denyingChecker struct {
	missingCategory bool
	missingSupplier bool
}

func (d denyingChecker) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return !d.missingCategory, nil
}

func (d denyingChecker) UserExistsWithRole(ctx context.Context, id uint, role string) (bool, error) {
	if role == "supplier" && d.missingSupplier {
		return false, nil
	}
	return true, nil
}

func validCreateCommand() CreateProductCommand {
	return CreateProductCommand{
		Name:       "Steel Widget",
		Price:      19.99,
		Stock:      3,
		CategoryID: 2,
		Attributes: []domain.AttributeFields{{Key: "Color", Value: "Red"}},
		Variants:   []domain.VariantFields{{Name: "Large", Type: "size", Price: 24.5, Stock: 5}},
	}
}

func TestCreateProduct(t *testing.T) {
	repo := &fakeProductRepo{}
	storage := &fakeStorage{}
	publisher := &recordingPublisher{}
	handler := NewCreateProductHandler(repo, allowAllChecker{}, allowAllChecker{}, storage, publisher)

	cmd := validCreateCommand()
	cmd.Images = []media.File{{Name: "a.png", ContentType: "image/png"}}

	product, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(product.SKU, "CC-"), "SKU is generated, not client supplied")
	assert.True(t, product.IsActive, "new products start active")
	require.Len(t, product.Images, 1)
	assert.NotEmpty(t, product.Images[0].StorageID, "storage id is persisted with the image")

	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.EventTypeProductCreated, publisher.events[0].EventType)
}

func TestCreateProduct_MissingCategoryNamed(t *testing.T) {
	handler := NewCreateProductHandler(&fakeProductRepo{}, denyingChecker{missingCategory: true}, denyingChecker{}, &fakeStorage{}, nil)

	_, err := handler.Handle(context.Background(), validCreateCommand())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "category", "the failing reference is named")
}

func TestCreateProduct_MissingSupplierNamed(t *testing.T) {
	supplierID := uint(9)
	handler := NewCreateProductHandler(&fakeProductRepo{}, denyingChecker{}, denyingChecker{missingSupplier: true}, &fakeStorage{}, nil)

	cmd := validCreateCommand()
	cmd.SupplierID = &supplierID

	_, err := handler.Handle(context.Background(), cmd)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "supplier", "the failing reference is named")
}

func TestCreateProduct_Validation(t *testing.T) {
	handler := NewCreateProductHandler(&fakeProductRepo{}, allowAllChecker{}, allowAllChecker{}, &fakeStorage{}, nil)

	cases := []struct {
		name   string
		mutate func(*CreateProductCommand)
	}{
		{"blank name", func(c *CreateProductCommand) { c.Name = "  " }},
		{"negative price", func(c *CreateProductCommand) { c.Price = -1 }},
		{"missing category", func(c *CreateProductCommand) { c.CategoryID = 0 }},
		{"blank attribute key", func(c *CreateProductCommand) { c.Attributes[0].Key = "" }},
		{"blank variant name", func(c *CreateProductCommand) { c.Variants[0].Name = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tc.mutate(&cmd)
			_, err := handler.Handle(context.Background(), cmd)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

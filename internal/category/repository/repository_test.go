package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
	proddomain "github.com/connectchain/admin-api/internal/product/domain"
	prodrepo "github.com/connectchain/admin-api/internal/product/repository"
	"github.com/connectchain/admin-api/pkg/listing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).AutoMigrate())
	require.NoError(t, prodrepo.NewGormProductRepository(db).AutoMigrate())
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string, active bool) *domain.Category {
	t.Helper()
	category := &domain.Category{Name: name, IsActive: active}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, sku string) *proddomain.Product {
	t.Helper()
	product := &proddomain.Product{
		Name:       "Product " + sku,
		Price:      10,
		Stock:      1,
		SKU:        sku,
		CategoryID: categoryID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateDuplicateLiveName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)

	require.NoError(t, repo.Create(context.Background(), &domain.Category{Name: "Electronics", IsActive: true}))

	// Name comparison is case-insensitive and no second row may appear
	err := repo.Create(context.Background(), &domain.Category{Name: "electronics", IsActive: true})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	var rows int64
	require.NoError(t, db.Model(&domain.Category{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestCreateReusesSoftDeletedName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)

	first := &domain.Category{Name: "Electronics", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.SoftDelete(context.Background(), first.ID))

	assert.NoError(t, repo.Create(context.Background(), &domain.Category{Name: "Electronics", IsActive: true}))
}

func TestListProductCountsMatchProductListing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	products := prodrepo.NewGormProductRepository(db)

	lighting := seedCategory(t, db, "Lighting", true)
	audio := seedCategory(t, db, "Audio", true)

	seedProduct(t, db, lighting.ID, "CC-LAMP-1")
	seedProduct(t, db, lighting.ID, "CC-LAMP-2")
	gone := seedProduct(t, db, lighting.ID, "CC-LAMP-3")
	require.NoError(t, db.Delete(gone).Error)
	seedProduct(t, db, audio.ID, "CC-SPKR-1")

	page := listing.Page{Number: 1, Limit: 10}
	sort := listing.Sort{Field: "id"}

	items, total, err := repo.List(context.Background(), domain.CategoryFilter{}, page, sort)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	// Every advertised count must equal what the product listing returns
	// when filtered to that category
	for _, item := range items {
		id := item.ID
		listed, listedTotal, err := products.List(context.Background(), proddomain.ProductFilter{CategoryID: &id}, page, sort)
		require.NoError(t, err)
		assert.Equal(t, item.ProductCount, listedTotal, "category %s", item.Name)
		assert.Equal(t, item.ProductCount, int64(len(listed)), "category %s", item.Name)
	}
}

func TestSetStatusCascadesToProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)

	lighting := seedCategory(t, db, "Lighting", true)
	product := seedProduct(t, db, lighting.ID, "CC-LAMP-1")

	updated, err := repo.SetStatus(context.Background(), lighting.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	var got proddomain.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.False(t, got.IsActive)

	_, err = repo.SetStatus(context.Background(), lighting.ID, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))

	_, err = repo.SetStatus(context.Background(), 9999, true)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// GormProductRepository is the GORM-backed product repository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate migrates the product aggregate tables
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Product{},
		&domain.ProductAttribute{},
		&domain.ProductVariant{},
		&domain.ProductImage{},
	)
}

// FilterScope translates a product filter into a GORM predicate. Listing,
// total counts and category product counts all go through this one function.
func FilterScope(f domain.ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
		}
		if f.CategoryID != nil {
			db = db.Where("category_id = ?", *f.CategoryID)
		}
		if f.SupplierID != nil {
			db = db.Where("supplier_id = ?", *f.SupplierID)
		}
		if f.InStock != nil {
			if *f.InStock {
				db = db.Where("stock > 0")
			} else {
				db = db.Where("stock <= 0")
			}
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

func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// Create inserts a new product with its children
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("product with SKU %q already exists", product.SKU)
		}
		return err
	}
	return nil
}

// FindByID retrieves the full aggregate, live children only
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := preloadChildren(r.db.WithContext(ctx)).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU retrieves a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product with SKU %q not found", sku)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns one page of products matching the filter plus the total count
func (r *GormProductRepository) List(ctx context.Context, filter domain.ProductFilter, page listing.Page, sort listing.Sort) ([]domain.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Scopes(FilterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []domain.Product
	err := preloadChildren(r.db.WithContext(ctx)).
		Scopes(FilterScope(filter)).
		Order(sort.OrderClause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Count returns the number of products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Scopes(FilterScope(filter)).
		Count(&total).Error
	return total, err
}

// Reconcile applies a parent patch, tagged child operations and image
// changes inside one transaction. On any error nothing is retained. The
// returned storage IDs identify image objects whose external copies are now
// orphaned and may be purged after commit.
func (r *GormProductRepository) Reconcile(ctx context.Context, id uint, set domain.ReconcileSet) (*domain.Product, []string, error) {
	var removedStorageIDs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product %d not found", id)
			}
			return err
		}

		if updates := patchUpdates(set.Patch); len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := reconcileChildren(tx, id, "attribute", set.AttributeOps, newAttribute, applyAttribute); err != nil {
			return err
		}
		if err := reconcileChildren(tx, id, "variant", set.VariantOps, newVariant, applyVariant); err != nil {
			return err
		}

		for _, ref := range set.NewImages {
			img := domain.ProductImage{ProductID: id, URL: ref.URL, StorageID: ref.StorageID}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}

		for _, imageID := range set.RemoveImageIDs {
			var img domain.ProductImage
			err := tx.Where("id = ? AND product_id = ?", imageID, id).First(&img).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("image %d not found on product %d", imageID, id)
			}
			if err != nil {
				return err
			}
			if err := tx.Delete(&img).Error; err != nil {
				return err
			}
			removedStorageIDs = append(removedStorageIDs, img.StorageID)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, removedStorageIDs, nil
}

// SoftDelete soft-deletes the product and cascades to its children
func (r *GormProductRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("product %d not found", id)
		}

		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductAttribute{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", id).Delete(&domain.ProductImage{}).Error
	})
}

// patchUpdates turns a product patch into a column update map; nil fields
// are left out so they stay untouched
func patchUpdates(patch domain.ProductPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.MinStock != nil {
		updates["min_stock"] = *patch.MinStock
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.SupplierID != nil {
		updates["supplier_id"] = *patch.SupplierID
	}
	if patch.CustomerID != nil {
		updates["customer_id"] = *patch.CustomerID
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	return updates
}

// reconcileChildren applies tagged operations for one child collection. One
// routine serves every child entity; the callbacks provide the type-specific
// row construction and field assignment.
func reconcileChildren[F any, M any](tx *gorm.DB, productID uint, kind string, ops []domain.ChildOp[F], newRow func(uint, F) M, applyRow func(*M, F)) error {
	for _, op := range ops {
		switch op.Action {
		case domain.ActionCreate:
			row := newRow(productID, op.Fields)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case domain.ActionUpdate:
			var row M
			err := tx.Where("id = ? AND product_id = ?", op.ID, productID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("%s %d not found on product %d", kind, op.ID, productID)
			}
			if err != nil {
				return err
			}
			applyRow(&row, op.Fields)
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case domain.ActionDelete:
			res := tx.Where("id = ? AND product_id = ?", op.ID, productID).Delete(new(M))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("%s %d not found on product %d", kind, op.ID, productID)
			}
		default:
			return apperr.Validation("unknown action %q for %s operation", op.Action, kind)
		}
	}
	return nil
}

func newAttribute(productID uint, f domain.AttributeFields) domain.ProductAttribute {
	return domain.ProductAttribute{ProductID: productID, Key: f.Key, Value: f.Value}
}

func applyAttribute(row *domain.ProductAttribute, f domain.AttributeFields) {
	row.Key = f.Key
	row.Value = f.Value
}

func newVariant(productID uint, f domain.VariantFields) domain.ProductVariant {
	return domain.ProductVariant{ProductID: productID, Name: f.Name, Type: f.Type, Price: f.Price, Stock: f.Stock}
}

func applyVariant(row *domain.ProductVariant, f domain.VariantFields) {
	row.Name = f.Name
	row.Type = f.Type
	row.Price = f.Price
	row.Stock = f.Stock
}

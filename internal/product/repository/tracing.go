package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

var tracer = otel.Tracer("product-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// Create with tracing
func (r *GormProductRepositoryWithTracing) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.sku", product.SKU),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	err := r.GormProductRepository.Create(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

// FindByID with tracing
func (r *GormProductRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	product, err := r.GormProductRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.String("product.sku", product.SKU),
		attribute.Bool("product.is_active", product.IsActive),
	)
	return product, nil
}

// List with tracing
func (r *GormProductRepositoryWithTracing) List(ctx context.Context, filter domain.ProductFilter, page listing.Page, sort listing.Sort) ([]domain.Product, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.Int("query.page", page.Number),
			attribute.Int("query.limit", page.Limit),
			attribute.String("query.search", filter.Search),
		),
	)
	defer span.End()

	products, total, err := r.GormProductRepository.List(ctx, filter, page, sort)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("result.count", len(products)),
		attribute.Int64("result.total", total),
	)
	return products, total, nil
}

// Reconcile with tracing
func (r *GormProductRepositoryWithTracing) Reconcile(ctx context.Context, id uint, set domain.ReconcileSet) (*domain.Product, []string, error) {
	ctx, span := tracer.Start(ctx, "repository.Reconcile",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
			attribute.Int("ops.attributes", len(set.AttributeOps)),
			attribute.Int("ops.variants", len(set.VariantOps)),
			attribute.Int("ops.new_images", len(set.NewImages)),
			attribute.Int("ops.remove_images", len(set.RemoveImageIDs)),
		),
	)
	defer span.End()

	product, removed, err := r.GormProductRepository.Reconcile(ctx, id, set)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	span.SetAttributes(attribute.Int("result.removed_images", len(removed)))
	return product, removed, nil
}

// SoftDelete with tracing
func (r *GormProductRepositoryWithTracing) SoftDelete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.SoftDelete",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	if err := r.GormProductRepository.SoftDelete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

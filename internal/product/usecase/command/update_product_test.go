package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/listing"
	"github.com/connectchain/admin-api/pkg/media"
)

// fakeProductRepo is an in-memory stand-in for the product repository
type fakeProductRepo struct {
	product      *domain.Product
	reconcileErr error

	lastSet           *domain.ReconcileSet
	removedStorageIDs []string
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = 1
	f.product = product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if f.product == nil || f.product.ID != id {
		return nil, apperr.NotFound("product %d not found", id)
	}
	return f.product, nil
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return nil, apperr.NotFound("product with SKU %q not found", sku)
}

func (f *fakeProductRepo) List(ctx context.Context, filter domain.ProductFilter, page listing.Page, sort listing.Sort) ([]domain.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	return 0, nil
}

func (f *fakeProductRepo) Reconcile(ctx context.Context, id uint, set domain.ReconcileSet) (*domain.Product, []string, error) {
	if f.reconcileErr != nil {
		return nil, nil, f.reconcileErr
	}
	f.lastSet = &set
	return f.product, f.removedStorageIDs, nil
}

func (f *fakeProductRepo) SoftDelete(ctx context.Context, id uint) error {
	return nil
}

// fakeStorage records uploads and deletes
type fakeStorage struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeStorage) Upload(ctx context.Context, file media.File, folder string) (media.UploadResult, error) {
	if f.uploadErr != nil {
		return media.UploadResult{}, f.uploadErr
	}
	id := folder + "/" + file.Name
	f.uploaded = append(f.uploaded, id)
	return media.UploadResult{URL: "https://media.test/" + id, StorageID: id}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, storageID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, storageID)
	return nil
}

type allowAllChecker struct{}

func (allowAllChecker) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return true, nil
}

func (allowAllChecker) UserExistsWithRole(ctx context.Context, id uint, role string) (bool, error) {
	return true, nil
}

type recordingPublisher struct {
	events []kafka.CatalogEvent
}

func (r *recordingPublisher) PublishCatalogEvent(ctx context.Context, event kafka.CatalogEvent) error {
	r.events = append(r.events, event)
	return nil
}

func newUpdateFixture() (*UpdateProductHandler, *fakeProductRepo, *fakeStorage, *recordingPublisher) {
	repo := &fakeProductRepo{
		product: &domain.Product{ID: 7, Name: "Widget", SKU: "CC-TEST", CategoryID: 1},
	}
	storage := &fakeStorage{}
	publisher := &recordingPublisher{}
	handler := NewUpdateProductHandler(repo, allowAllChecker{}, allowAllChecker{}, storage, publisher)
	return handler, repo, storage, publisher
}

func TestUpdateProduct_AppliesMixedChildOps(t *testing.T) {
	handler, repo, _, publisher := newUpdateFixture()

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID: 7,
		AttributeOps: []domain.AttributeOp{
			{Action: domain.ActionCreate, Fields: domain.AttributeFields{Key: "Color", Value: "Red"}},
			{Action: domain.ActionDelete, ID: 7},
		},
		VariantOps: []domain.VariantOp{
			{Action: domain.ActionUpdate, ID: 3, Fields: domain.VariantFields{Name: "Large", Type: "size", Price: 10, Stock: 5}},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastSet)
	require.Len(t, repo.lastSet.AttributeOps, 2)
	assert.Equal(t, domain.ActionCreate, repo.lastSet.AttributeOps[0].Action)
	assert.Equal(t, "Color", repo.lastSet.AttributeOps[0].Fields.Key)
	assert.Equal(t, domain.ActionDelete, repo.lastSet.AttributeOps[1].Action)
	assert.Equal(t, uint(7), repo.lastSet.AttributeOps[1].ID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.EventTypeProductUpdated, publisher.events[0].EventType)
}

func TestUpdateProduct_UntaggedOpDefaultsToCreate(t *testing.T) {
	handler, repo, _, _ := newUpdateFixture()

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID: 7,
		AttributeOps: []domain.AttributeOp{
			// ID is supplied but no action; it must become a create and the
			// stray id must be discarded
			{ID: 42, Fields: domain.AttributeFields{Key: "Material", Value: "Steel"}},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.lastSet.AttributeOps, 1)
	assert.Equal(t, domain.ActionCreate, repo.lastSet.AttributeOps[0].Action)
	assert.Equal(t, uint(0), repo.lastSet.AttributeOps[0].ID)
}

func TestUpdateProduct_UpdateWithoutIDRejected(t *testing.T) {
	handler, _, _, _ := newUpdateFixture()

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID: 7,
		VariantOps: []domain.VariantOp{
			{Action: domain.ActionUpdate, Fields: domain.VariantFields{Name: "Large"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateProduct_UnknownActionRejected(t *testing.T) {
	handler, repo, _, _ := newUpdateFixture()

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID: 7,
		AttributeOps: []domain.AttributeOp{
			{Action: "merge", ID: 1, Fields: domain.AttributeFields{Key: "Color"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Nil(t, repo.lastSet, "nothing may reach the repository")
}

func TestUpdateProduct_MissingProductFailsBeforeUpload(t *testing.T) {
	handler, _, storage, _ := newUpdateFixture()

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:        99,
		NewImages: []media.File{{Name: "a.png", ContentType: "image/png"}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, storage.uploaded, "no uploads before the parent check")
}

func TestUpdateProduct_UploadFailureAborts(t *testing.T) {
	handler, repo, storage, _ := newUpdateFixture()
	storage.uploadErr = errors.New("media store down")

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:        7,
		NewImages: []media.File{{Name: "a.png", ContentType: "image/png"}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpload, apperr.KindOf(err))
	assert.Nil(t, repo.lastSet, "the transaction must not run after a failed upload")
}

func TestUpdateProduct_ReconcileFailureCompensatesUploads(t *testing.T) {
	handler, repo, storage, publisher := newUpdateFixture()
	repo.reconcileErr = apperr.NotFound("attribute 5 not found on product 7")

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:        7,
		NewImages: []media.File{{Name: "a.png", ContentType: "image/png"}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.Len(t, storage.uploaded, 1)
	assert.Equal(t, storage.uploaded, storage.deleted, "every upload must be compensated")
	assert.Empty(t, publisher.events, "no event for a failed update")
}

func TestUpdateProduct_RemovedImagesPurgedAfterCommit(t *testing.T) {
	handler, repo, storage, _ := newUpdateFixture()
	repo.removedStorageIDs = []string{"products/old-1", "products/old-2"}

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:             7,
		RemoveImageIDs: []uint{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"products/old-1", "products/old-2"}, storage.deleted)
}

func TestUpdateProduct_PurgeFailureStillSucceeds(t *testing.T) {
	handler, repo, storage, _ := newUpdateFixture()
	repo.removedStorageIDs = []string{"products/old-1"}
	storage.deleteErr = errors.New("media store down")

	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:             7,
		RemoveImageIDs: []uint{1},
	})
	require.NoError(t, err, "a failed purge must not fail the update")
	assert.Equal(t, uint(7), product.ID)
}

func TestUpdateProduct_PatchValidation(t *testing.T) {
	handler, _, _, _ := newUpdateFixture()

	empty := "   "
	negative := -1.0

	cases := []struct {
		name  string
		patch domain.ProductPatch
	}{
		{"blank name", domain.ProductPatch{Name: &empty}},
		{"negative price", domain.ProductPatch{Price: &negative}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), UpdateProductCommand{ID: 7, Patch: tc.patch})
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

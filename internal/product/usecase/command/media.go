package command

import (
	"context"
	"time"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/pkg/logger"
	"github.com/connectchain/admin-api/pkg/media"
)

const mediaFolder = "products"

// uploadImages performs the optimistic upload phase. On any failure the
// files uploaded so far are deleted best-effort and an upload error is
// returned before any database mutation happens.
func uploadImages(ctx context.Context, storage media.Storage, files []media.File) ([]domain.ImageRef, error) {
	refs := make([]domain.ImageRef, 0, len(files))
	for _, file := range files {
		result, err := storage.Upload(ctx, file, mediaFolder)
		if err != nil {
			cleanupUploads(ctx, storage, refs)
			return nil, apperr.Wrap(apperr.KindUpload, "failed to upload image "+file.Name, err)
		}
		refs = append(refs, domain.ImageRef{URL: result.URL, StorageID: result.StorageID})
	}
	return refs, nil
}

// cleanupUploads compensates a failed call by deleting media uploaded during
// it. Failures are logged only; the caller is already returning an error.
func cleanupUploads(ctx context.Context, storage media.Storage, refs []domain.ImageRef) {
	for _, ref := range refs {
		if err := storage.Delete(ctx, ref.StorageID); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("storage_id", ref.StorageID).
				Msg("Failed to clean up uploaded image after aborted call")
		}
	}
}

// purgeWithRetry deletes now-orphaned external objects after a successful
// commit. Runs best-effort with bounded retry; a final failure only leaks
// storage, never corrupts data, so it is logged and swallowed.
func purgeWithRetry(ctx context.Context, storage media.Storage, storageIDs []string) {
	for _, id := range storageIDs {
		backoff := 100 * time.Millisecond
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			if err = storage.Delete(ctx, id); err == nil {
				break
			}
			time.Sleep(backoff)
			backoff *= 2
		}
		if err != nil {
			logger.Error(ctx).
				Err(err).
				Str("storage_id", id).
				Msg("Failed to purge removed image from media store")
		}
	}
}

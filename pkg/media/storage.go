// Package media wraps the external image store behind a small port: upload
// bytes, get back a public URL plus a storage identifier, delete by that
// identifier. The storage identifier is persisted alongside the URL so
// deletion never has to re-derive it from URL parsing.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File is an inbound media file ready for upload
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadResult identifies a stored object
type UploadResult struct {
	URL       string
	StorageID string
}

// Storage is the external media store contract
type Storage interface {
	Upload(ctx context.Context, file File, folder string) (UploadResult, error)
	Delete(ctx context.Context, storageID string) error
}

// HTTPStorage talks to the image CDN over its HTTP API
type HTTPStorage struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPStorage creates a media store client
func NewHTTPStorage(baseURL, apiKey string) *HTTPStorage {
	return &HTTPStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores a file under the given folder and returns its public URL
// and storage identifier
func (s *HTTPStorage) Upload(ctx context.Context, file File, folder string) (UploadResult, error) {
	storageID := folder + "/" + uuid.NewString()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("public_id", storageID); err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload", &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("media store upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return UploadResult{}, fmt.Errorf("media store upload failed: status %d: %s", resp.StatusCode, payload)
	}

	return UploadResult{
		URL:       fmt.Sprintf("%s/assets/%s", s.baseURL, storageID),
		StorageID: storageID,
	}, nil
}

// Delete removes a stored object by its storage identifier
func (s *HTTPStorage) Delete(ctx context.Context, storageID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/assets/"+storageID, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("media store delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media store delete failed: status %d", resp.StatusCode)
	}
	return nil
}

package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// maxAttachmentSize caps a single uploaded file at 20 MiB.
const maxAttachmentSize = 20 << 20

// allowedContentTypes lists the MIME types accepted for attachment and
// product-image uploads.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/csv":        true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/zip": true,
}

// ObjectStorageService defines the interface for object storage operations.
// Implemented by the infrastructure layer (S3-compatible stores and the
// in-memory stub used in tests).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and its expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)

	// Upload writes a payload directly, bypassing the presign flow.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}

// AttachmentServiceConfig holds configuration for the attachment service
type AttachmentServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultAttachmentServiceConfig returns the default configuration.
func DefaultAttachmentServiceConfig() AttachmentServiceConfig {
	return AttachmentServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 15 * time.Minute,
	}
}

// AttachmentService issues the presigned upload/download URLs backing the
// attachment and product-image child collections. The resulting storage key
// is persisted on the owning record by the regular create/update path.
type AttachmentService struct {
	storageService ObjectStorageService
	config         AttachmentServiceConfig
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(storageService ObjectStorageService) *AttachmentService {
	return &AttachmentService{
		storageService: storageService,
		config:         DefaultAttachmentServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *AttachmentService) SetConfig(config AttachmentServiceConfig) {
	s.config = config
}

// InitiateUpload validates the announced file and returns a presigned
// upload URL together with the tenant-scoped storage key.
func (s *AttachmentService) InitiateUpload(ctx context.Context, tenantID uuid.UUID, req *InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	if !allowedContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}
	if req.Size > maxAttachmentSize {
		return nil, shared.NewDomainError("INVALID_INPUT", "File exceeds the maximum allowed size")
	}

	storageKey := buildStorageKey(tenantID, req.FileName)
	url, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  url,
		ExpiresAt:  expiresAt,
	}, nil
}

// ResolveDownload returns a presigned download URL for a stored object
// after confirming it exists.
func (s *AttachmentService) ResolveDownload(ctx context.Context, tenantID uuid.UUID, storageKey string) (*DownloadURLResponse, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	if !keyBelongsToTenant(storageKey, tenantID) {
		return nil, shared.ErrNotFound
	}

	exists, err := s.storageService.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

// DeleteObject removes a stored object once its owning record no longer
// references it.
func (s *AttachmentService) DeleteObject(ctx context.Context, tenantID uuid.UUID, storageKey string) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}
	if !keyBelongsToTenant(storageKey, tenantID) {
		return shared.ErrNotFound
	}
	return s.storageService.DeleteObject(ctx, storageKey)
}

// buildStorageKey namespaces every object under its tenant so one tenant
// can never address another's files.
func buildStorageKey(tenantID uuid.UUID, fileName string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("tenants/%s/attachments/%s%s", tenantID, uuid.New(), ext)
}

func keyBelongsToTenant(storageKey string, tenantID uuid.UUID) bool {
	return strings.HasPrefix(storageKey, "tenants/"+tenantID.String()+"/")
}

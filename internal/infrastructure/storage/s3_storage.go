// Package storage provides object storage implementations for file operations.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	catalogapp "github.com/gestor/backend/internal/application/catalog"
	infraconfig "github.com/gestor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ catalogapp.ObjectStorageService = (*S3ObjectStorage)(nil)

// S3ObjectStorage stores product images and partner attachments in any
// S3-compatible backend (AWS S3, MinIO, etc.)
type S3ObjectStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// S3ObjectStorageOption is a functional option for configuring S3ObjectStorage
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger sets a custom logger for S3ObjectStorage
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// WithPresignExpiration sets a custom presign expiration duration
func WithPresignExpiration(d time.Duration) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.presignExpiration = d
	}
}

// NewS3ObjectStorage creates a new S3ObjectStorage from configuration.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			if _, err := url.Parse(endpoint); err == nil {
				o.BaseEndpoint = aws.String(endpoint)
			}
		}
	})

	storage := &S3ObjectStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		presignExpiration: cfg.PresignExpiration,
		logger:            zap.NewNop(),
	}

	for _, opt := range opts {
		opt(storage)
	}

	if storage.presignExpiration == 0 {
		storage.presignExpiration = 15 * time.Minute
	}

	return storage, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have won the race
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// GenerateUploadURL generates a presigned URL for uploading a file.
func (s *S3ObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}

	presignReq, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return presignReq.URL, time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL generates a presigned URL for downloading a file.
func (s *S3ObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}

	presignReq, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate download URL: %w", err)
	}

	return presignReq.URL, time.Now().Add(expiresIn), nil
}

// DeleteObject deletes an object from storage.
func (s *S3ObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// ObjectExists checks if an object exists in storage.
func (s *S3ObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services report not-found differently
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}

	return true, nil
}

// Upload uploads data directly to storage. For user uploads, prefer
// GenerateUploadURL with presigned URLs.
func (s *S3ObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// GetBucket returns the bucket name
func (s *S3ObjectStorage) GetBucket() string {
	return s.bucket
}

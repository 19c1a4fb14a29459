package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogapp "github.com/gestor/backend/internal/application/catalog"
)

var _ catalogapp.ObjectStorageService = (*InMemoryObjectStorage)(nil)

// InMemoryObjectStorage keeps objects in process memory. It backs development
// setups and tests where no S3-compatible backend is available.
type InMemoryObjectStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryObjectStorage creates a new InMemoryObjectStorage
func NewInMemoryObjectStorage() *InMemoryObjectStorage {
	return &InMemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// GenerateUploadURL generates a fake presigned upload URL
func (s *InMemoryObjectStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL generates a fake presigned download URL
func (s *InMemoryObjectStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// Upload stores the object in memory
func (s *InMemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

// DeleteObject removes the object if present
func (s *InMemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the object was uploaded
func (s *InMemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// Get returns the stored object bytes, for assertions in tests
func (s *InMemoryObjectStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}

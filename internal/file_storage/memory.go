package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

// MemoryStorage keeps objects in a map. Used in tests and when running locally without MinIO.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string

	// Paths whose removal fails, to exercise best-effort cleanup.
	FailRemove map[string]bool
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		objects:    make(map[string][]byte),
		baseURL:    baseURL,
		FailRemove: make(map[string]bool),
	}
}

func (m *MemoryStorage) Upload(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", fmt.Errorf("failed to read object: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

func (m *MemoryStorage) PublicURL(objectPath string) string {
	return publicURL(m.baseURL, objectPath)
}

func (m *MemoryStorage) Remove(ctx context.Context, objectPaths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, p := range objectPaths {
		if p == "" {
			continue
		}
		if m.FailRemove[p] {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", p, errors.New("storage unavailable")))
			continue
		}
		delete(m.objects, p)
	}
	return errors.Join(errs...)
}

func (m *MemoryStorage) Has(objectPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[objectPath]
	return ok
}

func (m *MemoryStorage) Get(objectPath string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[objectPath]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return b, nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Object is a stored blob and its content type.
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStorage keeps objects in process memory. It is safe for concurrent use.
type MemoryStorage struct {
	mu         sync.RWMutex
	objects    map[string]Object
	publicBase string
}

// NewMemoryStorage returns an empty MemoryStorage whose URLs start with publicBase.
func NewMemoryStorage(publicBase string) *MemoryStorage {
	if publicBase == "" {
		publicBase = "memory://objects"
	}
	return &MemoryStorage{
		objects:    make(map[string]Object),
		publicBase: publicBase,
	}
}

// Upload reads reader fully before storing, so a failed read leaves no object.
func (s *MemoryStorage) Upload(ctx context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read object body %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}

	s.mu.Lock()
	s.objects[key] = Object{Data: data, ContentType: contentType}
	s.mu.Unlock()
	return nil
}

// Delete removes the object at key. Deleting a missing key is not an error.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// PublicURL returns publicBase joined with key.
func (s *MemoryStorage) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}

// Get returns the object stored under key.
func (s *MemoryStorage) Get(key string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return Object{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return obj, nil
}

// Len returns the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

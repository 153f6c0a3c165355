// Package memory provides in-process repository implementations for data
// that is deliberately not persisted, such as ephemeral video blobs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MediaBlobRepository holds uploaded blobs in process memory. Contents are
// lost on restart, which is the contract for ephemeral video references.
type MediaBlobRepository struct {
	mu    sync.RWMutex
	blobs map[string]mediaBlob
}

type mediaBlob struct {
	contentType string
	data        []byte
}

// NewMediaBlobRepository constructs an empty in-memory blob repository.
func NewMediaBlobRepository() *MediaBlobRepository {
	return &MediaBlobRepository{blobs: make(map[string]mediaBlob)}
}

// Put stores a blob under the given key, replacing any previous value.
func (r *MediaBlobRepository) Put(_ context.Context, key string, contentType string, data []byte) error {
	if key == "" {
		return errors.New("media blob repository: key is required")
	}
	stored := make([]byte, len(data))
	copy(stored, data)

	r.mu.Lock()
	r.blobs[key] = mediaBlob{contentType: contentType, data: stored}
	r.mu.Unlock()
	return nil
}

// Get returns the blob stored under the key.
func (r *MediaBlobRepository) Get(_ context.Context, key string) (string, []byte, error) {
	r.mu.RLock()
	blob, ok := r.blobs[key]
	r.mu.RUnlock()
	if !ok {
		return "", nil, &notFoundError{key: key}
	}
	return blob.contentType, blob.data, nil
}

// Delete removes the blob stored under the key, if any.
func (r *MediaBlobRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.blobs, key)
	r.mu.Unlock()
	return nil
}

// notFoundError implements repositories.RepositoryError for missing blobs.
type notFoundError struct {
	key string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("media blob %q not found", e.key)
}

func (e *notFoundError) IsNotFound() bool    { return true }
func (e *notFoundError) IsConflict() bool    { return false }
func (e *notFoundError) IsUnavailable() bool { return false }

package storage

import (
	"context"
	"errors"
	"time"

	"archreview/internal/models"
)

// ErrNotFound reports a missing metadata record.
var ErrNotFound = errors.New("document not found")

// ErrObjectNotFound reports a missing object key in the object store.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the narrow interface over the object storage collaborator.
// Delete is idempotent: removing an absent key is not an error.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// MetadataStore is the narrow interface over the metadata key-value table.
// Put is an unconditional overwrite of the whole record; Update patches only
// the fields named by the patch and fails with ErrNotFound for absent keys.
type MetadataStore interface {
	Get(ctx context.Context, documentID string) (*models.DocumentMetadata, error)
	Put(ctx context.Context, doc *models.DocumentMetadata) error
	Update(ctx context.Context, documentID string, patch models.ReviewPatch) (*models.DocumentMetadata, error)
	Delete(ctx context.Context, documentID string) error
	ScanAll(ctx context.Context) ([]models.DocumentMetadata, error)
}

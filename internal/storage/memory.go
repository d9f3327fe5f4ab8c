package storage

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"archreview/internal/models"
)

// MemoryObjectStore is the local/offline stand-in for the object store.
// Contents live in a process-local map and are not durable; it is not part of
// the production contract. Presigned URLs point back at the API's local
// upload/download routes.
type MemoryObjectStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	baseURL string
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryObjectStore builds an in-memory object store. baseURL is the
// address the local upload/download routes are served from.
func NewMemoryObjectStore(baseURL string) *MemoryObjectStore {
	return &MemoryObjectStore{
		objects: make(map[string]memoryObject),
		baseURL: baseURL,
	}
}

func (m *MemoryObjectStore) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("%s/local-upload?key=%s", m.baseURL, url.QueryEscape(key)), nil
}

func (m *MemoryObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("%s/local-object?key=%s", m.baseURL, url.QueryEscape(key)), nil
}

func (m *MemoryObjectStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := make([]byte, len(body))
	copy(data, body)
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

// Delete is idempotent; removing an absent key is a no-op.
func (m *MemoryObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// ContentType reports the stored content type for a key, for the local
// download route.
func (m *MemoryObjectStore) ContentType(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj.contentType, ok
}

// Len reports the number of stored objects.
func (m *MemoryObjectStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// MemoryMetadataStore is the local/offline stand-in for the metadata table.
type MemoryMetadataStore struct {
	mu   sync.Mutex
	docs map[string]models.DocumentMetadata
}

// NewMemoryMetadataStore builds an in-memory metadata store.
func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{docs: make(map[string]models.DocumentMetadata)}
}

func (m *MemoryMetadataStore) Get(_ context.Context, documentID string) (*models.DocumentMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[documentID]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (m *MemoryMetadataStore) Put(_ context.Context, doc *models.DocumentMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.DocumentID] = *doc
	return nil
}

func (m *MemoryMetadataStore) Update(_ context.Context, documentID string, patch models.ReviewPatch) (*models.DocumentMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[documentID]
	if !ok {
		return nil, ErrNotFound
	}
	patch.ApplyTo(&doc)
	m.docs[documentID] = doc
	return &doc, nil
}

func (m *MemoryMetadataStore) Delete(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, documentID)
	return nil
}

func (m *MemoryMetadataStore) ScanAll(_ context.Context) ([]models.DocumentMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]models.DocumentMetadata, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

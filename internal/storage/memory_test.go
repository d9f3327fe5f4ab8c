package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"archreview/internal/models"
)

func TestMemoryObjectStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectStore("http://localhost:8090")

	if err := store.Put(ctx, "k1", []byte("hello"), "text/plain"); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("get returned %q", data)
	}
	if ct, ok := store.ContentType("k1"); !ok || ct != "text/plain" {
		t.Fatalf("content type: %q %v", ct, ok)
	}

	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "k1"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestMemoryObjectStoreDeleteMissingKey(t *testing.T) {
	store := NewMemoryObjectStore("http://localhost:8090")
	if err := store.Delete(context.Background(), "never-written"); err != nil {
		t.Fatalf("delete of missing key must be silent, got %v", err)
	}
}

func TestMemoryObjectStorePresignedURLs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectStore("http://localhost:8090")

	put, err := store.PresignPut(ctx, "123-abc-file name.pdf", "application/pdf", 0)
	if err != nil {
		t.Fatalf("presign put: %v", err)
	}
	if !strings.HasPrefix(put, "http://localhost:8090/local-upload?key=") {
		t.Fatalf("unexpected put url %q", put)
	}
	if strings.Contains(put, " ") {
		t.Fatalf("key not escaped in %q", put)
	}

	get, err := store.PresignGet(ctx, "k", 0)
	if err != nil {
		t.Fatalf("presign get: %v", err)
	}
	if !strings.HasPrefix(get, "http://localhost:8090/local-object?key=") {
		t.Fatalf("unexpected get url %q", get)
	}
}

func TestMemoryMetadataStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMetadataStore()

	doc := &models.DocumentMetadata{
		DocumentID:      "doc-1",
		Filename:        "a.pdf",
		FileType:        "application/pdf",
		FileSize:        10,
		S3Key:           "1-doc-1-a.pdf",
		UploadTimestamp: 1,
		UploadDate:      "1970-01-01T00:00:00.001Z",
	}
	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	reviewer := "Kim"
	done := true
	updated, err := store.Update(ctx, "doc-1", models.ReviewPatch{Reviewer: &reviewer, ReviewCompleted: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Reviewer != "Kim" || !updated.ReviewCompleted {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Untouched fields survive.
	if updated.Filename != "a.pdf" || updated.UploadTimestamp != 1 {
		t.Fatalf("patch clobbered immutable fields: %+v", updated)
	}

	if _, err := store.Update(ctx, "absent", models.ReviewPatch{Reviewer: &reviewer}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent key, got %v", err)
	}
}

func TestMemoryMetadataStoreScanAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMetadataStore()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Put(ctx, &models.DocumentMetadata{DocumentID: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	docs, err := store.ScanAll(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(docs))
	}
}

package capability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"archreview/internal/models"
	"archreview/internal/service/document"
	"archreview/internal/storage"
)

func newTestRegistry(t *testing.T) (*Registry, *storage.MemoryMetadataStore) {
	t.Helper()
	objects := storage.NewMemoryObjectStore("http://localhost:8090")
	metadata := storage.NewMemoryMetadataStore()
	docs := document.NewService(objects, metadata, time.Hour)
	return NewRegistry(docs), metadata
}

func seedDocument(t *testing.T, metadata *storage.MemoryMetadataStore, id string) {
	t.Helper()
	err := metadata.Put(context.Background(), &models.DocumentMetadata{
		DocumentID:      id,
		Filename:        "design.pdf",
		FileType:        "application/pdf",
		FileSize:        10,
		S3Key:           "1-" + id + "-design.pdf",
		UploadTimestamp: 1,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestListDescribesEveryTool(t *testing.T) {
	reg, _ := newTestRegistry(t)

	descs := reg.List()
	want := []string{"get_document", "list_documents", "update_review", "save_review_to_s3"}
	if len(descs) != len(want) {
		t.Fatalf("got %d tools, want %d", len(descs), len(want))
	}
	for i, name := range want {
		d := descs[i]
		if d.Name != name {
			t.Errorf("tool %d: name %q, want %q", i, d.Name, name)
		}
		if d.Description == "" {
			t.Errorf("tool %q: empty description", d.Name)
		}
		var schema map[string]any
		if err := json.Unmarshal(d.InputSchema, &schema); err != nil {
			t.Errorf("tool %q: schema is not valid JSON: %v", d.Name, err)
		}
	}
}

func TestCallGetDocument(t *testing.T) {
	reg, metadata := newTestRegistry(t)
	seedDocument(t, metadata, "doc-1")

	out, err := reg.Call(context.Background(), "get_document", json.RawMessage(`{"documentId":"doc-1"}`))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	resp, ok := out.(*models.GetDocumentResponse)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if resp.Metadata.DocumentID != "doc-1" || resp.PresignedURL == "" {
		t.Fatalf("result: %+v", resp)
	}
}

func TestCallListDocumentsDefaults(t *testing.T) {
	reg, metadata := newTestRegistry(t)
	seedDocument(t, metadata, "doc-1")

	// Empty input falls back to page 1, default limit.
	out, err := reg.Call(context.Background(), "list_documents", nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	resp, ok := out.(*models.ListDocumentsResponse)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if resp.TotalCount != 1 || resp.CurrentPage != 1 {
		t.Fatalf("result: %+v", resp)
	}
}

func TestCallUpdateReview(t *testing.T) {
	reg, metadata := newTestRegistry(t)
	seedDocument(t, metadata, "doc-1")

	out, err := reg.Call(context.Background(), "update_review",
		json.RawMessage(`{"documentId":"doc-1","reviewer":"Park","reviewCompleted":true}`))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	doc, ok := out.(*models.DocumentMetadata)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if doc.Reviewer != "Park" || !doc.ReviewCompleted || doc.CompleteDate == "" {
		t.Fatalf("result: %+v", doc)
	}
}

func TestCallSaveReview(t *testing.T) {
	reg, metadata := newTestRegistry(t)
	seedDocument(t, metadata, "doc-1")

	out, err := reg.Call(context.Background(), "save_review_to_s3",
		json.RawMessage(`{"documentId":"doc-1","reviewContent":"looks good"}`))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	resp, ok := out.(*models.ReviewContentResponse)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if resp.S3Key != "reviews/doc-1/review.txt" {
		t.Fatalf("key %q", resp.S3Key)
	}

	doc, err := metadata.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.ReviewResultLocation != resp.S3Key {
		t.Fatalf("reviewResultLocation %q", doc.ReviewResultLocation)
	}
}

func TestCallUnknownTool(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Call(context.Background(), "drop_tables", nil)
	var unknown *ErrUnknownTool
	if !errors.As(err, &unknown) || unknown.Name != "drop_tables" {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestCallPropagatesServiceErrors(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Call(context.Background(), "get_document", json.RawMessage(`{"documentId":"missing"}`))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = reg.Call(context.Background(), "update_review", json.RawMessage(`{"documentId":"x"}`))
	var badReq *document.BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("expected BadRequestError for empty patch, got %v", err)
	}
}

package document

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"archreview/internal/models"
	"archreview/internal/storage"
	"archreview/internal/validation"
)

// Service implements the upload protocol and the document query operations
// over the storage collaborators. It holds no cross-request state; every
// operation runs to completion within its own call.
type Service struct {
	objects    storage.ObjectStore
	metadata   storage.MetadataStore
	presignTTL time.Duration

	// Injected for deterministic tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewService builds a document service over the given collaborators.
func NewService(objects storage.ObjectStore, metadata storage.MetadataStore, presignTTL time.Duration) *Service {
	if presignTTL <= 0 {
		presignTTL = models.PresignTTLSeconds * time.Second
	}
	return &Service{
		objects:    objects,
		metadata:   metadata,
		presignTTL: presignTTL,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// IssueUploadCredential validates the upload request, mints a document id,
// and returns a time-boxed write credential scoped to the derived storage
// key. Nothing is committed at this stage, so failures need no cleanup.
func (s *Service) IssueUploadCredential(ctx context.Context, req models.UploadURLRequest) (*models.UploadURLResponse, error) {
	if req.Filename == "" || req.FileType == "" || req.FileSize == nil {
		return nil, badRequest(MsgMissingUploadFields)
	}
	if res := validation.ValidateFile(req.Filename, *req.FileSize); !res.Valid {
		return nil, &ValidationError{Message: res.Message}
	}

	documentID := uuid.NewString()
	key := storage.ObjectKey(s.now().UnixMilli(), documentID, req.Filename)

	uploadURL, err := s.objects.PresignPut(ctx, key, req.FileType, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("issue upload credential: %w", err)
	}

	return &models.UploadURLResponse{
		DocumentID: documentID,
		UploadURL:  uploadURL,
		// The caller must use these verbatim so the later metadata commit
		// references exactly the key that was written.
		Fields: map[string]string{
			"key":          key,
			"Content-Type": req.FileType,
		},
	}, nil
}

// List returns one page of documents, newest first. Pagination happens in
// memory over a full scan; the store offers no server-side paging.
func (s *Service) List(ctx context.Context, page, limit int) (*models.ListDocumentsResponse, error) {
	if page < 1 {
		return nil, badRequest(MsgInvalidPage)
	}
	if limit < 1 || limit > models.MaxPageSize {
		return nil, badRequest(MsgInvalidLimit)
	}

	docs, err := s.metadata.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	sortByUploadDesc(docs)

	total := len(docs)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pageDocs := make([]models.DocumentMetadata, 0, end-start)
	pageDocs = append(pageDocs, docs[start:end]...)

	return &models.ListDocumentsResponse{
		Documents:   pageDocs,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// Search returns every document whose filename contains the query,
// case-insensitively, newest first. Search results are not paginated.
func (s *Service) Search(ctx context.Context, query string) (*models.SearchDocumentsResponse, error) {
	if query == "" {
		return nil, badRequest(MsgMissingQuery)
	}

	docs, err := s.metadata.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	lowerQuery := strings.ToLower(query)
	matches := make([]models.DocumentMetadata, 0)
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Filename), lowerQuery) {
			matches = append(matches, doc)
		}
	}
	sortByUploadDesc(matches)

	return &models.SearchDocumentsResponse{
		Documents:  matches,
		TotalCount: len(matches),
	}, nil
}

// Get fetches one record and issues a short-lived read credential for its
// stored object.
func (s *Service) Get(ctx context.Context, documentID string) (*models.GetDocumentResponse, error) {
	if documentID == "" {
		return nil, badRequest(MsgMissingDocumentID)
	}
	doc, err := s.metadata.Get(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}

	presignedURL, err := s.objects.PresignGet(ctx, doc.S3Key, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign read for %s: %w", documentID, err)
	}

	return &models.GetDocumentResponse{Metadata: *doc, PresignedURL: presignedURL}, nil
}

// Delete removes the document. The object deletion is best-effort: a stray
// blob is less harmful than a record the user cannot get rid of, so only the
// metadata deletion is authoritative.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return badRequest(MsgMissingDocumentID)
	}
	doc, err := s.metadata.Get(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("get document %s: %w", documentID, err)
	}

	if err := s.objects.Delete(ctx, doc.S3Key); err != nil {
		log.Printf("delete object %s for document %s failed: %v", doc.S3Key, documentID, err)
	}

	if err := s.metadata.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete metadata %s: %w", documentID, err)
	}
	return nil
}

// UpdateReview applies a partial patch of review fields and returns the full
// updated record. When the patch marks the review completed without a
// completion date, the date is stamped server-side; the other review fields
// stay independently patchable.
func (s *Service) UpdateReview(ctx context.Context, documentID string, patch models.ReviewPatch) (*models.DocumentMetadata, error) {
	if documentID == "" {
		return nil, badRequest(MsgMissingDocumentID)
	}
	if patch.IsEmpty() {
		return nil, badRequest(MsgNoPatchFields)
	}

	if _, err := s.metadata.Get(ctx, documentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}

	if patch.ReviewCompleted != nil && *patch.ReviewCompleted && patch.CompleteDate == nil {
		completeDate := isoMillis(s.now().UnixMilli())
		patch.CompleteDate = &completeDate
	}

	doc, err := s.metadata.Update(ctx, documentID, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("update review %s: %w", documentID, err)
	}
	return doc, nil
}

// GetReview fetches the stored review text for a document, using the
// location recorded on the record or the default path when none is set.
func (s *Service) GetReview(ctx context.Context, documentID string) (*models.ReviewContentResponse, error) {
	if documentID == "" {
		return nil, badRequest(MsgMissingDocumentID)
	}
	doc, err := s.metadata.Get(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}

	key := doc.ReviewResultLocation
	if key == "" {
		key = storage.ReviewKey(documentID, "")
	}

	content, err := s.objects.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("get review %s: %w", key, err)
	}

	return &models.ReviewContentResponse{
		DocumentID:    documentID,
		ReviewContent: string(content),
		S3Key:         key,
	}, nil
}

// SaveReview stores review text as an object and records its location on the
// document.
func (s *Service) SaveReview(ctx context.Context, documentID, content, filename string) (*models.ReviewContentResponse, error) {
	if documentID == "" {
		return nil, badRequest(MsgMissingDocumentID)
	}
	if content == "" {
		return nil, badRequest(MsgMissingReviewContent)
	}
	if _, err := s.metadata.Get(ctx, documentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}

	key := storage.ReviewKey(documentID, filename)
	if err := s.objects.Put(ctx, key, []byte(content), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("save review %s: %w", key, err)
	}

	if _, err := s.metadata.Update(ctx, documentID, models.ReviewPatch{ReviewResultLocation: &key}); err != nil {
		return nil, fmt.Errorf("record review location %s: %w", documentID, err)
	}

	return &models.ReviewContentResponse{
		DocumentID:    documentID,
		ReviewContent: content,
		S3Key:         key,
	}, nil
}

func sortByUploadDesc(docs []models.DocumentMetadata) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadTimestamp > docs[j].UploadTimestamp
	})
}

// isoMillis renders epoch millis the way the clients expect upload and
// completion dates: UTC with millisecond precision.
func isoMillis(ts int64) string {
	return time.UnixMilli(ts).UTC().Format("2006-01-02T15:04:05.000Z")
}

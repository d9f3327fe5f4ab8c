package document

import (
	"context"
	"fmt"
	"log"
	"time"

	"archreview/internal/models"
)

// The metadata write is retried on a fixed doubling schedule: 100ms, 200ms,
// 400ms between the four attempts. No jitter; call volume is interactive and
// the table has its own throttling recovery.
const (
	maxCommitRetries = 3
	initialBackoff   = 100 * time.Millisecond
)

// CommitMetadata makes the metadata side of an upload durable, or undoes the
// storage side. The object was already written by the client against the
// credential from IssueUploadCredential; this call persists the record with
// bounded backoff and, if every attempt fails, deletes the now-orphaned
// object so storage does not leak.
//
// The compensating delete is itself best-effort: its failure is logged but
// never changes the outcome the caller sees. The caller only needs to know
// whether the document got recorded; a leftover blob is an operational
// concern, not a user-facing one.
func (s *Service) CommitMetadata(ctx context.Context, req models.SaveMetadataRequest) (*models.DocumentMetadata, error) {
	if req.DocumentID == "" || req.Filename == "" || req.FileType == "" || req.FileSize == nil || req.S3Key == "" {
		return nil, badRequest(MsgMissingMetadataFields)
	}

	requester := req.Requester
	if requester == "" {
		requester = "Unknown"
	}
	uploadTimestamp := s.now().UnixMilli()
	doc := &models.DocumentMetadata{
		DocumentID:      req.DocumentID,
		Filename:        req.Filename,
		FileType:        req.FileType,
		FileSize:        *req.FileSize,
		S3Key:           req.S3Key,
		UploadTimestamp: uploadTimestamp,
		UploadDate:      isoMillis(uploadTimestamp),
		Requester:       requester,
		ReviewCompleted: false,
	}

	err := s.retryWithBackoff(func() error {
		return s.metadata.Put(ctx, doc)
	})
	if err == nil {
		return doc, nil
	}

	log.Printf("metadata commit for %s failed after retries: %v", req.DocumentID, err)
	// Compensating action: the upload already landed, so remove it rather
	// than leak an unreferenced object.
	if delErr := s.objects.Delete(ctx, req.S3Key); delErr != nil {
		log.Printf("compensating delete of %s failed: %v", req.S3Key, delErr)
	}

	return nil, fmt.Errorf("save metadata %s: %w", req.DocumentID, err)
}

// retryWithBackoff runs op up to maxCommitRetries+1 times, sleeping
// initialBackoff*2^k before retry k. The first success returns immediately;
// exhaustion returns the last error.
func (s *Service) retryWithBackoff(op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxCommitRetries; attempt++ {
		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt < maxCommitRetries {
			delay := initialBackoff << attempt
			log.Printf("retry attempt %d/%d after %s", attempt+1, maxCommitRetries, delay)
			s.sleep(delay)
		}
	}
	return lastErr
}

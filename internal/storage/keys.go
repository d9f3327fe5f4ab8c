package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ObjectKey builds the storage key for an uploaded document:
// {uploadTimestampMillis}-{documentId}-{filename}. Wall-clock millis plus the
// unique id keep keys collision-free and sortable by time.
func ObjectKey(timestampMillis int64, documentID, filename string) string {
	return fmt.Sprintf("%d-%s-%s", timestampMillis, documentID, filename)
}

// ReviewKey is the storage location for stored review text.
func ReviewKey(documentID, filename string) string {
	if filename == "" {
		filename = "review.txt"
	}
	return fmt.Sprintf("reviews/%s/%s", documentID, filename)
}

// DiagramKey is the storage location for a generated diagram artifact.
func DiagramKey(documentID string, at time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(at.UTC().Format("2006-01-02T15:04:05"))
	return fmt.Sprintf("diagrams/%s/architecture-%s.mmd", documentID, ts)
}

// TimestampFromKey extracts the leading millis timestamp from an object key,
// falling back to the current time when the key does not parse.
func TimestampFromKey(key string) int64 {
	head, _, _ := strings.Cut(key, "-")
	if ts, err := strconv.ParseInt(head, 10, 64); err == nil {
		return ts
	}
	return time.Now().UnixMilli()
}

// FilenameFromKey recovers the original filename from a
// {timestamp}-{uuid}-{filename} key. The uuid contributes five hyphenated
// segments, so everything past the sixth hyphen is filename.
func FilenameFromKey(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) >= 6 {
		return strings.Join(parts[6:], "-")
	}
	return key
}

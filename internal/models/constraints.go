package models

// Domain constants shared across validation, storage, and handler packages.
const (
	// MaxFileSizeBytes is the upload ceiling, 50 MiB exactly.
	MaxFileSizeBytes = int64(52428800)

	// PresignTTLSeconds is the lifetime of upload and download credentials.
	PresignTTLSeconds = 3600

	// DefaultPageSize is used when the list endpoint gets no limit parameter.
	DefaultPageSize = 20

	// MaxPageSize bounds the list endpoint's limit parameter.
	MaxPageSize = 100
)

// SupportedExtensions is the fixed allow-list for uploads. Matching is a
// case-insensitive suffix match on the full extension string.
var SupportedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg"}

// ExtensionToMIME maps supported extensions to their content types.
var ExtensionToMIME = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

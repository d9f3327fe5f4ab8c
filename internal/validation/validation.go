package validation

import (
	"strings"

	"archreview/internal/models"
)

// Error messages surfaced to callers when a file is rejected.
const (
	MsgUnsupportedType = "File type not supported. Please upload PDF or image files (PNG, JPG, JPEG)."
	MsgFileTooLarge    = "File size exceeds 50MB limit."
)

// Result is the outcome of a file check. Message is empty when Valid is true.
type Result struct {
	Valid   bool
	Message string
}

// ValidExtension reports whether the filename ends with a supported extension.
// The check is a case-insensitive suffix match on the whole extension string,
// not a parsed last-dot segment; callers rely on that exact semantic.
func ValidExtension(filename string) bool {
	if filename == "" {
		return false
	}
	lower := strings.ToLower(filename)
	for _, ext := range models.SupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ValidSize reports whether the size is a well-formed byte count within the
// limit. Zero is valid; negative values are not.
func ValidSize(fileSize int64) bool {
	return fileSize >= 0 && fileSize <= models.MaxFileSizeBytes
}

// ValidateFile checks extension then size. Extension failure short-circuits
// before the size is examined, and each failure carries its own message.
// Pure and safe for concurrent use.
func ValidateFile(filename string, fileSize int64) Result {
	if !ValidExtension(filename) {
		return Result{Valid: false, Message: MsgUnsupportedType}
	}
	if !ValidSize(fileSize) {
		return Result{Valid: false, Message: MsgFileTooLarge}
	}
	return Result{Valid: true}
}

// FileExtension returns the final dot segment of the filename, lowercased and
// including the dot, or "" when there is none.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}

// ContentTypeFor maps a filename to the MIME type of its extension, falling
// back to a generic binary type.
func ContentTypeFor(filename string) string {
	if mime, ok := models.ExtensionToMIME[FileExtension(filename)]; ok {
		return mime
	}
	return "application/octet-stream"
}

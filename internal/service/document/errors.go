package document

// BadRequestError reports missing or malformed caller input. Never retried,
// surfaced immediately with a specific message.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// ValidationError reports well-formed input that violates upload policy
// (extension or size). The message identifies which rule failed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func badRequest(msg string) error { return &BadRequestError{Message: msg} }

// Caller-input messages, matching the HTTP surface's documented wording.
const (
	MsgMissingUploadFields   = "Missing required fields: filename, fileType, fileSize"
	MsgMissingMetadataFields = "Missing required fields: documentId, filename, fileType, fileSize, s3Key"
	MsgInvalidPage           = "Page number must be greater than 0"
	MsgInvalidLimit          = "Limit must be between 1 and 100"
	MsgMissingQuery          = "Search query parameter is required"
	MsgMissingDocumentID     = "documentId is required"
	MsgNoPatchFields         = "At least one field to update is required"
	MsgMissingReviewContent  = "reviewContent is required"
)

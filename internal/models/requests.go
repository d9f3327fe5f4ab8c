package models

// UploadURLRequest is the JSON body for POST /documents/upload-url.
type UploadURLRequest struct {
	Filename  string `json:"filename"`
	FileType  string `json:"fileType"`
	FileSize  *int64 `json:"fileSize"`
	Requester string `json:"requester,omitempty"`
}

// UploadURLResponse carries the presigned write credential. Fields must be
// used verbatim by the client so the later metadata commit references the key
// that was actually written.
type UploadURLResponse struct {
	DocumentID string            `json:"documentId"`
	UploadURL  string            `json:"uploadUrl"`
	Fields     map[string]string `json:"fields"`
}

// SaveMetadataRequest is the JSON body for POST /documents/metadata.
type SaveMetadataRequest struct {
	DocumentID string `json:"documentId"`
	Filename   string `json:"filename"`
	FileType   string `json:"fileType"`
	FileSize   *int64 `json:"fileSize"`
	S3Key      string `json:"s3Key"`
	Requester  string `json:"requester,omitempty"`
}

// ListDocumentsResponse is the paginated list payload.
type ListDocumentsResponse struct {
	Documents   []DocumentMetadata `json:"documents"`
	TotalCount  int                `json:"totalCount"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

// SearchDocumentsResponse carries the full, unpaginated match set.
type SearchDocumentsResponse struct {
	Documents  []DocumentMetadata `json:"documents"`
	TotalCount int                `json:"totalCount"`
}

// GetDocumentResponse pairs a record with a short-lived read credential.
type GetDocumentResponse struct {
	Metadata     DocumentMetadata `json:"metadata"`
	PresignedURL string           `json:"presignedUrl"`
}

// ReviewContentResponse is the stored review text for a document.
type ReviewContentResponse struct {
	DocumentID    string `json:"documentId"`
	ReviewContent string `json:"reviewContent"`
	S3Key         string `json:"s3Key"`
}

// DiagramResponse describes a generated diagram artifact.
type DiagramResponse struct {
	Message     string `json:"message"`
	DocumentID  string `json:"documentId"`
	S3Key       string `json:"s3Key"`
	MermaidCode string `json:"mermaidCode"`
	EditURL     string `json:"editUrl"`
}

// EmbedURLResponse is the BI chat embed handshake result.
type EmbedURLResponse struct {
	EmbedURL string `json:"embedUrl"`
	Status   int    `json:"status"`
}

// ErrorResponse is the uniform failure body for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

package models

// DocumentMetadata is the table record for one uploaded document, keyed by
// DocumentID. DocumentID, Filename, FileType, FileSize, S3Key, UploadTimestamp
// and UploadDate are set once at commit time; the review fields are patched
// independently by the review workflow.
type DocumentMetadata struct {
	DocumentID           string `json:"documentId" dynamodbav:"documentId"`
	Filename             string `json:"filename" dynamodbav:"filename"`
	FileType             string `json:"fileType" dynamodbav:"fileType"`
	FileSize             int64  `json:"fileSize" dynamodbav:"fileSize"`
	S3Key                string `json:"s3Key" dynamodbav:"s3Key"`
	UploadTimestamp      int64  `json:"uploadTimestamp" dynamodbav:"uploadTimestamp"`
	UploadDate           string `json:"uploadDate" dynamodbav:"uploadDate"`
	Requester            string `json:"requester,omitempty" dynamodbav:"requester,omitempty"`
	Reviewer             string `json:"reviewer,omitempty" dynamodbav:"reviewer,omitempty"`
	ArchitectureOverview string `json:"architectureOverview,omitempty" dynamodbav:"architectureOverview,omitempty"`
	ReviewDate           string `json:"reviewDate,omitempty" dynamodbav:"reviewDate,omitempty"`
	CompleteDate         string `json:"completeDate,omitempty" dynamodbav:"completeDate,omitempty"`
	ReviewCompleted      bool   `json:"reviewCompleted" dynamodbav:"reviewCompleted"`
	ReviewResultLocation string `json:"reviewResultLocation,omitempty" dynamodbav:"reviewResultLocation,omitempty"`
}

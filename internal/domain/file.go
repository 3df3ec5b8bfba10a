package domain

import "time"

// File records metadata for an uploaded product image stored in S3.
type File struct {
	FileID           string    `json:"id" dynamodbav:"file_id"`
	Object           string    `json:"object" dynamodbav:"object"`
	Name             string    `json:"name" dynamodbav:"name"`
	Size             int64     `json:"size" dynamodbav:"size"`
	ContentType      string    `json:"type" dynamodbav:"content_type"`
	URL              string    `json:"url" dynamodbav:"url"`
	UploadedByUserID *string   `json:"uploadedBy" dynamodbav:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
}

// Package documents implements the document domain for Warden.
// It provides types, data access, and business logic for uploading,
// registering, and retrieving the regulatory, policy, and system rule
// documents that audits consume.
package documents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocType identifies which side of an audit a document belongs to.
type DocType string

const (
	DocRegulation DocType = "regulation"
	DocPolicy     DocType = "policy"
	DocSystem     DocType = "system"
)

// ParseDocType validates a raw document type value.
func ParseDocType(s string) (DocType, error) {
	switch DocType(s) {
	case DocRegulation, DocPolicy, DocSystem:
		return DocType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDocType, s)
	}
}

// Document represents a registered document with its metadata and blob
// storage reference.
type Document struct {
	ID          uuid.UUID `json:"id"`
	DocType     DocType   `json:"doc_type"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new document.
// Data holds the raw file bytes. PageCount is optional and may be extracted
// by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	DocType     DocType
	PageCount   *int
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// DocType classifies an uploaded document
type DocType string

const (
	DocTypeStatute    DocType = "statute"
	DocTypeCaseLaw    DocType = "case_law"
	DocTypeRegulation DocType = "regulation"
	DocTypeOther      DocType = "other"
)

// Document represents a user-uploaded document in the document store
type Document struct {
	ID            uuid.UUID `json:"id"`
	Path          string    `json:"path"`
	DocType       DocType   `json:"doc_type"`
	Title         *string   `json:"title,omitempty"`
	ExtractedText *string   `json:"-"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// DisplayName returns the title, falling back to the storage path
func (d Document) DisplayName() string {
	if d.Title != nil && *d.Title != "" {
		return *d.Title
	}
	return d.Path
}

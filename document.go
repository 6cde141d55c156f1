package taxdoc

import (
	"context"
	"time"
)

// Document represents a converted legal document.
type Document struct {
	ID          string       `json:"id"`
	DocNumber   string       `json:"docNumber"`
	Type        DocumentType `json:"type"`
	Title       string       `json:"title"`
	SourceURL   string       `json:"sourceUrl"`
	Structure   StructureTag `json:"structure"`
	Content     string       `json:"content"`
	ContentHash string       `json:"contentHash"`
	Metadata    Metadata     `json:"metadata"`

	// Summary is a generated summary of Content. It is distinct from
	// Metadata.Summary, which is the abstract published with the document.
	Summary string `json:"summary"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.DocNumber == "" {
		return Errorf(EINVALID, "document number required")
	}
	if !d.Type.Valid() {
		return Errorf(EINVALID, "invalid document type %q", d.Type)
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	// Returns ECONFLICT if a document with the same number exists.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocumentByNumber retrieves a document by its document number.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByNumber(ctx context.Context, docNumber string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// UpdateDocument updates a document.
	// Returns ENOTFOUND if document does not exist.
	UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string       `json:"id"`
	DocNumber *string       `json:"docNumber"`
	Type      *DocumentType `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentUpdate represents a set of fields to update on a document.
type DocumentUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Summary *string `json:"summary"`
}

package mock

import (
	"context"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of taxdoc.DocumentService.
type DocumentService struct {
	CreateDocumentFn       func(ctx context.Context, doc *taxdoc.Document) error
	FindDocumentByIDFn     func(ctx context.Context, id string) (*taxdoc.Document, error)
	FindDocumentByNumberFn func(ctx context.Context, docNumber string) (*taxdoc.Document, error)
	FindDocumentsFn        func(ctx context.Context, filter taxdoc.DocumentFilter) ([]*taxdoc.Document, error)
	UpdateDocumentFn       func(ctx context.Context, id string, upd taxdoc.DocumentUpdate) (*taxdoc.Document, error)
	DeleteDocumentFn       func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *taxdoc.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*taxdoc.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocumentByNumber(ctx context.Context, docNumber string) (*taxdoc.Document, error) {
	return s.FindDocumentByNumberFn(ctx, docNumber)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter taxdoc.DocumentFilter) ([]*taxdoc.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd taxdoc.DocumentUpdate) (*taxdoc.Document, error) {
	return s.UpdateDocumentFn(ctx, id, upd)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

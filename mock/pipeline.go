package mock

import (
	"context"

	"github.com/fwojciec/taxdoc"
)

// Mocks for the fetch and conversion pipeline.

var (
	_ taxdoc.Fetcher           = (*Fetcher)(nil)
	_ taxdoc.Converter         = (*Converter)(nil)
	_ taxdoc.DocumentConverter = (*DocumentConverter)(nil)
	_ taxdoc.Extractor         = (*Extractor)(nil)
	_ taxdoc.MetadataReader    = (*MetadataReader)(nil)
	_ taxdoc.TokenCounter      = (*TokenCounter)(nil)
	_ taxdoc.DocumentWriter    = (*DocumentWriter)(nil)
)

type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close calls CloseFn when set.
func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

type DocumentConverter struct {
	ConvertDocumentFn func(html string, docType taxdoc.DocumentType) (*taxdoc.Conversion, error)
}

func (c *DocumentConverter) ConvertDocument(html string, docType taxdoc.DocumentType) (*taxdoc.Conversion, error) {
	return c.ConvertDocumentFn(html, docType)
}

type Extractor struct {
	ExtractFn func(html string) (*taxdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*taxdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

type MetadataReader struct {
	ReadMetadataFn func(html string) (*taxdoc.Metadata, error)
}

func (r *MetadataReader) ReadMetadata(html string) (*taxdoc.Metadata, error) {
	return r.ReadMetadataFn(html)
}

type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

// DocumentWriter is the write half of DocumentService used by the crawler.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *taxdoc.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *taxdoc.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}

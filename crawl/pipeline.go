package crawl

import (
	"strings"

	"github.com/fwojciec/taxdoc"
)

// Pipeline turns the markup of one document page into a Document.
type Pipeline struct {
	Converter taxdoc.DocumentConverter

	// Extractor, when set, isolates the main content of pages that yield
	// nothing convertible as a whole.
	Extractor taxdoc.Extractor

	// Metadata, when set, reads the descriptive fields of the page.
	Metadata taxdoc.MetadataReader
}

// Build converts html. The document number and type come from the target,
// falling back to the page metadata.
func (p *Pipeline) Build(html string, target taxdoc.Target) (*taxdoc.Document, error) {
	var meta taxdoc.Metadata
	if p.Metadata != nil {
		m, err := p.Metadata.ReadMetadata(html)
		switch {
		case err == nil:
			meta = *m
		case taxdoc.ErrorCode(err) != taxdoc.ENOTFOUND:
			return nil, err
		}
	}

	docType := target.Type
	if !docType.Valid() && meta.DocType != "" {
		docType = taxdoc.ParseDocumentType(meta.DocType)
	}
	if !docType.Valid() {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "document type unknown for %s", target.Key())
	}

	docNumber := target.DocNumber
	if docNumber == "" {
		docNumber = meta.DocNumber
	}
	if docNumber == "" {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "document number unknown for %s", target.Key())
	}

	title := meta.Title
	conv, err := p.Converter.ConvertDocument(html, docType)
	if taxdoc.ErrorCode(err) == taxdoc.ENOTFOUND && p.Extractor != nil {
		extracted, xerr := p.Extractor.Extract(html)
		if xerr != nil {
			return nil, err
		}
		if title == "" {
			title = extracted.Title
		}
		conv, err = p.Converter.ConvertDocument(extracted.ContentHTML, docType)
	}
	if err != nil {
		return nil, err
	}

	sourceURL := target.URL
	if sourceURL == "" {
		sourceURL = meta.URL
	}
	if meta.URL == "" {
		meta.URL = sourceURL
	}

	return &taxdoc.Document{
		DocNumber:   strings.TrimSpace(docNumber),
		Type:        docType,
		Title:       title,
		SourceURL:   sourceURL,
		Structure:   conv.Structure,
		Content:     conv.Text,
		ContentHash: ComputeHash(conv.Text),
		Metadata:    meta,
	}, nil
}

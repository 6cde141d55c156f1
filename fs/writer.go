// Package fs provides file-based storage for converted documents.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/fwojciec/taxdoc"
	"go.yaml.in/yaml/v3"
)

// DocumentPath returns the relative file path of a document:
// <type>/<document number>.md with path-hostile characters replaced.
// Example: 서울행법 2020구합1234 → precedent/서울행법_2020구합1234.md
func DocumentPath(doc *taxdoc.Document) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(doc.DocNumber))
	return filepath.Join(string(doc.Type), name+".md")
}

type frontMatter struct {
	DocNumber   string           `yaml:"doc_number"`
	Type        string           `yaml:"type"`
	Title       string           `yaml:"title,omitempty"`
	Source      string           `yaml:"source,omitempty"`
	Structure   string           `yaml:"structure"`
	ContentHash string           `yaml:"content_hash,omitempty"`
	Converted   string           `yaml:"converted,omitempty"`
	Summary     string           `yaml:"summary,omitempty"`
	Metadata    *taxdoc.Metadata `yaml:"metadata,omitempty"`
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *taxdoc.Document) (string, error) {
	fm := frontMatter{
		DocNumber:   doc.DocNumber,
		Type:        string(doc.Type),
		Title:       doc.Title,
		Source:      doc.SourceURL,
		Structure:   doc.Structure.String(),
		ContentHash: doc.ContentHash,
		Summary:     doc.Summary,
	}
	if !doc.UpdatedAt.IsZero() {
		fm.Converted = doc.UpdatedAt.Format("2006-01-02")
	}
	if doc.Metadata.DocNumber != "" {
		fm.Metadata = &doc.Metadata
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

// ReadDocument parses a markdown file written by FormatDocument.
func ReadDocument(r io.Reader) (*taxdoc.Document, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "invalid frontmatter: %v", err)
	}

	doc := &taxdoc.Document{
		DocNumber:   fm.DocNumber,
		Type:        taxdoc.DocumentType(fm.Type),
		Title:       fm.Title,
		SourceURL:   fm.Source,
		Structure:   taxdoc.ParseStructureTag(fm.Structure),
		Content:     string(bytes.TrimLeft(body, "\n")),
		ContentHash: fm.ContentHash,
		Summary:     fm.Summary,
	}
	if fm.Metadata != nil {
		doc.Metadata = *fm.Metadata
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadDir reads every markdown document under dir, in lexical path order.
func ReadDir(dir string) ([]*taxdoc.Document, error) {
	var docs []*taxdoc.Document
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := ReadDocument(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
		return nil
	})
	return docs, err
}

// Ensure Writer implements taxdoc.DocumentWriter at compile time.
var _ taxdoc.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file.
func (w *Writer) CreateDocument(ctx context.Context, doc *taxdoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return writeDocument(w.baseDir, doc)
}

func writeDocument(baseDir string, doc *taxdoc.Document) error {
	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(baseDir, DocumentPath(doc))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

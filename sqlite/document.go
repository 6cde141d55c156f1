package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/taxdoc"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ taxdoc.DocumentService = (*DocumentService)(nil)

// DocumentService implements taxdoc.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

const documentColumns = "id, doc_number, type, title, source_url, structure, content, content_hash, metadata, summary, created_at, updated_at"

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *taxdoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC().Truncate(time.Second)
	doc.UpdatedAt = doc.CreatedAt
	doc.ContentHash = hashContent(doc.Content)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.DocNumber, string(doc.Type), doc.Title, doc.SourceURL, doc.Structure.String(),
		doc.Content, doc.ContentHash, string(meta), doc.Summary,
		formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return taxdoc.Errorf(taxdoc.ECONFLICT, "document %q already exists", doc.DocNumber)
	}
	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*taxdoc.Document, error) {
	return findOne(ctx, s.db, "id", id)
}

// FindDocumentByNumber retrieves a document by its document number.
func (s *DocumentService) FindDocumentByNumber(ctx context.Context, docNumber string) (*taxdoc.Document, error) {
	return findOne(ctx, s.db, "doc_number", docNumber)
}

func findOne(ctx context.Context, q querier, column, value string) (*taxdoc.Document, error) {
	row := q.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE "+column+" = ?", value)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "document %q not found", value)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter taxdoc.DocumentFilter) ([]*taxdoc.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocNumber != nil {
		query.WriteString(" AND doc_number = ?")
		args = append(args, *filter.DocNumber)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY created_at DESC, doc_number ASC")
	page, pageArgs := paginate(filter.Limit, filter.Offset)
	query.WriteString(page)
	args = append(args, pageArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*taxdoc.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// UpdateDocument updates an existing document. The read and the write run in
// one transaction.
func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd taxdoc.DocumentUpdate) (*taxdoc.Document, error) {
	var doc *taxdoc.Document
	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		doc, err = findOne(ctx, tx, "id", id)
		if err != nil {
			return err
		}

		if upd.Title != nil {
			doc.Title = *upd.Title
		}
		if upd.Content != nil {
			doc.Content = *upd.Content
			doc.ContentHash = hashContent(doc.Content)
		}
		if upd.Summary != nil {
			doc.Summary = *upd.Summary
		}
		doc.UpdatedAt = time.Now().UTC().Truncate(time.Second)

		if err := doc.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET title = ?, content = ?, content_hash = ?, summary = ?, updated_at = ?
			WHERE id = ?
		`, doc.Title, doc.Content, doc.ContentHash, doc.Summary, formatTime(doc.UpdatedAt), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return taxdoc.Errorf(taxdoc.ENOTFOUND, "document not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*taxdoc.Document, error) {
	var doc taxdoc.Document
	var docType, structure, meta string

	if err := row.Scan(&doc.ID, &doc.DocNumber, &docType, &doc.Title, &doc.SourceURL, &structure,
		&doc.Content, &doc.ContentHash, &meta, &doc.Summary,
		timestamp{"created_at", &doc.CreatedAt}, timestamp{"updated_at", &doc.UpdatedAt}); err != nil {
		return nil, err
	}

	doc.Type = taxdoc.DocumentType(docType)
	doc.Structure = taxdoc.ParseStructureTag(structure)
	if err := json.Unmarshal([]byte(meta), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &doc, nil
}

package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.DocumentConverter = (*LoggingDocumentConverter)(nil)

// LoggingDocumentConverter wraps a DocumentConverter with logging of the
// structure decision and block counts.
type LoggingDocumentConverter struct {
	next   taxdoc.DocumentConverter
	logger *slog.Logger
}

// NewLoggingDocumentConverter creates a new LoggingDocumentConverter.
func NewLoggingDocumentConverter(next taxdoc.DocumentConverter, logger *slog.Logger) *LoggingDocumentConverter {
	return &LoggingDocumentConverter{next: next, logger: logger}
}

func (c *LoggingDocumentConverter) ConvertDocument(html string, docType taxdoc.DocumentType) (conv *taxdoc.Conversion, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"type", string(docType),
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if conv != nil {
			attrs = append(attrs,
				"structure", conv.Structure.String(),
				"paragraphs", conv.Paragraphs,
				"tables", conv.Tables,
				"fallback", conv.Fallback,
			)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("convert", attrs...)
	}(time.Now())
	return c.next.ConvertDocument(html, docType)
}

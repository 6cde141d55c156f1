package taxdoc

import "strings"

// FormatDocuments formats stored documents for display or LLM context.
// The header is the document number followed by the title, falling back
// to the source URL. Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, "## Document: "+documentHeader(doc)+"\n"+doc.Content)
	}

	return strings.Join(parts, "\n\n")
}

func documentHeader(doc *Document) string {
	name := doc.Title
	if name == "" {
		name = doc.SourceURL
	}
	switch {
	case doc.DocNumber == "":
		return name
	case name == "":
		return doc.DocNumber
	default:
		return doc.DocNumber + " " + name
	}
}

package taxdoc

import "strings"

// DocumentType selects how a document is structured.
type DocumentType string

// Supported document types.
const (
	// DocumentPrecedent covers court precedents and tribunal rulings (판례, 심판).
	DocumentPrecedent DocumentType = "precedent"
	// DocumentInterpretation covers administrative interpretations (질의회신, 사전답변, ...).
	DocumentInterpretation DocumentType = "interpretation"
)

// ParseDocumentType maps a site label such as "판례" or "질의회신" to a
// DocumentType. Labels containing "판례" or "심판" are precedents; anything
// else, including the empty label, is an interpretation. The English names
// "precedent" and "interpretation" are accepted as well.
func ParseDocumentType(label string) DocumentType {
	label = strings.TrimSpace(label)
	switch strings.ToLower(label) {
	case string(DocumentPrecedent):
		return DocumentPrecedent
	case string(DocumentInterpretation):
		return DocumentInterpretation
	}
	if strings.Contains(label, "판례") || strings.Contains(label, "심판") {
		return DocumentPrecedent
	}
	return DocumentInterpretation
}

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	return t == DocumentPrecedent || t == DocumentInterpretation
}

// Hierarchy returns the numbering configuration used for the document type.
func (t DocumentType) Hierarchy() *HierarchyConfig {
	if t == DocumentPrecedent {
		return PrecedentHierarchy()
	}
	return InterpretationHierarchy()
}

// MergesTables reports whether table-merge classification applies to the
// document type. Interpretations always render tables as distinct blocks.
func (t DocumentType) MergesTables() bool {
	return t == DocumentPrecedent
}

// StructureTag classifies how a document's content is split between free
// text and tabular data. It is computed once per document.
type StructureTag int

// Structure tags.
const (
	// StructureNormal renders domain tables as distinct table blocks.
	StructureNormal StructureTag = iota
	// StructureTableOnly means all meaningful text lives inside the largest table.
	StructureTableOnly
	// StructureDominantTable means a table holds more than half of the text.
	StructureDominantTable
)

// String returns a lowercase name for the tag.
func (t StructureTag) String() string {
	switch t {
	case StructureTableOnly:
		return "table-only"
	case StructureDominantTable:
		return "dominant-table"
	default:
		return "normal"
	}
}

// MergesTables reports whether domain tables are spliced back into the text
// flow as paragraphs instead of being rendered as tables.
func (t StructureTag) MergesTables() bool {
	return t == StructureTableOnly || t == StructureDominantTable
}

// ParseStructureTag is the inverse of StructureTag.String. Unknown names
// yield StructureNormal.
func ParseStructureTag(name string) StructureTag {
	switch name {
	case "table-only":
		return StructureTableOnly
	case "dominant-table":
		return StructureDominantTable
	default:
		return StructureNormal
	}
}

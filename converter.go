package taxdoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Used as a fallback when a page carries no recognizable content blocks.
	Convert(html string) (string, error)
}

// Conversion is the result of converting one document.
type Conversion struct {
	// Text is the structured markdown output.
	Text string

	// Structure is the classification that decided how tables were merged.
	// Always StructureNormal for interpretations.
	Structure StructureTag

	// Paragraphs and Tables count the blocks fed to the hierarchy builder.
	// Empty tables are not counted.
	Paragraphs int
	Tables     int

	// Fallback is set when no content blocks were found and Text was
	// produced by the fallback Converter.
	Fallback bool
}

// DocumentConverter turns the raw markup of a legal document into
// hierarchically structured text.
type DocumentConverter interface {
	// ConvertDocument converts markup according to the document type.
	// Returns EINVALID for empty markup and ENOTFOUND when neither the
	// content container nor the fallback yields any text.
	ConvertDocument(html string, docType DocumentType) (*Conversion, error)
}

package taxdoc

// BlockKind distinguishes paragraph blocks from table blocks.
type BlockKind int

// Block kinds.
const (
	BlockParagraph BlockKind = iota
	BlockTable
)

// Block is one unit of document content in document order: either a
// paragraph of text or a table with its caption.
type Block struct {
	Kind     BlockKind
	Position int

	// Text is set for paragraphs.
	Text string

	// Grid and Caption are set for tables.
	Grid    Grid
	Caption Caption
}

// NewParagraph returns a paragraph block.
func NewParagraph(position int, text string) Block {
	return Block{Kind: BlockParagraph, Position: position, Text: text}
}

// NewTable returns a table block.
func NewTable(position int, grid Grid, caption Caption) Block {
	return Block{Kind: BlockTable, Position: position, Grid: grid, Caption: caption}
}

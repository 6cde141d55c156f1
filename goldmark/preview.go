// Package goldmark renders structured documents as HTML previews.
package goldmark

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/fwojciec/taxdoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts structured markdown into HTML. Body lines produced by
// the hierarchy builder are indented by four spaces, which markdown would
// read as code blocks, so they are dedented before rendering.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM tables and heading ids. Raw HTML
// in the source is escaped.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// Render writes the HTML fragment of structured text to w.
func (r *Renderer) Render(w io.Writer, structured string) error {
	if err := r.md.Convert([]byte(dedent(structured)), w); err != nil {
		return taxdoc.Errorf(taxdoc.EINTERNAL, "render markdown: %v", err)
	}
	return nil
}

// RenderString returns the HTML fragment of structured text.
func (r *Renderer) RenderString(structured string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, structured); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<article data-doc-number="{{.DocNumber}}" data-type="{{.Type}}">
{{.Body}}</article>
</body>
</html>
`))

// RenderDocument writes a standalone HTML page for doc to w.
func (r *Renderer) RenderDocument(w io.Writer, doc *taxdoc.Document) error {
	if doc == nil {
		return taxdoc.Errorf(taxdoc.EINVALID, "document required")
	}
	body, err := r.RenderString(doc.Content)
	if err != nil {
		return err
	}
	title := doc.Title
	if title == "" {
		title = doc.DocNumber
	}
	data := struct {
		Title     string
		DocNumber string
		Type      string
		Body      template.HTML
	}{
		Title:     title,
		DocNumber: doc.DocNumber,
		Type:      string(doc.Type),
		Body:      template.HTML(body),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return taxdoc.Errorf(taxdoc.EINTERNAL, "render page: %v", err)
	}
	return nil
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "    ") && !strings.HasPrefix(strings.TrimSpace(line), "|") {
			lines[i] = strings.TrimLeft(line, " ")
		}
	}
	return strings.Join(lines, "\n")
}

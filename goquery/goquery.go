// Package goquery implements document conversion and metadata reading on top
// of the goquery DOM library.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Defaults for the markup of the document detail pages.
const (
	DefaultContainerID = "cntnWrap_html"
	DefaultTableClass  = "tbl_type"
)

// normalizeText applies NFC normalization, replaces non-breaking spaces and
// collapses whitespace runs into single spaces.
func normalizeText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// blockText returns the text of an element with <br> and block element
// boundaries treated as line breaks. Each line is normalized; empty lines
// are dropped.
func blockText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeText(&sb, n)
	}

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = normalizeText(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeText(sb *strings.Builder, n *html.Node) {
	block := false
	switch n.Type {
	case html.TextNode:
		// Source newlines are layout, not content.
		sb.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
	case html.ElementNode:
		switch n.Data {
		case "br":
			sb.WriteByte('\n')
			return
		case "script", "style":
			return
		case "p", "div", "li", "tr":
			block = true
		}
	}
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	}
}

// cellText returns the text of a table cell on one line.
func cellText(sel *goquery.Selection) string {
	return strings.ReplaceAll(blockText(sel), "\n", " ")
}

// textLength counts the non-whitespace runes of the element's text. The
// non-breaking space placeholder counts as whitespace.
func textLength(sel *goquery.Selection) int {
	n := 0
	for _, r := range sel.Text() {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// isBlank reports whether the element holds no meaningful text.
func isBlank(sel *goquery.Selection) bool {
	return textLength(sel) == 0
}

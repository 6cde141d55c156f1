// Package htmltomarkdown provides the fallback HTML to Markdown conversion
// used when a page carries no recognizable document structure.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.Converter = (*Converter)(nil)

// DefaultChrome selects page furniture of the portal that never holds
// document text: navigation, print and share buttons, hidden form fields.
var DefaultChrome = []string{
	"nav", "header", "footer", "aside", "form", "button", "iframe",
	".btn_area", ".print_area", ".sns_area", ".skip_nav", "[aria-hidden=true]",
}

var (
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	trailingWSRe = regexp.MustCompile(`[ \t]+\n`)
	nbspReplacer = strings.NewReplacer("\u00a0", " ", "\u200b", "", "\ufeff", "")
)

// Converter renders arbitrary HTML as CommonMark with GFM tables. Elements
// matched by Chrome are removed before conversion.
type Converter struct {
	Chrome []string
	conv   *converter.Converter
}

// NewConverter returns a Converter that removes DefaultChrome.
func NewConverter() *Converter {
	return &Converter{
		Chrome: DefaultChrome,
		conv: converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		)),
	}
}

// Convert returns the markdown of html with non-breaking and zero-width
// spaces normalized and blank line runs collapsed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", taxdoc.Errorf(taxdoc.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", taxdoc.Errorf(taxdoc.EINVALID, "unparseable HTML: %v", err)
	}
	if len(c.Chrome) > 0 {
		doc.Find(strings.Join(c.Chrome, ", ")).Remove()
	}
	cleaned, err := doc.Html()
	if err != nil {
		return "", err
	}

	md, err := c.conv.ConvertString(cleaned)
	if err != nil {
		return "", err
	}
	md = nbspReplacer.Replace(md)
	md = trailingWSRe.ReplaceAllString(md, "\n")
	md = blankRunRe.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}

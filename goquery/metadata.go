package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/taxdoc"
)

// Ensure MetadataReader implements taxdoc.MetadataReader at compile time.
var _ taxdoc.MetadataReader = (*MetadataReader)(nil)

// MetadataReader reads document metadata from a rendered detail page. Fields
// that cannot be located are left empty.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata extracts the descriptive fields of a detail page.
// Returns ENOTFOUND if the page has no detail box.
func (r *MetadataReader) ReadMetadata(rawHTML string) (*taxdoc.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	box := doc.Find("#dcmDetailBox").First()
	if box.Length() == 0 {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "detail box not found")
	}

	meta := &taxdoc.Metadata{
		DocType: normalizeText(doc.Find("#scrnNm").First().Text()),
	}

	// The info list holds number, related year, court, date and progress
	// in that order.
	info := box.Find("ul:has(li > strong)").First().ChildrenFiltered("li")
	meta.DocNumber = normalizeText(info.Eq(0).Find("strong").First().Text())
	meta.RelatedYear = normalizeText(info.Eq(1).Find("span").First().Text())
	meta.Court = normalizeText(info.Eq(2).Find("span").First().Text())
	meta.ProducedAt = normalizeText(info.Eq(3).Find("span").First().Text())
	meta.Progress = normalizeText(info.Eq(4).Find("span").First().Text())

	taxType := box.Find("ul > li[title]").First()
	meta.TaxType, _ = taxType.Attr("title")
	heading := taxType.Closest("ul").Parent()
	meta.Title = normalizeText(heading.ChildrenFiltered("strong").First().Text())
	meta.Result = normalizeText(heading.ChildrenFiltered("em").First().Text())

	box.Find("div.rel_group").Each(func(_ int, group *goquery.Selection) {
		label := group.Find("span").First().Text()
		var items []string
		group.Find("div > a").Each(func(_ int, a *goquery.Selection) {
			if text := normalizeText(a.Text()); text != "" {
				items = append(items, text)
			}
		})
		switch {
		case strings.Contains(label, "관련 주제어"):
			meta.Keywords = items
		case strings.Contains(label, "관련 법령"):
			meta.Laws = items
		}
	})

	box.Find("li").Has("a > div > p").Each(func(_ int, li *goquery.Selection) {
		ps := li.Find("a > div").First().ChildrenFiltered("p")
		number, date := splitNumberDate(normalizeText(ps.Eq(1).Text()))
		meta.SimilarDocs = append(meta.SimilarDocs, taxdoc.SimilarDoc{
			Title:     normalizeText(ps.Eq(0).Text()),
			DocNumber: number,
			Date:      date,
		})
	})

	box.Find(".tag_cloud span, .tagCloud span").Each(func(_ int, span *goquery.Selection) {
		if tag := strings.TrimSpace(strings.ReplaceAll(span.Text(), "#", "")); tag != "" {
			meta.Tags = append(meta.Tags, normalizeText(tag))
		}
	})

	meta.Summary = blockText(box.Find(".summary p, .gist p").First())

	return meta, nil
}

// splitNumberDate splits "(조심2020서1234, 2021.03.11)" into its parts.
// Text without exactly one comma is returned as the number.
func splitNumberDate(s string) (string, string) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return s, ""
	}
	return strings.TrimSpace(strings.ReplaceAll(parts[0], "(", "")),
		strings.TrimSpace(strings.ReplaceAll(parts[1], ")", ""))
}

package taxdoc

import (
	"fmt"
	"strings"
)

// Metadata holds the descriptive fields published alongside a document.
type Metadata struct {
	DocNumber   string       `json:"docNumber" yaml:"doc_number"`
	TaxType     string       `json:"taxType" yaml:"tax_type"`
	Title       string       `json:"title" yaml:"title"`
	DocType     string       `json:"docType" yaml:"doc_type"`
	ProducedAt  string       `json:"producedAt" yaml:"produced_at"`
	RelatedYear string       `json:"relatedYear" yaml:"related_year"`
	Court       string       `json:"court,omitempty" yaml:"court,omitempty"`
	Progress    string       `json:"progress,omitempty" yaml:"progress,omitempty"`
	Result      string       `json:"result" yaml:"result"`
	URL         string       `json:"url" yaml:"url"`
	Keywords    []string     `json:"keywords" yaml:"keywords"`
	Laws        []string     `json:"laws" yaml:"laws"`
	SimilarDocs []SimilarDoc `json:"similarDocs" yaml:"similar_docs"`
	Tags        []string     `json:"tags" yaml:"tags"`

	// Summary is the abstract (요지) published with the document.
	Summary string `json:"summary" yaml:"summary"`
}

// SimilarDoc is a reference to a related document.
type SimilarDoc struct {
	Title     string `json:"title" yaml:"title"`
	DocNumber string `json:"docNumber" yaml:"doc_number"`
	Date      string `json:"date" yaml:"date"`
}

// MetadataReader reads document metadata from a rendered detail page.
type MetadataReader interface {
	ReadMetadata(html string) (*Metadata, error)
}

const (
	basicInfoHeading = "## 기본정보"
	noneText         = "(없음)"
)

type basicField struct {
	label string
	value func(m *Metadata) *string

	// precedent fields are only written for precedents.
	precedent bool
}

var basicFields = []basicField{
	{label: "문서번호", value: func(m *Metadata) *string { return &m.DocNumber }},
	{label: "세목", value: func(m *Metadata) *string { return &m.TaxType }},
	{label: "문서명", value: func(m *Metadata) *string { return &m.Title }},
	{label: "문서유형", value: func(m *Metadata) *string { return &m.DocType }},
	{label: "생산일자", value: func(m *Metadata) *string { return &m.ProducedAt }},
	{label: "귀속연도", value: func(m *Metadata) *string { return &m.RelatedYear }},
	{label: "법원유형", value: func(m *Metadata) *string { return &m.Court }, precedent: true},
	{label: "진행상황", value: func(m *Metadata) *string { return &m.Progress }, precedent: true},
	{label: "판결결과", value: func(m *Metadata) *string { return &m.Result }},
	{label: "URL", value: func(m *Metadata) *string { return &m.URL }},
}

// FormatDocument renders metadata and structured content as one markdown
// document. Precedents include court and progress fields. Empty lists and an
// empty abstract render as "(없음)".
func FormatDocument(meta *Metadata, docType DocumentType, content string) string {
	var b strings.Builder

	b.WriteString("# Metadata\n\n")
	b.WriteString(basicInfoHeading + "\n")
	for _, f := range basicFields {
		if f.precedent && docType != DocumentPrecedent {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.label, *f.value(meta))
	}

	writeList(&b, "관련 주제어", meta.Keywords)
	writeList(&b, "관련 법령", meta.Laws)

	similar := make([]string, len(meta.SimilarDocs))
	for i, d := range meta.SimilarDocs {
		similar[i] = fmt.Sprintf("[%s] %s (%s)", d.Title, d.DocNumber, d.Date)
	}
	writeList(&b, "유사문서", similar)
	writeList(&b, "태그 클라우드", meta.Tags)

	b.WriteString("\n## 요지\n")
	if s := strings.TrimSpace(meta.Summary); s != "" {
		b.WriteString(s + "\n")
	} else {
		b.WriteString(noneText + "\n")
	}

	b.WriteString("\n# Content\n")
	b.WriteString(content)
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString("\n## " + heading + "\n")
	if len(items) == 0 {
		b.WriteString(noneText + "\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

// ParseBasicInfo reads the "## 기본정보" key/value list of a document
// produced by FormatDocument back into metadata. Unknown keys are ignored.
// Returns EINVALID if the section is missing.
func ParseBasicInfo(markdown string) (*Metadata, error) {
	var meta Metadata
	found := false
	inSection := false

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			if inSection {
				break
			}
			inSection = line == basicInfoHeading
			found = found || inSection
			continue
		}
		if !inSection || !strings.HasPrefix(line, "- ") {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimPrefix(line, "- "), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		for _, f := range basicFields {
			if f.label == key {
				*f.value(&meta) = strings.TrimSpace(value)
				break
			}
		}
	}

	if !found {
		return nil, Errorf(EINVALID, "missing %q section", strings.TrimPrefix(basicInfoHeading, "## "))
	}
	return &meta, nil
}

package taxdoc

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Section is one heading of structured document text.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`

	// Path holds the titles of the enclosing sections, outermost first.
	Path []string `json:"path,omitempty"`
}

var headingRe = regexp.MustCompile(`^(#{1,7})\s+(.+)$`)

// ExtractSections lists the headings of structured text in document order.
// Pipe tables and indented body lines are skipped. Anchors are lowercase
// and deduplicated with numeric suffixes.
func ExtractSections(structured string) []Section {
	if structured == "" {
		return nil
	}

	var sections []Section
	var open []Section
	anchorCounts := make(map[string]int)

	for _, line := range strings.Split(structured, "\n") {
		if strings.HasPrefix(line, "|") {
			continue
		}
		level, title, ok := ParseHeading(line)
		if !ok {
			continue
		}

		s := Section{
			Level: level,
			Title: title,
		}

		base := generateAnchor(s.Title)
		s.Anchor = base
		if n, ok := anchorCounts[base]; ok {
			s.Anchor = base + "-" + strconv.Itoa(n)
		}
		anchorCounts[base]++

		for len(open) > 0 && open[len(open)-1].Level >= s.Level {
			open = open[:len(open)-1]
		}
		for _, p := range open {
			s.Path = append(s.Path, p.Title)
		}
		open = append(open, s)
		sections = append(sections, s)
	}

	return sections
}

// ParseHeading reports whether line is a markdown heading and returns its
// level and trimmed title.
func ParseHeading(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), strings.TrimSpace(m[2]), true
}

// generateAnchor creates a URL-safe anchor from a title.
// Letters of any script are kept, so Hangul markers survive.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

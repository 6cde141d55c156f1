package taxdoc

import (
	"regexp"
	"strings"
)

var (
	// unitRe matches unit annotations such as "(단위: 백만원)".
	unitRe = regexp.MustCompile(`[(（]\s*단위\s*[:：][^)）]*[)）]`)

	// titleRe matches table titles such as "<표1>", "(표 2)" or "〈표〉".
	titleRe = regexp.MustCompile(`[(<〈《＜（]\s*표\s*\d*\s*[)>〉》＞）]`)
)

// Caption is the optional title and unit annotation describing a table.
type Caption struct {
	Title string
	Unit  string
}

// String joins title and unit with a space, omitting whichever is empty.
func (c Caption) String() string {
	switch {
	case c.Title != "" && c.Unit != "":
		return c.Title + " " + c.Unit
	case c.Title != "":
		return c.Title
	default:
		return c.Unit
	}
}

// Empty reports whether the caption has neither title nor unit.
func (c Caption) Empty() bool {
	return c.Title == "" && c.Unit == ""
}

// Sibling is a node preceding a table within the same parent, in document
// order. Positions lists the paragraph blocks emitted from the sibling or its
// descendants; it is empty when none were emitted.
type Sibling struct {
	Positions []int
	Text      string
	Table     bool
}

// FindCaption scans the siblings preceding a table, nearest first, and
// recovers the table's caption. The scan stops at another table or when a
// title is found; a unit annotation is recorded (nearest wins) but does not
// stop the scan. It returns the block positions of the siblings that were
// used so callers can drop them from the text flow.
func FindCaption(siblings []Sibling) (Caption, []int) {
	var caption Caption
	var used []int

	for i := len(siblings) - 1; i >= 0; i-- {
		sib := siblings[i]
		if sib.Table {
			break
		}
		text := strings.TrimSpace(sib.Text)
		if text == "" {
			continue
		}

		matched := false
		if unit := unitRe.FindString(text); unit != "" {
			if caption.Unit == "" {
				caption.Unit = unit
				matched = true
			}
			text = strings.TrimSpace(strings.Replace(text, unit, "", 1))
		}

		if titleRe.MatchString(text) {
			caption.Title = text
			used = append(used, sib.Positions...)
			break
		}

		if matched {
			used = append(used, sib.Positions...)
		}
	}

	return caption, used
}

package taxdoc

import (
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
)

// HierarchyConfig describes the numbering scheme of one document family: a
// set of fixed top-level headings and an ordered list of marker patterns,
// one per nesting level. The first pattern that matches at the start of a
// line wins, so the order encodes how ambiguous markers are resolved.
type HierarchyConfig struct {
	Name     string
	TopLevel []string
	levels   []*regexp2.Regexp
}

// NewHierarchyConfig compiles the level patterns of a configuration. Patterns
// use .NET syntax so lookarounds are available; each should be anchored with ^.
func NewHierarchyConfig(name string, topLevel []string, levels ...string) (*HierarchyConfig, error) {
	c := &HierarchyConfig{
		Name:     name,
		TopLevel: topLevel,
	}
	for _, expr := range levels {
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid level pattern %q: %v", expr, err)
		}
		c.levels = append(c.levels, re)
	}
	return c, nil
}

func mustHierarchyConfig(name string, topLevel []string, levels ...string) *HierarchyConfig {
	c, err := NewHierarchyConfig(name, topLevel, levels...)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	precedentHierarchy = mustHierarchyConfig("precedent",
		[]string{"주 문", "청 구 취 지", "이 유"},
		`^\d{1,2}\.(?!\d)`, // 1. but not 1999. or 1.5
		`^\w\.`,            // 가.
		`^\d+\)`,           // 1)
		`^\w\)`,            // 가)
		`^\(\d+\)`,         // (1)
	)

	interpretationHierarchy = mustHierarchyConfig("interpretation",
		[]string{"주문", "이유"},
		`^\d+\.`,   // 1.
		`^[가-힣]\.`, // 가.
		`^\(\d+\)`, // (1)
		`^[a-z]\)`, // a)
		`^[가-힣]\)`, // 가)
		`^\d+\)`,   // 1)
	)
)

// PrecedentHierarchy returns the configuration for court precedents and
// tribunal rulings.
func PrecedentHierarchy() *HierarchyConfig {
	return precedentHierarchy
}

// InterpretationHierarchy returns the configuration for administrative
// interpretations.
func InterpretationHierarchy() *HierarchyConfig {
	return interpretationHierarchy
}

// Line is one input line of the hierarchy builder. Verbatim lines hold
// pre-rendered content, such as a table, which is emitted untouched.
type Line struct {
	Text     string
	Verbatim bool
}

// UnitKind identifies the kind of an emitted unit.
type UnitKind int

// Unit kinds.
const (
	UnitSection UnitKind = iota
	UnitHeading
	UnitBody
	UnitVerbatim
)

// Unit is one emitted element of structured output.
type Unit struct {
	Kind UnitKind

	// Level is the markdown heading level: 1 for top-level sections and
	// marker level + 2 for numbered headings. Zero for other kinds.
	Level int

	Text string

	// Path lists the open top-level section and markers when the unit was
	// emitted, outermost first.
	Path []string
}

// String renders the unit as markdown.
func (u Unit) String() string {
	switch u.Kind {
	case UnitSection, UnitHeading:
		return strings.Repeat("#", u.Level) + " " + u.Text
	case UnitBody:
		return "    " + u.Text
	default:
		return u.Text
	}
}

// RenderUnits joins units with blank lines.
func RenderUnits(units []Unit) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = u.String()
	}
	return strings.Join(parts, "\n\n")
}

// Structure splits plain text into lines and returns its structured markdown.
func (c *HierarchyConfig) Structure(text string) string {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, s := range raw {
		lines[i] = Line{Text: s}
	}
	return RenderUnits(c.Build(lines))
}

// Build rebuilds the section hierarchy of an ordered sequence of lines.
func (c *HierarchyConfig) Build(lines []Line) []Unit {
	var state hierarchyState
	var units []Unit
	for _, line := range lines {
		var out []Unit
		state, out = c.step(state, line)
		units = append(units, out...)
	}
	_, out := state.flush()
	return append(units, out...)
}

// Match returns the level and marker text of the first level pattern that
// matches at the start of line.
func (c *HierarchyConfig) Match(line string) (level int, marker string, ok bool) {
	for i, re := range c.levels {
		m, err := re.FindStringMatch(line)
		if err != nil || m == nil {
			continue
		}
		return i, m.String(), true
	}
	return 0, "", false
}

func (c *HierarchyConfig) isTopLevel(line string) bool {
	return slices.Contains(c.TopLevel, line)
}

// step applies one line to the state and returns the next state together
// with the units emitted by the transition. The input state is not modified.
func (c *HierarchyConfig) step(s hierarchyState, line Line) (hierarchyState, []Unit) {
	if line.Verbatim {
		next, out := s.flush()
		if strings.TrimSpace(line.Text) == "" {
			return next, out
		}
		return next, append(out, Unit{Kind: UnitVerbatim, Text: line.Text, Path: next.path()})
	}

	text := strings.TrimSpace(line.Text)
	if text == "" {
		return s.flush()
	}

	if c.isTopLevel(text) {
		_, out := s.flush()
		next := hierarchyState{section: text}
		return next, append(out, Unit{Kind: UnitSection, Level: 1, Text: text, Path: next.path()})
	}

	if level, marker, ok := c.Match(text); ok {
		next, out := s.flush()
		next = next.open(level, marker)
		out = append(out, Unit{Kind: UnitHeading, Level: level + 2, Text: marker, Path: next.path()})

		rest := strings.TrimSpace(text[len(marker):])
		switch {
		case rest == "":
		case endsSentence(rest):
			out = append(out, Unit{Kind: UnitBody, Text: rest, Path: next.path()})
		default:
			next = next.push(rest)
		}
		return next, out
	}

	next := s.push(text)
	if endsSentence(text) {
		return next.flush()
	}
	return next, nil
}

// endsSentence reports whether a line ends in a sentence-terminating full stop.
func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".")
}

// hierarchyState is the immutable state threaded through step. Slices are
// never mutated in place; every transition builds fresh ones.
type hierarchyState struct {
	section string
	stack   []openMarker
	buffer  []string
}

type openMarker struct {
	level int
	text  string
}

// open closes every marker at level or deeper and opens marker. Levels grow
// strictly along the stack, so the kept markers form a prefix.
func (s hierarchyState) open(level int, marker string) hierarchyState {
	n := 0
	for n < len(s.stack) && s.stack[n].level < level {
		n++
	}
	s.stack = append(slices.Clone(s.stack[:n]), openMarker{level: level, text: marker})
	return s
}

// push appends a fragment to the paragraph buffer.
func (s hierarchyState) push(fragment string) hierarchyState {
	s.buffer = append(slices.Clone(s.buffer), fragment)
	return s
}

// flush emits the pending paragraph, if any, as one body unit.
func (s hierarchyState) flush() (hierarchyState, []Unit) {
	if len(s.buffer) == 0 {
		return s, nil
	}
	u := Unit{Kind: UnitBody, Text: strings.Join(s.buffer, " "), Path: s.path()}
	s.buffer = nil
	return s, []Unit{u}
}

func (s hierarchyState) path() []string {
	path := make([]string, 0, len(s.stack)+1)
	if s.section != "" {
		path = append(path, s.section)
	}
	for _, m := range s.stack {
		path = append(path, m.text)
	}
	return path
}

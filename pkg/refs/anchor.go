package refs

import (
	"strconv"
	"strings"
	"unicode"
)

// Anchor is an in-document link target generated from a heading.
type Anchor struct {
	// ID is the anchor identifier (e.g., "heading-name").
	ID string

	// Text is the heading text the ID was generated from.
	Text string

	// Block is the index of the heading in the rendered block list.
	Block int
}

// AnchorMap provides anchor lookup for fragment links.
type AnchorMap struct {
	anchors    map[string]Anchor
	order      []string
	seenCounts map[string]int
}

// NewAnchorMap creates an empty AnchorMap.
func NewAnchorMap() *AnchorMap {
	return &AnchorMap{
		anchors:    make(map[string]Anchor),
		seenCounts: make(map[string]int),
	}
}

// AddHeading generates an anchor for heading text rendered as block and
// returns its ID. Repeated headings get -1, -2 suffixes.
func (m *AnchorMap) AddHeading(text string, block int) string {
	id := m.generate(text)
	if id == "" {
		return ""
	}
	m.anchors[id] = Anchor{ID: id, Text: text, Block: block}
	m.order = append(m.order, id)
	return id
}

func (m *AnchorMap) generate(text string) string {
	base := anchorBase(text)

	count := m.seenCounts[base]
	m.seenCounts[base] = count + 1

	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// anchorBase converts heading text to a GitHub-compatible anchor ID:
// lowercase, punctuation dropped except '-' and '_', spaces to hyphens.
func anchorBase(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	prevHyphen := false

	for _, ch := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch):
			buf.WriteRune(ch)
			prevHyphen = false
		case ch == '-' || ch == '_':
			buf.WriteRune(ch)
			prevHyphen = ch == '-'
		case ch == ' ':
			if !prevHyphen && buf.Len() > 0 {
				_ = buf.WriteByte('-') // strings.Builder.WriteByte never fails
				prevHyphen = true
			}
		}
	}

	result := strings.Trim(buf.String(), "-")
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}

	return result
}

// Lookup returns the anchor with the given ID.
func (m *AnchorMap) Lookup(id string) (Anchor, bool) {
	anchor, ok := m.anchors[id]
	return anchor, ok
}

// ResolveFragment resolves an in-document destination such as "#usage".
// It returns false for destinations that are not pure fragments or that
// name no known anchor.
func (m *AnchorMap) ResolveFragment(destination string) (Anchor, bool) {
	id, ok := strings.CutPrefix(destination, "#")
	if !ok || id == "" {
		return Anchor{}, false
	}
	if anchor, found := m.anchors[id]; found {
		return anchor, true
	}
	return m.Lookup(strings.ToLower(id))
}

// All returns the anchors in document order.
func (m *AnchorMap) All() []Anchor {
	out := make([]Anchor, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.anchors[id])
	}
	return out
}

// Count returns the number of anchors.
func (m *AnchorMap) Count() int {
	return len(m.anchors)
}

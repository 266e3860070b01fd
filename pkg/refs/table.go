// Package refs provides the per-render reference table that maps link
// labels and anchor keys to their destinations, plus heading anchors for
// in-document fragment links.
//
// A Table is populated and consulted during a single render pass. It is a
// plain mutable map with last-write-wins semantics and no locking: every
// render must use its own instance.
package refs

import "strings"

// Matching selects how labels are compared.
type Matching string

const (
	// MatchExact compares labels as literal strings.
	MatchExact Matching = "exact"

	// MatchFold compares labels case-insensitively with whitespace collapsed.
	MatchFold Matching = "fold"
)

// maxAliasDepth bounds alias chains so cycles cannot loop forever.
const maxAliasDepth = 8

// Entry is a stored label with its destination.
type Entry struct {
	// Label is the key as first written (before any normalization).
	Label string

	// Destination is the link target.
	Destination string
}

// Table maps labels to destinations for one render.
type Table struct {
	matching Matching
	entries  map[string]Entry
	aliases  map[string]string
	order    []string
}

// Option configures a Table.
type Option func(*Table)

// WithMatching sets the label matching mode. Unknown modes fall back to exact.
func WithMatching(m Matching) Option {
	return func(t *Table) {
		if m == MatchFold {
			t.matching = MatchFold
		}
	}
}

// NewTable creates an empty Table.
func NewTable(opts ...Option) *Table {
	table := &Table{
		matching: MatchExact,
		entries:  make(map[string]Entry),
		aliases:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(table)
	}
	return table
}

// Matching returns the configured matching mode.
func (t *Table) Matching() Matching {
	return t.matching
}

func (t *Table) key(label string) string {
	if t.matching == MatchFold {
		return NormalizeLabel(label)
	}
	return label
}

// Store records destination for label, replacing any earlier entry.
// Empty labels are ignored.
func (t *Table) Store(label, destination string) {
	if strings.TrimSpace(label) == "" {
		return
	}
	k := t.key(label)
	if _, ok := t.entries[k]; !ok {
		t.order = append(t.order, k)
	}
	t.entries[k] = Entry{Label: label, Destination: destination}
}

// Lookup returns the destination stored directly under label.
func (t *Table) Lookup(label string) (string, bool) {
	entry, ok := t.entries[t.key(label)]
	if !ok {
		return "", false
	}
	return entry.Destination, true
}

// Alias makes key resolve through label when key has no entry of its own.
// It is used for reference-style links whose annotation key (the anchor
// text) differs from the label that a definition registers.
func (t *Table) Alias(key, label string) {
	k, l := t.key(key), t.key(label)
	if k == "" || l == "" || k == l {
		return
	}
	t.aliases[k] = l
}

// Resolve returns the destination for key, following aliases.
// A direct entry always wins over an alias.
func (t *Table) Resolve(key string) (string, bool) {
	k := t.key(key)
	for range maxAliasDepth {
		if entry, ok := t.entries[k]; ok {
			return entry.Destination, true
		}
		next, ok := t.aliases[k]
		if !ok {
			return "", false
		}
		k = next
	}
	return "", false
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the stored entries in first-insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.entries[k])
	}
	return out
}

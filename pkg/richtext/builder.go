package richtext

import "strings"

// Builder accumulates annotated text with a push/pop style stack.
// Ranges are recorded in push order, so an enclosing range always precedes
// the ranges nested inside it.
//
// A Builder is owned by one call chain and is not safe for concurrent use.
type Builder struct {
	buf          strings.Builder
	styles       []StyleRange
	stack        []int // indices into styles of the open ranges
	placeholders []Placeholder
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Depth returns the number of open styles.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Append writes s at the cursor.
func (b *Builder) Append(s string) {
	b.buf.WriteString(s)
}

// AppendByte writes a single byte at the cursor.
func (b *Builder) AppendByte(c byte) {
	_ = b.buf.WriteByte(c) // strings.Builder.WriteByte never fails
}

// Push opens a style range at the cursor.
func (b *Builder) Push(style Style) {
	b.stack = append(b.stack, len(b.styles))
	b.styles = append(b.styles, StyleRange{Start: b.buf.Len(), End: -1, Style: style})
}

// Pop closes the most recently opened style range at the cursor.
// Pop on an empty stack is a no-op.
func (b *Builder) Pop() {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.styles[top].End = b.buf.Len()
}

// Scope pushes style, runs fn and pops, even when fn panics.
// The stack depth after Scope equals the depth before it.
func (b *Builder) Scope(style Style, fn func()) {
	depth := len(b.stack)
	b.Push(style)
	defer func() {
		for len(b.stack) > depth {
			b.Pop()
		}
	}()
	fn()
}

// AppendPlaceholder reserves one ObjectReplacement character at the cursor.
func (b *Builder) AppendPlaceholder(kind PlaceholderKind, payload string) {
	b.placeholders = append(b.placeholders, Placeholder{
		Offset:  b.buf.Len(),
		Kind:    kind,
		Payload: payload,
	})
	b.buf.WriteRune(ObjectReplacement)
}

// AppendText writes an already built Text at the cursor, shifting its
// ranges and placeholders.
func (b *Builder) AppendText(t Text) {
	base := b.buf.Len()
	b.buf.WriteString(t.Text)
	for _, r := range t.Styles {
		b.styles = append(b.styles, StyleRange{Start: base + r.Start, End: base + r.End, Style: r.Style})
	}
	for _, p := range t.Placeholders {
		p.Offset += base
		b.placeholders = append(b.placeholders, p)
	}
}

// Build returns the accumulated Text. Styles still open are closed at the
// end of the text. The Builder may keep being used afterwards.
func (b *Builder) Build() Text {
	end := b.buf.Len()
	styles := make([]StyleRange, len(b.styles))
	copy(styles, b.styles)
	for _, idx := range b.stack {
		styles[idx].End = end
	}

	var placeholders []Placeholder
	if len(b.placeholders) > 0 {
		placeholders = make([]Placeholder, len(b.placeholders))
		copy(placeholders, b.placeholders)
	}
	if len(styles) == 0 {
		styles = nil
	}

	return Text{
		Text:         b.buf.String(),
		Styles:       styles,
		Placeholders: placeholders,
	}
}

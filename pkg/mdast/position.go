package mdast

// Span represents a byte range in the source content.
type Span struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// Len returns the length of the range in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the range has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Union returns the smallest span covering both s and other.
// Empty spans are ignored.
func (s Span) Union(other Span) Span {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

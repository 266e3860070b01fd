// Package mdast provides the concrete Markdown syntax tree consumed by the
// renderer. A Document holds the immutable source, a line index and the
// tree root; every Node addresses its raw text by a byte Span into the source.
package mdast

import "sort"

// Document is an immutable view of one parsed Markdown file.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Source is the full file bytes. Node spans index into it.
	Source []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the syntax tree root node (NodeDocument).
	Root *Node

	// Meta holds YAML front matter, or nil when the file has none.
	Meta map[string]any
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewDocument creates a Document for content with its line index built.
// Root is left nil; parsers fill it in.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:   path,
		Source: content,
		Lines:  BuildLines(content),
	}
}

// NodeText returns the logical text of n within this document.
func (d *Document) NodeText(n *Node) string {
	return n.Text(d.Source)
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	// Handle offset at or past end of content.
	if offset >= len(d.Source) {
		lastLine := d.Lines[len(d.Lines)-1]
		// Return position at end of last line.
		return len(d.Lines), offset - lastLine.StartOffset + 1
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	lineInfo := d.Lines[lineIdx]

	// Verify offset is within this line.
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	// 1-based line and column.
	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

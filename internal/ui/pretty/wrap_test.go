package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func plainFragments(texts ...string) []fragment {
	frags := make([]fragment, len(texts))
	for i, text := range texts {
		frags[i] = fragment{text: text, style: NewStyles(false).Base, sig: text}
	}
	return frags
}

func wrappedLines(frags []fragment, width int) []string {
	var out []string
	for _, line := range wrapFragments(frags, width) {
		out = append(out, plainLine(line))
	}
	return out
}

func TestSplitSegments(t *testing.T) {
	t.Parallel()

	segs := splitSegments("ab  c\n\nd")
	var kinds []segmentKind
	var texts []string
	for _, s := range segs {
		kinds = append(kinds, s.kind)
		texts = append(texts, s.text)
	}

	assert.Equal(t, []string{"ab", "  ", "c", "\n", "\n", "d"}, texts)
	assert.Equal(t, []segmentKind{segWord, segSpace, segWord, segNewline, segNewline, segWord}, kinds)
}

func TestWrapFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		frags []fragment
		width int
		want  []string
	}{
		{
			name:  "greedy fill",
			frags: plainFragments("one two three four five six"),
			width: 10,
			want:  []string{"one two", "three four", "five six"},
		},
		{
			name:  "word split across fragments stays whole",
			frags: plainFragments("aaaa bo", "ld", " cc"),
			width: 7,
			want:  []string{"aaaa", "bold cc"},
		},
		{
			name:  "hard breaks kept",
			frags: plainFragments("a\n\nb"),
			width: 10,
			want:  []string{"a", "", "b"},
		},
		{
			name:  "leading blanks kept",
			frags: plainFragments(" a+b "),
			width: 10,
			want:  []string{" a+b"},
		},
		{
			name:  "overlong word gets its own line",
			frags: plainFragments("x supercalifragilistic y"),
			width: 5,
			want:  []string{"x", "supercalifragilistic", "y"},
		},
		{
			name:  "zero width disables wrapping",
			frags: plainFragments("one two three"),
			width: 0,
			want:  []string{"one two three"},
		},
		{
			name:  "wide runes count double",
			frags: plainFragments("日本 語"),
			width: 5,
			want:  []string{"日本", "語"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrappedLines(tt.frags, tt.width))
		})
	}
}

func TestWrapFragments_AtomicFragment(t *testing.T) {
	t.Parallel()

	frags := plainFragments("see ")
	frags = append(frags, fragment{text: "[image: a b]", atomic: true, style: NewStyles(false).Base})

	assert.Equal(t, []string{"see", "[image: a b]"}, wrappedLines(frags, 10))
}

func TestRenderLine_MergesAndLinks(t *testing.T) {
	t.Parallel()

	base := NewStyles(false).Base
	pieces := []fragment{
		{text: "the", style: base, sig: "link", url: "https://x"},
		{text: " ", style: base, sig: "link", url: "https://x"},
		{text: "docs", style: base, sig: "link", url: "https://x"},
		{text: ".", style: base},
	}

	got := renderLine(pieces, true)
	assert.Equal(t, Hyperlink("https://x", "the docs")+".", got)
	assert.Equal(t, "the docs.", renderLine(pieces, false))
}

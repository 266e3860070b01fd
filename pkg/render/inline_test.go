package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

// paragraphText renders content and returns the text of its single paragraph.
func paragraphText(t *testing.T, content string) richtext.Text {
	t.Helper()

	result := renderString(t, content, render.DefaultOptions())
	require.Len(t, result.Blocks, 1)
	require.Equal(t, render.BlockParagraph, result.Blocks[0].Kind)
	return result.Blocks[0].Text
}

func TestInline_BoldAndItalic(t *testing.T) {
	t.Parallel()

	text := paragraphText(t, "**bold *and italic* text**")

	assert.Equal(t, "bold and italic text", text.Text)
	assert.Equal(t, []richtext.StyleRange{
		{Start: 0, End: 20, Style: richtext.Bold},
		{Start: 5, End: 15, Style: richtext.Italic},
	}, text.Styles)
	assert.Equal(t, "and italic", text.Text[5:15])
}

func TestInline_CodeSpanPadded(t *testing.T) {
	t.Parallel()

	text := paragraphText(t, "x `a+b` y")

	assert.Equal(t, "x  a+b  y", text.Text)
	assert.NotContains(t, text.Text, "`")
	require.Len(t, text.Styles, 1)

	r := text.Styles[0]
	assert.Equal(t, richtext.Monospace, r.Style)
	assert.Equal(t, " a+b ", text.Text[r.Start:r.End])
}

func TestInline_Image(t *testing.T) {
	t.Parallel()

	text := paragraphText(t, "see ![alt](http://x/img.png) here")

	assert.Equal(t, "see \uFFFC here", text.Text)
	assert.Empty(t, text.Styles)
	assert.Equal(t, []richtext.Placeholder{
		{Offset: 4, Kind: richtext.PlaceholderImage, Payload: "http://x/img.png"},
	}, text.Placeholders)
}

func TestInline_ReferenceImage(t *testing.T) {
	t.Parallel()

	result := renderString(t, "![logo]\n\n[logo]: /logo.png\n", render.DefaultOptions())

	require.Len(t, result.Blocks, 1)
	placeholders := result.Blocks[0].Text.Placeholders
	require.Len(t, placeholders, 1)
	assert.Equal(t, "/logo.png", placeholders[0].Payload)
}

func TestInline_TextTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"punctuation", `say "hi" (now): it's [ok]!`, `say "hi" (now): it's [ok]!`},
		{"escapes", `\*not emphasis\*`, "*not emphasis*"},
		{"entities", "fish &amp; chips &lt;3", "fish & chips <3"},
		{"soft break", "one\ntwo", "one\ntwo"},
		{"hard break", "one  \ntwo", "one\n\ntwo"},
		{"backslash break", "one\\\ntwo", "one\n\ntwo"},
		{"inline html dropped", "a <b>bold</b> c", "a bold c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := paragraphText(t, tt.content)
			assert.Equal(t, tt.want, text.Text)
		})
	}
}

func TestInline_Styles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		text    string
		kinds   []richtext.StyleKind
	}{
		{"emphasis", "*it*", "it", []richtext.StyleKind{richtext.StyleItalic}},
		{"strong", "__bo__", "bo", []richtext.StyleKind{richtext.StyleBold}},
		{"strikethrough", "~~gone~~", "gone", []richtext.StyleKind{richtext.StyleStrikethrough}},
		{
			"nested",
			"*a **b `c`** d*",
			"a b  c  d",
			[]richtext.StyleKind{richtext.StyleItalic, richtext.StyleBold, richtext.StyleMonospace},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := paragraphText(t, tt.content)
			assert.Equal(t, tt.text, text.Text)
			assert.Equal(t, tt.kinds, styleKinds(text))
		})
	}
}

func TestInline_TaskCheckBox(t *testing.T) {
	t.Parallel()

	result := renderString(t, "- [x] done\n- [ ] todo\n", render.DefaultOptions())

	require.Len(t, result.Blocks, 1)
	items := result.Blocks[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "[x] done", items[0].Text.Text)
	assert.Equal(t, "[ ] todo", items[1].Text.Text)
}

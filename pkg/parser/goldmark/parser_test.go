package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/yaklabco/gomdrender/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx := context.Background()

	content := []byte("# Hello\n\nWorld")
	doc, err := parser.Parse(ctx, "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Path != "test.md" {
		t.Errorf("Path = %q, want %q", doc.Path, "test.md")
	}

	if string(doc.Source) != string(content) {
		t.Errorf("Source mismatch")
	}

	// Verify content is a copy, not the same slice.
	if &doc.Source[0] == &content[0] {
		t.Error("Source should be a copy, not the same slice")
	}

	if len(doc.Lines) != 3 {
		t.Errorf("len(Lines) = %d, want 3", len(doc.Lines))
	}

	if doc.Root == nil || doc.Root.Kind != mdast.NodeDocument {
		t.Fatalf("Root = %v, want NodeDocument", doc.Root)
	}

	if doc.Root.Span != (mdast.Span{Start: 0, End: len(content)}) {
		t.Errorf("Root.Span = %+v, want whole source", doc.Root.Span)
	}

	if doc.Meta != nil {
		t.Errorf("Meta = %v, want nil without front matter", doc.Meta)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	parser := New(FlavorCommonMark)

	doc, err := parser.Parse(context.Background(), "empty.md", []byte{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Root == nil {
		t.Fatal("expected Root to be non-nil for empty content")
	}

	if doc.Root.HasChildren() {
		t.Errorf("expected no children, got %d", doc.Root.ChildCount())
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	parser := New(FlavorCommonMark)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	parser := New(FlavorCommonMark)

	ctx, cancel := context.WithTimeout(context.Background(), -1*time.Second)
	defer cancel()

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for timed out context")
	}
}

func TestParser_Parse_CommonMark(t *testing.T) {
	content := []byte(`# Heading

Paragraph with *emphasis* and **strong**.

- Item 1
- Item 2

> Blockquote

` + "```go" + `
func main() {}
` + "```" + `

[Link](url)
`)

	doc := mustParse(t, FlavorCommonMark, string(content))

	counts := map[mdast.NodeKind]int{
		mdast.NodeHeading:       1,
		mdast.NodeUnorderedList: 1,
		mdast.NodeBlockquote:    1,
		mdast.NodeCodeFence:     1,
		mdast.NodeInlineLink:    1,
		mdast.NodeEmphasis:      1,
		mdast.NodeStrong:        1,
	}
	for kind, want := range counts {
		if got := len(findKind(doc.Root, kind)); got != want {
			t.Errorf("count(%v) = %d, want %d", kind, got, want)
		}
	}
}

func TestParser_Parse_GFM(t *testing.T) {
	content := "- [x] done\n- [ ] todo\n\n~~gone~~ and https://example.com\n"

	doc := mustParse(t, FlavorGFM, content)

	boxes := findKind(doc.Root, mdast.NodeTaskCheckBox)
	if len(boxes) != 2 {
		t.Fatalf("expected 2 task checkboxes, got %d", len(boxes))
	}
	if !boxes[0].Inline.Checked || boxes[1].Inline.Checked {
		t.Errorf("checked = %v, %v, want true, false", boxes[0].Inline.Checked, boxes[1].Inline.Checked)
	}

	if got := len(findKind(doc.Root, mdast.NodeStrikethrough)); got != 1 {
		t.Errorf("expected 1 strikethrough, got %d", got)
	}

	links := findKind(doc.Root, mdast.NodeGFMAutolink)
	if len(links) != 1 {
		t.Fatalf("expected 1 GFM autolink, got %d", len(links))
	}
	if got := doc.NodeText(links[0]); got != "https://example.com" {
		t.Errorf("autolink text = %q, want %q", got, "https://example.com")
	}
}

func TestParser_Parse_CommonMarkIgnoresGFM(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "~~gone~~ https://example.com\n")

	for _, kind := range []mdast.NodeKind{mdast.NodeStrikethrough, mdast.NodeGFMAutolink} {
		if got := len(findKind(doc.Root, kind)); got != 0 {
			t.Errorf("count(%v) = %d, want 0", kind, got)
		}
	}
}

func TestParser_Parse_FrontMatter(t *testing.T) {
	content := "---\ntitle: Hello\ntags:\n  - a\n  - b\nauthor:\n  name: Ada\n---\n# Doc\n"

	doc := mustParse(t, FlavorCommonMark, content)

	if doc.Meta["title"] != "Hello" {
		t.Errorf("Meta[title] = %v, want %q", doc.Meta["title"], "Hello")
	}

	tags, ok := doc.Meta["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("Meta[tags] = %#v, want two entries", doc.Meta["tags"])
	}

	author, ok := doc.Meta["author"].(map[string]any)
	if !ok || author["name"] != "Ada" {
		t.Errorf("Meta[author] = %#v, want map with name Ada", doc.Meta["author"])
	}

	if got := len(findKind(doc.Root, mdast.NodeHeading)); got != 1 {
		t.Errorf("expected 1 heading after front matter, got %d", got)
	}
	if got := len(findKind(doc.Root, mdast.NodeThematicBreak)); got != 0 {
		t.Errorf("front matter fences should not become thematic breaks, got %d", got)
	}
}

func TestParser_Parse_InvalidFrontMatter(t *testing.T) {
	doc := mustParse(t, FlavorGFM, "---\ntitle: [unclosed\n---\n# hi\n")

	if doc.Meta != nil {
		t.Errorf("Meta = %v, want nil for invalid front matter", doc.Meta)
	}

	children := doc.Root.Children()
	if len(children) != 1 {
		t.Fatalf("got %d top-level blocks, want 1", len(children))
	}
	if children[0].Kind != mdast.NodeHeading {
		t.Errorf("block kind = %v, want %v", children[0].Kind, mdast.NodeHeading)
	}
}

func TestParser_Parse_DefinitionsPlacedInOrder(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []mdast.NodeKind
	}{
		{
			name:    "definition after use",
			content: "[label][key]\n\n[key]: https://example.com\n",
			want:    []mdast.NodeKind{mdast.NodeParagraph, mdast.NodeLinkDefinition},
		},
		{
			name:    "definition before use",
			content: "[key]: /url\n\nSee [key].\n",
			want:    []mdast.NodeKind{mdast.NodeLinkDefinition, mdast.NodeParagraph},
		},
		{
			name:    "definitions between blocks",
			content: "# Title\n\n[a]: /a\n[b]: /b\n\nText\n",
			want: []mdast.NodeKind{
				mdast.NodeHeading, mdast.NodeLinkDefinition, mdast.NodeLinkDefinition, mdast.NodeParagraph,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			children := doc.Root.Children()
			if len(children) != len(tt.want) {
				t.Fatalf("got %d top-level blocks, want %d", len(children), len(tt.want))
			}
			for i, child := range children {
				if child.Kind != tt.want[i] {
					t.Errorf("child[%d] = %v, want %v", i, child.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestParser_Parse_DefinitionChildren(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "[Key]: https://example.com \"Title\"\n")

	def := mdast.FindFirst(doc.Root, func(n *mdast.Node) bool { return n.Kind == mdast.NodeLinkDefinition })
	if def == nil {
		t.Fatal("expected a link definition")
	}

	label := mdast.FindChild(def, mdast.NodeLinkLabel)
	if label == nil {
		t.Fatal("expected a link label")
	}
	if got := doc.NodeText(label); got != "[Key]" {
		t.Errorf("label = %q, want %q", got, "[Key]")
	}

	dest := mdast.FindChild(def, mdast.NodeLinkDestination)
	if dest == nil {
		t.Fatal("expected a link destination")
	}
	if got := doc.NodeText(dest); got != "https://example.com" {
		t.Errorf("destination = %q, want %q", got, "https://example.com")
	}

	title := mdast.FindChild(def, mdast.NodeLinkTitle)
	if title == nil || doc.NodeText(title) != "Title" {
		t.Errorf("expected title %q", "Title")
	}
}

func TestParser_Parse_TopLevelSpansMonotone(t *testing.T) {
	content := "# A\n\n---\n\n[x]: /x\n\n- item\n\n> quote\n\n***\n"

	doc := mustParse(t, FlavorCommonMark, content)

	prev := 0
	for _, child := range doc.Root.Children() {
		if child.Span.Start < prev {
			t.Errorf("%v starts at %d before previous end %d", child.Kind, child.Span.Start, prev)
		}
		prev = child.Span.End
	}
}

// mustParse parses content or fails the test.
func mustParse(t *testing.T, flavor, content string) *mdast.Document {
	t.Helper()

	doc, err := New(flavor).Parse(context.Background(), "test.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

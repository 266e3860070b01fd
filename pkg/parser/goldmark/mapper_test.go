package goldmark

import (
	"strings"
	"testing"

	"github.com/yaklabco/gomdrender/pkg/mdast"
)

func TestMapper_Heading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   int
	}{
		{"h1", "# Heading", 1},
		{"h2", "## Heading", 2},
		{"h3", "### Heading", 3},
		{"h6", "###### Heading", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			heading := firstOfKind(t, doc, mdast.NodeHeading)
			if heading.HeadingLevel() != tt.level {
				t.Errorf("heading level = %d, want %d", heading.HeadingLevel(), tt.level)
			}

			content := mdast.FindChild(heading, mdast.NodeHeadingContent)
			if content == nil {
				t.Fatal("expected HeadingContent child")
			}
			if got := doc.NodeText(content); got != "Heading" {
				t.Errorf("content = %q, want %q", got, "Heading")
			}
		})
	}
}

func TestMapper_ListMarkers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    mdast.NodeKind
		marker  mdast.NodeKind
		want    []string
	}{
		{"dash", "- one\n- two\n", mdast.NodeUnorderedList, mdast.NodeListBullet, []string{"-", "-"}},
		{"asterisk", "* one\n* two\n", mdast.NodeUnorderedList, mdast.NodeListBullet, []string{"*", "*"}},
		{"plus", "+ one\n+ two\n", mdast.NodeUnorderedList, mdast.NodeListBullet, []string{"+", "+"}},
		{"ordered", "1. one\n2. two\n", mdast.NodeOrderedList, mdast.NodeListNumber, []string{"1.", "2."}},
		{"ordered paren", "7) one\n8) two\n", mdast.NodeOrderedList, mdast.NodeListNumber, []string{"7)", "8)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			list := firstOfKind(t, doc, tt.kind)
			items := findKind(list, mdast.NodeListItem)
			if len(items) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(items))
			}

			for i, item := range items {
				if item.FirstChild == nil || item.FirstChild.Kind != tt.marker {
					t.Fatalf("item %d: first child is not %v", i, tt.marker)
				}
				if got := doc.NodeText(item.FirstChild); got != tt.want[i] {
					t.Errorf("item %d marker = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestMapper_NestedList(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "- outer\n  - inner\n")

	lists := findKind(doc.Root, mdast.NodeUnorderedList)
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}

	if !mdast.HasAncestor(lists[1], mdast.NodeListItem) {
		t.Error("inner list should be nested in a list item")
	}
}

func TestMapper_EmptyListItemMarker(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "1. one\n\n2.\n")

	items := findKind(doc.Root, mdast.NodeListItem)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if got := doc.NodeText(items[1].FirstChild); got != "2." {
		t.Errorf("synthesized marker = %q, want %q", got, "2.")
	}
}

func TestMapper_FencedCode(t *testing.T) {
	content := "```go\nfmt.Println()\n```\n"
	doc := mustParse(t, FlavorCommonMark, content)

	fence := firstOfKind(t, doc, mdast.NodeCodeFence)

	var kinds []string
	for child := fence.FirstChild; child != nil; child = child.Next {
		kinds = append(kinds, child.Kind.String()+"="+doc.NodeText(child))
	}
	want := "FenceStart=```,FenceLang=go,EOL=\n,CodeLine=fmt.Println(),EOL=\n,FenceEnd=```"
	if got := strings.Join(kinds, ","); got != want {
		t.Errorf("children = %q, want %q", got, want)
	}

	attrs := fence.Block.Code
	if attrs.FenceChar != '`' || attrs.FenceLength != 3 || attrs.Info != "go" || !attrs.Closed {
		t.Errorf("attrs = %+v", attrs)
	}
}

func TestMapper_FencedCodeUnclosed(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "~~~~\nline\n")

	fence := firstOfKind(t, doc, mdast.NodeCodeFence)
	if fence.Block.Code.Closed {
		t.Error("expected Closed = false")
	}
	if fence.Block.Code.FenceChar != '~' || fence.Block.Code.FenceLength != 4 {
		t.Errorf("fence = %q x %d", fence.Block.Code.FenceChar, fence.Block.Code.FenceLength)
	}
	if mdast.FindChild(fence, mdast.NodeFenceEnd) != nil {
		t.Error("unexpected FenceEnd")
	}
}

func TestMapper_IndentedCode(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "    line 1\n    line 2\n")

	block := firstOfKind(t, doc, mdast.NodeCodeBlock)
	lines := findKind(block, mdast.NodeCodeLine)
	if len(lines) != 2 {
		t.Fatalf("expected 2 code lines, got %d", len(lines))
	}
	if got := doc.NodeText(lines[1]); got != "line 2" {
		t.Errorf("line = %q, want %q", got, "line 2")
	}
}

func TestMapper_ThematicBreak(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "a\n\n***\n")

	if got := len(findKind(doc.Root, mdast.NodeThematicBreak)); got != 1 {
		t.Errorf("expected 1 thematic break, got %d", got)
	}
}

func TestMapper_CodeSpan(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "x `a+b` y")

	span := firstOfKind(t, doc, mdast.NodeCodeSpan)
	if got := doc.NodeText(span); got != "`a+b`" {
		t.Errorf("raw = %q, want %q", got, "`a+b`")
	}

	children := span.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[0].Kind != mdast.NodeBacktick || children[2].Kind != mdast.NodeBacktick {
		t.Errorf("delimiters = %v, %v", children[0].Kind, children[2].Kind)
	}
	if got := doc.NodeText(children[1]); got != "a+b" {
		t.Errorf("code = %q, want %q", got, "a+b")
	}
}

func TestMapper_EmphasisNesting(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "**bold *and italic* text**")

	strong := firstOfKind(t, doc, mdast.NodeStrong)
	em := mdast.FindDescendant(strong, mdast.NodeEmphasis)
	if em == nil {
		t.Fatal("expected emphasis inside strong")
	}
	if got := leafText(doc, em); got != "and italic" {
		t.Errorf("emphasis text = %q, want %q", got, "and italic")
	}
}

func TestMapper_Links(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    mdast.NodeKind
		style   mdast.ReferenceStyle
		raw     string
	}{
		{
			name:    "inline",
			content: `[text](http://x "t")`,
			kind:    mdast.NodeInlineLink,
			style:   mdast.RefStyleInline,
			raw:     `[text](http://x "t")`,
		},
		{
			name:    "full reference",
			content: "[label][key]\n\n[key]: https://example.com\n",
			kind:    mdast.NodeFullReferenceLink,
			style:   mdast.RefStyleFull,
			raw:     "[label][key]",
		},
		{
			name:    "collapsed reference",
			content: "[key][]\n\n[key]: https://example.com\n",
			kind:    mdast.NodeShortReferenceLink,
			style:   mdast.RefStyleCollapsed,
			raw:     "[key][]",
		},
		{
			name:    "shortcut reference",
			content: "see [key] now\n\n[key]: https://example.com\n",
			kind:    mdast.NodeShortReferenceLink,
			style:   mdast.RefStyleShortcut,
			raw:     "[key]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			link := firstOfKind(t, doc, tt.kind)
			if link.Inline == nil || link.Inline.Link == nil {
				t.Fatal("expected link attrs")
			}
			if link.Inline.Link.ReferenceStyle != tt.style {
				t.Errorf("style = %v, want %v", link.Inline.Link.ReferenceStyle, tt.style)
			}
			if got := doc.NodeText(link); got != tt.raw {
				t.Errorf("raw = %q, want %q", got, tt.raw)
			}
			if mdast.FindChild(link, mdast.NodeLinkText) == nil {
				t.Error("expected LinkText child")
			}
		})
	}
}

func TestMapper_InlineLinkParts(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, `[text](http://x "t")`)

	link := firstOfKind(t, doc, mdast.NodeInlineLink)

	if got := leafText(doc, mdast.FindChild(link, mdast.NodeLinkText)); got != "[text]" {
		t.Errorf("link text = %q, want %q", got, "[text]")
	}

	dest := mdast.FindChild(link, mdast.NodeLinkDestination)
	if dest == nil || doc.NodeText(dest) != "http://x" {
		t.Fatalf("destination = %v", dest)
	}
	if dest.Span != (mdast.Span{Start: 7, End: 15}) {
		t.Errorf("destination span = %+v", dest.Span)
	}

	title := mdast.FindChild(link, mdast.NodeLinkTitle)
	if title == nil || doc.NodeText(title) != "t" {
		t.Errorf("title = %v", title)
	}
	if link.Inline.Link.Title != "t" {
		t.Errorf("attrs title = %q", link.Inline.Link.Title)
	}
}

func TestMapper_FullReferenceLabel(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "[label][key]\n\n[key]: https://example.com\n")

	link := firstOfKind(t, doc, mdast.NodeFullReferenceLink)
	label := mdast.FindChild(link, mdast.NodeLinkLabel)
	if label == nil {
		t.Fatal("expected LinkLabel")
	}
	if got := leafText(doc, label); got != "[key]" {
		t.Errorf("label = %q, want %q", got, "[key]")
	}
}

func TestMapper_UndefinedReferenceStaysText(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "[label][missing]")

	for _, kind := range []mdast.NodeKind{mdast.NodeFullReferenceLink, mdast.NodeShortReferenceLink} {
		if got := len(findKind(doc.Root, kind)); got != 0 {
			t.Errorf("count(%v) = %d, want 0", kind, got)
		}
	}

	para := firstOfKind(t, doc, mdast.NodeParagraph)
	if got := leafText(doc, para); got != "[label][missing]" {
		t.Errorf("text = %q", got)
	}
}

func TestMapper_Image(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "before ![alt](http://x/img.png) after")

	img := firstOfKind(t, doc, mdast.NodeImage)
	if img.FirstChild == nil || img.FirstChild.Kind != mdast.NodeExclamationMark {
		t.Fatal("expected leading ExclamationMark")
	}

	dest := mdast.FindDescendant(img, mdast.NodeLinkDestination)
	if dest == nil || doc.NodeText(dest) != "http://x/img.png" {
		t.Fatalf("destination = %v", dest)
	}

	if got := doc.NodeText(img); got != "![alt](http://x/img.png)" {
		t.Errorf("raw = %q", got)
	}
}

func TestMapper_ReferenceImageCarriesDestination(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "![logo]\n\n[logo]: /logo.png\n")

	img := firstOfKind(t, doc, mdast.NodeImage)
	dest := mdast.FindChild(img, mdast.NodeLinkDestination)
	if dest == nil || doc.NodeText(dest) != "/logo.png" {
		t.Errorf("destination = %v", dest)
	}
}

func TestMapper_Autolink(t *testing.T) {
	tests := []struct {
		name    string
		content string
		label   string
		email   bool
	}{
		{"url", "<https://example.com>", "https://example.com", false},
		{"email", "<foo@bar.com>", "foo@bar.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			link := firstOfKind(t, doc, mdast.NodeAutolink)
			if got := doc.NodeText(link); got != tt.label {
				t.Errorf("label = %q, want %q", got, tt.label)
			}
			if link.Inline.Link.Email != tt.email {
				t.Errorf("email = %v, want %v", link.Inline.Link.Email, tt.email)
			}
			if link.Span != (mdast.Span{Start: 0, End: len(tt.content)}) {
				t.Errorf("span = %+v", link.Span)
			}
		})
	}
}

func TestMapper_TextTokens(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "Hello, world!", "Hello, world!"},
		{"escape", `a \* b`, "a * b"},
		{"entity", "fish &amp; chips", "fish & chips"},
		{"numeric entity", "&#65;BC", "ABC"},
		{"quotes", `say "hi" it's`, `say "hi" it's`},
		{"parens", "(a) [b]", "(a) [b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			para := firstOfKind(t, doc, mdast.NodeParagraph)
			if got := leafText(doc, para); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapper_Punctuation(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, `"q" (p)`)

	para := firstOfKind(t, doc, mdast.NodeParagraph)
	var kinds []mdast.NodeKind
	for child := para.FirstChild; child != nil; child = child.Next {
		kinds = append(kinds, child.Kind)
	}

	want := []mdast.NodeKind{
		mdast.NodeDoubleQuote, mdast.NodeText, mdast.NodeDoubleQuote,
		mdast.NodeWhitespace,
		mdast.NodeLParen, mdast.NodeText, mdast.NodeRParen,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kind[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestMapper_LineBreaks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    mdast.NodeKind
	}{
		{"soft", "a\nb", mdast.NodeEOL},
		{"hard spaces", "a  \nb", mdast.NodeHardLineBreak},
		{"hard backslash", "a\\\nb", mdast.NodeHardLineBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, FlavorCommonMark, tt.content)

			if got := len(findKind(doc.Root, tt.kind)); got != 1 {
				t.Errorf("count(%v) = %d, want 1", tt.kind, got)
			}
			para := firstOfKind(t, doc, mdast.NodeParagraph)
			if got := leafText(doc, para); got != "a\nb" {
				t.Errorf("text = %q, want %q", got, "a\nb")
			}
		})
	}
}

func TestMapper_Blockquote(t *testing.T) {
	doc := mustParse(t, FlavorCommonMark, "> quoted *text*\n")

	quote := firstOfKind(t, doc, mdast.NodeBlockquote)
	para := mdast.FindChild(quote, mdast.NodeParagraph)
	if para == nil {
		t.Fatal("expected paragraph inside blockquote")
	}
	if quote.Span.IsEmpty() {
		t.Error("blockquote span should cover its paragraph")
	}
}

func TestMapper_Table(t *testing.T) {
	doc := mustParse(t, FlavorGFM, "| a | b |\n|---|---|\n| 1 | 2 |\n")

	table := firstOfKind(t, doc, mdast.NodeTable)
	rows := findKind(table, mdast.NodeTableRow)
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
	if got := len(findKind(table, mdast.NodeTableCell)); got != 4 {
		t.Errorf("expected 4 cells, got %d", got)
	}
}

// firstOfKind returns the first node of kind or fails the test.
func firstOfKind(t *testing.T, doc *mdast.Document, kind mdast.NodeKind) *mdast.Node {
	t.Helper()

	nodes := findKind(doc.Root, kind)
	if len(nodes) == 0 {
		t.Fatalf("no %v node found", kind)
	}
	return nodes[0]
}

// leafText concatenates the text of every leaf under n.
func leafText(doc *mdast.Document, n *mdast.Node) string {
	var sb strings.Builder
	_ = mdast.Walk(n, func(node *mdast.Node) error {
		if !node.HasChildren() {
			sb.WriteString(doc.NodeText(node))
		}
		return nil
	})
	return sb.String()
}

// findKind collects every node of kind under root in pre-order.
func findKind(root *mdast.Node, kind mdast.NodeKind) []*mdast.Node {
	var nodes []*mdast.Node
	_ = mdast.Walk(root, func(n *mdast.Node) error {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes
}

package render

import (
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

// ListItem is one rendered list item. Nested items follow their parent in
// the flattened item sequence with a higher Level.
type ListItem struct {
	// Marker is the bullet glyph or the numeral with its delimiter.
	Marker string `json:"marker"`

	// Ordered is true for items of an ordered list.
	Ordered bool `json:"ordered"`

	// Level is the nesting depth, 0 for the outermost list.
	Level int `json:"level"`

	// Indent is the indentation in columns, Level times the indent step.
	Indent int `json:"indent"`

	// Text is the item content without its marker and nested lists.
	Text richtext.Text `json:"text"`
}

// renderList renders list and every list nested in it.
func (p *pass) renderList(list *mdast.Node, level int) []ListItem {
	ordered := list.Kind == mdast.NodeOrderedList

	var items []ListItem
	for child := list.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Kind == mdast.NodeListItem:
			items = append(items, p.renderListItem(child, ordered, level)...)
		case child.IsList():
			items = append(items, p.renderList(child, level+1)...)
		default:
			p.skip("skipping list child", child)
		}
	}
	return items
}

// renderListItem renders one item followed by the items of its nested lists.
func (p *pass) renderListItem(item *mdast.Node, ordered bool, level int) []ListItem {
	b := richtext.NewBuilder()
	var nested []ListItem

	for child := item.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Kind == mdast.NodeListBullet, child.Kind == mdast.NodeListNumber:
			continue
		case child.IsList():
			nested = append(nested, p.renderList(child, level+1)...)
		default:
			appendPiece(b, "\n", p.containedText(child))
		}
	}

	rendered := ListItem{
		Marker:  p.marker(item, ordered),
		Ordered: ordered,
		Level:   level,
		Indent:  level * p.opts.IndentStep,
		Text:    b.Build(),
	}
	return append([]ListItem{rendered}, nested...)
}

// marker returns the literal marker of item, or the configured bullet for
// unordered lists.
func (p *pass) marker(item *mdast.Node, ordered bool) string {
	if !ordered && p.opts.Bullet != "" {
		return p.opts.Bullet
	}

	kind := mdast.NodeListBullet
	if ordered {
		kind = mdast.NodeListNumber
	}
	if marker := mdast.FindChild(item, kind); marker != nil {
		return marker.Text(p.source)
	}
	if ordered {
		return "1."
	}
	return "-"
}

// Package goldmark provides a Parser implementation using the goldmark library.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown source into an mdast.Document using goldmark.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a Document.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a Document shell with path, content, and lines.
//  3. Parses content with goldmark while recording inline spans.
//  4. Reads front matter, dropping a block whose YAML is invalid.
//  5. Builds the mdast.Node tree from the goldmark AST.
//  6. Places link reference definitions among the top-level blocks.
//
// Invalid front matter is logged and skipped. Returns nil and an error only
// if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := mdast.NewDocument(path, copyContent(content))

	pc := parser.NewContext()
	spans := spansFrom(pc)
	reader := text.NewReader(doc.Source)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(pc))

	// Check for cancellation after parsing.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	frontMatter, err := meta.TryGet(pc)
	if err != nil {
		logging.FromContext(ctx).Warn("ignoring invalid front matter",
			logging.FieldPath, path,
			logging.FieldError, err,
		)
		dropFrontMatter(gmDoc)
		frontMatter = nil
	}

	m := newMapper(doc.Source, spans)
	doc.Root = m.mapDocument(gmDoc)
	m.placeDefinitions(doc.Root, pc.References())
	doc.Meta = normalizeMeta(frontMatter)

	return doc, nil
}

// dropFrontMatter removes the front matter block goldmark-meta leaves in
// place when its YAML does not decode. The block is always the leading
// text block of the document.
func dropFrontMatter(gmDoc ast.Node) {
	if first, ok := gmDoc.FirstChild().(*ast.TextBlock); ok {
		gmDoc.RemoveChild(gmDoc, first)
	}
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
// Front matter is recognised for every flavor.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	extensions := []goldmark.Extender{meta.Meta}

	switch flavor {
	case FlavorGFM:
		extensions = append(extensions, extension.GFM)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(parser.DefaultBlockParsers()...),
			parser.WithInlineParsers(recordingInlineParsers()...),
			parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		)),
		goldmark.WithExtensions(extensions...),
	)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}

// normalizeMeta converts YAML-decoded front matter into JSON-friendly maps.
func normalizeMeta(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		return normalizeMeta(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

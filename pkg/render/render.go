// Package render walks an mdast syntax tree and produces annotated rich
// text: one richtext.Text per block, with nested style ranges, link keys
// resolved through a per-render reference table and placeholders for images.
//
// A Renderer holds only immutable options and may be shared between
// goroutines. Each Render call owns its reference table, anchor map and
// builders, so concurrent renders never observe each other's state.
package render

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/refs"
)

// DefaultIndentStep is the indentation added per list nesting level.
const DefaultIndentStep = 2

// Parser produces a syntax tree from Markdown source.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error)
}

// Options configures a Renderer.
type Options struct {
	// IndentStep is the indentation per list nesting level.
	// Values below 1 fall back to DefaultIndentStep.
	IndentStep int

	// Bullet replaces the source bullet of unordered list items when set.
	Bullet string

	// Matching selects how the reference table compares labels.
	Matching refs.Matching

	// DetectLanguage guesses a language for code fences without an info string.
	DetectLanguage bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IndentStep: DefaultIndentStep,
		Matching:   refs.MatchExact,
	}
}

// Renderer converts documents into blocks of annotated text.
type Renderer struct {
	opts Options
}

// New creates a Renderer with the given options.
func New(opts Options) *Renderer {
	if opts.IndentStep < 1 {
		opts.IndentStep = DefaultIndentStep
	}
	if opts.Matching == "" {
		opts.Matching = refs.MatchExact
	}
	return &Renderer{opts: opts}
}

// Options returns the normalized options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Result is the output of one render pass.
type Result struct {
	// Blocks are the rendered blocks in document order.
	Blocks []Block `json:"blocks"`

	// Refs is the reference table populated during the pass.
	Refs *refs.Table `json:"-"`

	// Anchors maps heading anchors to their blocks.
	Anchors *refs.AnchorMap `json:"-"`

	// Meta is the document front matter, if any.
	Meta map[string]any `json:"meta,omitempty"`

	// Unresolved lists link keys that had no destination after the pass.
	Unresolved []string `json:"unresolved,omitempty"`
}

// Resolve returns the destination for a link key produced by this render.
func (r *Result) Resolve(key string) (string, bool) {
	if r == nil || r.Refs == nil {
		return "", false
	}
	return r.Refs.Resolve(key)
}

// Render renders doc. It never fails: nodes it cannot handle produce no
// output. A nil document yields an empty result.
func (r *Renderer) Render(ctx context.Context, doc *mdast.Document) *Result {
	p := newPass(r.opts, logging.FromContext(ctx))
	if doc == nil || doc.Root == nil {
		return p.result(nil)
	}

	p.doc = doc
	p.source = doc.Source
	for child := doc.Root.FirstChild; child != nil; child = child.Next {
		p.renderBlock(child, true)
	}

	return p.result(doc.Meta)
}

// RenderSource parses content with parser and renders the result.
func (r *Renderer) RenderSource(ctx context.Context, parser Parser, path string, content []byte) (*Result, error) {
	doc, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return r.Render(ctx, doc), nil
}

// pass carries the state of a single render.
type pass struct {
	opts    Options
	logger  *log.Logger
	doc     *mdast.Document
	source  []byte
	table   *refs.Table
	anchors *refs.AnchorMap
	blocks  []Block

	// keys are the link keys used, in first-use order.
	keys     []string
	seenKeys map[string]bool
}

func newPass(opts Options, logger *log.Logger) *pass {
	return &pass{
		opts:     opts,
		logger:   logger,
		table:    refs.NewTable(refs.WithMatching(opts.Matching)),
		anchors:  refs.NewAnchorMap(),
		seenKeys: make(map[string]bool),
	}
}

// useKey records a link key for the unresolved check at the end of the pass.
func (p *pass) useKey(key string) {
	if p.seenKeys[key] {
		return
	}
	p.seenKeys[key] = true
	p.keys = append(p.keys, key)
}

// skip logs a node that produced no output, with its source position.
func (p *pass) skip(msg string, n *mdast.Node) {
	line, col := p.doc.LineAt(n.Span.Start)
	p.logger.Debug(msg,
		logging.FieldNode, n.Kind,
		logging.FieldPath, p.doc.Path,
		logging.FieldLine, line,
		logging.FieldColumn, col,
	)
}

func (p *pass) result(meta map[string]any) *Result {
	var unresolved []string
	for _, key := range p.keys {
		if _, ok := p.table.Resolve(key); !ok {
			p.logger.Debug("unresolved link", logging.FieldKey, key)
			unresolved = append(unresolved, key)
		}
	}

	return &Result{
		Blocks:     p.blocks,
		Refs:       p.table,
		Anchors:    p.anchors,
		Meta:       meta,
		Unresolved: unresolved,
	}
}

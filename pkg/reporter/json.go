package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdrender/pkg/render"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version    string         `json:"version"`
	Path       string         `json:"path"`
	Blocks     []render.Block `json:"blocks"`
	Links      []JSONLink     `json:"links"`
	Anchors    []JSONAnchor   `json:"anchors"`
	Meta       map[string]any `json:"meta,omitempty"`
	Unresolved []string       `json:"unresolved"`
}

// JSONLink is one entry of the reference table.
type JSONLink struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
}

// JSONAnchor is one generated heading anchor.
type JSONAnchor struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Block int    `json:"block"`
}

// JSONReporter formats rendered documents as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildJSON(doc)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// BuildJSON converts doc to its JSON form. Slices are never nil so that
// empty sections encode as [] rather than null.
func BuildJSON(doc *Document) *JSONOutput {
	output := &JSONOutput{
		Version:    jsonVersion,
		Blocks:     make([]render.Block, 0),
		Links:      make([]JSONLink, 0),
		Anchors:    make([]JSONAnchor, 0),
		Unresolved: make([]string, 0),
	}
	if doc == nil {
		return output
	}
	output.Path = doc.Path

	result := doc.Result
	if result == nil {
		return output
	}

	output.Blocks = append(output.Blocks, result.Blocks...)
	output.Meta = result.Meta
	output.Unresolved = append(output.Unresolved, result.Unresolved...)

	if result.Refs != nil {
		for _, entry := range result.Refs.Entries() {
			output.Links = append(output.Links, JSONLink{
				Label:       entry.Label,
				Destination: entry.Destination,
			})
		}
	}
	if result.Anchors != nil {
		for _, anchor := range result.Anchors.All() {
			output.Anchors = append(output.Anchors, JSONAnchor{
				ID:    anchor.ID,
				Text:  anchor.Text,
				Block: anchor.Block,
			})
		}
	}
	return output
}

package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/reporter"
)

func renderDoc(t *testing.T, content string) *reporter.Document {
	t.Helper()

	result, err := render.New(render.DefaultOptions()).RenderSource(
		context.Background(), goldmark.New(goldmark.FlavorGFM), "doc.md", []byte(content))
	require.NoError(t, err)
	return &reporter.Document{Path: "doc.md", Result: result}
}

func report(t *testing.T, opts reporter.Options, doc *reporter.Document) string {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	require.NoError(t, rep.Report(context.Background(), doc))
	return buf.String()
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  config.OutputFormat
		want    any
		wantErr bool
	}{
		{name: "empty defaults to terminal", format: "", want: &reporter.TerminalReporter{}},
		{name: "terminal", format: config.FormatTerminal, want: &reporter.TerminalReporter{}},
		{name: "plain", format: config.FormatPlain, want: &reporter.PlainReporter{}},
		{name: "json", format: config.FormatJSON, want: &reporter.JSONReporter{}},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported format")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, rep)
		})
	}
}

func TestNew_DefaultWriter(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.Options{Format: config.FormatPlain})
	require.NoError(t, err)
	assert.NotNil(t, rep)
}

func TestPlainReporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		width   int
		want    string
	}{
		{
			name:    "heading and paragraph",
			content: "# Title\n\nHello **world**.\n",
			width:   80,
			want:    "# Title\n\nHello world.\n",
		},
		{
			name:    "resolved link shows destination",
			content: "See [docs](https://example.com/docs).\n",
			width:   80,
			want:    "See docs <https://example.com/docs>.\n",
		},
		{
			name:    "autolink is not repeated",
			content: "<https://example.com>\n",
			width:   80,
			want:    "https://example.com\n",
		},
		{
			name:    "unresolved reference stays bare",
			content: "A [Thing][KEY] link.\n\n[key]: http://x\n",
			width:   80,
			want:    "A Thing link.\n",
		},
		{
			name:    "linked badge shows its target",
			content: "[![build](http://ci/badge.svg)](http://ci/job)\n",
			width:   80,
			want:    "[image: http://ci/badge.svg] <http://ci/job>\n",
		},
		{
			name:    "image placeholder",
			content: "Logo ![alt](logo.png) here.\n",
			width:   80,
			want:    "Logo [image: logo.png] here.\n",
		},
		{
			name:    "wraps paragraphs",
			content: "one two three four five\n",
			width:   10,
			want:    "one two\nthree four\nfive\n",
		},
		{
			name:    "blockquote prefix",
			content: "> quoted words here\n",
			width:   80,
			want:    "> quoted words here\n",
		},
		{
			name:    "code block indented and never wrapped",
			content: "```go\nfunc main() { println(\"hello\") }\n```\n",
			width:   10,
			want:    "    func main() { println(\"hello\") }\n",
		},
		{
			name:    "nested list",
			content: "- a\n  - b\n- c\n",
			width:   80,
			want:    "- a\n  - b\n- c\n",
		},
		{
			name:    "list hanging indent",
			content: "- alpha beta gamma\n",
			width:   12,
			want:    "- alpha beta\n  gamma\n",
		},
		{
			name:    "rule",
			content: "a\n\n---\n\nb\n",
			width:   80,
			want:    "a\n\n---\n\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := report(t, reporter.Options{Format: config.FormatPlain, Width: tt.width}, renderDoc(t, tt.content))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlainReporter_NilDocument(t *testing.T) {
	t.Parallel()

	assert.Empty(t, report(t, reporter.Options{Format: config.FormatPlain}, nil))
}

func TestReporter_ShowPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.OutputFormat
		want   string
	}{
		{
			name:   "plain",
			format: config.FormatPlain,
			want:   "==> a.md <==\n\nFirst.\n\n==> b.md <==\n\nSecond.\n",
		},
		{
			name:   "terminal",
			format: config.FormatTerminal,
			want:   "── a.md\n\nFirst.\n\n── b.md\n\nSecond.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer:   &buf,
				Format:   tt.format,
				Color:    "never",
				Width:    40,
				ShowPath: true,
			})
			require.NoError(t, err)

			first := renderDoc(t, "First.\n")
			first.Path = "a.md"
			second := renderDoc(t, "Second.\n")
			second.Path = "b.md"

			require.NoError(t, rep.Report(context.Background(), first))
			require.NoError(t, rep.Report(context.Background(), second))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTerminalReporter(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{
		Format:     config.FormatTerminal,
		Color:      "never",
		Width:      40,
		Hyperlinks: true,
	}, renderDoc(t, "# Title\n\nSee [docs](https://example.com).\n"))

	assert.Contains(t, got, "# Title")
	assert.Contains(t, got, "\x1b]8;;https://example.com\x1b\\docs\x1b]8;;\x1b\\")
	assert.NotContains(t, got, "\x1b[", "color disabled")
}

func TestTerminalReporter_NoHyperlinks(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{
		Format: config.FormatTerminal,
		Color:  "never",
		Width:  40,
	}, renderDoc(t, "See [docs](https://example.com).\n"))

	assert.Equal(t, "See docs.\n", got)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	content := "---\ntitle: Notes\n---\n# Intro\n\nRead [the guide][guide] and [this][Gone].\n\n[guide]: https://example.com/guide\n[gone]: https://example.com/gone\n"
	got := report(t, reporter.Options{Format: config.FormatJSON}, renderDoc(t, content))

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(got), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, "doc.md", output.Path)
	require.Len(t, output.Blocks, 2)
	assert.Equal(t, render.BlockHeading, output.Blocks[0].Kind)
	assert.Equal(t, "Intro", output.Blocks[0].Text.Text)
	assert.Equal(t, "Notes", output.Meta["title"])
	assert.Contains(t, output.Links, reporter.JSONLink{Label: "guide", Destination: "https://example.com/guide"})
	require.Len(t, output.Anchors, 1)
	assert.Equal(t, "intro", output.Anchors[0].ID)
	assert.Equal(t, []string{"this"}, output.Unresolved)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{Format: config.FormatJSON, Compact: true}, renderDoc(t, "hello\n"))

	assert.Equal(t, 1, strings.Count(got, "\n"), "compact output is one line")
	assert.True(t, json.Valid([]byte(got)))
}

func TestBuildJSON_Empty(t *testing.T) {
	t.Parallel()

	output := reporter.BuildJSON(nil)
	data, err := json.Marshal(output)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"blocks":[]`)
	assert.Contains(t, string(data), `"links":[]`)
	assert.Contains(t, string(data), `"unresolved":[]`)
	assert.NotContains(t, string(data), "null")
}

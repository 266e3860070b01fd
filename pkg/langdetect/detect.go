// Package langdetect names the language of code blocks. A fence info string
// is normalized through go-enry's alias table; fences without one can have
// their body classified by shebang, a set of strong textual patterns and,
// last, go-enry's classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned by Detect when no language could be determined.
const Text = "text"

// Language tags produced by the pattern detectors.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates restricts the go-enry classifier to languages that
// commonly appear in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// patternDetectors are tried in order of specificity.
var patternDetectors = []func(content []byte) string{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectShellSession,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// Detect returns the language tag for code content, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, detect := range patternDetectors {
		if lang := detect(content); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Guess is Detect for callers that want an empty string instead of Text.
func Guess(content []byte) string {
	if lang := Detect(content); lang != Text {
		return lang
	}
	return ""
}

// FromInfo returns the language named by a fence info string. The first
// word is used, with surrounding braces and a leading dot removed, and
// known aliases map to their canonical tag ("golang" becomes "go").
// Unknown names are returned lowercased.
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(strings.Trim(fields[0], "{}"), ".")
	if name == "" {
		return ""
	}

	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return normalize(lang)
	}
	return strings.ToLower(name)
}

func detectGo(content []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(content []byte) string {
	src := string(content)
	if strings.Contains(src, "def ") && strings.Contains(src, "):") {
		return langPython
	}
	// Python imports, but not Go's "import (".
	if strings.Contains(src, "import ") && !strings.Contains(src, "import (") {
		if strings.Contains(src, "from ") || strings.HasPrefix(strings.TrimSpace(src), "import ") {
			return langPython
		}
	}
	if strings.Contains(src, "__name__") || strings.Contains(src, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(content []byte) string {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func detectSQL(content []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return langSQL
		}
	}
	return ""
}

// detectShellSession recognizes pasted terminal sessions where every
// command line starts with a "$ " prompt.
func detectShellSession(content []byte) string {
	prompts := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("$ ")) {
			prompts++
		}
	}
	if prompts > 0 && bytes.HasPrefix(bytes.TrimSpace(content), []byte("$ ")) {
		return langBash
	}
	return ""
}

func detectRust(content []byte) string {
	src := string(content)
	if strings.Contains(src, "fn main()") ||
		strings.Contains(src, "println!") ||
		strings.Contains(src, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(content []byte) string {
	src := string(content)
	if strings.Contains(src, "=>") ||
		strings.Contains(src, "const ") ||
		strings.Contains(src, "let ") ||
		strings.Contains(src, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML counts "key: value" lines and root list items.
func detectYAML(content []byte) string {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}

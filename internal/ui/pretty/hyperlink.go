package pretty

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// Hyperlink wraps text in an OSC 8 hyperlink to url.
func Hyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return osc8Start + url + "\x1b\\" + text + osc8End
}

// DetectHyperlinkSupport returns true if the current terminal likely
// understands OSC 8 hyperlinks.
func DetectHyperlinkSupport() bool {
	return hyperlinkSupport(os.Getenv)
}

func hyperlinkSupport(getenv func(string) string) bool {
	if getenv("OSC8") == "0" {
		return false
	}
	if getenv("DOMTERM") != "" || getenv("WT_SESSION") != "" {
		return true
	}
	switch getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode", "ghostty":
		return true
	}
	if strings.Contains(strings.ToLower(getenv("TERM")), "kitty") {
		return true
	}
	if vte := getenv("VTE_VERSION"); vte != "" {
		if n, err := strconv.Atoi(vte); err == nil && n >= 5000 {
			return true
		}
	}
	return false
}

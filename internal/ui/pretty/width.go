package pretty

import (
	"io"
	"os"

	"github.com/muesli/reflow/ansi"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// TerminalWidth returns the column count of w when it is a terminal,
// otherwise fallback.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// textWidth is the number of terminal columns s occupies, ignoring ANSI
// sequences.
func textWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Style selects how a Listing is rendered.
type Style int

const (
	// StylePlain writes one tab-separated line per row, for pipes and scripts.
	StylePlain Style = iota
	// StyleRich renders a bordered, colored table for terminals.
	StyleRich
)

// DetectStyle returns StyleRich only when w is a terminal and neither
// NO_COLOR, CI nor FSPROC_PLAIN is set.
func DetectStyle(w io.Writer) Style {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" || os.Getenv("FSPROC_PLAIN") == "1" {
		return StylePlain
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return StylePlain
	}
	return StyleRich
}

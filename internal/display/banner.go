// Package display provides the startup banner, separators, and value
// formatting helpers for terminal output.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/audiomaster/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `    _             _ _       __  __           _
   / \  _   _  __| (_) ___ |  \/  | __ _ ___| |_ ___ _ __
  / _ \| | | |/ _`+"`"+` | |/ _ \| |\/| |/ _`+"`"+` / __| __/ _ \ '__|
 / ___ \ |_| | (_| | | (_) | |  | | (_| \__ \ ||  __/ |
/_/   \_\__,_|\__,_|_|\___/|_|  |_|\__,_|___/\__\___|_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}

// Separator returns the horizontal rule used between interactive phases.
func Separator() string {
	return "\n" + strings.Repeat("=", 60) + "\n"
}

// PrintSeparator writes the phase separator to stdout.
func PrintSeparator() {
	fmt.Fprintln(os.Stdout, Separator())
}

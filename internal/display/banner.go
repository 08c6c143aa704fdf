package display

import (
	"fmt"
	"os"

	"github.com/slateblue/clipconv/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  ____ _ _        ____
 / ___| (_)_ __  / ___|___  _ ____   __
| |   | | | '_ \| |   / _ \| '_ \ \ / /
| |___| | | |_) | |__| (_) | | | \ V /
 \____|_|_| .__/ \____\___/|_| |_|\_/
          |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}

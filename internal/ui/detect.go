package ui

import (
	"os"

	"golang.org/x/term"
)

// StyledOutput reports whether f should receive colored output.
//
// Returns false if:
//   - NO_COLOR is set (accessibility/automation indicator)
//   - CI is set (common CI/CD convention)
//   - JOINTABLES_PLAIN=1 is set
//   - f is not a terminal (redirected to a file or pipe)
func StyledOutput(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" || os.Getenv("JOINTABLES_PLAIN") == "1" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Package internal holds the ibdprep CLI's output helpers: colored
// console printing gated on a quiet/no-color flag, mirroring the
// teacher CLI's internal.PrintInfo/PrintError/PrintSuccess/PrintWarning
// convention (cmd/gedcom/commands/*.go).
package internal

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	quiet      bool
	colorReady bool
)

// SetQuietMode suppresses PrintInfo/PrintSuccess output (warnings and
// errors still print).
func SetQuietMode(q bool) {
	quiet = q
}

// InitColor enables or disables fatih/color globally for this process.
func InitColor(enabled bool) {
	color.NoColor = !enabled
	colorReady = true
}

// PrintInfo writes an informational line to stdout, suppressed in quiet
// mode.
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf(format, args...)
}

// PrintSuccess writes a green success line to stdout, suppressed in
// quiet mode.
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	color.New(color.FgGreen).Printf(format, args...)
}

// PrintWarning writes a yellow warning line to stderr.
func PrintWarning(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format, args...)
}

// PrintError writes a red error line to stderr. Never suppressed.
func PrintError(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format, args...)
}

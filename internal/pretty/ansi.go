// ANSI escape codes
package pretty

import (
	"github.com/fatih/color"
)

// Controls whether color codes are output. Overrides the automatic detection
// done by the color package.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

var (
	Bold = color.New(color.Bold).SprintFunc()
	Dim  = color.New(color.Faint).SprintFunc()

	Green = color.New(color.FgGreen).SprintFunc()
)

// Always output, since it is only used for progress indicators.
const EraseLine string = "\x1b[2K"

/*
* Utility functions for formatting output.
 */
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Print string with max length, truncating with ellipsis.
func Abbrev(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	if max < 1 {
		return ""
	}

	return string(runes[:max-1]) + "…"
}

// Integer with thousands separators, e.g. 1,024.
func Number(n int) string {
	return humanize.Comma(int64(n))
}

// Share of a total, two decimal places, e.g. 33.33%.
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

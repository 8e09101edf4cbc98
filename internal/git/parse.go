package git

import (
	"strings"
)

// Number of whitespace-separated fields that follow the author name inside
// the parenthesized blame metadata: date, time, timezone and line number.
const trailingBlameFields = 4

// A single line of source paired with whoever last modified it.
type Line struct {
	Identity string // Normalized author name, may be empty
	Code     string // Source text following the blame metadata
	Raw      string // Unmodified line of blame output
}

// Parses a line of `git blame` output, e.g.
//
//	^1f0a3c2 (Will Sackfield 2015-06-01 12:00:00 +0100 12) - (void)testFoo
//
// The code portion is everything after the first ")". If there is no ")" the
// whole line is treated as code.
func ParseBlameLine(raw string) Line {
	code := raw
	if i := strings.IndexByte(raw, ')'); i >= 0 {
		code = raw[i+1:]
	}

	return Line{
		Identity: ExtractIdentity(raw),
		Code:     code,
		Raw:      raw,
	}
}

// Extracts the author identity from the parenthesized blame metadata.
//
// All fields inside the parentheses except the trailing date, time, timezone
// and line number make up the name. A line without "(" or with too few fields
// yields the empty identity, which is still a valid tally key.
func ExtractIdentity(raw string) string {
	start := strings.IndexByte(raw, '(')
	if start < 0 {
		return ""
	}

	info := raw[start+1:]
	if end := strings.IndexByte(info, ')'); end >= 0 {
		info = info[:end]
	}

	fields := strings.Fields(info)
	if len(fields) <= trailingBlameFields {
		return ""
	}

	return strings.Join(fields[:len(fields)-trailingBlameFields], " ")
}

// Parses every line of blame output.
func ParseBlame(raw []string) []Line {
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, ParseBlameLine(r))
	}

	return lines
}

package pretty

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

func AllowDynamic(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Rewrites a single status line in place.
type StatusLine struct {
	w       io.Writer
	written bool
}

func NewStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{w: w}
}

func (s *StatusLine) Update(format string, args ...any) {
	fmt.Fprintf(s.w, "%s\r%s", EraseLine, Dim(fmt.Sprintf(format, args...)))
	s.written = true
}

func (s *StatusLine) Clear() {
	if s.written {
		fmt.Fprintf(s.w, "%s\r", EraseLine)
		s.written = false
	}
}

/*
* Recognizes test declarations in attributed source lines.
*
* Recognition is lexical. Each dialect looks at the shape of individual lines
* with whitespace removed, so a signature split over several lines is not
* recognized.
 */
package dialect

import (
	"strings"
	"unicode"

	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

// A language/test-framework combination and the convention it uses to
// declare a test.
type Dialect interface {
	Name() string
	Extensions() []string // Including the leading ".", matched exactly

	// Counts test declarations, attributing each to the identity of the line
	// it was recognized on. Must not modify its arguments.
	Count(source []byte, lines []git.Line) tally.Counts
}

// Dispatches files to dialects by extension.
type Registry struct {
	dialects []Dialect
	byExt    map[string][]Dialect
}

func NewRegistry(dialects ...Dialect) *Registry {
	r := Registry{
		dialects: dialects,
		byExt:    map[string][]Dialect{},
	}

	for _, d := range dialects {
		for _, ext := range d.Extensions() {
			r.byExt[ext] = append(r.byExt[ext], d)
		}
	}

	return &r
}

// Registry with every built-in dialect.
//
// superclasses are alternate XCTestCase base classes that also mark a file
// as an XCTest suite.
func Default(superclasses []string) *Registry {
	return NewRegistry(
		XCTest{Superclasses: superclasses},
		JUnit{},
		BoostTest{},
		Python(),
		NUnit{},
		PHPUnit(),
	)
}

// All dialects that apply to a file extension, in registration order.
//
// An extension may map to more than one dialect (e.g. ".mm" is both
// Objective-C++ XCTest and Boost.Test); each of them should run.
func (r *Registry) ForExtension(ext string) []Dialect {
	return r.byExt[ext]
}

func (r *Registry) Supports(ext string) bool {
	return len(r.byExt[ext]) > 0
}

func (r *Registry) Dialects() []Dialect {
	return r.dialects
}

// Runs every dialect registered for ext and sums their counts.
func (r *Registry) Count(
	ext string,
	source []byte,
	lines []git.Line,
) tally.Counts {
	counts := tally.Counts{}
	for _, d := range r.ForExtension(ext) {
		counts = tally.Merge(counts, d.Count(source, lines))
	}

	return counts
}

// Parses a comma-separated list of class names.
//
// All whitespace is removed before splitting and empty names are dropped.
func ParseSuperclasses(s string) []string {
	names := []string{}
	for _, name := range strings.Split(stripSpace(s), ",") {
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

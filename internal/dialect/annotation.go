package dialect

import (
	"strings"

	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

// Annotation-style dialects declare a test with a marker on one line and the
// method signature on a following line.
type annotationState int

const (
	idle annotationState = iota
	awaitingDeclaration
)

func (s annotationState) String() string {
	switch s {
	case idle:
		return "idle"
	case awaitingDeclaration:
		return "awaiting_declaration"
	default:
		return "unknown"
	}
}

// Given the current state and a line of code with whitespace removed, returns
// the next state and whether the line declares a test.
type transition func(state annotationState, code string) (annotationState, bool)

func countAnnotated(lines []git.Line, step transition) tally.Counts {
	counts := tally.Counts{}
	state := idle

	for _, line := range lines {
		var isTest bool
		state, isTest = step(state, stripSpace(line.Code))
		if isTest {
			counts.Add(line.Identity, 1)
		}
	}

	return counts
}

// JUnit tests in Java and Kotlin.
//
// The line after @Test is always taken to be the declaration. Old-style
// JUnit 3 methods named "test..." are recognized without an annotation.
type JUnit struct{}

func (JUnit) Name() string {
	return "junit"
}

func (JUnit) Extensions() []string {
	return []string{".java", ".kt"}
}

func (j JUnit) Count(_ []byte, lines []git.Line) tally.Counts {
	return countAnnotated(lines, j.step)
}

func (JUnit) step(state annotationState, code string) (annotationState, bool) {
	switch {
	case state == awaitingDeclaration:
		return idle, true
	case strings.HasPrefix(code, "publicvoidtest"):
		return idle, true
	case strings.HasPrefix(code, "@Test"):
		return awaitingDeclaration, false
	default:
		return idle, false
	}
}

// NUnit tests in C#.
//
// Other attributes may be stacked between [Test] and the declaration. A
// non-public declaration is not discoverable, so reaching the method body
// first abandons the pending test.
type NUnit struct{}

func (NUnit) Name() string {
	return "nunit"
}

func (NUnit) Extensions() []string {
	return []string{".cs"}
}

func (n NUnit) Count(_ []byte, lines []git.Line) tally.Counts {
	return countAnnotated(lines, n.step)
}

func (NUnit) step(state annotationState, code string) (annotationState, bool) {
	if state == awaitingDeclaration {
		if strings.Contains(code, "{") {
			return idle, false
		}

		if strings.HasPrefix(code, "public") {
			return idle, true
		}

		return awaitingDeclaration, false
	}

	if strings.HasPrefix(code, "[Test]") {
		return awaitingDeclaration, false
	}

	return idle, false
}

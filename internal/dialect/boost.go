package dialect

import (
	"strings"

	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

var boostTestMacros = []string{
	"BOOST_AUTO_TEST_CASE",
	"BOOST_FIXTURE_TEST_CASE",
}

// Boost.Test cases in C++ and Objective-C++.
type BoostTest struct{}

func (BoostTest) Name() string {
	return "boost"
}

func (BoostTest) Extensions() []string {
	return []string{".cpp", ".mm"}
}

func (BoostTest) Count(_ []byte, lines []git.Line) tally.Counts {
	counts := tally.Counts{}

	for _, line := range lines {
		for _, macro := range boostTestMacros {
			if strings.Contains(line.Raw, macro) {
				counts.Add(line.Identity, 1)
				break
			}
		}
	}

	return counts
}

package dialect

import (
	"strings"

	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

// A dialect where tests are found purely by naming convention: the code on a
// line, with whitespace removed, starts with Prefix.
type Prefix struct {
	DialectName string
	Exts        []string
	Prefix      string
}

// unittest/pytest methods: "def test...".
func Python() Prefix {
	return Prefix{
		DialectName: "python",
		Exts:        []string{".py"},
		Prefix:      "deftest",
	}
}

// PHPUnit methods: "public function test...".
func PHPUnit() Prefix {
	return Prefix{
		DialectName: "phpunit",
		Exts:        []string{".php"},
		Prefix:      "publicfunctiontest",
	}
}

func (p Prefix) Name() string {
	return p.DialectName
}

func (p Prefix) Extensions() []string {
	return p.Exts
}

func (p Prefix) Count(_ []byte, lines []git.Line) tally.Counts {
	counts := tally.Counts{}

	for _, line := range lines {
		if strings.HasPrefix(stripSpace(line.Code), p.Prefix) {
			counts.Add(line.Identity, 1)
		}
	}

	return counts
}

package dialect

import (
	"bytes"
	"strings"

	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

const xctestBaseClass = "XCTestCase"

// XCTest tests in Objective-C.
//
// Only files that mention XCTestCase (or one of Superclasses) anywhere are
// scanned. The mention need not be on any line that is later counted.
type XCTest struct {
	Superclasses []string
}

func (XCTest) Name() string {
	return "xctest"
}

func (XCTest) Extensions() []string {
	return []string{".m", ".mm"}
}

func (x XCTest) Count(source []byte, lines []git.Line) tally.Counts {
	counts := tally.Counts{}
	if !x.isTestSuite(source) {
		return counts
	}

	for _, line := range lines {
		if strings.Contains(stripSpace(line.Raw), "-(void)test") {
			counts.Add(line.Identity, 1)
		}
	}

	return counts
}

func (x XCTest) isTestSuite(source []byte) bool {
	if bytes.Contains(source, []byte(xctestBaseClass)) {
		return true
	}

	for _, class := range x.Superclasses {
		if class != "" && bytes.Contains(source, []byte(class)) {
			return true
		}
	}

	return false
}

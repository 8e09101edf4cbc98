package pretty_test

import (
	"strings"
	"testing"

	"github.com/sinclairtarget/testing-game/internal/pretty"
)

func TestStatusLine(t *testing.T) {
	pretty.SetColorEnabled(false)

	var b strings.Builder
	status := pretty.NewStatusLine(&b)
	status.Update("Scanned %d files", 3)
	status.Update("Scanned %d files", 4)
	status.Clear()

	expected := pretty.EraseLine + "\rScanned 3 files" +
		pretty.EraseLine + "\rScanned 4 files" +
		pretty.EraseLine + "\r"
	if b.String() != expected {
		t.Fatalf("expected %q, but got: %q", expected, b.String())
	}
}

func TestStatusLineClearWithoutUpdate(t *testing.T) {
	var b strings.Builder
	pretty.NewStatusLine(&b).Clear()

	if b.Len() != 0 {
		t.Fatalf("expected no output, but got: %q", b.String())
	}
}

package git_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/repotest"
)

const javaSource = `public class FooTest {
    @Test
    public void testAdd() {
    }
}
`

func TestGoGitSourceBlame(t *testing.T) {
	repo := repotest.New(t)
	path := repo.Write("src/FooTest.java", javaSource)
	repo.Commit("Bob Builder")

	source := git.NewGoGitSource()
	lines, err := source.Blame(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 5)

	for _, line := range lines {
		assert.Equal(t, "Bob Builder", line.Identity)
	}

	assert.Equal(t, "     @Test", lines[1].Code)
}

func TestGoGitSourceAttributesLastAuthor(t *testing.T) {
	repo := repotest.New(t)
	repo.Write("a.py", "def test_one(self):\n    pass\n")
	repo.Commit("Alice")
	path := repo.Write("a.py", "def test_one(self):\n    pass\ndef test_two(self):\n")
	repo.Commit("Carol")

	source := git.NewGoGitSource()
	lines, err := source.Blame(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "Alice", lines[0].Identity)
	assert.Equal(t, "Carol", lines[2].Identity)
}

func TestGoGitSourceUntrackedFile(t *testing.T) {
	repo := repotest.New(t)
	repo.Write("tracked.py", "x = 1\n")
	repo.Commit("Alice")
	path := repo.Write("untracked.py", "def test_x(self):\n")

	_, err := git.NewGoGitSource().Blame(context.Background(), path)
	assert.Error(t, err)
}

func TestCommandSourceBlame(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	repo := repotest.New(t)
	path := repo.Write("FooTest.java", javaSource)
	repo.Commit("Bob Builder")

	lines, err := git.CommandSource{}.Blame(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, "Bob Builder", lines[2].Identity)
	assert.Contains(t, lines[2].Code, "public void testAdd()")
}

func TestCommandSourceOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	_, err := git.CommandSource{}.Blame(
		context.Background(),
		t.TempDir()+"/missing.java",
	)
	assert.Error(t, err)
}

func TestDetectIgnoreRevsFile(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	repo := repotest.New(t)
	repo.Write("pkg/test_a.py", "def test_a():\n")
	repo.Commit("Alice")

	p, err := git.DetectIgnoreRevsFile(context.Background(), repo.Dir+"/pkg")
	require.NoError(t, err)
	assert.Equal(t, "", p)

	expected := repo.Write(".git-blame-ignore-revs", "")
	p, err = git.DetectIgnoreRevsFile(context.Background(), repo.Dir+"/pkg")
	require.NoError(t, err)
	assert.Equal(t, expected, p)
}

func TestCommandSourceIgnoresRevs(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	repo := repotest.New(t)
	path := repo.Write("test_a.py", "def test_a():\n")
	repo.Commit("Alice")
	repo.Write("test_a.py", "def  test_a():\n")
	reformat := repo.Commit("Reformat Bot")
	ignoreRevs := repo.Write(".git-blame-ignore-revs", reformat+"\n")

	lines, err := git.CommandSource{}.Blame(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Reformat Bot", lines[0].Identity)

	source := git.CommandSource{IgnoreRevsFile: ignoreRevs}
	lines, err = source.Blame(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Alice", lines[0].Identity)
}

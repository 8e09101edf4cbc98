// Helpers for building throwaway Git repositories in tests.
//
// Repositories are created with go-git so tests don't depend on a git binary
// or on the developer's git config.
package repotest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type Repo struct {
	Dir  string
	t    testing.TB
	repo *gogit.Repository
	when time.Time
}

// Initializes an empty repository in a temporary directory.
func New(t testing.TB) *Repo {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("could not resolve temp dir: %v", err)
	}

	r, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("could not init repository: %v", err)
	}

	return &Repo{
		Dir:  dir,
		t:    t,
		repo: r,
		when: time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

// Writes a file relative to the repository root, creating parent dirs.
func (r *Repo) Write(path string, content string) string {
	r.t.Helper()

	abs := filepath.Join(r.Dir, path)
	err := os.MkdirAll(filepath.Dir(abs), 0o755)
	if err != nil {
		r.t.Fatalf("could not create dir for %s: %v", path, err)
	}

	err = os.WriteFile(abs, []byte(content), 0o644)
	if err != nil {
		r.t.Fatalf("could not write %s: %v", path, err)
	}

	return abs
}

// Stages everything in the working tree and commits it as author. Returns the
// commit hash.
func (r *Repo) Commit(author string) string {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("could not get worktree: %v", err)
	}

	err = wt.AddWithOptions(&gogit.AddOptions{All: true})
	if err != nil {
		r.t.Fatalf("could not stage files: %v", err)
	}

	r.when = r.when.Add(time.Hour)
	sig := &object.Signature{
		Name:  author,
		Email: "test@example.com",
		When:  r.when,
	}

	hash, err := wt.Commit("commit by "+author, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		r.t.Fatalf("could not commit: %v", err)
	}

	return hash.String()
}

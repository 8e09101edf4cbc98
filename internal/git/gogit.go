package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const blameDateFormat = "2006-01-02 15:04:05 -0700"

// Blames files in-process using go-git.
//
// Unlike `git blame`, this attributes the version of the file at HEAD, so
// uncommitted changes are ignored. Repositories are opened once and reused.
type GoGitSource struct {
	mu    sync.Mutex
	repos map[string]*openRepo // Keyed by directory of blamed file
}

type openRepo struct {
	mu     sync.Mutex // go-git repositories are not safe for concurrent use
	root   string
	commit *object.Commit
}

func NewGoGitSource() *GoGitSource {
	return &GoGitSource{repos: map[string]*openRepo{}}
}

func (s *GoGitSource) Blame(ctx context.Context, path string) (_ []Line, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error blaming %s: %w", path, err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	path, err = filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}

	repo, err := s.repoFor(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(repo.root, path)
	if err != nil {
		return nil, err
	}

	repo.mu.Lock()
	result, err := gogit.Blame(repo.commit, filepath.ToSlash(rel))
	repo.mu.Unlock()
	if err != nil {
		return nil, err
	}

	raw := make([]string, 0, len(result.Lines))
	for i, l := range result.Lines {
		raw = append(raw, formatBlameLine(l, i+1))
	}

	return ParseBlame(raw), nil
}

func (s *GoGitSource) repoFor(dir string) (*openRepo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if repo, ok := s.repos[dir]; ok {
		return repo, nil
	}

	r, err := gogit.PlainOpenWithOptions(
		dir,
		&gogit.PlainOpenOptions{DetectDotGit: true},
	)
	if err != nil {
		return nil, fmt.Errorf("could not open repository: %w", err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("could not get worktree: %w", err)
	}

	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	// Share one handle between all directories of the same repository
	for _, repo := range s.repos {
		if repo.root == root {
			s.repos[dir] = repo
			return repo, nil
		}
	}

	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("could not resolve HEAD: %w", err)
	}

	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("could not read HEAD commit: %w", err)
	}

	logger().Debug("opened repository", "root", root, "head", head.Hash())

	repo := &openRepo{root: root, commit: commit}
	s.repos[dir] = repo
	return repo, nil
}

// Renders a go-git blame line in the same shape `git blame` prints.
func formatBlameLine(l *gogit.Line, lineno int) string {
	name := l.AuthorName
	if name == "" {
		name = l.Author
	}

	// Parentheses in a name would confuse ExtractIdentity
	name = strings.NewReplacer("(", "", ")", "").Replace(name)

	return fmt.Sprintf(
		"%s (%s %s %d) %s",
		l.Hash.String()[:8],
		name,
		l.Date.Format(blameDateFormat),
		lineno,
		l.Text,
	)
}

/*
* Wraps access to attribution data needed from Git.
*
* By default we invoke Git directly as a subprocess and parse the output of
* git blame. GoGitSource does the same in-process for environments without a
* git binary.
 */
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sinclairtarget/testing-game/internal/git/cmd"
)

var ErrEmptyBlame = errors.New("git blame produced no lines")

// Produces attributed lines for a file.
//
// Implementations must be safe to call from multiple goroutines.
type BlameSource interface {
	Blame(ctx context.Context, path string) ([]Line, error)
}

// Blames files by running `git blame` as a subprocess.
type CommandSource struct {
	IgnoreRevsFile string
}

func (s CommandSource) Blame(ctx context.Context, path string) (_ []Line, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error blaming %s: %w", path, err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	subprocess, err := cmd.RunBlame(
		ctx,
		filepath.Dir(path),
		filepath.Base(path),
		cmd.BlameOpts{IgnoreRevsFile: s.IgnoreRevsFile},
	)
	if err != nil {
		return nil, err
	}

	var raw []string
	lines, finish := subprocess.StdoutLines()
	for line := range lines {
		raw = append(raw, line)
	}

	err = finish()
	if err != nil {
		// Don't leave git blocked on a full pipe
		cancel()
		subprocess.Wait()
		return nil, err
	}

	err = subprocess.Wait()
	if err != nil {
		return nil, err
	}

	return ParseBlame(raw), nil
}

package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sinclairtarget/testing-game/internal/git/cmd"
)

// Returns the root of the working tree containing dir.
func TopLevel(ctx context.Context, dir string) (_ string, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error finding repository root: %w", err)
		}
	}()

	subprocess, err := cmd.RunRevParseTopLevel(ctx, dir)
	if err != nil {
		return "", err
	}

	p, err := subprocess.StdoutText()
	if err != nil {
		return "", err
	}

	err = subprocess.Wait()
	if err != nil {
		return "", err
	}

	return p, nil
}

// NOTE: We do NOT respect the blame.ignoreRevsFile option in the git config
// here, we just assume the conventional path for this file in the repo.
func IgnoreRevsPath(gitRootPath string) string {
	path := filepath.Join(gitRootPath, ".git-blame-ignore-revs")
	return path
}

// Returns the path of the repository's ignore-revs file, or the empty string
// if the repository doesn't have one.
func DetectIgnoreRevsFile(ctx context.Context, dir string) (string, error) {
	root, err := TopLevel(ctx, dir)
	if err != nil {
		return "", err
	}

	p := IgnoreRevsPath(root)
	_, err = os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		logger().Debug("no ignore revs file", "path", p)
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("error checking for ignore revs file: %w", err)
	}

	return p, nil
}

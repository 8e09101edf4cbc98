/*
* Handles invoking Git as a subprocess.
 */
package cmd

import (
	"context"
	"fmt"
	"slices"
)

type BlameOpts struct {
	IgnoreRevsFile string // Passed as --ignore-revs-file when non-empty
}

// Turn into CLI args we can pass to `git blame`
func (o BlameOpts) ToArgs() []string {
	args := []string{}

	if o.IgnoreRevsFile != "" {
		args = append(args, "--ignore-revs-file", o.IgnoreRevsFile)
	}

	return args
}

// Runs git blame on a single file.
//
// The subprocess runs in dir so that files outside the current working
// directory's repository can still be blamed.
func RunBlame(
	ctx context.Context,
	dir string,
	file string,
	opts BlameOpts,
) (*Subprocess, error) {
	baseArgs := []string{
		"blame",
		"--no-progress",
	}

	args := slices.Concat(baseArgs, opts.ToArgs(), []string{"--", file})

	subprocess, err := run(ctx, dir, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run git blame: %w", err)
	}

	return subprocess, nil
}

func RunRevParseTopLevel(ctx context.Context, dir string) (*Subprocess, error) {
	var args = []string{"rev-parse", "--show-toplevel"}

	subprocess, err := run(ctx, dir, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run git rev-parse: %w", err)
	}

	return subprocess, nil
}

// Walks a source tree, blames candidate files and counts their tests.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sinclairtarget/testing-game/internal/concurrent"
	"github.com/sinclairtarget/testing-game/internal/dialect"
	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

type Options struct {
	Root       string
	Registry   *dialect.Registry
	Source     git.BlameSource
	Workers    int      // <= 0 means one per CPU
	Exclude    []string // doublestar patterns relative to Root
	SkipVendor bool
	Progress   func(Stats) // Optional, called after each file
}

type Stats struct {
	Files   int // Candidate files processed
	Skipped int // Files that contributed nothing because of an error
}

type Result struct {
	Counts tally.Counts
	Stats  Stats
}

// Scans every candidate file under the root and returns the merged counts.
//
// Files that can't be read or blamed are skipped. The scan only fails if the
// root can't be walked or ctx is cancelled.
func Run(ctx context.Context, opts Options) (_ Result, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error scanning %s: %w", opts.Root, err)
		}
	}()

	start := time.Now()

	files, finish := Walk(opts.Root, Filter{
		Supports:   opts.Registry.Supports,
		Exclude:    opts.Exclude,
		SkipVendor: opts.SkipVendor,
	})

	var stats Stats
	counts, err := concurrent.Fold(ctx, concurrent.Whoperation[File, tally.Counts]{
		Items:   files,
		Workers: opts.Workers,
		Tally: func(ctx context.Context, f File) (tally.Counts, error) {
			return ScanFile(ctx, opts.Registry, opts.Source, f)
		},
		Merge: tally.Merge,
		Failed: func(f File, err error) {
			stats.Skipped += 1
			logFailure(f, err)
		},
		Done: func(f File) {
			stats.Files += 1
			if opts.Progress != nil {
				opts.Progress(stats)
			}
		},
	})
	if err != nil {
		return Result{}, err
	}

	err = finish()
	if err != nil {
		return Result{}, err
	}

	if counts == nil {
		counts = tally.Counts{}
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"scanned tree",
		"files",
		stats.Files,
		"skipped",
		stats.Skipped,
		"tests",
		counts.Total(),
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return Result{Counts: counts, Stats: stats}, nil
}

// Reads and blames a single file, then runs every dialect registered for its
// extension over it.
//
// The file is blamed exactly once no matter how many dialects apply.
func ScanFile(
	ctx context.Context,
	registry *dialect.Registry,
	source git.BlameSource,
	f File,
) (tally.Counts, error) {
	text, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &FileAccessError{Path: f.Path, Err: err}
	}

	lines, err := source.Blame(ctx, f.Path)
	if err != nil {
		return nil, &AttributionError{Path: f.Path, Err: err}
	}

	if len(lines) == 0 {
		return nil, &AttributionError{Path: f.Path, Err: git.ErrEmptyBlame}
	}

	return registry.Count(f.Ext, text, lines), nil
}

func logFailure(f File, err error) {
	var accessErr *FileAccessError
	var attributionErr *AttributionError

	switch {
	case errors.As(err, &accessErr):
		logger().Debug("skipping unreadable file", "path", f.Rel, "err", err)
	case errors.As(err, &attributionErr):
		logger().Debug("skipping file without blame", "path", f.Rel, "err", err)
	default:
		logger().Debug("skipping file", "path", f.Rel, "err", err)
	}
}

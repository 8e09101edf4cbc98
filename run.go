package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sinclairtarget/testing-game/internal/config"
	"github.com/sinclairtarget/testing-game/internal/dialect"
	"github.com/sinclairtarget/testing-game/internal/format"
	"github.com/sinclairtarget/testing-game/internal/git"
	"github.com/sinclairtarget/testing-game/internal/pretty"
	"github.com/sinclairtarget/testing-game/internal/report"
	"github.com/sinclairtarget/testing-game/internal/scan"
)

// Scans the configured tree and writes the ranking of test authors to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running testing-game: %w", err)
		}
	}()

	logger().Debug("called run()", "config", *cfg)

	reportFormat, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return err
	}

	source, err := blameSource(ctx, cfg, root)
	if err != nil {
		return err
	}

	registry := dialect.Default(
		dialect.ParseSuperclasses(cfg.XCTestSuperclasses),
	)

	opts := scan.Options{
		Root:       root,
		Registry:   registry,
		Source:     source,
		Workers:    cfg.Jobs,
		Exclude:    cfg.Exclude,
		SkipVendor: cfg.SkipVendor,
	}

	if cfg.Progress && pretty.AllowDynamic(os.Stderr) {
		status := pretty.NewStatusLine(os.Stderr)
		defer status.Clear()

		opts.Progress = func(stats scan.Stats) {
			status.Update("Scanned %s files...", format.Number(stats.Files))
		}
	}

	result, err := scan.Run(ctx, opts)
	if err != nil {
		return err
	}

	if result.Stats.Skipped > 0 {
		logger().Debug(
			"some files could not be attributed",
			"skipped",
			result.Stats.Skipped,
			"files",
			result.Stats.Files,
		)
	}

	return report.Write(out, result.Counts, report.Opts{
		Format: reportFormat,
		Limit:  cfg.Limit,
	})
}

func blameSource(
	ctx context.Context,
	cfg *config.Config,
	root string,
) (git.BlameSource, error) {
	switch cfg.BlameBackend {
	case config.BackendGoGit:
		return git.NewGoGitSource(), nil
	case config.BackendGit:
		source := git.CommandSource{}
		if !cfg.IgnoreRevs {
			return source, nil
		}

		// Outside a repository every blame fails on its own, so this is
		// not fatal.
		p, err := git.DetectIgnoreRevsFile(ctx, root)
		if err != nil {
			logger().Debug("could not look for ignore revs file", "err", err)
			return source, nil
		}

		source.IgnoreRevsFile = p
		return source, nil
	default:
		return nil, fmt.Errorf("unknown blame backend \"%s\"", cfg.BlameBackend)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sinclairtarget/testing-game/internal/config"
)

var Commit = "unknown"
var Version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "testing-game [flags]",
		Short: "Ranks the authors of the tests in a source tree",
		Long: `testing-game finds the test cases in a Git working tree and uses git blame
to credit each one to whoever last touched its declaration.

Recognized: XCTest (.m, .mm), JUnit (.java, .kt), NUnit (.cs),
Boost.Test (.cpp, .mm), Python unittest (.py) and PHPUnit (.php).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "testing-game version %s\n", Version)
				return nil
			}

			dir, err := cmd.Flags().GetString("directory")
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath, dir, cmd.Flags())
			if err != nil {
				return err
			}

			if cfg.Debug {
				configureLogging(slog.LevelDebug)
				logger().Debug(
					"log level set to DEBUG",
					"version",
					Version,
					"commit",
					Commit,
					"config",
					cfg.File,
				)
			} else {
				configureLogging(slog.LevelInfo)
			}

			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.StringP("directory", "d", ".", "Root of the source tree to scan")
	flags.StringP(
		"xctestsuperclasses",
		"x",
		"",
		"Comma-separated XCTestCase subclasses that also mark a test suite",
	)
	flags.BoolVarP(&showVersion, "version", "v", false, "Print version and exit")
	flags.IntP("jobs", "j", 0, "Files to blame in parallel (0 means one per CPU)")
	flags.String("format", "text", "Output format: text, table, csv or json")
	flags.Int("limit", 0, "Limit rows in the ranking (0 for no limit)")
	flags.StringSlice(
		"exclude",
		nil,
		"Glob of paths to skip, relative to the root (repeatable)",
	)
	flags.Bool("skip-vendor", false, "Skip vendored and third-party paths")
	flags.String("blame-backend", config.BackendGit, "Blame with: git or go-git")
	flags.Bool(
		"ignore-revs",
		true,
		"Pass the repository's .git-blame-ignore-revs to git blame",
	)
	flags.Bool("progress", false, "Show progress on stderr when it is a terminal")
	flags.Bool("debug", false, "Enables debug logging")
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")

	return rootCmd
}

func configureLogging(level slog.Level) {
	handler := slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{
			Level: level,
		},
	)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

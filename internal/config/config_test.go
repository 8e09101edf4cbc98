package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinclairtarget/testing-game/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("testing-game", pflag.ContinueOnError)
	flags.StringP("directory", "d", ".", "")
	flags.IntP("jobs", "j", 0, "")
	flags.String("format", "text", "")
	flags.StringSlice("exclude", nil, "")
	flags.Bool("skip-vendor", false, "")
	return flags
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.Load("", dir, nil)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Directory)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, config.BackendGit, cfg.BlameBackend)
	assert.True(t, cfg.IgnoreRevs)
	assert.Zero(t, cfg.Jobs)
	assert.Empty(t, cfg.Exclude)
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := "format: csv\n" +
		"jobs: 3\n" +
		"xctest_superclasses: SPTTestCase\n" +
		"exclude:\n  - build/**\n  - third_party/**\n"
	err := os.WriteFile(filepath.Join(dir, ".testinggame.yaml"), []byte(yaml), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load("", dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "SPTTestCase", cfg.XCTestSuperclasses)
	assert.Equal(t, []string{"build/**", "third_party/**"}, cfg.Exclude)
}

func TestExplicitConfigPath(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "custom.yaml")
	err := os.WriteFile(p, []byte("blame_backend: go-git\n"), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(p, "", nil)
	require.NoError(t, err)
	assert.Equal(t, config.BackendGoGit, cfg.BlameBackend)
}

func TestPrecedence(t *testing.T) {
	dir := isolate(t)
	yaml := "format: csv\njobs: 3\nskip_vendor: false\n"
	err := os.WriteFile(filepath.Join(dir, ".testinggame.yaml"), []byte(yaml), 0o644)
	require.NoError(t, err)

	t.Setenv("TESTINGGAME_JOBS", "5")
	t.Setenv("TESTINGGAME_SKIP_VENDOR", "true")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--format", "json", "--exclude", "gen/**"}))

	cfg, err := config.Load("", dir, flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format, "flag should beat file")
	assert.Equal(t, 5, cfg.Jobs, "env should beat file")
	assert.True(t, cfg.SkipVendor, "env should beat file")
	assert.Equal(t, []string{"gen/**"}, cfg.Exclude)
}

func TestUnsetFlagsDoNotOverrideFile(t *testing.T) {
	dir := isolate(t)
	err := os.WriteFile(
		filepath.Join(dir, ".testinggame.yaml"),
		[]byte("format: table\n"),
		0o644,
	)
	require.NoError(t, err)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{}))

	cfg, err := config.Load("", dir, flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Format)
}

func TestValidate(t *testing.T) {
	valid := config.Config{Format: "TEXT", BlameBackend: config.BackendGit}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "text", valid.Format)

	cases := []config.Config{
		{Format: "xml", BlameBackend: config.BackendGit},
		{Format: "text", BlameBackend: "svn"},
		{Format: "text", BlameBackend: config.BackendGit, Jobs: -1},
		{Format: "text", BlameBackend: config.BackendGit, Limit: -2},
	}

	for _, c := range cases {
		assert.Error(t, c.Validate(), "%+v", c)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := isolate(t)
	err := os.WriteFile(
		filepath.Join(dir, ".testinggame.yaml"),
		[]byte("limit: -1\n"),
		0o644,
	)
	require.NoError(t, err)

	_, err = config.Load("", dir, nil)
	assert.ErrorIs(t, err, config.ErrNegativeLimit)
}

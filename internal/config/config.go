/*
* Run configuration, merged from flags, environment variables and an optional
* YAML file.
 */
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

var backends = []string{BackendGit, BackendGoGit}

var formats = []string{"text", "table", "csv", "json"}

// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Directory          string   `mapstructure:"directory"`
	XCTestSuperclasses string   `mapstructure:"xctest_superclasses"`
	Jobs               int      `mapstructure:"jobs"`
	Format             string   `mapstructure:"format"`
	Limit              int      `mapstructure:"limit"`
	Exclude            []string `mapstructure:"exclude"`
	SkipVendor         bool     `mapstructure:"skip_vendor"`
	BlameBackend       string   `mapstructure:"blame_backend"`
	IgnoreRevs         bool     `mapstructure:"ignore_revs"`
	Progress           bool     `mapstructure:"progress"`
	Debug              bool     `mapstructure:"debug"`

	File string `mapstructure:"-"` // Config file that was read, if any
}

var (
	ErrNegativeJobs  = errors.New("jobs must not be negative")
	ErrNegativeLimit = errors.New("limit must not be negative")
)

func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return ErrNegativeJobs
	}

	if c.Limit < 0 {
		return ErrNegativeLimit
	}

	c.Format = strings.ToLower(c.Format)
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf(
			"unknown format \"%s\" (expected one of: %s)",
			c.Format,
			strings.Join(formats, ", "),
		)
	}

	if !slices.Contains(backends, c.BlameBackend) {
		return fmt.Errorf(
			"unknown blame backend \"%s\" (expected one of: %s)",
			c.BlameBackend,
			strings.Join(backends, ", "),
		)
	}

	return nil
}

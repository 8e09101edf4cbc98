package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configName = ".testinggame"

const configType = "yaml"

const envPrefix = "TESTINGGAME"

// Config keys and the command-line flags that override them.
var flagKeys = map[string]string{
	"directory":           "directory",
	"xctest_superclasses": "xctestsuperclasses",
	"jobs":                "jobs",
	"format":              "format",
	"limit":               "limit",
	"exclude":             "exclude",
	"skip_vendor":         "skip-vendor",
	"blame_backend":       "blame-backend",
	"ignore_revs":         "ignore-revs",
	"progress":            "progress",
	"debug":               "debug",
}

// Loads configuration from flags, env vars, a config file and defaults, in
// that order of precedence.
//
// If configPath is non-empty it is used as the explicit config file path.
// Otherwise the config file is searched for in searchDir and then $HOME.
// A missing config file is not an error. flags may be nil.
func Load(
	configPath string,
	searchDir string,
	flags *pflag.FlagSet,
) (_ *Config, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error loading config: %w", err)
		}
	}()

	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}

			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		if searchDir != "" {
			v.AddConfigPath(searchDir)
		}

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.File = v.ConfigFileUsed()

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("directory", ".")
	v.SetDefault("xctest_superclasses", "")
	v.SetDefault("jobs", 0)
	v.SetDefault("format", "text")
	v.SetDefault("limit", 0)
	v.SetDefault("exclude", []string{})
	v.SetDefault("skip_vendor", false)
	v.SetDefault("blame_backend", BackendGit)
	v.SetDefault("ignore_revs", true)
	v.SetDefault("progress", false)
	v.SetDefault("debug", false)
}

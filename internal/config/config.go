// Package config loads settings for the calco command from an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override the file.
const EnvPrefix = "CALCO_"

// Config is the command's configuration.
type Config struct {
	Log Log `yaml:"log"`
	// Color enables ANSI color in error messages.
	Color bool `yaml:"color"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Color: true,
	}
}

// Load reads the configuration. It starts from Default, applies the YAML file
// name from fsys if it exists, then applies environment variables looked up
// with getenv: CALCO_LOG_LEVEL, CALCO_LOG_FORMAT, and CALCO_COLOR. An empty
// name skips the file.
func Load(fsys billy.Filesystem, name string, getenv func(string) string) (Config, error) {
	c := Default()
	if name != "" {
		if err := c.readFile(fsys, name); err != nil {
			return Config{}, err
		}
	}
	if err := c.readEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) readFile(fsys billy.Filesystem, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading config %s: %w", name, err)
	}
	return nil
}

func (c *Config) readEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv(EnvPrefix + "COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCOLOR: %w", EnvPrefix, err)
		}
		c.Color = b
	}
	return nil
}

// Validate checks that the log level and format are known.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

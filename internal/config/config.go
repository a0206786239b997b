// Package config provides configuration management and validation for brb.
// It centralizes the command-line options and their environment overrides,
// and validates them before any file is touched.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"brb/internal/errors"

	"github.com/joho/godotenv"
)

// LogFormat represents the supported formats for the final run report.
type LogFormat string

// Supported log format constants.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvHeaderNames = "BRB_HEADER_NAMES"
	EnvOutputDir   = "BRB_OUTPUT_DIR"
	EnvLogFormat   = "BRB_LOG_FORMAT"
)

// Config holds all runtime configuration options for a brb run.
type Config struct {
	Input         string
	Headers       []string
	HeaderNames   string
	NoStandardize bool
	Format        string
	OutputDir     string
	Verbose       bool
	Debug         bool
	Quiet         bool
	LogFormat     LogFormat
}

// LoadEnv reads a .env file from the working directory, if there is one,
// and fills settings that were left empty on the command line.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()

	if c.HeaderNames == "" {
		c.HeaderNames = os.Getenv(EnvHeaderNames)
	}
	if c.OutputDir == "" {
		c.OutputDir = os.Getenv(EnvOutputDir)
	}
	if c.LogFormat == "" {
		c.LogFormat = LogFormat(strings.ToLower(os.Getenv(EnvLogFormat)))
	}
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}

	if err := c.validateFormat(); err != nil {
		return err
	}

	if err := c.validateLogFormat(); err != nil {
		return err
	}

	if err := c.validateOutputDir(); err != nil {
		return err
	}

	c.normalizeConfig()
	return nil
}

func (c *Config) validateInput() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.NewConfigError("input file is required", nil)
	}
	return nil
}

func (c *Config) validateFormat() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != "" && c.Format != "csv" && c.Format != "xlsx" {
		return errors.NewConfigError("format must be 'csv' or 'xlsx'", nil)
	}
	return nil
}

func (c *Config) validateLogFormat() error {
	if c.LogFormat != "" && c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return errors.NewConfigError("log format must be 'text' or 'json'", nil)
	}
	return nil
}

func (c *Config) validateOutputDir() error {
	if c.OutputDir == "" {
		return nil
	}

	info, err := os.Stat(c.OutputDir)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.OutputDir, "invalid output directory", err)
	}
	if !info.IsDir() {
		return errors.NewConfigErrorWithPath(c.OutputDir, "output path is not a directory", nil)
	}
	return nil
}

func (c *Config) normalizeConfig() {
	if c.Format == "" {
		c.Format = "csv"
	}
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.HeaderNames != "" {
		if abs, err := filepath.Abs(c.HeaderNames); err == nil {
			c.HeaderNames = abs
		}
	}
	c.Headers = c.normalizeHeaders()
}

// normalizeHeaders splits comma separated values and drops blanks. Order
// and duplicates are kept; filtering deduplicates later.
func (c *Config) normalizeHeaders() []string {
	var normalized []string
	for _, h := range c.Headers {
		for _, part := range strings.Split(h, ",") {
			if part = strings.TrimSpace(part); part != "" {
				normalized = append(normalized, part)
			}
		}
	}
	return normalized
}

// IsVerbose determines if verbose logging is enabled. Quiet wins.
func (c *Config) IsVerbose() bool {
	return (c.Verbose || c.Debug) && !c.Quiet
}

// IsDebug determines if debug logging is enabled. Quiet wins.
func (c *Config) IsDebug() bool {
	return c.Debug && !c.Quiet
}

// ShouldLog reports whether any non-error output should be produced.
func (c *Config) ShouldLog() bool {
	return !c.Quiet
}

// Package config holds runtime configuration for an optimization run:
// built-in defaults, an optional squish.yaml file in the target root,
// SQUISH_* environment overrides (with .env support), and validation.
// CLI flags are applied last, by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrorLogName is the run-scoped error log, created in the working
// directory and truncated at the start of every run.
const ErrorLogName = "squish-errors.log"

// ConfigFileName is the optional per-directory config file looked up
// in the target root.
const ConfigFileName = "squish.yaml"

// Config holds all runtime settings for one run.
type Config struct {
	// Root is the directory to scan (positional arg, default ".").
	Root string `yaml:"-"`

	// MaxDimension is the longer-edge pixel bound; images exceeding it
	// on either axis are downscaled. Default: 2048.
	MaxDimension int `yaml:"max_dimension"`

	// MinSavingsPercent is the commit threshold: recompressed bytes are
	// kept only when the truncated savings percent reaches it (a resize
	// always commits). Default: 1.
	MinSavingsPercent int `yaml:"min_savings_percent"`

	// JPEGQuality is the lossy recompression quality ceiling. Default: 85.
	JPEGQuality int `yaml:"jpeg_quality"`

	// Workers bounds the processing pool. 1 means strictly sequential.
	// Default: number of CPUs.
	Workers int `yaml:"workers"`

	// NoProgress disables the live progress UI. Flag-only.
	NoProgress bool `yaml:"-"`

	// ErrorLogPath is where per-item failures are recorded.
	ErrorLogPath string `yaml:"-"`
}

// Default returns a Config with all built-in defaults applied.
func Default(numCPU int) Config {
	return Config{
		Root:              ".",
		MaxDimension:      2048,
		MinSavingsPercent: 1,
		JPEGQuality:       85,
		Workers:           numCPU,
		ErrorLogPath:      ErrorLogName,
	}
}

// LoadFile overlays settings from a squish.yaml, if one exists at path.
// A missing file is not an error; a malformed one is.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ApplyEnv overlays SQUISH_* environment variables. A .env file next to
// the config (if present) is loaded first without clobbering variables
// already set in the real environment.
func (c *Config) ApplyEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}

	if err := envInt("SQUISH_MAX_DIMENSION", &c.MaxDimension); err != nil {
		return err
	}
	if err := envInt("SQUISH_MIN_SAVINGS_PERCENT", &c.MinSavingsPercent); err != nil {
		return err
	}
	if err := envInt("SQUISH_JPEG_QUALITY", &c.JPEGQuality); err != nil {
		return err
	}
	return envInt("SQUISH_WORKERS", &c.Workers)
}

func envInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s=%q (want an integer)", key, raw)
	}
	*dst = n
	return nil
}

// Validate checks ranges and that the root exists and is a directory.
func (c *Config) Validate() error {
	if c.MaxDimension <= 0 {
		return errors.New("max dimension must be positive")
	}
	if c.MinSavingsPercent < 0 {
		return errors.New("min savings percent must not be negative")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New("jpeg quality must be in 1..100")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.Root)
	}
	return nil
}

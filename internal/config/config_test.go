package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default(4)
	if cfg.MaxDimension != 2048 {
		t.Errorf("MaxDimension = %d, want 2048", cfg.MaxDimension)
	}
	if cfg.MinSavingsPercent != 1 {
		t.Errorf("MinSavingsPercent = %d, want 1", cfg.MinSavingsPercent)
	}
	if cfg.JPEGQuality != 85 {
		t.Errorf("JPEGQuality = %d, want 85", cfg.JPEGQuality)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := "max_dimension: 1024\nmin_savings_percent: 5\njpeg_quality: 70\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default(2)
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MaxDimension != 1024 || cfg.MinSavingsPercent != 5 || cfg.JPEGQuality != 70 {
		t.Errorf("unexpected config after load: %+v", cfg)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, keys absent from the file must keep defaults", cfg.Workers)
	}
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	cfg := Default(1)
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), ConfigFileName)); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("max_dimension: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default(1)
	if err := cfg.LoadFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SQUISH_MAX_DIMENSION", "800")
	t.Setenv("SQUISH_WORKERS", "3")

	cfg := Default(8)
	if err := cfg.ApplyEnv(t.TempDir()); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.MaxDimension != 800 {
		t.Errorf("MaxDimension = %d, want 800", cfg.MaxDimension)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("SQUISH_JPEG_QUALITY", "best")
	cfg := Default(1)
	if err := cfg.ApplyEnv(t.TempDir()); err == nil {
		t.Fatal("expected error for non-integer env value")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero max dimension", func(c *Config) { c.MaxDimension = 0 }, false},
		{"negative savings", func(c *Config) { c.MinSavingsPercent = -1 }, false},
		{"zero savings ok", func(c *Config) { c.MinSavingsPercent = 0 }, true},
		{"quality too high", func(c *Config) { c.JPEGQuality = 101 }, false},
		{"quality too low", func(c *Config) { c.JPEGQuality = 0 }, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"missing root", func(c *Config) { c.Root = filepath.Join(dir, "nope") }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default(2)
			cfg.Root = dir
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default(1)
	cfg.Root = file
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when root is a regular file")
	}
}

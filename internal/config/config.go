// Package config persists user defaults for the cargoplan CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/athul8raj/cargo-planning/internal/model"
)

// Config holds the defaults applied when the corresponding flags are
// not given.
type Config struct {
	LoadPattern       string  `toml:"load_pattern"`
	BaseAreaThreshold float64 `toml:"base_area_threshold"`
	OutputDir         string  `toml:"output_dir"`
	PlanPDF           string  `toml:"plan_pdf"`   // empty disables the report
	LabelsPDF         string  `toml:"labels_pdf"` // empty disables labels
}

// Default returns the built-in configuration.
func Default() Config {
	s := model.DefaultSettings()
	return Config{
		LoadPattern:       string(s.Pattern),
		BaseAreaThreshold: s.BaseAreaThreshold,
		OutputDir:         "ui_input",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cargoplan", "config.toml"), nil
}

// Load reads the config at path, falling back to Default when the file
// does not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if _, ok := model.ParseLoadPattern(cfg.LoadPattern); !ok {
		return Default(), fmt.Errorf("config %s: unknown load pattern %q", path, cfg.LoadPattern)
	}
	if cfg.BaseAreaThreshold < 0 || cfg.BaseAreaThreshold > 100 {
		return Default(), fmt.Errorf("config %s: base_area_threshold must be in [0,100]", path)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Settings converts the config into engine settings.
func (c Config) Settings() model.PackSettings {
	pattern, _ := model.ParseLoadPattern(c.LoadPattern)
	return model.PackSettings{
		Pattern:           pattern,
		BaseAreaThreshold: c.BaseAreaThreshold,
	}
}

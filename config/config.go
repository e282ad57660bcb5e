// Package config implements the TOML-backed configuration layer for
// the simulator's knobs: stack-pointer seed, alignment enforcement,
// step cap, register-dump path, and trace/statistics output. Ground:
// teacher's config package (BurntSushi/toml), adapted to this spec's
// knob set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the full set of user-configurable simulator defaults.
type Config struct {
	Execution struct {
		InitialSP       string `toml:"initial_sp"` // "zero" or "top"
		AlignmentStrict bool   `toml:"alignment_strict"`
		MaxSteps        uint64 `toml:"max_steps"` // 0 = unlimited
	} `toml:"execution"`

	Dump struct {
		Path string `toml:"path"`
	} `toml:"dump"`

	Trace struct {
		Enabled bool   `toml:"enabled"`
		File    string `toml:"file"`
	} `toml:"trace"`

	Statistics struct {
		Enabled bool   `toml:"enabled"`
		File    string `toml:"file"`
		Format  string `toml:"format"` // json, csv
	} `toml:"statistics"`
}

// DefaultConfig returns the spec's documented defaults (see
// SPEC_FULL.md Open Questions): stack pointer seeded to zero,
// misalignment allowed, no step cap, dump file register_dump.res.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.InitialSP = "zero"
	cfg.Execution.AlignmentStrict = false
	cfg.Execution.MaxSteps = 0

	cfg.Dump.Path = "register_dump.res"

	cfg.Trace.Enabled = false
	cfg.Trace.File = "trace.log"

	cfg.Statistics.Enabled = false
	cfg.Statistics.File = "stats.json"
	cfg.Statistics.Format = "json"

	return cfg
}

// GetConfigPath returns the platform-specific config file path:
// ~/.config/rv32emu/config.toml on Unix, %APPDATA%\rv32emu\config.toml
// on Windows.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32emu")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32emu")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling
// back to DefaultConfig if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to
// DefaultConfig if it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

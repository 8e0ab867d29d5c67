package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "papuso.yaml"

// Environment overrides.
const (
	EnvDB      = "PAPUSO_DB"
	EnvData    = "PAPUSO_DATA"
	EnvSSHAddr = "PAPUSO_SSH_ADDR"
	EnvWebAddr = "PAPUSO_WEB_ADDR"
)

// Load loads the configuration.
// Search order: customPath -> ~/.papuso/configs/papuso.yaml -> ./configs/papuso.yaml -> embedded default
// Files are decoded over Default(), so partial files only change what they
// name. Environment overrides are applied last.
func Load(customPath string) (Config, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	if err := cfg.normalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		path := ExpandHome(customPath)
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := Default()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides storage, data and listen addresses from the
// environment.
func ApplyEnv(cfg *Config) {
	cfg.Storage.Path = GetEnv(EnvDB, cfg.Storage.Path)
	cfg.Data.Source = GetEnv(EnvData, cfg.Data.Source)
	cfg.Server.SSHAddr = GetEnv(EnvSSHAddr, cfg.Server.SSHAddr)
	cfg.Server.WebAddr = GetEnv(EnvWebAddr, cfg.Server.WebAddr)
}

// GetEnv returns the value of the environment variable or fallback if unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// normalize replaces unusable values with defaults and validates the
// difficulty.
func (c *Config) normalize() error {
	def := Default()
	positive := func(v *int, fallback int) {
		if *v <= 0 {
			*v = fallback
		}
	}
	positive(&c.App.UITickMs, def.App.UITickMs)
	positive(&c.App.BootStepMs, def.App.BootStepMs)
	positive(&c.App.BriefingStepMs, def.App.BriefingStepMs)
	positive(&c.App.Lives, def.App.Lives)
	positive(&c.Controls.HoldMs, def.Controls.HoldMs)
	positive(&c.Sound.SampleRate, def.Sound.SampleRate)
	positive(&c.Server.MaxSessions, def.Server.MaxSessions)
	if c.App.BootMinMs < 0 {
		c.App.BootMinMs = 0
	}
	if c.App.BriefingDelayMs < 0 {
		c.App.BriefingDelayMs = 0
	}
	if c.App.BriefingHoldMs < 0 {
		c.App.BriefingHoldMs = 0
	}
	if c.Games == nil {
		c.Games = map[string]GameOverride{}
	}

	preset, err := ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return err
	}
	c.Difficulty = preset
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Dir returns ~/.papuso, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".papuso")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

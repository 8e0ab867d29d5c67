// Package config provides YAML-based configuration loading and difficulty
// presets for the papuso terminal.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	App        AppConfig               `yaml:"app"`
	Controls   ControlsConfig          `yaml:"controls"`
	Games      map[string]GameOverride `yaml:"games"`
	Sound      SoundConfig             `yaml:"sound"`
	Difficulty DifficultyPreset        `yaml:"difficulty"`
	Data       DataConfig              `yaml:"data"`
	Storage    StorageConfig           `yaml:"storage"`
	Server     ServerConfig            `yaml:"server"`
}

// AppConfig holds the sequencing timings of the terminal, in milliseconds.
type AppConfig struct {
	UITickMs        int `yaml:"ui_tick_ms"`
	BootStepMs      int `yaml:"boot_step_ms"`
	BootMinMs       int `yaml:"boot_min_ms"`
	BriefingDelayMs int `yaml:"briefing_delay_ms"`
	BriefingStepMs  int `yaml:"briefing_step_ms"`
	BriefingHoldMs  int `yaml:"briefing_hold_ms"`
	Lives           int `yaml:"lives"`
}

// UITick returns the UI tick as a duration.
func (a AppConfig) UITick() time.Duration {
	return time.Duration(a.UITickMs) * time.Millisecond
}

// ControlsConfig tunes key handling.
type ControlsConfig struct {
	// HoldMs is how long a terminal key counts as held after its last
	// press, since terminals report no key releases.
	HoldMs  int      `yaml:"hold_ms"`
	Prevent []string `yaml:"prevent"`
}

// GameOverride replaces catalog metadata for one minigame. Zero values keep
// the catalog default.
type GameOverride struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BaseTarget  int    `yaml:"base_target"`
	TickMs      int    `yaml:"tick_ms"`
	Disabled    bool   `yaml:"disabled"`
}

// SoundConfig configures the local synth.
type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// DataConfig selects the timeline source: empty for the embedded set, a
// file path or an http(s) URL.
type DataConfig struct {
	Source string `yaml:"source"`
}

// StorageConfig locates the history database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds listen addresses for the remote hosts.
type ServerConfig struct {
	SSHAddr     string `yaml:"ssh_addr"`
	WebAddr     string `yaml:"web_addr"`
	HostKeyPath string `yaml:"host_key_path"`
	MaxSessions int    `yaml:"max_sessions"`
}

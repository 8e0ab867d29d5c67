package config

import (
	_ "embed"
)

//go:embed defaults/papuso.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when no file is found.
func Default() Config {
	return Config{
		App: AppConfig{
			UITickMs:        20,
			BootStepMs:      180,
			BootMinMs:       3000,
			BriefingDelayMs: 500,
			BriefingStepMs:  60,
			BriefingHoldMs:  3500,
			Lives:           5,
		},
		Controls: ControlsConfig{
			HoldMs:  160,
			Prevent: []string{"arrowup", "arrowdown", "arrowleft", "arrowright", "space"},
		},
		Games: map[string]GameOverride{},
		Sound: SoundConfig{
			Enabled:    true,
			Volume:     0.35,
			SampleRate: 44100,
		},
		Difficulty: DifficultyNormal,
		Storage:    StorageConfig{Path: "~/.papuso/papuso.db"},
		Server: ServerConfig{
			SSHAddr:     ":2222",
			WebAddr:     ":8080",
			HostKeyPath: "~/.papuso/ssh_host_ed25519",
			MaxSessions: 16,
		},
	}
}

package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	configDir  = ".config/kashi"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Durations arrive as
// strings and scalars as pointers so absent fields keep their defaults.
type rawConfig struct {
	Playback rawPlaybackConfig `json:"playback"`
	Editor   rawEditorConfig   `json:"editor"`
	Keymap   KeymapConfig      `json:"keymap"`
	UI       rawUIConfig       `json:"ui"`
}

type rawPlaybackConfig struct {
	SeekStep      string `json:"seekStep"`
	FrameInterval string `json:"frameInterval"`
}

type rawEditorConfig struct {
	TimeStep        *float64 `json:"timeStep"`
	ProgressStep    *float64 `json:"progressStep"`
	MinLineDuration *float64 `json:"minLineDuration"`
	SplitDuration   *float64 `json:"splitDuration"`
}

type rawUIConfig struct {
	ShowFooter *bool `json:"showFooter"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/kashi/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Playback
	if raw.Playback.SeekStep != "" {
		if d, err := time.ParseDuration(raw.Playback.SeekStep); err == nil {
			cfg.Playback.SeekStep = d
		} else {
			slog.Warn("unparseable playback.seekStep", "value", raw.Playback.SeekStep)
		}
	}
	if raw.Playback.FrameInterval != "" {
		if d, err := time.ParseDuration(raw.Playback.FrameInterval); err == nil {
			cfg.Playback.FrameInterval = d
		} else {
			slog.Warn("unparseable playback.frameInterval", "value", raw.Playback.FrameInterval)
		}
	}

	// Editor
	if raw.Editor.TimeStep != nil {
		cfg.Editor.TimeStep = *raw.Editor.TimeStep
	}
	if raw.Editor.ProgressStep != nil {
		cfg.Editor.ProgressStep = *raw.Editor.ProgressStep
	}
	if raw.Editor.MinLineDuration != nil {
		cfg.Editor.MinLineDuration = *raw.Editor.MinLineDuration
	}
	if raw.Editor.SplitDuration != nil {
		cfg.Editor.SplitDuration = *raw.Editor.SplitDuration
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations,
// mirroring the shape the loader accepts.
type saveConfig struct {
	Playback savePlaybackConfig `json:"playback"`
	Editor   EditorConfig       `json:"editor"`
	Keymap   KeymapConfig       `json:"keymap"`
	UI       UIConfig           `json:"ui"`
}

type savePlaybackConfig struct {
	SeekStep      string `json:"seekStep"`
	FrameInterval string `json:"frameInterval"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Playback: savePlaybackConfig{
			SeekStep:      cfg.Playback.SeekStep.String(),
			FrameInterval: cfg.Playback.FrameInterval.String(),
		},
		Editor: cfg.Editor,
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// Save writes the config to ~/.config/kashi/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to an explicit path, creating parent
// directories as needed.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toSaveConfig(cfg), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

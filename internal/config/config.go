package config

import (
	"log/slog"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Playback PlaybackConfig `json:"playback"`
	Editor   EditorConfig   `json:"editor"`
	Keymap   KeymapConfig   `json:"keymap"`
	UI       UIConfig       `json:"ui"`
}

// PlaybackConfig controls the playhead and the frame clock.
type PlaybackConfig struct {
	SeekStep      time.Duration `json:"seekStep"`
	FrameInterval time.Duration `json:"frameInterval"`
}

// EditorConfig holds the editing step sizes. Values are in seconds,
// except ProgressStep which is in runes.
type EditorConfig struct {
	TimeStep        float64 `json:"timeStep"`
	ProgressStep    float64 `json:"progressStep"`
	MinLineDuration float64 `json:"minLineDuration"`
	SplitDuration   float64 `json:"splitDuration"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool `json:"showFooter"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			SeekStep:      500 * time.Millisecond,
			FrameInterval: 16 * time.Millisecond,
		},
		Editor: EditorConfig{
			TimeStep:        0.05,
			ProgressStep:    0.5,
			MinLineDuration: 0.01,
			SplitDuration:   2.0,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
		},
	}
}

// Validate checks the configuration and resets invalid values to their
// defaults.
func (c *Config) Validate() error {
	d := Default()
	if c.Playback.SeekStep <= 0 {
		slog.Warn("invalid playback.seekStep, using default", "value", c.Playback.SeekStep)
		c.Playback.SeekStep = d.Playback.SeekStep
	}
	if c.Playback.FrameInterval <= 0 {
		slog.Warn("invalid playback.frameInterval, using default", "value", c.Playback.FrameInterval)
		c.Playback.FrameInterval = d.Playback.FrameInterval
	}
	if c.Editor.TimeStep <= 0 {
		slog.Warn("invalid editor.timeStep, using default", "value", c.Editor.TimeStep)
		c.Editor.TimeStep = d.Editor.TimeStep
	}
	if c.Editor.ProgressStep <= 0 {
		slog.Warn("invalid editor.progressStep, using default", "value", c.Editor.ProgressStep)
		c.Editor.ProgressStep = d.Editor.ProgressStep
	}
	if c.Editor.MinLineDuration <= 0 {
		slog.Warn("invalid editor.minLineDuration, using default", "value", c.Editor.MinLineDuration)
		c.Editor.MinLineDuration = d.Editor.MinLineDuration
	}
	if c.Editor.SplitDuration <= 0 {
		slog.Warn("invalid editor.splitDuration, using default", "value", c.Editor.SplitDuration)
		c.Editor.SplitDuration = d.Editor.SplitDuration
	}
	return nil
}

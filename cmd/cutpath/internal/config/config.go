package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// FileName is the config file looked up in the working directory.
const FileName = "cutpath.json"

// Config represents the cutpath.json configuration
type Config struct {
	// Backend connection
	Server *ServerConfig `json:"server,omitempty"`

	// Terminal canvas geometry
	Canvas *CanvasConfig `json:"canvas,omitempty"`

	// Machine parameters sent with optimize requests
	Machine *MachineConfig `json:"machine,omitempty"`

	// Playback timings
	Animation *AnimationConfig `json:"animation,omitempty"`

	// Log file for the editor
	Log *LogConfig `json:"log,omitempty"`
}

// ServerConfig locates the backend.
type ServerConfig struct {
	BaseURL string `json:"baseURL,omitempty"`
}

// CanvasConfig maps terminal cells to canvas pixels.
type CanvasConfig struct {
	// Pixels per cell column
	CellWidth int `json:"cellWidth,omitempty"`

	// Pixels per cell row
	CellHeight int `json:"cellHeight,omitempty"`

	// Pick distance around a vertex, in pixels
	HitRadius float64 `json:"hitRadius,omitempty"`
}

// MachineConfig holds the cutting machine parameters.
type MachineConfig struct {
	// Cutting speed in mm/min
	Speed float64 `json:"speed,omitempty"`

	// Setup time per stop in minutes
	SetupTime float64 `json:"setupTime,omitempty"`
}

// AnimationConfig holds the playback timings in milliseconds.
type AnimationConfig struct {
	StepIntervalMs  int `json:"stepIntervalMs,omitempty"`
	DrawDurationMs  int `json:"drawDurationMs,omitempty"`
	FrameIntervalMs int `json:"frameIntervalMs,omitempty"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	// Empty disables logging while the editor runs
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty"`
}

// Load loads configuration from cutpath.json in dir
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile loads configuration from path, returning defaults when the file
// does not exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&config)

	return &config, nil
}

// Save saves configuration to cutpath.json in dir
func Save(config *Config, dir string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerConfig{
			BaseURL: "http://localhost:5000",
		},
		Canvas: &CanvasConfig{
			CellWidth:  6,
			CellHeight: 12,
			HitRadius:  30,
		},
		Machine: &MachineConfig{
			Speed:     100,
			SetupTime: 0.5,
		},
		Animation: &AnimationConfig{
			StepIntervalMs:  800,
			DrawDurationMs:  600,
			FrameIntervalMs: 16,
		},
		Log: &LogConfig{
			MaxSizeMB:  10,
			MaxAgeDays: 7,
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Server == nil {
		config.Server = defaults.Server
	} else if config.Server.BaseURL == "" {
		config.Server.BaseURL = defaults.Server.BaseURL
	}

	if config.Canvas == nil {
		config.Canvas = defaults.Canvas
	} else {
		if config.Canvas.CellWidth == 0 {
			config.Canvas.CellWidth = defaults.Canvas.CellWidth
		}
		if config.Canvas.CellHeight == 0 {
			config.Canvas.CellHeight = defaults.Canvas.CellHeight
		}
		if config.Canvas.HitRadius == 0 {
			config.Canvas.HitRadius = defaults.Canvas.HitRadius
		}
	}

	if config.Machine == nil {
		config.Machine = defaults.Machine
	} else {
		if config.Machine.Speed == 0 {
			config.Machine.Speed = defaults.Machine.Speed
		}
		if config.Machine.SetupTime == 0 {
			config.Machine.SetupTime = defaults.Machine.SetupTime
		}
	}

	if config.Animation == nil {
		config.Animation = defaults.Animation
	} else {
		if config.Animation.StepIntervalMs == 0 {
			config.Animation.StepIntervalMs = defaults.Animation.StepIntervalMs
		}
		if config.Animation.DrawDurationMs == 0 {
			config.Animation.DrawDurationMs = defaults.Animation.DrawDurationMs
		}
		if config.Animation.FrameIntervalMs == 0 {
			config.Animation.FrameIntervalMs = defaults.Animation.FrameIntervalMs
		}
	}

	if config.Log == nil {
		config.Log = defaults.Log
	} else {
		if config.Log.MaxSizeMB == 0 {
			config.Log.MaxSizeMB = defaults.Log.MaxSizeMB
		}
		if config.Log.MaxAgeDays == 0 {
			config.Log.MaxAgeDays = defaults.Log.MaxAgeDays
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.baseURL %q is not an absolute URL", c.Server.BaseURL)
	}
	if c.Canvas.CellWidth < 1 || c.Canvas.CellHeight < 1 {
		return fmt.Errorf("canvas cell size must be positive, got %dx%d", c.Canvas.CellWidth, c.Canvas.CellHeight)
	}
	if c.Canvas.HitRadius <= 0 {
		return fmt.Errorf("canvas.hitRadius must be positive")
	}
	if c.Machine.Speed <= 0 || c.Machine.SetupTime < 0 {
		return fmt.Errorf("machine speed must be positive and setup time non-negative")
	}
	if c.Animation.StepIntervalMs <= 0 || c.Animation.DrawDurationMs <= 0 || c.Animation.FrameIntervalMs <= 0 {
		return fmt.Errorf("animation timings must be positive")
	}
	return nil
}

// StepInterval returns the playback reveal cadence.
func (c *Config) StepInterval() time.Duration {
	return time.Duration(c.Animation.StepIntervalMs) * time.Millisecond
}

// DrawDuration returns how long one segment takes to draw in.
func (c *Config) DrawDuration() time.Duration {
	return time.Duration(c.Animation.DrawDurationMs) * time.Millisecond
}

// FrameInterval returns the playback frame period.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Animation.FrameIntervalMs) * time.Millisecond
}

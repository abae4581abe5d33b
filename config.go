package rampart

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config describes the window and scaling setup for Run. All fields have
// sensible defaults; a zero Config is usable.
type Config struct {
	Title          string `toml:"title"`
	LogicalWidth   int    `toml:"logical_width"`
	LogicalHeight  int    `toml:"logical_height"`
	WindowWidth    int    `toml:"window_width"`
	WindowHeight   int    `toml:"window_height"`
	IntegerScaling bool   `toml:"integer_scaling"`
	Fullscreen     bool   `toml:"fullscreen"`
	Resizable      bool   `toml:"resizable"`
	Debug          bool   `toml:"debug"`
}

// LoadConfig reads a TOML config file. Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// SaveConfig writes the config as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "rampart"
	}
	if c.LogicalWidth <= 0 {
		c.LogicalWidth = 640
	}
	if c.LogicalHeight <= 0 {
		c.LogicalHeight = 480
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = c.LogicalWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = c.LogicalHeight
	}
	return c
}

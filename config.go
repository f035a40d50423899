package pixelscene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds display, interface, sprite and logging settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	UI      UIConfig      `yaml:"ui"`
	Items   ItemConfig    `yaml:"items"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   bool          `yaml:"debug"`
	// ScreenshotDir receives captures queued with Game.Screenshot.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DisplayConfig holds the zoom profiles.
type DisplayConfig struct {
	Portrait  DisplayProfile `yaml:"portrait"`
	Landscape DisplayProfile `yaml:"landscape"`
	FullUI    DisplayProfile `yaml:"full_ui"`
	// Density is the device pixel density; 0 means 1.
	Density float64 `yaml:"density"`
}

// UIConfig holds interface preferences.
type UIConfig struct {
	// Scale is the preferred zoom; 0 picks one automatically.
	Scale int `yaml:"scale"`
	// FullUI selects the large desktop layout.
	FullUI bool `yaml:"full_ui"`
	// FadeSeconds is the scene fade-in duration.
	FadeSeconds float64 `yaml:"fade_seconds"`
}

// ItemConfig tunes item sprite drops and shadows.
type ItemConfig struct {
	DropInterval float64 `yaml:"drop_interval"`
	DropSpeed    float64 `yaml:"drop_speed"`
	ShadowWidth  float64 `yaml:"shadow_width"`
	ShadowHeight float64 `yaml:"shadow_height"`
	ShadowOffset float64 `yaml:"shadow_offset"`
	CellSize     int     `yaml:"cell_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
	Console    bool   `yaml:"console"`
}

// Default returns a Config with the stock values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Portrait:  PortraitProfile,
			Landscape: LandscapeProfile,
			FullUI:    FullUIProfile,
			Density:   1,
		},
		UI: UIConfig{
			FadeSeconds: 1,
		},
		Items: ItemConfig{
			DropInterval: 0.4,
			DropSpeed:    100,
			ShadowWidth:  1,
			ShadowHeight: 0.25,
			ShadowOffset: 0.5,
			CellSize:     16,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
			Console:    true,
		},
		ScreenshotDir: "screenshots",
	}
}

// ParseConfig decodes YAML over the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("pixelscene: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("pixelscene: loading config from %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate rejects settings that would break the zoom or drop math.
func (c *Config) Validate() error {
	for name, p := range map[string]DisplayProfile{
		"portrait":  c.Display.Portrait,
		"landscape": c.Display.Landscape,
		"full_ui":   c.Display.FullUI,
	} {
		if p.MinWidth <= 0 || p.MinHeight <= 0 {
			return fmt.Errorf("pixelscene: display profile %s: minimum size must be positive", name)
		}
	}
	if c.Items.DropInterval <= 0 {
		return fmt.Errorf("pixelscene: items.drop_interval must be positive, got %v", c.Items.DropInterval)
	}
	if c.Items.CellSize <= 0 {
		return fmt.Errorf("pixelscene: items.cell_size must be positive, got %d", c.Items.CellSize)
	}
	if c.UI.Scale < 0 {
		return fmt.Errorf("pixelscene: ui.scale must not be negative, got %d", c.UI.Scale)
	}
	return nil
}

// Profile returns the zoom profile for the display.
func (c *Config) Profile(m DisplayMetrics) DisplayProfile {
	switch {
	case c.UI.FullUI:
		return c.Display.FullUI
	case m.Landscape():
		return c.Display.Landscape
	default:
		return c.Display.Portrait
	}
}

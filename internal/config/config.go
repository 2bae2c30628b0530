// Package config handles tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Unwrap  UnwrapConfig  `yaml:"unwrap"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig describes the target pixel grid. An explicit Width/Height wins
// over the size of Image.
type GridConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	UnitScale float64 `yaml:"unit_scale"` // UV units per grid cell
	Image     string  `yaml:"image"`      // Target texture path
}

// UnwrapConfig holds unwrap settings.
type UnwrapConfig struct {
	FallbackWidth  int  `yaml:"fallback_width"`
	FallbackHeight int  `yaml:"fallback_height"`
	SelectedOnly   bool `yaml:"selected_only"`
}

// ExportConfig holds layout image export settings.
type ExportConfig struct {
	FallbackWidth  int    `yaml:"fallback_width"`
	FallbackHeight int    `yaml:"fallback_height"`
	Transparent    bool   `yaml:"transparent"`
	SelectedOnly   bool   `yaml:"selected_only"` // Draw only selected faces
	Workers        int    `yaml:"workers"`       // 0 = GOMAXPROCS
	Format         string `yaml:"format"`        // Empty = from extension
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			UnitScale: 1,
		},
		Unwrap: UnwrapConfig{
			FallbackWidth:  1,
			FallbackHeight: 1,
		},
		Export: ExportConfig{
			FallbackWidth:  64,
			FallbackHeight: 64,
			Transparent:    true,
			SelectedOnly:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

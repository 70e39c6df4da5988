package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"codeberg.org/deepdelve/deepdelve/mapgen"
)

// Config is the command configuration, read from a YAML file. Command line
// flags override file values.
type Config struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Depth        int    `yaml:"depth"`
	Seed         uint64 `yaml:"seed"`      // 0 means random
	Visualize    bool   `yaml:"visualize"` // replay the build history
	FrameDelay   int    `yaml:"frame_delay_ms"`
	ColorMode    string `yaml:"color_mode"` // "16", "256" or "truecolor"
	DarkColors   bool   `yaml:"dark_colors"`
	Fullscreen   bool   `yaml:"fullscreen"` // sdl only
	LocaleDir    string `yaml:"locale_dir"`
	Lang         string `yaml:"lang"`
	SpawnCatalog string `yaml:"spawn_catalog"` // optional YAML spawn catalog
	LevelFile    string `yaml:"level_file"`    // optional hand-made level template
}

// Default configuration values.
const (
	DefaultWidth      = 80
	DefaultHeight     = 50
	DefaultDepth      = 1
	DefaultFrameDelay = 120
	DefaultLang       = "en"
)

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	cfg := Config{DarkColors: true}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.FrameDelay <= 0 {
		cfg.FrameDelay = DefaultFrameDelay
	}
	if cfg.ColorMode == "" {
		cfg.ColorMode = "16"
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
}

// Minimal map size accepted by the command. Smaller maps leave no room for
// town buildings or wave function collapse chunks.
const (
	MinWidth  = 40
	MinHeight = 24
)

// Validate reports configuration values that cannot be used.
func (cfg Config) Validate() error {
	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return fmt.Errorf("map size %dx%d smaller than %dx%d", cfg.Width, cfg.Height, MinWidth, MinHeight)
	}
	switch cfg.ColorMode {
	case "16", "256", "truecolor":
	default:
		return fmt.Errorf("unknown color mode %q", cfg.ColorMode)
	}
	return nil
}

// ParseConfig decodes a YAML configuration and applies defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := Config{DarkColors: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadConfig reads the configuration file at path. A missing file yields the
// default configuration.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// MapgenConfig returns the generation options, loading the spawn catalog if
// one is configured.
func (cfg Config) MapgenConfig() (mapgen.Config, error) {
	mcfg := mapgen.Config{Visualize: cfg.Visualize}
	if cfg.SpawnCatalog == "" {
		return mcfg, nil
	}
	sc, err := mapgen.LoadSpawnCatalog(cfg.SpawnCatalog)
	if err != nil {
		return mcfg, err
	}
	mcfg.SpawnTable = sc.TableForDepth
	return mcfg, nil
}

// Package config handles generator configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/faultmesh/internal/logger"
	"github.com/Faultbox/faultmesh/internal/terrain"
	"github.com/Faultbox/faultmesh/pkg/math"
)

// Output formats and compression modes.
const (
	FormatTMB = "tmb"
	FormatOBJ = "obj"

	CompressionZstd = "zstd"
	CompressionNone = "none"
)

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds grid and fault algorithm settings.
type TerrainConfig struct {
	Divisions  int     `yaml:"divisions"`
	MinX       float32 `yaml:"min_x"`
	MaxX       float32 `yaml:"max_x"`
	MinY       float32 `yaml:"min_y"`
	MaxY       float32 `yaml:"max_y"`
	Delta      float32 `yaml:"delta"`
	Iterations int     `yaml:"iterations"`
	Seed       int64   `yaml:"seed"` // 0 picks a seed from the clock
}

// OutputConfig holds mesh output settings.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`      // tmb or obj
	Compression string `yaml:"compression"` // zstd or none, tmb only
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := terrain.DefaultParams()
	file := logger.DefaultFileConfig("")
	return &Config{
		Terrain: TerrainConfig{
			Divisions:  p.Div,
			MinX:       p.Bounds.MinX,
			MaxX:       p.Bounds.MaxX,
			MinY:       p.Bounds.MinY,
			MaxY:       p.Bounds.MaxY,
			Delta:      p.Delta,
			Iterations: p.Iterations,
			Seed:       0,
		},
		Output: OutputConfig{
			Path:        "terrain.tmb",
			Format:      FormatTMB,
			Compression: CompressionZstd,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			LogFile:    file.Path,
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
			Compress:   file.Compress,
		},
	}
}

// Options converts the logging settings for logger.InitWithOptions.
// Console output is always on; the file core is added when LogFile is set.
func (c LoggingConfig) Options() logger.Options {
	return logger.Options{
		Level:   c.Level,
		Format:  c.Format,
		Console: true,
		File: logger.FileConfig{
			Path:       c.LogFile,
			MaxSizeMB:  c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAgeDays: c.MaxAgeDays,
			Compress:   c.Compress,
		},
	}
}

// Params converts the terrain settings into generator parameters.
// A zero seed is replaced by the current time.
func (c TerrainConfig) Params() terrain.Params {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return terrain.Params{
		Lattice: terrain.Lattice{
			Div:    c.Divisions,
			Bounds: math.Rect{MinX: c.MinX, MaxX: c.MaxX, MinY: c.MinY, MaxY: c.MaxY},
		},
		Delta:      c.Delta,
		Iterations: c.Iterations,
		Seed:       seed,
	}
}

// Validate checks the settings before any work starts.
func (c *Config) Validate() error {
	if err := c.Terrain.Params().Validate(); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	switch c.Output.Format {
	case FormatTMB, FormatOBJ:
	default:
		return fmt.Errorf("output: unknown format %q", c.Output.Format)
	}
	switch c.Output.Compression {
	case CompressionZstd, CompressionNone:
	default:
		return fmt.Errorf("output: unknown compression %q", c.Output.Compression)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	return nil
}

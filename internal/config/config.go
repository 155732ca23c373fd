// Package config handles tablebake configuration loading and management.
package config

import (
	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
	"github.com/Faultbox/tablecraft/internal/table"
)

// Config holds all settings. It is resolved once at startup and not
// modified afterwards.
type Config struct {
	Table   table.Config        `yaml:"table"`
	Surface table.SurfaceConfig `yaml:"surface"`
	Shadow  lightmap.Config     `yaml:"shadow"`
	Output  OutputConfig        `yaml:"output"`
	Logging LoggingConfig       `yaml:"logging"`
}

// OutputConfig holds lightmap export settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Name   string `yaml:"name"`   // file name without extension
	Format string `yaml:"format"` // png or webp
	Size   int    `yaml:"size"`   // 0 keeps the bake resolution
	Report bool   `yaml:"report"` // write a YAML report next to the image
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Table:   table.DefaultConfig(),
		Surface: table.DefaultSurfaceConfig(),
		Shadow:  lightmap.DefaultConfig(),
		Output: OutputConfig{
			Dir:    "out",
			Name:   "soft_shadow",
			Format: "png",
			Size:   0,
			Report: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Settings returns the table settings section of the config.
func (c *Config) Settings() table.Settings {
	return table.Settings{
		Table:   c.Table,
		Surface: c.Surface,
		Shadow:  c.Shadow,
	}
}

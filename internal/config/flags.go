package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/tablecraft/internal/engine/support"
	"github.com/Faultbox/tablecraft/internal/export"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLength    = flag.Float64("length", 0, "Table length in mm")
	flagLegLength = flag.Float64("leg-length", 0, "Leg length in mm")
	flagLegHeight = flag.Float64("leg-height", 0, "Leg height in mm")
	flagTexture   = flag.String("texture", "", "Surface texture name")
	flagSupport   = flag.String("support", "", "Support variant (prop_01, prop_02)")
	flagFrames    = flag.Int("frames", -1, "Shadow bake frames (0 = unbounded)")
	flagSeed      = flag.Uint64("seed", 0, "Light sequence seed (0 = random)")
	flagOut       = flag.String("out", "", "Output directory")
	flagFormat    = flag.String("format", "", "Lightmap image format (png, webp)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLength > 0 {
		cfg.Table.LengthMM.Default = float32(*flagLength)
	}
	if *flagLegLength > 0 {
		cfg.Table.LegLengthMM.Default = float32(*flagLegLength)
	}
	if *flagLegHeight > 0 {
		cfg.Table.LegHeightMM.Default = float32(*flagLegHeight)
	}
	if *flagTexture != "" {
		cfg.Surface.Texture = *flagTexture
	}
	if *flagSupport != "" {
		v, err := support.ParseVariant(*flagSupport)
		if err != nil {
			return fmt.Errorf("-support: %w", err)
		}
		cfg.Table.Support = v
	}
	if *flagFrames >= 0 {
		cfg.Shadow.Frames = *flagFrames
	}
	if *flagSeed != 0 {
		cfg.Shadow.Seed = *flagSeed
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormat != "" {
		f, err := export.ParseFormat(*flagFormat)
		if err != nil {
			return fmt.Errorf("-format: %w", err)
		}
		cfg.Output.Format = string(f)
	}
	return nil
}

// tablebake configures a parametric table, bakes its soft shadow and writes
// the lightmap plus a YAML report of the derived geometry.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tablecraft/internal/config"
	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
	"github.com/Faultbox/tablecraft/internal/engine/texture"
	"github.com/Faultbox/tablecraft/internal/export"
	"github.com/Faultbox/tablecraft/internal/logger"
	"github.com/Faultbox/tablecraft/internal/table"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tablecraft shadow bake ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("bake failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// pendingFrames returns how many frames are left to bake after the table is
// built. A finite budget is already baked by table.New; with no render loop,
// an unbounded budget bakes one full sequence.
func pendingFrames(shadow lightmap.Config) int {
	if !shadow.Unbounded() {
		return 0
	}
	return max(shadow.SequenceLength, 1)
}

func run(cfg *config.Config) error {
	var src texture.Source
	if cfg.Surface.TexturesDir != "" {
		src = texture.DirSource(cfg.Surface.TexturesDir)
	}

	m, err := table.New(cfg.Settings(), table.NewFixture(), src)
	if err != nil {
		return fmt.Errorf("building table: %w", err)
	}

	if frames := pendingFrames(cfg.Shadow); frames > 0 {
		start := time.Now()
		m.AccumulateShadows(frames)
		logger.Info("bake complete",
			zap.Int("frames", frames),
			zap.Duration("elapsed", time.Since(start)))
	} else {
		logger.Info("bake complete", zap.Int("frames", m.Status().Samples))
	}

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	img := export.Image(m.Lightmap(), cfg.Shadow.Material.Opacity)
	if cfg.Output.Size > 0 {
		img = export.Resize(img, cfg.Output.Size)
	}
	path, err := export.WriteFile(cfg.Output.Dir, cfg.Output.Name, img, format)
	if err != nil {
		return fmt.Errorf("writing lightmap: %w", err)
	}
	logger.Info("lightmap written", zap.String("path", path))

	for _, w := range m.Status().Warnings {
		logger.Warn("table incomplete", zap.String("detail", w))
	}

	if !cfg.Output.Report {
		return nil
	}
	data, err := yaml.Marshal(m.Report())
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	reportPath := filepath.Join(cfg.Output.Dir, cfg.Output.Name+".yaml")
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info("report written", zap.String("path", reportPath))
	return nil
}

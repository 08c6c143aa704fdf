// Command clipconv is the CLI entrypoint for the ClipConv media converter.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or one of the two conversions: a compatibility
// H.264/AAC MP4 transcode, or a two-pass palette-quantized animated GIF.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/slateblue/clipconv/internal/animate"
	"github.com/slateblue/clipconv/internal/check"
	"github.com/slateblue/clipconv/internal/config"
	"github.com/slateblue/clipconv/internal/display"
	"github.com/slateblue/clipconv/internal/engine"
	"github.com/slateblue/clipconv/internal/logging"
	"github.com/slateblue/clipconv/internal/naming"
	"github.com/slateblue/clipconv/internal/probe"
	"github.com/slateblue/clipconv/internal/transcode"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "clipconv: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "clipconv: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipconv: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	runner := engine.SystemRunner{Tee: cfg.Verbose}
	ctx := context.Background()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, runner, log) {
			return 1
		}
		return 0
	}

	log.Info("=== ClipConv v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputPath)
	log.Info("Out: %s", resolvedOutput(&cfg))

	if cfg.DryRun {
		log.Warn("DRY RUN — commands printed, nothing executed")
		printPlan(&cfg, log)
		return 0
	}

	if cfg.ShowStats {
		logSourceStats(&cfg, log)
	}

	out, err := convert(ctx, &cfg, runner, log)
	if err != nil {
		// The converters log every failure before returning it.
		return 1
	}

	if fi, statErr := os.Stat(out); statErr == nil {
		log.Success("Done: %s (%s)", out, display.FormatBytes(fi.Size()))
	} else {
		log.Success("Done: %s", out)
	}
	return 0
}

// convert dispatches to the converter selected by cfg.Mode.
func convert(ctx context.Context, cfg *config.Config, runner engine.Runner, log *logging.Logger) (string, error) {
	switch cfg.Mode {
	case config.ModeGIF:
		opts := animate.Options{FPS: cfg.FPS, Scale: cfg.Scale, Quality: cfg.Quality}
		return animate.New(runner, log).Convert(ctx, cfg.InputPath, cfg.OutputPath, opts)
	default:
		return transcode.New(runner, log).Convert(ctx, cfg.InputPath, cfg.OutputPath)
	}
}

// resolvedOutput shows the output path the conversion will use, deriving the
// default when the user gave none.
func resolvedOutput(cfg *config.Config) string {
	if cfg.OutputPath != "" {
		return cfg.OutputPath
	}
	if cfg.Mode == config.ModeGIF {
		return naming.AnimatedPath(cfg.InputPath)
	}
	return naming.ConvertedPath(cfg.InputPath)
}

// printPlan prints each engine command the conversion would run.
func printPlan(cfg *config.Config, log *logging.Logger) {
	out := resolvedOutput(cfg)
	if cfg.Mode == config.ModeGIF {
		opts := animate.Options{FPS: cfg.FPS, Scale: cfg.Scale, Quality: cfg.Quality}
		pal := naming.PalettePath(out)
		log.Info("%s %s", engine.Binary, strings.Join(animate.PaletteArgs(cfg.InputPath, pal, opts), " "))
		log.Info("%s %s", engine.Binary, strings.Join(animate.RenderArgs(cfg.InputPath, pal, out, opts), " "))
		return
	}
	log.Info("%s %s", engine.Binary, strings.Join(transcode.BuildArgs(cfg.InputPath, out), " "))
}

// logSourceStats probes the input and prints a one-line summary. Probe
// failures are informational only; the conversion itself re-validates the
// input and the engine.
func logSourceStats(cfg *config.Config, log *logging.Logger) {
	info, err := probe.Probe(cfg.InputPath)
	if err != nil {
		log.Debug(cfg.Verbose, "source probe failed: %v", err)
		return
	}
	log.Info("Source: %dx%d %s, %s, %s",
		info.Width, info.Height, info.VideoCodec,
		display.FormatDuration(info.DurationSec),
		display.FormatBytes(info.SizeBytes))
}

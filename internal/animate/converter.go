// Package animate converts video files into palette-quantized animated GIFs
// using the engine's two-pass technique: a palette-generation pass that
// analyzes inter-frame differences, then a palette-application pass with
// ordered Bayer dithering. The intermediate palette never outlives a call.
package animate

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/slateblue/clipconv/internal/config"
	"github.com/slateblue/clipconv/internal/engine"
	"github.com/slateblue/clipconv/internal/naming"
)

// KeepSourceSize is the Scale sentinel meaning "do not resize, only round
// dimensions down to even values".
const KeepSourceSize = config.KeepSourceSize

// Options are the caller-tunable animated-image parameters.
type Options struct {
	FPS     int // Output frame rate; must be positive.
	Scale   int // Target width in px, or KeepSourceSize.
	Quality int // paletteuse bayer_scale, 0-5; lower dithers finer.
}

// DefaultOptions returns the documented defaults: 15 fps, source size,
// bayer_scale 5.
func DefaultOptions() Options {
	return Options{FPS: 15, Scale: KeepSourceSize, Quality: 5}
}

func (o Options) validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive (got %d)", o.FPS)
	}
	if o.Scale != KeepSourceSize && o.Scale <= 0 {
		return fmt.Errorf("scale must be a positive width or %d (got %d)", KeepSourceSize, o.Scale)
	}
	if o.Quality < config.QualityMin || o.Quality > config.QualityMax {
		return fmt.Errorf("quality must be %d-%d (got %d)", config.QualityMin, config.QualityMax, o.Quality)
	}
	return nil
}

// Logger is the minimal logging interface needed by Convert.
type Logger interface {
	Error(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Converter produces animated GIFs through an injected engine runner.
type Converter struct {
	runner engine.Runner
	log    Logger
}

// New returns a Converter backed by the given runner.
func New(runner engine.Runner, log Logger) *Converter {
	return &Converter{runner: runner, log: log}
}

// Convert renders inputPath as an animated GIF and returns the resolved
// output path. When outputPath is empty, the input path with a .gif extension
// is used.
//
// Preconditions, in order: the input file must exist (fail fast, no
// subprocess), and the engine must answer a version probe (missing binary and
// failing probe are distinct error kinds). Both pipeline stages run
// synchronously and in order; if either exits non-zero the returned error
// carries that stage's diagnostic output verbatim. The intermediate palette
// is removed before returning on every path; a partial final output may
// remain after a failed second stage.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string, opts Options) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if !os.IsNotExist(err) {
			err = errors.Wrapf(err, "stat %s", inputPath)
			c.log.Error("%v", err)
			return "", err
		}
		e := engine.InputNotFound("animate", inputPath, err)
		c.log.Error("%v", e)
		return "", e
	}

	if err := engine.Probe(ctx, c.runner); err != nil {
		c.log.Error("%v", err)
		return "", err
	}

	if err := opts.validate(); err != nil {
		c.log.Error("%v", err)
		return "", err
	}

	if outputPath == "" {
		outputPath = naming.AnimatedPath(inputPath)
	}

	pal := acquirePalette(outputPath, c.log)
	defer pal.Release()

	if res := c.runner.Run(ctx, engine.Binary, PaletteArgs(inputPath, pal.path, opts)); res.Err != nil {
		e := engine.Failure("palettegen", res)
		c.log.Error("%v", e)
		return "", e
	}

	if res := c.runner.Run(ctx, engine.Binary, RenderArgs(inputPath, pal.path, outputPath, opts)); res.Err != nil {
		e := engine.Failure("paletteuse", res)
		c.log.Error("%v", e)
		return "", e
	}

	return outputPath, nil
}

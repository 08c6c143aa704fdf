// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
)

// --- Enum types for validated string fields ---

// Mode selects which conversion is performed.
type Mode string

const (
	ModeMP4 Mode = "mp4" // Re-encode to compatibility H.264/AAC MP4 (default).
	ModeGIF Mode = "gif" // Two-pass palette-quantized animated GIF.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Animated-image parameter bounds. FPS must be positive; quality maps onto
// ffmpeg's paletteuse bayer_scale, which accepts 0-5.
const (
	QualityMin = 0
	QualityMax = 5

	// KeepSourceSize is the scale sentinel meaning "do not resize, only
	// round dimensions down to even values".
	KeepSourceSize = -1
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths (set from positional args). OutputPath may be empty, in which
	// case the converters derive it from InputPath.
	InputPath  string
	OutputPath string

	// Conversion mode.
	Mode Mode

	// GIF parameters (ignored in mp4 mode).
	FPS     int // Default: 15. Output frame rate.
	Scale   int // Default: -1 (keep source size). Otherwise target width in px.
	Quality int // Default: 5. paletteuse bayer_scale; lower dithers finer.

	// Behavior flags.
	DryRun    bool
	ShowStats bool // Default: true. Probe and print source stats before converting.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the fixed defaults: mp4 mode, GIF
// parameters matching the documented Convert defaults (fps 15, keep source
// size, bayer_scale 5). Used as the base before [ParseFlags] applies CLI
// overrides.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeMP4,
		FPS:       15,
		Scale:     KeepSourceSize,
		Quality:   5,
		DryRun:    false,
		ShowStats: true,
		Verbose:   false,
		ColorMode: ColorAuto,
		CheckOnly: false,
	}
}

// Validate checks enum fields and GIF parameter ranges. When not in CheckOnly
// mode, it also requires a non-empty input path.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMP4, ModeGIF:
		// valid
	default:
		return errors.New("invalid mode (use 'mp4' or 'gif')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive (got %d)", c.FPS)
	}
	if c.Scale != KeepSourceSize && c.Scale <= 0 {
		return fmt.Errorf("scale must be a positive width or %d for source size (got %d)", KeepSourceSize, c.Scale)
	}
	if c.Quality < QualityMin || c.Quality > QualityMax {
		return fmt.Errorf("quality must be %d-%d (got %d)", QualityMin, QualityMax, c.Quality)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" {
		return errors.New("need an input file")
	}
	return nil
}

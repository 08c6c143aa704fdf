package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into conversion, GIF parameters, display, and utility.
// Negated flags (e.g. --no-stats) are applied after Parse so Config defaults
// hold unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing input arg).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("clipconv", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var negated negatedFlags

	defineConversionFlags(fs, cfg)
	defineGIFFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "clipconv v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (noStats -> ShowStats=false) or trigger exit
// (showHelp, showVersion).
type negatedFlags struct {
	noStats     bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineConversionFlags registers -m/--mode and -d/--dry-run.
func defineConversionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&modeValue{&cfg.Mode}, "mode", "Conversion mode: mp4 | gif")
	fs.Var(&modeValue{&cfg.Mode}, "m", "Same as --mode")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the engine commands without running them")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineGIFFlags registers --fps, --scale, -q/--quality.
func defineGIFFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "GIF frame rate")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "GIF width in px; -1 keeps source size")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "GIF dither quality (bayer_scale 0-5)")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
}

// defineDisplayFlags registers --no-stats, --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.noStats, "no-stats", false, "Do not probe and print source stats")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (engine stderr streamed live)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noStats {
		cfg.ShowStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputPath and optionally OutputPath from the
// positional args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	switch len(args) {
	case 1:
		cfg.InputPath = args[0]
	case 2:
		cfg.InputPath = args[0]
		cfg.OutputPath = args[1]
	default:
		return fmt.Errorf("need an input file (and optionally an output file)")
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "ClipConv v" + version + " — compatibility MP4 and palette GIF converter"},
		{"", ""},
		{"  clipconv [OPTIONS] <input> [output]", ""},
		{"", ""},
		{"Conversion", ""},
		{"  -m, --mode <mp4|gif>", "Conversion mode (default: mp4)"},
		{"  -d, --dry-run", "Print the engine commands without running them"},
		{"", ""},
		{"GIF parameters", ""},
		{"  --fps <n>", "Frame rate (default: 15)"},
		{"  --scale <width>", "Target width in px; -1 keeps source size (default: -1)"},
		{"  -q, --quality <0-5>", "Dither quality, paletteuse bayer_scale (default: 5)"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Do not probe and print source stats"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output (engine stderr streamed live)"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, x264, AAC, GIF muxer)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the Mode enum works with flag.Var.

type modeValue struct{ p *Mode }

func (m *modeValue) String() string {
	if m.p == nil {
		return ""
	}
	return string(*m.p)
}

func (m *modeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "mp4":
		*m.p = ModeMP4
	case "gif":
		*m.p = ModeGIF
	default:
		return fmt.Errorf("invalid mode %q (use 'mp4' or 'gif')", s)
	}
	return nil
}

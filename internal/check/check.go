// Package check provides system diagnostics (--check mode) and pre-conversion
// engine validation for ffmpeg, the x264/AAC encoders, and the GIF muxer.
package check

import (
	"context"
	"strings"

	"github.com/slateblue/clipconv/internal/engine"
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// the encoders the transcoder profile needs, and GIF muxing support. This is
// informational only — individual failures are reported but do not stop the
// remaining checks. Returns false when the engine itself is unusable.
func RunCheck(ctx context.Context, r engine.Runner, log Logger) bool {
	log.Info("=== System Check ===")

	if !checkEngine(ctx, r, log) {
		return false
	}
	checkEncoders(ctx, r, log)
	checkGIFMuxer(ctx, r, log)
	return true
}

// checkEngine verifies ffmpeg is on PATH and logs its version string.
func checkEngine(ctx context.Context, r engine.Runner, log Logger) bool {
	if err := engine.Probe(ctx, r); err != nil {
		log.Error("%v", err)
		return false
	}
	out, err := r.Output(ctx, engine.Binary, []string{"-version"})
	if err != nil {
		log.Warn("ffmpeg found but -version produced no output: %v", err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
	return true
}

// checkEncoders reports whether the fixed transcode profile's encoders
// (libx264, aac) are compiled into the engine.
func checkEncoders(ctx context.Context, r engine.Runner, log Logger) {
	out, err := r.Output(ctx, engine.Binary, []string{"-hide_banner", "-encoders"})
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, name := range []string{"libx264", "aac"} {
		if containsWord(string(out), name) {
			log.Success("encoder %s available", name)
		} else {
			log.Error("encoder %s not available", name)
		}
	}
}

// checkGIFMuxer reports whether the engine can mux GIF output.
func checkGIFMuxer(ctx context.Context, r engine.Runner, log Logger) {
	out, err := r.Output(ctx, engine.Binary, []string{"-hide_banner", "-muxers"})
	if err != nil {
		log.Warn("Could not list muxers: %v", err)
		return
	}
	if containsWord(string(out), "gif") {
		log.Success("GIF muxer available")
	} else {
		log.Error("GIF muxer not available")
	}
}

// containsWord reports whether any whitespace-separated token of text equals
// word. Listing output pads names with spaces, so substring matching alone
// would also hit e.g. "libx264rgb".
func containsWord(text, word string) bool {
	for _, line := range strings.Split(text, "\n") {
		for _, tok := range strings.Fields(line) {
			if tok == word {
				return true
			}
		}
	}
	return false
}

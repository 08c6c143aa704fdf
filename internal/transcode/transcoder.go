// Package transcode re-encodes arbitrary video files into a widely compatible
// H.264/AAC MP4 using a fixed, compatibility-oriented profile. All actual
// encoding is done by the external engine; this package only derives paths,
// builds the argument vector, and surfaces failures.
package transcode

import (
	"context"
	"os"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/slateblue/clipconv/internal/engine"
	"github.com/slateblue/clipconv/internal/naming"
)

// Fixed encoding profile, applied on every call. Not caller-configurable:
// the point of this operation is a predictable, plays-everywhere output.
const (
	VideoCodec = "libx264"    // Widely supported H.264.
	AudioCodec = "aac"        // Widely supported AAC.
	Preset     = "medium"     // Balanced speed/quality.
	CRF        = 23           // Quality factor; lower is better, 0-51.
	MovFlags   = "+faststart" // Moov atom up front for progressive download.
)

// Logger is the minimal logging interface needed by Convert. Defined here
// (rather than importing the logging package) so that transcode remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Error(format string, args ...interface{})
}

// Transcoder converts video files through an injected engine runner.
type Transcoder struct {
	runner engine.Runner
	log    Logger
}

// New returns a Transcoder backed by the given runner.
func New(runner engine.Runner, log Logger) *Transcoder {
	return &Transcoder{runner: runner, log: log}
}

// BuildArgs constructs the complete engine argument vector for one
// input -> output transcode with the fixed profile and output overwrite.
// Exported so dry-run mode and tests can inspect the command without
// spawning anything.
func BuildArgs(inputPath, outputPath string) []string {
	return ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vcodec":   VideoCodec,
			"acodec":   AudioCodec,
			"preset":   Preset,
			"crf":      CRF,
			"movflags": MovFlags,
		}).
		OverWriteOutput().
		GetArgs()
}

// Convert re-encodes inputPath and returns the resolved output path. When
// outputPath is empty it is derived next to the input with the converted
// suffix. The input must exist; otherwise an input-not-found error is
// returned before any subprocess is spawned. Synchronous: blocks until the
// engine process exits. Any failure is logged and returned, never swallowed.
func (t *Transcoder) Convert(ctx context.Context, inputPath, outputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if !os.IsNotExist(err) {
			err = errors.Wrapf(err, "stat %s", inputPath)
			t.log.Error("%v", err)
			return "", err
		}
		e := engine.InputNotFound("transcode", inputPath, err)
		t.log.Error("%v", e)
		return "", e
	}

	if outputPath == "" {
		outputPath = naming.ConvertedPath(inputPath)
	}

	if res := t.runner.Run(ctx, engine.Binary, BuildArgs(inputPath, outputPath)); res.Err != nil {
		e := engine.Failure("transcode", res)
		t.log.Error("%v", e)
		return "", e
	}

	return outputPath, nil
}

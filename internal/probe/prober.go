// Package probe reads source media stats (duration, resolution, codec) for
// the pre-conversion stats display. Probe failures are informational only and
// never abort a conversion.
package probe

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// SourceInfo is the subset of ffprobe output shown in the stats line.
type SourceInfo struct {
	DurationSec float64
	Width       int
	Height      int
	VideoCodec  string
	SizeBytes   int64
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// result.
func Probe(path string) (*SourceInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ffprobe %q", path)
	}
	return ParseJSON([]byte(out))
}

// ParseJSON converts raw ffprobe JSON output into a SourceInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*SourceInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse ffprobe JSON")
	}
	return buildInfo(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

type ffprobeStream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// buildInfo extracts format-level duration/size and the first video stream's
// dimensions and codec.
func buildInfo(raw *ffprobeOutput) *SourceInfo {
	info := &SourceInfo{}

	if d, err := strconv.ParseFloat(raw.Format.Duration, 64); err == nil {
		info.DurationSec = d
	}
	if n, err := strconv.ParseInt(raw.Format.Size, 10, 64); err == nil {
		info.SizeBytes = n
	}

	for _, s := range raw.Streams {
		if s.CodecType != "video" {
			continue
		}
		info.Width = s.Width
		info.Height = s.Height
		info.VideoCodec = s.CodecName
		break
	}
	return info
}

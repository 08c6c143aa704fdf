package animate

import "fmt"

// ScaleFilter returns the scaling expression for the given target width.
// The sentinel KeepSourceSize keeps the original size but rounds both
// dimensions down to the nearest even value, since several encoders in this
// family reject odd dimensions. Positive widths scale proportionally with
// lanczos resampling.
func ScaleFilter(scale int) string {
	if scale == KeepSourceSize {
		return "scale=trunc(iw/2)*2:trunc(ih/2)*2"
	}
	return fmt.Sprintf("scale=%d:-1:flags=lanczos", scale)
}

// baseFilter is the scaling + frame-rate chain shared by both pipeline stages.
func baseFilter(opts Options) string {
	return fmt.Sprintf("%s,fps=%d", ScaleFilter(opts.Scale), opts.FPS)
}

// PaletteArgs constructs the stage-1 argument vector: analyze the (scaled,
// resampled) frames and write a color palette to palettePath. stats_mode=diff
// weights inter-frame differences so the palette adapts to motion.
func PaletteArgs(inputPath, palettePath string, opts Options) []string {
	return []string{
		"-i", inputPath,
		"-vf", baseFilter(opts) + ",palettegen=stats_mode=diff",
		"-y", palettePath,
	}
}

// RenderArgs constructs the stage-2 argument vector: re-encode the input
// against the generated palette with ordered Bayer dithering, writing the
// final output. opts.Quality parameterizes bayer_scale.
func RenderArgs(inputPath, palettePath, outputPath string, opts Options) []string {
	graph := fmt.Sprintf("%s[x];[x][1:v]paletteuse=dither=bayer:bayer_scale=%d",
		baseFilter(opts), opts.Quality)
	return []string{
		"-i", inputPath,
		"-i", palettePath,
		"-lavfi", graph,
		"-y", outputPath,
	}
}

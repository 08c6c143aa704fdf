// Package naming derives output and intermediate artifact paths from input
// paths. All derivations are deterministic: the same input always maps to the
// same output, which also means two concurrent conversions of the same file
// race on the same paths.
package naming

import (
	"path/filepath"
	"strings"
)

// Fixed path tokens.
const (
	ConvertedSuffix = "_converted" // Appended to the stem of a derived MP4 output.
	PaletteSuffix   = "_palette"   // Appended to the stem of the palette artifact.

	MP4Ext     = ".mp4"
	GIFExt     = ".gif"
	PaletteExt = ".png"
)

// Stem returns path without its extension.
func Stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// ConvertedPath is the default transcoder output: same directory and stem as
// input, with the converted suffix and the MP4 extension.
//
//	/media/clip.webm -> /media/clip_converted.mp4
func ConvertedPath(input string) string {
	dir := filepath.Dir(input)
	base := Stem(filepath.Base(input))
	return filepath.Join(dir, base+ConvertedSuffix+MP4Ext)
}

// AnimatedPath is the default animated-image output: input path with its
// extension replaced by .gif.
//
//	/media/clip.mp4 -> /media/clip.gif
func AnimatedPath(input string) string {
	return Stem(input) + GIFExt
}

// PalettePath is the intermediate palette artifact for a given final output:
// output stem with the palette suffix and the .png extension.
//
//	/media/clip.gif -> /media/clip_palette.png
func PalettePath(output string) string {
	return Stem(output) + PaletteSuffix + PaletteExt
}

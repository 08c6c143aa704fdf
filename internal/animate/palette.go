package animate

import (
	"os"

	"github.com/slateblue/clipconv/internal/naming"
)

// palette is the intermediate color-table artifact shared by the two pipeline
// stages. It is owned exclusively by the Convert call that acquired it and is
// released exactly once on every exit path, success or failure, so no palette
// file is ever left behind.
type palette struct {
	path string
	log  Logger
}

func acquirePalette(outputPath string, log Logger) *palette {
	return &palette{path: naming.PalettePath(outputPath), log: log}
}

// Release removes the palette file if it exists. Best effort: a removal
// failure is logged but never masks the error that is already propagating.
func (p *palette) Release() {
	if _, err := os.Stat(p.path); err != nil {
		return
	}
	if err := os.Remove(p.path); err != nil {
		p.log.Warn("could not remove palette %s: %v", p.path, err)
	}
}

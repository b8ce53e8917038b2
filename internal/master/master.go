// Package master renders the per-resolution source rasters from master
// artwork. This is the only place any rescaling happens; the packer and the
// stager downstream copy bytes verbatim.
package master

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/pain-lang/painicons/internal/iconset"
)

// Load reads master artwork from a PNG file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Decode reads master artwork from embedded PNG bytes.
func Decode(data []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(data))
}

// Generate writes src scaled to every requested resolution into dir, using
// the identity's source naming convention. Existing files are overwritten.
func Generate(dir, identity string, src image.Image, sizes []int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create source dir: %w", err)
	}
	for _, size := range sizes {
		path := filepath.Join(dir, iconset.FileName(identity, size))
		if err := gg.SavePNG(path, scale(src, size)); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
	}
	return nil
}

// scale fits src into a size×size canvas, preserving aspect ratio and
// centering, with Catmull-Rom resampling.
func scale(src image.Image, size int) *image.NRGBA {
	srcBounds := src.Bounds()
	srcW := srcBounds.Dx()
	srcH := srcBounds.Dy()
	ratio := math.Min(float64(size)/float64(srcW), float64(size)/float64(srcH))
	newW := int(math.Round(float64(srcW) * ratio))
	newH := int(math.Round(float64(srcH) * ratio))

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	xdraw.CatmullRom.Scale(dst, dr, src, srcBounds, xdraw.Over, nil)
	return dst
}

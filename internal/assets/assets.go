// Package assets resolves and prepares the bitmaps printed on receipts.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// Store serves images from a directory, scaled for a printer's bitmap width.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the on-disk location of a named asset.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Image loads a named asset and resizes it to widthPx, preserving aspect
// ratio. Failures surface to the dispatcher as device faults.
func (s *Store) Image(name string, widthPx int) (image.Image, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", name, err)
	}
	return ResizeToWidth(img, widthPx), nil
}

// QR renders content as a QR code bitmap widthPx pixels square.
func (s *Store) QR(content string, widthPx int) (image.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr %q: %w", content, err)
	}
	return q.Image(widthPx), nil
}

// ResizeToWidth scales src to targetWidth with nearest-neighbour sampling.
// Thermal raster output is 1-bit anyway, so interpolation buys nothing.
func ResizeToWidth(src image.Image, targetWidth int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == targetWidth || w == 0 {
		return src
	}

	scale := float64(targetWidth) / float64(w)
	newHeight := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, newHeight))
	for y := 0; y < newHeight; y++ {
		for x := 0; x < targetWidth; x++ {
			sx := bounds.Min.X + int(float64(x)/scale)
			sy := bounds.Min.Y + int(float64(y)/scale)
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

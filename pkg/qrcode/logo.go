package qr

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// logo is a center image already scaled to its final pixel size.
type logo struct {
	img  image.Image
	box  rect
	hide moduleRect
}

// moduleRect is a half-open range of module rows and columns.
type moduleRect struct {
	row0, col0, row1, col1 int
}

func (r moduleRect) contains(row, col int) bool {
	return row >= r.row0 && row < r.row1 && col >= r.col0 && col < r.col1
}

// loadLogo reads the image at path and fits it into a square of
// opts.ImageOptions.ImageSize times the symbol side, keeping the aspect ratio.
func loadLogo(opts Options, l layout) (*logo, error) {
	src, err := gg.LoadImage(opts.Image)
	if err != nil {
		return nil, fmt.Errorf("load logo: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("load logo: empty image")
	}

	symbol := float64(l.modules) * l.dot
	side := math.Floor(symbol * opts.ImageOptions.ImageSize)
	scale := side / math.Max(float64(b.Dx()), float64(b.Dy()))
	w, h := math.Max(1, math.Floor(float64(b.Dx())*scale)), math.Max(1, math.Floor(float64(b.Dy())*scale))

	img := resize.Resize(uint(w), uint(h), src, resize.Lanczos3)
	box := rect{
		x: math.Floor(l.x0 + (symbol-w)/2),
		y: math.Floor(l.y0 + (symbol-h)/2),
		w: w,
		h: h,
	}

	lg := &logo{img: img, box: box}
	if opts.ImageOptions.HideBackgroundDots {
		m := float64(opts.ImageOptions.Margin)
		lg.hide = moduleRect{
			col0: int(math.Floor((box.x - m - l.x0) / l.dot)),
			row0: int(math.Floor((box.y - m - l.y0) / l.dot)),
			col1: int(math.Ceil((box.x + box.w + m - l.x0) / l.dot)),
			row1: int(math.Ceil((box.y + box.h + m - l.y0) / l.dot)),
		}
	}
	return lg, nil
}

package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/fogleman/gg"
)

type Extension string

const (
	PNG Extension = "png"
	SVG Extension = "svg"
)

// Renderer turns Options into artifacts. It keeps no state between calls,
// every configuration gets a fresh Artifact.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render encodes opts.Data and lays the symbol out. Drawing happens when the
// artifact is asked for an image or SVG.
func (r *Renderer) Render(opts Options) (*Artifact, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	m, err := newMatrix(opts.Data, opts.QROptions.ErrorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}

	l, err := newLayout(opts, m.size)
	if err != nil {
		return nil, err
	}

	a := &Artifact{opts: opts, matrix: m, layout: l}
	if opts.Image != "" {
		a.logo, err = loadLogo(opts, l)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

type layout struct {
	width, height float64
	modules       int
	dot           float64
	x0, y0        float64
}

// newLayout sizes modules to whole pixels and centers the symbol.
func newLayout(opts Options, modules int) (layout, error) {
	area := min(opts.Width, opts.Height) - 2*opts.Margin
	dot := math.Floor(float64(area) / float64(modules))
	if dot < 1 {
		return layout{}, fmt.Errorf("%dx%d with margin %d is too small for %d modules",
			opts.Width, opts.Height, opts.Margin, modules)
	}
	symbol := dot * float64(modules)
	return layout{
		width:   float64(opts.Width),
		height:  float64(opts.Height),
		modules: modules,
		dot:     dot,
		x0:      math.Floor((float64(opts.Width) - symbol) / 2),
		y0:      math.Floor((float64(opts.Height) - symbol) / 2),
	}, nil
}

// Artifact is a rendered QR code ready to be drawn or serialised.
type Artifact struct {
	opts   Options
	matrix matrix
	layout layout
	logo   *logo
}

func (a *Artifact) Options() Options {
	return a.opts
}

func (a *Artifact) Size() (int, int) {
	return a.opts.Width, a.opts.Height
}

// Modules is the side of the symbol in modules, without quiet zone.
func (a *Artifact) Modules() int {
	return a.matrix.size
}

// layer is one filled group of shapes sharing a paint.
type layer struct {
	name     string
	fill     fill
	area     rect
	rotation float64
	evenOdd  bool
	// radius is set on the background layer only, it is drawn as a rect.
	radius     float64
	background bool
	draw       func(p pen)
}

var finderCorners = []struct {
	row, col int
	rotation float64
}{
	{0, 0, 0},
	{0, 1, math.Pi / 2},
	{1, 0, -math.Pi / 2},
}

func (a *Artifact) layers() []layer {
	l, o := a.layout, a.opts
	canvas := rect{0, 0, l.width, l.height}
	radius := o.BackgroundOptions.Round * math.Min(l.width, l.height) / 2

	layers := []layer{{
		name:       "background",
		fill:       o.BackgroundOptions.fill(),
		area:       canvas,
		radius:     radius,
		background: true,
		draw: func(p pen) {
			if radius > 0 {
				roundedRect(p, 0, 0, l.width, l.height, uniform(radius))
				return
			}
			p.DrawRectangle(0, 0, l.width, l.height)
		},
	}, {
		name: "dots",
		fill: o.DotsOptions.fill(),
		area: canvas,
		draw: a.drawDots,
	}}

	offset := float64(l.modules - finderSize)
	for i, c := range finderCorners {
		x := l.x0 + float64(c.col)*offset*l.dot
		y := l.y0 + float64(c.row)*offset*l.dot
		size := finderSize * l.dot
		layers = append(layers, layer{
			name:     fmt.Sprintf("corners-square-%d", i),
			fill:     o.CornersSquareOptions.fill(),
			area:     rect{x, y, size, size},
			rotation: c.rotation,
			evenOdd:  true,
			draw: func(p pen) {
				drawCornerSquare(p, o.CornersSquareOptions.Type, x, y, l.dot)
			},
		})

		dx, dy := x+finderDotOffset*l.dot, y+finderDotOffset*l.dot
		dotSize := finderDotSize * l.dot
		layers = append(layers, layer{
			name:     fmt.Sprintf("corners-dot-%d", i),
			fill:     o.CornersDotOptions.fill(),
			area:     rect{dx, dy, dotSize, dotSize},
			rotation: c.rotation,
			draw: func(p pen) {
				drawCornerDot(p, o.CornersDotOptions.Type, dx, dy, l.dot)
			},
		})
	}
	return layers
}

// isDot reports whether a module is drawn as a data dot.
func (a *Artifact) isDot(row, col int) bool {
	if !a.matrix.isDark(row, col) || a.matrix.inFinder(row, col) {
		return false
	}
	if a.logo != nil && a.logo.hide.contains(row, col) {
		return false
	}
	return true
}

func (a *Artifact) drawDots(p pen) {
	l := a.layout
	for row := 0; row < a.matrix.size; row++ {
		for col := 0; col < a.matrix.size; col++ {
			if !a.isDot(row, col) {
				continue
			}
			n := neighbors{
				left:   a.isDot(row, col-1),
				right:  a.isDot(row, col+1),
				top:    a.isDot(row-1, col),
				bottom: a.isDot(row+1, col),
			}
			drawDot(p, a.opts.DotsOptions.Type, l.x0+float64(col)*l.dot, l.y0+float64(row)*l.dot, l.dot, n)
		}
	}
}

// Image draws the artifact. Areas left unpainted stay transparent.
func (a *Artifact) Image() (image.Image, error) {
	dc := gg.NewContext(a.opts.Width, a.opts.Height)
	for _, ly := range a.layers() {
		if err := paintLayer(dc, ly); err != nil {
			return nil, fmt.Errorf("draw %s: %w", ly.name, err)
		}
	}
	if a.logo != nil {
		dc.DrawImage(a.logo.img, int(a.logo.box.x), int(a.logo.box.y))
	}
	return dc.Image(), nil
}

func paintLayer(dc *gg.Context, ly layer) error {
	if ly.fill.gradient != nil {
		pattern, err := ggPattern(ly.fill.gradient, ly.area, ly.rotation)
		if err != nil {
			return err
		}
		dc.SetFillStyle(pattern)
	} else {
		c, err := ParseColor(ly.fill.color)
		if err != nil {
			return err
		}
		if isTransparent(c) {
			return nil
		}
		dc.SetColor(c)
	}

	if ly.evenOdd {
		dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		dc.SetFillRule(gg.FillRuleWinding)
	}
	ly.draw(dc)
	dc.Fill()
	return nil
}

// RawData serialises the artifact as PNG or SVG.
func (a *Artifact) RawData(ext Extension) ([]byte, error) {
	switch ext {
	case PNG:
		img, err := a.Image()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err = png.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case SVG:
		return a.SVG()
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}

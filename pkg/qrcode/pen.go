package qr

import (
	"fmt"
	"strings"
)

// pen is the subset of path operations the shapes need. *gg.Context
// satisfies it for raster output and *svgPath records the same calls as SVG
// path data.
type pen interface {
	NewSubPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
	DrawCircle(x, y, r float64)
	DrawRectangle(x, y, w, h float64)
}

type svgPath struct {
	b strings.Builder
}

func (p *svgPath) cmd(format string, args ...interface{}) {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
	fmt.Fprintf(&p.b, format, args...)
}

func (p *svgPath) NewSubPath() {}

func (p *svgPath) MoveTo(x, y float64) {
	p.cmd("M%.2f %.2f", x, y)
}

func (p *svgPath) LineTo(x, y float64) {
	p.cmd("L%.2f %.2f", x, y)
}

func (p *svgPath) QuadraticTo(x1, y1, x2, y2 float64) {
	p.cmd("Q%.2f %.2f %.2f %.2f", x1, y1, x2, y2)
}

func (p *svgPath) ClosePath() {
	p.cmd("Z")
}

func (p *svgPath) DrawCircle(x, y, r float64) {
	p.cmd("M%.2f %.2f A%.2f %.2f 0 1 1 %.2f %.2f A%.2f %.2f 0 1 1 %.2f %.2f Z",
		x+r, y, r, r, x-r, y, r, r, x+r, y)
}

func (p *svgPath) DrawRectangle(x, y, w, h float64) {
	p.cmd("M%.2f %.2f L%.2f %.2f L%.2f %.2f L%.2f %.2f Z", x, y, x+w, y, x+w, y+h, x, y+h)
}

func (p *svgPath) String() string {
	return p.b.String()
}

func (p *svgPath) empty() bool {
	return p.b.Len() == 0
}

package qr

// corners holds radii clockwise from the top left corner.
type corners [4]float64

// roundedRect outlines a rectangle with an individual radius per corner.
// A radius as large as the side turns the corner into a quarter leaf.
func roundedRect(p pen, x, y, w, h float64, r corners) {
	tl, tr, br, bl := r[0], r[1], r[2], r[3]
	p.NewSubPath()
	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	if tr > 0 {
		p.QuadraticTo(x+w, y, x+w, y+tr)
	}
	p.LineTo(x+w, y+h-br)
	if br > 0 {
		p.QuadraticTo(x+w, y+h, x+w-br, y+h)
	}
	p.LineTo(x+bl, y+h)
	if bl > 0 {
		p.QuadraticTo(x, y+h, x, y+h-bl)
	}
	p.LineTo(x, y+tl)
	if tl > 0 {
		p.QuadraticTo(x, y, x+tl, y)
	}
	p.ClosePath()
}

type neighbors struct {
	left, right, top, bottom bool
}

func (n neighbors) count() int {
	c := 0
	for _, v := range []bool{n.left, n.right, n.top, n.bottom} {
		if v {
			c++
		}
	}
	return c
}

// free reports, clockwise from the top left, which corners have no neighbor
// on either adjacent side.
func (n neighbors) free() [4]bool {
	return [4]bool{
		!n.top && !n.left,
		!n.top && !n.right,
		!n.bottom && !n.right,
		!n.bottom && !n.left,
	}
}

// drawDot outlines one data module of side s at (x, y).
func drawDot(p pen, kind string, x, y, s float64, n neighbors) {
	switch kind {
	case "dots":
		p.DrawCircle(x+s/2, y+s/2, s/2)
	case "rounded":
		if n.count() == 0 {
			p.DrawCircle(x+s/2, y+s/2, s/2)
			return
		}
		roundedRect(p, x, y, s, s, radii(n.free(), [4]bool{true, true, true, true}, s/2))
	case "extra-rounded":
		if n.count() == 0 {
			p.DrawCircle(x+s/2, y+s/2, s/2)
			return
		}
		free := n.free()
		r := s / 2
		if countTrue(free) == 1 {
			r = s
		}
		roundedRect(p, x, y, s, s, radii(free, [4]bool{true, true, true, true}, r))
	case "classy":
		roundedRect(p, x, y, s, s, radii(n.free(), [4]bool{true, false, true, false}, s/2))
	case "classy-rounded":
		roundedRect(p, x, y, s, s, radii(n.free(), [4]bool{true, false, true, false}, s))
	default:
		p.DrawRectangle(x, y, s, s)
	}
}

func radii(free, allowed [4]bool, r float64) corners {
	var c corners
	for i := range c {
		if free[i] && allowed[i] {
			c[i] = r
		}
	}
	return c
}

func countTrue(v [4]bool) int {
	c := 0
	for _, b := range v {
		if b {
			c++
		}
	}
	return c
}

// drawCornerSquare outlines the 7x7 ring of a finder pattern. The ring is an
// outer and an inner contour and must be filled with the even-odd rule.
func drawCornerSquare(p pen, kind string, x, y, s float64) {
	size := finderSize * s
	switch kind {
	case "dot":
		cx, cy := x+size/2, y+size/2
		p.DrawCircle(cx, cy, size/2)
		p.DrawCircle(cx, cy, size/2-s)
	case "rounded", "extra-rounded":
		roundedRect(p, x, y, size, size, uniform(2.5*s))
		roundedRect(p, x+s, y+s, size-2*s, size-2*s, uniform(1.5*s))
	default:
		p.DrawRectangle(x, y, size, size)
		p.DrawRectangle(x+s, y+s, size-2*s, size-2*s)
	}
}

// drawCornerDot outlines the 3x3 center of a finder pattern.
func drawCornerDot(p pen, kind string, x, y, s float64) {
	size := finderDotSize * s
	switch kind {
	case "dot":
		p.DrawCircle(x+size/2, y+size/2, size/2)
	case "rounded":
		roundedRect(p, x, y, size, size, uniform(s))
	default:
		p.DrawRectangle(x, y, size, size)
	}
}

func uniform(r float64) corners {
	return corners{r, r, r, r}
}

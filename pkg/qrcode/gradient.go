package qr

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

type rect struct {
	x, y, w, h float64
}

// gradientLine is the resolved geometry of a gradient inside an area.
// Linear gradients use the endpoints, radial ones the center and radius.
type gradientLine struct {
	radial         bool
	x0, y0, x1, y1 float64
	cx, cy, r      float64
}

// resolveGradient places g inside area. extraRotation is added to the
// gradient rotation, both in radians.
func resolveGradient(g *Gradient, area rect, extraRotation float64) gradientLine {
	cx, cy := area.x+area.w/2, area.y+area.h/2

	if g.Type == "radial" {
		return gradientLine{radial: true, cx: cx, cy: cy, r: math.Max(area.w, area.h) / 2}
	}

	rotation := math.Mod(g.Rotation+extraRotation, 2*math.Pi)
	positive := math.Mod(rotation+2*math.Pi, 2*math.Pi)
	tan := math.Tan(rotation)

	x0, y0, x1, y1 := cx, cy, cx, cy
	switch {
	case positive <= 0.25*math.Pi || positive > 1.75*math.Pi:
		x0, y0 = x0-area.w/2, y0-area.h/2*tan
		x1, y1 = x1+area.w/2, y1+area.h/2*tan
	case positive <= 0.75*math.Pi:
		y0, x0 = y0-area.h/2, x0-area.w/2/tan
		y1, x1 = y1+area.h/2, x1+area.w/2/tan
	case positive <= 1.25*math.Pi:
		x0, y0 = x0+area.w/2, y0+area.h/2*tan
		x1, y1 = x1-area.w/2, y1-area.h/2*tan
	default:
		y0, x0 = y0+area.h/2, x0+area.w/2/tan
		y1, x1 = y1-area.h/2, x1-area.w/2/tan
	}

	return gradientLine{
		x0: math.Round(x0), y0: math.Round(y0),
		x1: math.Round(x1), y1: math.Round(y1),
	}
}

type resolvedStop struct {
	offset float64
	color  color.Color
}

func resolveStops(g *Gradient) ([]resolvedStop, error) {
	stops := make([]resolvedStop, 0, len(g.ColorStops))
	for _, s := range g.ColorStops {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		stops = append(stops, resolvedStop{offset: s.Offset, color: c})
	}
	return stops, nil
}

// ggPattern builds the raster paint for a gradient fill.
func ggPattern(g *Gradient, area rect, extraRotation float64) (gg.Pattern, error) {
	stops, err := resolveStops(g)
	if err != nil {
		return nil, err
	}

	line := resolveGradient(g, area, extraRotation)
	var grad gg.Gradient
	if line.radial {
		grad = gg.NewRadialGradient(line.cx, line.cy, 0, line.cx, line.cy, line.r)
	} else {
		grad = gg.NewLinearGradient(line.x0, line.y0, line.x1, line.y1)
	}
	for _, s := range stops {
		grad.AddColorStop(s.offset, s.color)
	}
	return grad, nil
}

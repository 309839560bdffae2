package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor understands the CSS color forms a styling configuration can carry:
// #rgb, #rrggbb, #rrggbbaa, rgb(), rgba(), and a few keywords.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "transparent":
		return color.NRGBA{}, nil
	case "white":
		return color.White, nil
	case "black":
		return color.Black, nil
	}

	if strings.HasPrefix(v, "rgb") {
		return parseRGBFunc(v)
	}

	if strings.HasPrefix(v, "#") && len(v) == 9 {
		c, err := colorful.Hex(v[:7])
		if err != nil {
			return nil, fmt.Errorf("parse color %q: %w", s, err)
		}
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	}

	c, err := colorful.Hex(v)
	if err != nil {
		return nil, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseRGBFunc(v string) (color.Color, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("parse color %q: malformed function", v)
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("parse color %q: want 3 or 4 components", v)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("parse color %q: bad channel %q", v, parts[i])
		}
		channels[i] = uint8(n + 0.5)
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, fmt.Errorf("parse color %q: bad alpha %q", v, parts[3])
		}
		alpha = a
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: uint8(alpha*255 + 0.5)}, nil
}

// svgColor splits a color into an SVG paint value and its opacity.
func svgColor(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return "none", 0
	}
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

func isTransparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}

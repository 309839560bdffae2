package service

import (
	"math"
	"strings"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
)

// Dimensions is the canvas of a render in pixels.
type Dimensions struct {
	Width  int
	Height int
	Margin int
}

// RenderSettings are deployment-wide renderer options that are not part of a
// user's styling.
type RenderSettings struct {
	ErrorCorrection string
	LogoPath        string
	LogoSize        float64
	LogoMargin      int
}

func (s RenderSettings) apply(o *qr.Options) {
	if s.ErrorCorrection != "" {
		o.QROptions.ErrorCorrectionLevel = s.ErrorCorrection
	}
	if s.LogoPath != "" {
		o.Image = s.LogoPath
		o.ImageOptions.HideBackgroundDots = true
		o.ImageOptions.Margin = s.LogoMargin
		if s.LogoSize > 0 {
			o.ImageOptions.ImageSize = s.LogoSize
		}
	}
}

// ToRendererOptions maps a styling onto the renderer schema. Every fill carries
// either a color or a gradient, never both, and rotations become radians.
// Surrounding whitespace of the content is not encoded.
func ToRendererOptions(s styling.Options, content string, dim Dimensions) qr.Options {
	o := qr.Defaults()
	o.Data = strings.TrimSpace(content)
	o.Width = dim.Width
	o.Height = dim.Height
	o.Margin = dim.Margin

	color, gradient := rendererFill(s.Dots.Color)
	o.DotsOptions = qr.DotsOptions{Type: string(s.Dots.Type), Color: color, Gradient: gradient}

	color, gradient = rendererFill(s.CornersSquare.Color)
	o.CornersSquareOptions = qr.CornersSquareOptions{Type: string(s.CornersSquare.Type), Color: color, Gradient: gradient}

	color, gradient = rendererFill(s.CornersDot.Color)
	o.CornersDotOptions = qr.CornersDotOptions{Type: string(s.CornersDot.Type), Color: color, Gradient: gradient}

	color, gradient = rendererFill(s.Background.Color)
	o.BackgroundOptions = qr.BackgroundOptions{Color: color, Gradient: gradient}

	return o
}

func rendererFill(c styling.Color) (string, *qr.Gradient) {
	if g, ok := c.Gradient(); ok {
		stops := make([]qr.ColorStop, len(g.ColorStops))
		for i, s := range g.ColorStops {
			stops[i] = qr.ColorStop{Offset: s.Offset, Color: s.Color}
		}
		return "", &qr.Gradient{
			Type:       string(g.Type),
			Rotation:   g.Rotation * math.Pi / 180,
			ColorStops: stops,
		}
	}
	hex, _ := c.Solid()
	return hex, nil
}

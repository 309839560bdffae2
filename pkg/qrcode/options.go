package qr

import "fmt"

// Options is the renderer configuration. Its JSON form mirrors the option
// object of the qr-code-styling family of renderers.
type Options struct {
	Data                 string               `json:"data"`
	Width                int                  `json:"width"`
	Height               int                  `json:"height"`
	Margin               int                  `json:"margin"`
	QROptions            QROptions            `json:"qrOptions"`
	Image                string               `json:"image,omitempty"`
	ImageOptions         ImageOptions         `json:"imageOptions"`
	DotsOptions          DotsOptions          `json:"dotsOptions"`
	CornersSquareOptions CornersSquareOptions `json:"cornersSquareOptions"`
	CornersDotOptions    CornersDotOptions    `json:"cornersDotOptions"`
	BackgroundOptions    BackgroundOptions    `json:"backgroundOptions"`
}

type QROptions struct {
	// ErrorCorrectionLevel is one of L, M, Q, H.
	ErrorCorrectionLevel string `json:"errorCorrectionLevel"`
}

type ImageOptions struct {
	// ImageSize is the logo size as a fraction of the drawing area.
	ImageSize          float64 `json:"imageSize"`
	Margin             int     `json:"margin"`
	HideBackgroundDots bool    `json:"hideBackgroundDots"`
}

// Color and Gradient are mutually exclusive in every fill below.
type DotsOptions struct {
	Type     string    `json:"type"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type CornersSquareOptions struct {
	Type     string    `json:"type"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type CornersDotOptions struct {
	Type     string    `json:"type"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type BackgroundOptions struct {
	// Round is the corner radius as a fraction of half the shorter side, 0..1.
	Round    float64   `json:"round,omitempty"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type Gradient struct {
	Type string `json:"type"`
	// Rotation is in radians.
	Rotation   float64     `json:"rotation"`
	ColorStops []ColorStop `json:"colorStops"`
}

type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// fill is the common view over the four option kinds.
type fill struct {
	color    string
	gradient *Gradient
}

func (o DotsOptions) fill() fill          { return fill{o.Color, o.Gradient} }
func (o CornersSquareOptions) fill() fill { return fill{o.Color, o.Gradient} }
func (o CornersDotOptions) fill() fill    { return fill{o.Color, o.Gradient} }
func (o BackgroundOptions) fill() fill    { return fill{o.Color, o.Gradient} }

// Defaults returns a black on white square QR code of 300x300.
func Defaults() Options {
	return Options{
		Width:                300,
		Height:               300,
		QROptions:            QROptions{ErrorCorrectionLevel: "Q"},
		ImageOptions:         ImageOptions{ImageSize: 0.4, HideBackgroundDots: true},
		DotsOptions:          DotsOptions{Type: "square", Color: "#000000"},
		CornersSquareOptions: CornersSquareOptions{Type: "square", Color: "#000000"},
		CornersDotOptions:    CornersDotOptions{Type: "square", Color: "#000000"},
		BackgroundOptions:    BackgroundOptions{Color: "#FFFFFF"},
	}
}

func (o Options) validate() error {
	switch {
	case o.Data == "":
		return fmt.Errorf("no data to encode")
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	case o.Margin < 0 || 2*o.Margin >= min(o.Width, o.Height):
		return fmt.Errorf("margin %d does not fit into %dx%d", o.Margin, o.Width, o.Height)
	case o.BackgroundOptions.Round < 0 || o.BackgroundOptions.Round > 1:
		return fmt.Errorf("background round %v is out of [0, 1]", o.BackgroundOptions.Round)
	case o.ImageOptions.ImageSize < 0 || o.ImageOptions.ImageSize > 1:
		return fmt.Errorf("image size %v is out of [0, 1]", o.ImageOptions.ImageSize)
	}
	for _, f := range []fill{o.DotsOptions.fill(), o.CornersSquareOptions.fill(), o.CornersDotOptions.fill(), o.BackgroundOptions.fill()} {
		if f.gradient != nil && len(f.gradient.ColorStops) == 0 {
			return fmt.Errorf("gradient without color stops")
		}
	}
	return nil
}

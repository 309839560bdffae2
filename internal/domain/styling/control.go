package styling

import "fmt"

// ColorControl is one of the color pickers of the designer. A control may
// write to several slots, see SetColor.
type ColorControl string

const (
	DotsColor       ColorControl = "dots"
	CornersColor    ColorControl = "corners"
	BackgroundColor ColorControl = "background"
)

var ColorControls = []ColorControl{DotsColor, CornersColor, BackgroundColor}

func ParseColorControl(s string) (ColorControl, error) {
	for _, c := range ColorControls {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown color control %q", s)
}

// Current is the color the control displays.
func (c ColorControl) Current(o Options) Color {
	switch c {
	case CornersColor:
		return o.CornersSquare.Color
	case BackgroundColor:
		return o.Background.Color
	default:
		return o.Dots.Color
	}
}

// DefaultGradient is used the first time the control switches to gradient.
func (c ColorControl) DefaultGradient() Gradient {
	if c == BackgroundColor {
		return DefaultBackgroundGradient()
	}
	return DefaultGradient()
}

// PresetColors is the palette offered by the color picker.
var PresetColors = []string{
	"#000000", "#FFFFFF", "#EF4444", "#F97316", "#EAB308",
	"#22C55E", "#14B8A6", "#3B82F6", "#8B5CF6", "#EC4899",
	"#6B7280", "#1F2937", "#DC2626", "#EA580C", "#CA8A04",
	"#16A34A", "#0D9488", "#2563EB", "#7C3AED", "#DB2777",
}

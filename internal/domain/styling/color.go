package styling

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ColorKind selects which payload of a Color is active.
type ColorKind string

const (
	KindSolid    ColorKind = "solid"
	KindGradient ColorKind = "gradient"
)

const defaultSolidColor = "#000000"

// Color is either a solid color or a gradient. The inactive payload is kept
// so that toggling back restores the user's last value.
type Color struct {
	kind     ColorKind
	solid    string
	gradient *Gradient
}

// NewSolid returns a solid color.
func NewSolid(hex string) Color {
	return Color{kind: KindSolid, solid: hex}
}

// NewGradient returns a gradient color.
func NewGradient(g Gradient) Color {
	g = g.clone()
	return Color{kind: KindGradient, gradient: &g}
}

// Kind reports the active payload. The zero Color is solid.
func (c Color) Kind() ColorKind {
	if c.kind == "" {
		return KindSolid
	}
	return c.kind
}

// Solid returns the solid color and whether it is the active payload.
func (c Color) Solid() (string, bool) {
	if c.Kind() != KindSolid {
		return c.solid, false
	}
	if c.solid == "" {
		return defaultSolidColor, true
	}
	return c.solid, true
}

// Gradient returns the gradient and whether it is the active payload.
func (c Color) Gradient() (Gradient, bool) {
	if c.gradient == nil {
		return Gradient{}, false
	}
	return c.gradient.clone(), c.Kind() == KindGradient
}

// WithSolid activates a solid color, keeping the cached gradient.
func (c Color) WithSolid(hex string) Color {
	return Color{kind: KindSolid, solid: hex, gradient: c.gradient}
}

// WithGradient activates a gradient, keeping the cached solid color.
func (c Color) WithGradient(g Gradient) Color {
	g = g.clone()
	return Color{kind: KindGradient, solid: c.solid, gradient: &g}
}

// Toggle switches the active kind. A missing cached payload is filled with
// fallback for gradients and black for solid colors.
func (c Color) Toggle(kind ColorKind, fallback Gradient) Color {
	switch kind {
	case KindGradient:
		g := fallback
		if c.gradient != nil {
			g = *c.gradient
		}
		return c.WithGradient(g)
	default:
		hex := c.solid
		if hex == "" {
			hex = defaultSolidColor
		}
		return c.WithSolid(hex)
	}
}

// Equal compares active and cached payloads.
func (c Color) Equal(other Color) bool {
	if c.Kind() != other.Kind() || c.solid != other.solid {
		return false
	}
	if (c.gradient == nil) != (other.gradient == nil) {
		return false
	}
	if c.gradient == nil {
		return true
	}
	a, b := c.gradient, other.gradient
	if a.Type != b.Type || a.Rotation != b.Rotation || len(a.ColorStops) != len(b.ColorStops) {
		return false
	}
	for i := range a.ColorStops {
		if a.ColorStops[i] != b.ColorStops[i] {
			return false
		}
	}
	return true
}

// Validate checks the active payload.
func (c Color) Validate() error {
	switch c.Kind() {
	case KindSolid:
		if hex, _ := c.Solid(); hex == "" {
			return fmt.Errorf("solid color is empty")
		}
		return nil
	case KindGradient:
		if c.gradient == nil {
			return fmt.Errorf("gradient color has no gradient")
		}
		return c.gradient.Validate()
	default:
		return fmt.Errorf("unknown color kind %q", c.kind)
	}
}

type colorJSON struct {
	Type     ColorKind `json:"type"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(colorJSON{
		Type:     c.Kind(),
		Color:    c.solid,
		Gradient: c.gradient,
	})
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var raw colorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case "", KindSolid:
		raw.Type = KindSolid
	case KindGradient:
		if raw.Gradient == nil {
			return fmt.Errorf("gradient color without gradient")
		}
	default:
		return fmt.Errorf("unknown color type %q", raw.Type)
	}
	*c = Color{kind: raw.Type, solid: raw.Color, gradient: raw.Gradient}
	return nil
}

// JSONSchema describes the serialised form of Color.
func (Color) JSONSchema() *jsonschema.Schema {
	gradient := (&jsonschema.Reflector{DoNotReference: true}).Reflect(&Gradient{})
	gradient.Version = ""

	solidProps := jsonschema.NewProperties()
	solidProps.Set("type", &jsonschema.Schema{Type: "string", Const: string(KindSolid)})
	solidProps.Set("color", &jsonschema.Schema{Type: "string", Description: "CSS color, for example #3B82F6"})

	gradientProps := jsonschema.NewProperties()
	gradientProps.Set("type", &jsonschema.Schema{Type: "string", Const: string(KindGradient)})
	gradientProps.Set("color", &jsonschema.Schema{Type: "string"})
	gradientProps.Set("gradient", gradient)

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "object", Properties: solidProps, Required: []string{"type", "color"}},
			{Type: "object", Properties: gradientProps, Required: []string{"type", "gradient"}},
		},
	}
}

package styling

import (
	"errors"
	"fmt"
	"math"
)

// GradientType is the geometry of a gradient fill.
type GradientType string

const (
	Linear GradientType = "linear"
	Radial GradientType = "radial"
)

const (
	MinColorStops = 2
	MaxColorStops = 5

	// addedStopStep is the offset distance between the last stop and a newly added one.
	addedStopStep = 0.25
)

var ErrStopIndexOutOfRange = errors.New("color stop index out of range")

func (t GradientType) Valid() bool {
	return t == Linear || t == Radial
}

// ColorStop is a single color position along a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64 `json:"offset" jsonschema:"minimum=0,maximum=1"`
	Color  string  `json:"color"`
}

// Gradient describes a multi-stop gradient. Rotation is in degrees and only
// affects linear gradients. Stops are kept in insertion order and are never sorted.
//
// All editor methods return a new value and leave the receiver untouched.
type Gradient struct {
	Type       GradientType `json:"type" jsonschema:"enum=linear,enum=radial"`
	Rotation   float64      `json:"rotation" jsonschema:"minimum=0,exclusiveMaximum=360"`
	ColorStops []ColorStop  `json:"colorStops" jsonschema:"minItems=2,maxItems=5"`
}

// DefaultGradient is the gradient offered when an element color switches to gradient
// for the first time.
func DefaultGradient() Gradient {
	return Gradient{
		Type:     Linear,
		Rotation: 0,
		ColorStops: []ColorStop{
			{Offset: 0, Color: "#000000"},
			{Offset: 1, Color: "#3B82F6"},
		},
	}
}

// DefaultBackgroundGradient is the first-time gradient of the background.
func DefaultBackgroundGradient() Gradient {
	return Gradient{
		Type:     Linear,
		Rotation: 0,
		ColorStops: []ColorStop{
			{Offset: 0, Color: "#FFFFFF"},
			{Offset: 1, Color: "#F3F4F6"},
		},
	}
}

func (g Gradient) clone() Gradient {
	stops := make([]ColorStop, len(g.ColorStops))
	copy(stops, g.ColorStops)
	g.ColorStops = stops
	return g
}

// WithType replaces the gradient type. Stops and rotation are kept.
func (g Gradient) WithType(t GradientType) Gradient {
	next := g.clone()
	next.Type = t
	return next
}

// WithRotation stores the rotation normalised into [0, 360).
func (g Gradient) WithRotation(degrees float64) Gradient {
	next := g.clone()
	next.Rotation = NormalizeRotation(degrees)
	return next
}

// WithStopColor replaces the color of the stop at index.
func (g Gradient) WithStopColor(index int, color string) (Gradient, error) {
	if index < 0 || index >= len(g.ColorStops) {
		return g, fmt.Errorf("%w: %d of %d", ErrStopIndexOutOfRange, index, len(g.ColorStops))
	}
	next := g.clone()
	next.ColorStops[index].Color = color
	return next, nil
}

// AddStop appends a stop a quarter further than the last one, capped at 1,
// repeating the last color. At MaxColorStops it is a no-op.
func (g Gradient) AddStop() Gradient {
	if !g.CanAddStop() {
		return g
	}
	next := g.clone()
	last := ColorStop{Offset: 0, Color: "#000000"}
	if n := len(next.ColorStops); n > 0 {
		last = next.ColorStops[n-1]
	}
	next.ColorStops = append(next.ColorStops, ColorStop{
		Offset: math.Min(1, last.Offset+addedStopStep),
		Color:  last.Color,
	})
	return next
}

// RemoveStop drops the stop at index. At MinColorStops it is a no-op.
func (g Gradient) RemoveStop(index int) (Gradient, error) {
	if index < 0 || index >= len(g.ColorStops) {
		return g, fmt.Errorf("%w: %d of %d", ErrStopIndexOutOfRange, index, len(g.ColorStops))
	}
	if !g.CanRemoveStop() {
		return g, nil
	}
	next := g.clone()
	next.ColorStops = append(next.ColorStops[:index], next.ColorStops[index+1:]...)
	return next, nil
}

func (g Gradient) CanAddStop() bool {
	return len(g.ColorStops) < MaxColorStops
}

func (g Gradient) CanRemoveStop() bool {
	return len(g.ColorStops) > MinColorStops
}

// Validate checks the gradient invariants.
func (g Gradient) Validate() error {
	if !g.Type.Valid() {
		return fmt.Errorf("unknown gradient type %q", g.Type)
	}
	if n := len(g.ColorStops); n < MinColorStops || n > MaxColorStops {
		return fmt.Errorf("gradient must have %d to %d color stops, got %d", MinColorStops, MaxColorStops, n)
	}
	if g.Rotation < 0 || g.Rotation >= 360 {
		return fmt.Errorf("gradient rotation %v is out of [0, 360)", g.Rotation)
	}
	for i, stop := range g.ColorStops {
		if stop.Offset < 0 || stop.Offset > 1 {
			return fmt.Errorf("color stop %d offset %v is out of [0, 1]", i, stop.Offset)
		}
		if stop.Color == "" {
			return fmt.Errorf("color stop %d has no color", i)
		}
	}
	return nil
}

// NormalizeRotation maps any angle in degrees into [0, 360).
func NormalizeRotation(degrees float64) float64 {
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r = 0
	}
	return r
}

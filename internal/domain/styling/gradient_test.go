package styling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientAddStop(t *testing.T) {
	g := DefaultGradient()

	next := g.AddStop()
	require.Len(t, next.ColorStops, 3)
	assert.Equal(t, ColorStop{Offset: 1, Color: "#3B82F6"}, next.ColorStops[2], "offset is capped at 1")
	assert.Len(t, g.ColorStops, 2, "receiver must not change")

	g = Gradient{Type: Linear, ColorStops: []ColorStop{{0, "#000000"}, {0.5, "#FF0000"}}}
	next = g.AddStop()
	assert.Equal(t, ColorStop{Offset: 0.75, Color: "#FF0000"}, next.ColorStops[2])
}

func TestGradientAddStopAtMaximum(t *testing.T) {
	g := DefaultGradient()
	for i := 0; i < 10; i++ {
		g = g.AddStop()
	}
	assert.Len(t, g.ColorStops, MaxColorStops)
	assert.False(t, g.CanAddStop())
	assert.Equal(t, g, g.AddStop())
}

func TestGradientRemoveStop(t *testing.T) {
	g := DefaultGradient().AddStop()

	next, err := g.RemoveStop(0)
	require.NoError(t, err)
	require.Len(t, next.ColorStops, 2)
	assert.Equal(t, "#3B82F6", next.ColorStops[0].Color)
	assert.Len(t, g.ColorStops, 3)

	same, err := next.RemoveStop(1)
	require.NoError(t, err)
	assert.Len(t, same.ColorStops, MinColorStops, "minimum stop count is kept")

	_, err = next.RemoveStop(7)
	assert.ErrorIs(t, err, ErrStopIndexOutOfRange)
}

func TestGradientWithStopColor(t *testing.T) {
	g := DefaultGradient()

	next, err := g.WithStopColor(1, "#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", next.ColorStops[1].Color)
	assert.Equal(t, "#3B82F6", g.ColorStops[1].Color)

	_, err = g.WithStopColor(2, "#FF0000")
	assert.ErrorIs(t, err, ErrStopIndexOutOfRange)
	_, err = g.WithStopColor(-1, "#FF0000")
	assert.ErrorIs(t, err, ErrStopIndexOutOfRange)
}

func TestGradientTypeAndRotation(t *testing.T) {
	g := DefaultGradient().WithRotation(45).WithType(Radial)
	assert.Equal(t, Radial, g.Type)
	assert.Equal(t, 45.0, g.Rotation, "rotation is kept for radial gradients")
	assert.Equal(t, DefaultGradient().ColorStops, g.ColorStops)
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{359, 359},
		{360, 0},
		{405, 45},
		{-90, 270},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRotation(tt.in), "rotation %v", tt.in)
	}
}

func TestGradientValidate(t *testing.T) {
	assert.NoError(t, DefaultGradient().Validate())
	assert.NoError(t, DefaultBackgroundGradient().Validate())

	tests := []struct {
		name string
		g    Gradient
	}{
		{"unknown type", Gradient{Type: "conic", ColorStops: DefaultGradient().ColorStops}},
		{"single stop", Gradient{Type: Linear, ColorStops: []ColorStop{{0, "#000000"}}}},
		{"offset above one", Gradient{Type: Linear, ColorStops: []ColorStop{{0, "#000000"}, {1.5, "#FFFFFF"}}}},
		{"rotation out of range", Gradient{Type: Linear, Rotation: 360, ColorStops: DefaultGradient().ColorStops}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.g.Validate())
		})
	}
}

package styling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	o := Default()

	assert.Equal(t, DotSquare, o.Dots.Type)
	assert.Equal(t, CornerSquareSquare, o.CornersSquare.Type)
	assert.Equal(t, CornerDotSquare, o.CornersDot.Type)

	hex, ok := o.Dots.Color.Solid()
	assert.True(t, ok)
	assert.Equal(t, "#000000", hex)

	hex, ok = o.Background.Color.Solid()
	assert.True(t, ok)
	assert.Equal(t, "#FFFFFF", hex)

	assert.NoError(t, o.Validate())
}

func TestDotsColorFansOutToCorners(t *testing.T) {
	o := Default()
	red := NewSolid("#FF0000")

	next := o.Apply(SetColor{Control: DotsColor, Color: red})

	assert.True(t, next.Dots.Color.Equal(red))
	assert.True(t, next.CornersSquare.Color.Equal(red))
	assert.True(t, next.CornersDot.Color.Equal(red))
	assert.True(t, next.Background.Color.Equal(o.Background.Color))
	assert.True(t, o.Dots.Color.Equal(NewSolid("#000000")), "receiver must not change")
}

func TestCornersColorLeavesDotsAlone(t *testing.T) {
	o := Default().Apply(SetColor{Control: DotsColor, Color: NewSolid("#FF0000")})
	blue := NewSolid("#0000FF")

	next := o.Apply(SetColor{Control: CornersColor, Color: blue})

	assert.True(t, next.Dots.Color.Equal(NewSolid("#FF0000")))
	assert.True(t, next.CornersSquare.Color.Equal(blue))
	assert.True(t, next.CornersDot.Color.Equal(blue))
}

func TestShapeChangesTouchOneSlot(t *testing.T) {
	o := Default().
		Apply(SetDotType(DotClassyRounded)).
		Apply(SetCornerSquareType(CornerSquareRounded)).
		Apply(SetCornerDotType(CornerDotDot))

	assert.Equal(t, DotClassyRounded, o.Dots.Type)
	assert.Equal(t, CornerSquareRounded, o.CornersSquare.Type)
	assert.Equal(t, CornerDotDot, o.CornersDot.Type)
	assert.True(t, o.Dots.Color.Equal(Default().Dots.Color))
	assert.Equal(t, o, o.Apply(nil))
}

func TestToggleColorKindUsesDefaults(t *testing.T) {
	o := Default()

	next := o.ToggleColorKind(DotsColor, KindGradient)
	g, ok := next.Dots.Color.Gradient()
	require.True(t, ok)
	assert.Equal(t, DefaultGradient(), g)

	next = o.ToggleColorKind(BackgroundColor, KindGradient)
	g, ok = next.Background.Color.Gradient()
	require.True(t, ok)
	assert.Equal(t, DefaultBackgroundGradient(), g)
}

func TestToggleColorKindRestoresCache(t *testing.T) {
	o := Default().SetSolidColor(DotsColor, "#FF0000")

	o = o.ToggleColorKind(DotsColor, KindGradient)
	o, err := o.EditGradient(DotsColor, func(g Gradient) (Gradient, error) {
		return g.WithRotation(90), nil
	})
	require.NoError(t, err)

	o = o.ToggleColorKind(DotsColor, KindSolid)
	hex, ok := o.Dots.Color.Solid()
	require.True(t, ok)
	assert.Equal(t, "#FF0000", hex)

	o = o.ToggleColorKind(DotsColor, KindGradient)
	g, ok := o.Dots.Color.Gradient()
	require.True(t, ok)
	assert.Equal(t, 90.0, g.Rotation)
}

func TestToggleToSolidWithoutCache(t *testing.T) {
	c := NewGradient(DefaultGradient())

	solid := c.Toggle(KindSolid, DefaultGradient())
	hex, ok := solid.Solid()
	require.True(t, ok)
	assert.Equal(t, "#000000", hex)
}

func TestEditGradientError(t *testing.T) {
	o := Default().ToggleColorKind(CornersColor, KindGradient)

	next, err := o.EditGradient(CornersColor, func(g Gradient) (Gradient, error) {
		return g.WithStopColor(9, "#FFFFFF")
	})
	assert.ErrorIs(t, err, ErrStopIndexOutOfRange)
	assert.True(t, next.Equal(o))
}

func TestOptionsJSONKeepsCachedPayload(t *testing.T) {
	o := Default().
		ToggleColorKind(DotsColor, KindGradient).
		ToggleColorKind(DotsColor, KindSolid)

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var restored Options
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, restored.Equal(o))

	restored = restored.ToggleColorKind(DotsColor, KindGradient)
	g, ok := restored.Dots.Color.Gradient()
	require.True(t, ok)
	assert.Equal(t, DefaultGradient().ColorStops, g.ColorStops)
}

func TestColorUnmarshalRejectsUnknownType(t *testing.T) {
	var c Color
	assert.Error(t, json.Unmarshal([]byte(`{"type":"pattern"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"gradient"}`), &c))
}

func TestValidateRejectsUnknownShapes(t *testing.T) {
	o := Default().Apply(SetDotType("hearts"))
	assert.Error(t, o.Validate())
}

func TestShapeLabelsAndParsing(t *testing.T) {
	assert.Equal(t, "Classy Rounded", DotClassyRounded.Label())
	assert.Equal(t, "Extra Rounded", DotExtraRounded.Label())
	assert.Equal(t, "Dot", CornerSquareDot.Label())

	dot, err := ParseDotType(" Extra-Rounded ")
	require.NoError(t, err)
	assert.Equal(t, DotExtraRounded, dot)

	_, err = ParseCornerSquareType("extra-rounded")
	assert.Error(t, err)

	cd, err := ParseCornerDotType("dot")
	require.NoError(t, err)
	assert.Equal(t, CornerDotDot, cd)

	assert.Len(t, DotTypes, 6)
	assert.Len(t, CornerSquareTypes, 3)
	assert.Len(t, PresetColors, 20)
}

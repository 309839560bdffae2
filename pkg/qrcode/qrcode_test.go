package qr

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	o := Defaults()
	o.Data = "https://example.com"
	o.Margin = 8
	return o
}

func rgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#3B82F6", color.NRGBA{0x3b, 0x82, 0xf6, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#ff000080", color.NRGBA{255, 0, 0, 128}},
		{"rgba(0, 0, 0, 0)", color.NRGBA{0, 0, 0, 0}},
		{"rgb(16,32,64)", color.NRGBA{16, 32, 64, 255}},
		{"transparent", color.NRGBA{}},
		{"white", color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rgba(c))
		})
	}

	for _, bad := range []string{"#12", "blue-ish", "rgba(1,2)", "rgb(300,0,0)"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestTrimQuietZone(t *testing.T) {
	bitmap := make([][]bool, 25)
	for y := range bitmap {
		bitmap[y] = make([]bool, 25)
	}
	// 21x21 symbol inside a 2 module border, marked at its three finder corners.
	bitmap[2][2], bitmap[2][22], bitmap[22][2] = true, true, true

	m := trimQuietZone(bitmap)
	assert.Equal(t, 21, m.size)
	assert.True(t, m.isDark(0, 0))
	assert.True(t, m.isDark(0, 20))
	assert.True(t, m.isDark(20, 0))
	assert.False(t, m.isDark(21, 0))
	assert.True(t, m.inFinder(6, 6))
	assert.True(t, m.inFinder(0, 14))
	assert.False(t, m.inFinder(20, 20))
}

func TestRenderDefaults(t *testing.T) {
	a, err := NewRenderer().Render(testOptions())
	require.NoError(t, err)

	img, err := a.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 300), img.Bounds())
	assert.Equal(t, 0, (a.Modules()-21)%4, "symbol side is a valid QR size")

	l := a.layout
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, rgba(img.At(0, 0)))
	finder := img.At(int(l.x0+l.dot/2), int(l.y0+l.dot/2))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, rgba(finder))
	ring := img.At(int(l.x0+1.5*l.dot), int(l.y0+1.5*l.dot))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, rgba(ring), "finder ring is hollow")
}

func TestRenderTransparentBackground(t *testing.T) {
	o := testOptions()
	o.BackgroundOptions.Color = "rgba(0,0,0,0)"

	a, err := NewRenderer().Render(o)
	require.NoError(t, err)
	img, err := a.Image()
	require.NoError(t, err)

	_, _, _, alpha := img.At(0, 0).RGBA()
	assert.Zero(t, alpha)
}

func TestRenderRejectsBadOptions(t *testing.T) {
	r := NewRenderer()

	o := testOptions()
	o.Data = ""
	_, err := r.Render(o)
	assert.Error(t, err)

	o = testOptions()
	o.Width, o.Height = 20, 20
	_, err = r.Render(o)
	assert.Error(t, err)

	o = testOptions()
	o.QROptions.ErrorCorrectionLevel = "X"
	_, err = r.Render(o)
	assert.Error(t, err)

	o = testOptions()
	o.DotsOptions.Color = "not-a-color"
	a, err := r.Render(o)
	require.NoError(t, err)
	_, err = a.Image()
	assert.Error(t, err)
}

func TestAllShapesRender(t *testing.T) {
	r := NewRenderer()
	for _, dot := range []string{"square", "dots", "rounded", "extra-rounded", "classy", "classy-rounded"} {
		for _, corner := range []string{"square", "dot", "rounded"} {
			o := testOptions()
			o.DotsOptions.Type = dot
			o.CornersSquareOptions.Type = corner
			o.CornersDotOptions.Type = corner

			a, err := r.Render(o)
			require.NoError(t, err)
			_, err = a.Image()
			require.NoError(t, err, "%s/%s", dot, corner)
			_, err = a.SVG()
			require.NoError(t, err, "%s/%s", dot, corner)
		}
	}
}

func TestSVGSolid(t *testing.T) {
	a, err := NewRenderer().Render(testOptions())
	require.NoError(t, err)

	data, err := a.RawData(SVG)
	require.NoError(t, err)
	svg := string(data)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `viewBox="0 0 300 300"`)
	assert.Contains(t, svg, `<rect x="0" y="0" width="300" height="300" fill="#ffffff"/>`)
	assert.Contains(t, svg, `fill-rule="evenodd"`)
	assert.NotContains(t, svg, "<defs>")
	assert.NotContains(t, svg, "rx=")
}

func TestSVGGradientAndRoundedBackground(t *testing.T) {
	o := testOptions()
	o.DotsOptions.Color = ""
	o.DotsOptions.Gradient = &Gradient{
		Type:     "linear",
		Rotation: math.Pi / 4,
		ColorStops: []ColorStop{
			{Offset: 0, Color: "#000000"},
			{Offset: 1, Color: "#3B82F6"},
		},
	}
	o.BackgroundOptions.Gradient = &Gradient{
		Type: "radial",
		ColorStops: []ColorStop{
			{Offset: 0, Color: "#FFFFFF"},
			{Offset: 1, Color: "rgba(243,244,246,0.5)"},
		},
	}
	o.BackgroundOptions.Round = 0.5

	a, err := NewRenderer().Render(o)
	require.NoError(t, err)
	data, err := a.SVG()
	require.NoError(t, err)
	svg := string(data)

	assert.Contains(t, svg, `<linearGradient id="dots-color"`)
	assert.Contains(t, svg, `fill="url(#dots-color)"`)
	assert.Contains(t, svg, `<radialGradient id="background-color"`)
	assert.Contains(t, svg, `stop-color="#3b82f6"`)
	assert.Contains(t, svg, `stop-opacity="0.502"`)
	assert.Contains(t, svg, `rx="75.00" ry="75.00"`)

	img, err := a.Image()
	require.NoError(t, err)
	_, _, _, alpha := img.At(0, 0).RGBA()
	assert.Zero(t, alpha, "rounded background leaves the corner transparent")
}

func TestResolveGradient(t *testing.T) {
	area := rect{x: 10, y: 20, w: 100, h: 100}

	line := resolveGradient(&Gradient{Type: "linear"}, area, 0)
	assert.Equal(t, gradientLine{x0: 10, y0: 70, x1: 110, y1: 70}, line)

	line = resolveGradient(&Gradient{Type: "linear", Rotation: math.Pi}, area, 0)
	assert.Equal(t, gradientLine{x0: 110, y0: 70, x1: 10, y1: 70}, line)

	line = resolveGradient(&Gradient{Type: "linear"}, area, math.Pi/2)
	assert.Equal(t, gradientLine{x0: 60, y0: 20, x1: 60, y1: 120}, line)

	line = resolveGradient(&Gradient{Type: "radial", Rotation: 1}, area, 0)
	assert.Equal(t, gradientLine{radial: true, cx: 60, cy: 70, r: 50}, line)
}

func TestRenderWithLogo(t *testing.T) {
	logoImg := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			logoImg.Set(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, logoImg))
	require.NoError(t, f.Close())

	o := testOptions()
	o.QROptions.ErrorCorrectionLevel = "H"
	o.Image = path
	o.ImageOptions = ImageOptions{ImageSize: 0.3, Margin: 2, HideBackgroundDots: true}

	a, err := NewRenderer().Render(o)
	require.NoError(t, err)
	require.NotNil(t, a.logo)
	assert.Equal(t, a.logo.box.w, 2*a.logo.box.h, "aspect ratio is kept")

	img, err := a.Image()
	require.NoError(t, err)
	center := rgba(img.At(150, 150))
	assert.Greater(t, center.R, uint8(240))
	assert.Less(t, center.G, uint8(15))
	assert.Less(t, center.B, uint8(15))

	svg, err := a.SVG()
	require.NoError(t, err)
	assert.Contains(t, string(svg), `href="data:image/png;base64,`)

	o.Image = filepath.Join(t.TempDir(), "missing.png")
	_, err = NewRenderer().Render(o)
	assert.Error(t, err)
}

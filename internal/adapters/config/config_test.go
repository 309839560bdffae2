package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
)

func TestLoadDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, Load("", &buf))

	gen := Generator()
	assert.Equal(t, service.Dimensions{Width: 280, Height: 280, Margin: 8}, gen.Preview)
	assert.Equal(t, 500*time.Millisecond, gen.Debounce)
	assert.Equal(t, "Q", gen.Render.ErrorCorrection)

	exp := Exporter()
	assert.Equal(t, []service.Format{service.FormatPNG, service.FormatJPEG, service.FormatSVG}, exp.Formats)
	assert.Equal(t, 90, exp.JPEGQuality)
	assert.Zero(t, exp.BackgroundRound)
	assert.Equal(t, []int{200, 300, 400}, ExportSizes())

	ttl, defaults := Session()
	assert.Equal(t, 24*time.Hour, ttl)
	assert.Equal(t, service.FormatPNG, defaults.Format)
	assert.Equal(t, 300, defaults.Size)
}

func TestLoadFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
settings:
  qr:
    preview-size: 320
    debounce: 250ms
  export:
    formats: [svg, gif, jpg]
    default-format: svg
    background-round: 0.25
`), 0o644))

	require.NoError(t, Load(path, &bytes.Buffer{}))

	assert.Equal(t, 320, Generator().Preview.Width)
	assert.Equal(t, 250*time.Millisecond, Generator().Debounce)

	exp := Exporter()
	assert.Equal(t, []service.Format{service.FormatSVG, service.FormatJPEG}, exp.Formats, "unknown formats are skipped")
	assert.Equal(t, 0.25, exp.BackgroundRound)

	_, defaults := Session()
	assert.Equal(t, service.FormatSVG, defaults.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	assert.Error(t, Load("does-not-exist.yaml", &bytes.Buffer{}))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

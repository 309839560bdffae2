package service

import (
	"bytes"
	"context"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

type fakeSaver struct {
	mu    sync.Mutex
	files []File
	err   error
}

func (s *fakeSaver) Save(_ context.Context, f File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.files = append(s.files, f)
	return nil
}

// blockingSaver holds the export until release is closed.
type blockingSaver struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSaver) Save(ctx context.Context, _ File) error {
	close(s.started)
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newTestExporter(r *recordingRenderer, cfg ExporterConfig) (*Exporter, *fakeNotifier, *MemoryLocker) {
	notifier := &fakeNotifier{}
	locker := NewMemoryLocker()
	e := NewExporter(r, notifier, locker, testLogger(), cfg)
	e.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return e, notifier, locker
}

func exportRequest(format Format) ExportRequest {
	return ExportRequest{Content: "https://example.com", Styling: styling.Default(), Size: 300, Format: format}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, "JPG": FormatJPEG, "jpeg": FormatJPEG, " svg ": FormatSVG} {
		f, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f)
	}
	_, err := ParseFormat("gif")
	assert.ErrorIs(t, err, errorz.ErrUnsupportedFormat)

	assert.Equal(t, "image/jpeg", FormatJPEG.MIME())
	assert.Equal(t, "image/svg+xml", FormatSVG.MIME())
	assert.Equal(t, "image/png", FormatPNG.MIME())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "qr-code-1700000000123.jpeg", FileName(FormatJPEG, time.UnixMilli(1700000000123)))
}

func TestExportPNG(t *testing.T) {
	r := &recordingRenderer{}
	e, notifier, _ := newTestExporter(r, ExporterConfig{})
	saver := &fakeSaver{}

	file, err := e.Export(context.Background(), "1", exportRequest(FormatPNG), saver)
	require.NoError(t, err)

	assert.Equal(t, "qr-code-1700000000123.png", file.Name)
	assert.Equal(t, "image/png", file.MIME)
	require.Len(t, saver.files, 1)

	img, err := png.Decode(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "Download Complete", sent[0].Title)
	assert.Equal(t, "QR code downloaded as qr-code-1700000000123.png", sent[0].Description)
	assert.Equal(t, dto.NotificationDefault, sent[0].Variant)
}

func TestExportJPEGFlattensTransparency(t *testing.T) {
	r := &recordingRenderer{}
	e, _, _ := newTestExporter(r, ExporterConfig{Margin: 8})

	req := exportRequest(FormatJPEG)
	req.Styling = req.Styling.SetSolidColor(styling.BackgroundColor, "rgba(0,0,0,0)")
	req.Size = 200

	file, err := e.Export(context.Background(), "1", req, &fakeSaver{})
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	cr, cg, cb, _ := img.At(0, 0).RGBA()
	assert.Greater(t, cr>>8, uint32(240), "transparent corners become white")
	assert.Greater(t, cg>>8, uint32(240))
	assert.Greater(t, cb>>8, uint32(240))
}

func TestExportSVGUsesBackgroundRound(t *testing.T) {
	r := &recordingRenderer{}
	e, _, _ := newTestExporter(r, ExporterConfig{BackgroundRound: 0.2})

	file, err := e.Export(context.Background(), "1", exportRequest(FormatSVG), &fakeSaver{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(file.Data), "<?xml"))
	assert.Equal(t, 0.2, r.last().BackgroundOptions.Round)

	_, err = e.Export(context.Background(), "1", exportRequest(FormatPNG), &fakeSaver{})
	require.NoError(t, err)
	assert.Zero(t, r.last().BackgroundOptions.Round, "raster exports keep square corners")

	req := exportRequest(FormatSVG)
	req.BackgroundRound = 0.5
	_, err = e.Export(context.Background(), "1", req, &fakeSaver{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, r.last().BackgroundOptions.Round)
}

func TestExportFailureNotifies(t *testing.T) {
	r := &recordingRenderer{}
	e, notifier, locker := newTestExporter(r, ExporterConfig{})

	_, err := e.Export(context.Background(), "1", exportRequest(FormatPNG), &fakeSaver{err: errBoom})
	var eerr *errorz.ExportError
	require.ErrorAs(t, err, &eerr)
	assert.ErrorIs(t, err, errBoom)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "Download Failed", sent[0].Title)
	assert.Equal(t, "Failed to download QR code. Please try again.", sent[0].Description)
	assert.True(t, sent[0].Destructive())

	ok, err := locker.Acquire(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, ok, "lock is released after a failure")
}

func TestExportRejectsDisabledFormat(t *testing.T) {
	r := &recordingRenderer{}
	e, _, _ := newTestExporter(r, ExporterConfig{Formats: []Format{FormatPNG}})

	_, err := e.Export(context.Background(), "1", exportRequest(FormatSVG), &fakeSaver{})
	assert.ErrorIs(t, err, errorz.ErrUnsupportedFormat)
	assert.Zero(t, r.count())
}

func TestExportRejectsInvalidContent(t *testing.T) {
	r := &recordingRenderer{}
	e, notifier, _ := newTestExporter(r, ExporterConfig{})

	req := exportRequest(FormatPNG)
	req.Content = ""
	_, err := e.Export(context.Background(), "1", req, &fakeSaver{})
	var verr *errorz.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, notifier.all())
}

func TestExportSingleFlightPerKey(t *testing.T) {
	r := &recordingRenderer{}
	e, _, _ := newTestExporter(r, ExporterConfig{})

	saver := &blockingSaver{started: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), "1", exportRequest(FormatPNG), saver)
		done <- err
	}()
	<-saver.started

	_, err := e.Export(context.Background(), "1", exportRequest(FormatPNG), &fakeSaver{})
	assert.ErrorIs(t, err, errorz.ErrExportInProgress)

	_, err = e.Export(context.Background(), "2", exportRequest(FormatPNG), &fakeSaver{})
	assert.NoError(t, err, "other keys are not blocked")

	close(saver.release)
	require.NoError(t, <-done)

	_, err = e.Export(context.Background(), "1", exportRequest(FormatPNG), &fakeSaver{})
	assert.NoError(t, err)
}

func TestExportEncodesTrimmedContent(t *testing.T) {
	r := &recordingRenderer{}
	e, _, _ := newTestExporter(r, ExporterConfig{})

	req := exportRequest(FormatPNG)
	req.Content = "  https://example.com \n"
	_, err := e.Export(context.Background(), "1", req, &fakeSaver{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", r.last().Data)
}

func TestExportRejectsSize(t *testing.T) {
	for _, size := range []int{0, -1, MaxExportSize + 1, 100000} {
		r := &recordingRenderer{}
		e, _, locker := newTestExporter(r, ExporterConfig{})

		req := exportRequest(FormatPNG)
		req.Size = size
		_, err := e.Export(context.Background(), "1", req, &fakeSaver{})
		assert.ErrorIs(t, err, errorz.ErrInvalidSize, "size %d", size)
		assert.Zero(t, r.count(), "size %d is not rendered", size)

		ok, err := locker.Acquire(context.Background(), "1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

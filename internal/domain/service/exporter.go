package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

const (
	msgDownloadCompleteTitle = "Download Complete"
	msgDownloadFailedTitle   = "Download Failed"
	msgDownloadFailed        = "Failed to download QR code. Please try again."
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

var Formats = []Format{FormatPNG, FormatJPEG, FormatSVG}

// MaxExportSize is the largest export side in pixels.
const MaxExportSize = 4096

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", errorz.ErrUnsupportedFormat, s)
	}
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

type ExportRequest struct {
	Content string
	Styling styling.Options
	Size    int
	Format  Format
	// BackgroundRound overrides the configured SVG background rounding when positive.
	BackgroundRound float64
}

// File is an encoded export ready to be handed to a Saver.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Saver delivers an exported file. Implementations must not leave a partial
// file behind when they fail.
type Saver interface {
	Save(ctx context.Context, file File) error
}

// Locker guards against concurrent exports of the same session.
type Locker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type ExporterConfig struct {
	Formats         []Format
	Margin          int
	JPEGQuality     int
	BackgroundRound float64
	Render          RenderSettings
}

// Exporter re-renders a design at export size and hands the encoded file to a Saver.
type Exporter struct {
	renderer qrRenderer
	notifier Notifier
	locker   Locker
	logger   *types.Logger
	now      func() time.Time

	mu  sync.RWMutex
	cfg ExporterConfig
}

func NewExporter(renderer qrRenderer, notifier Notifier, locker Locker, logger *types.Logger, cfg ExporterConfig) *Exporter {
	e := &Exporter{
		renderer: renderer,
		notifier: notifier,
		locker:   locker,
		logger:   logger,
		now:      time.Now,
	}
	e.Configure(cfg)
	return e
}

// Configure replaces the settings used by subsequent exports.
func (e *Exporter) Configure(cfg ExporterConfig) {
	if len(cfg.Formats) == 0 {
		cfg.Formats = Formats
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 90
	}
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

func (e *Exporter) config() ExporterConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// Formats returns the enabled export formats.
func (e *Exporter) Formats() []Format {
	return e.config().Formats
}

// FileName is the name an export made at t gets.
func FileName(format Format, t time.Time) string {
	return fmt.Sprintf("qr-code-%d.%s", t.UnixMilli(), format.Extension())
}

// Export renders req, encodes it and saves it. Only one export per key runs
// at a time, a concurrent call gets errorz.ErrExportInProgress.
func (e *Exporter) Export(ctx context.Context, key string, req ExportRequest, saver Saver) (File, error) {
	acquired, err := e.locker.Acquire(ctx, key)
	if err != nil {
		return File{}, &errorz.ExportError{Err: fmt.Errorf("acquire export lock: %w", err)}
	}
	if !acquired {
		return File{}, errorz.ErrExportInProgress
	}
	defer func() {
		if errRelease := e.locker.Release(context.WithoutCancel(ctx), key); errRelease != nil {
			e.logger.Errorf("(key: %s) failed to release export lock: %v", key, errRelease)
		}
	}()

	if res := validator.Content(req.Content); !res.Valid {
		return File{}, &errorz.ValidationError{Message: res.Message}
	}

	file, err := e.encode(req)
	if err == nil {
		err = saver.Save(ctx, file)
	}
	if err != nil {
		e.logger.Errorf("(key: %s) failed to export %s: %v", key, req.Format, err)
		e.notifier.Notify(ctx, dto.Notification{
			Title:       msgDownloadFailedTitle,
			Description: msgDownloadFailed,
			Variant:     dto.NotificationDestructive,
		})
		return File{}, &errorz.ExportError{Err: err}
	}

	e.logger.Infof("(key: %s) exported %s (%d bytes)", key, file.Name, len(file.Data))
	e.notifier.Notify(ctx, dto.Notification{
		Title:       msgDownloadCompleteTitle,
		Description: fmt.Sprintf("QR code downloaded as %s", file.Name),
		Variant:     dto.NotificationDefault,
	})
	return file, nil
}

func formatEnabled(cfg ExporterConfig, f Format) bool {
	for _, v := range cfg.Formats {
		if v == f {
			return true
		}
	}
	return false
}

func (e *Exporter) encode(req ExportRequest) (File, error) {
	cfg := e.config()
	if !formatEnabled(cfg, req.Format) {
		return File{}, fmt.Errorf("%w: %q", errorz.ErrUnsupportedFormat, req.Format)
	}
	if req.Size <= 0 || req.Size > MaxExportSize {
		return File{}, fmt.Errorf("%w: %d (must be 1..%d)", errorz.ErrInvalidSize, req.Size, MaxExportSize)
	}

	opts := ToRendererOptions(req.Styling, req.Content, Dimensions{Width: req.Size, Height: req.Size, Margin: cfg.Margin})
	cfg.Render.apply(&opts)
	if req.Format == FormatSVG {
		opts.BackgroundOptions.Round = cfg.BackgroundRound
		if req.BackgroundRound > 0 {
			opts.BackgroundOptions.Round = req.BackgroundRound
		}
	}

	artifact, err := e.renderer.Render(opts)
	if err != nil {
		return File{}, &errorz.RenderError{Err: err}
	}

	var data []byte
	switch req.Format {
	case FormatPNG:
		data, err = artifact.RawData(qr.PNG)
	case FormatSVG:
		data, err = artifact.RawData(qr.SVG)
	case FormatJPEG:
		data, err = encodeJPEG(artifact, cfg.JPEGQuality)
	}
	if err != nil {
		return File{}, err
	}

	return File{
		Name: FileName(req.Format, e.now()),
		MIME: req.Format.MIME(),
		Data: data,
	}, nil
}

// encodeJPEG flattens the artifact onto opaque white, JPEG has no alpha.
func encodeJPEG(artifact *qr.Artifact, quality int) ([]byte, error) {
	img, err := artifact.Image()
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MemoryLocker is a process-local Locker.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

func (l *MemoryLocker) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = struct{}{}
	return true, nil
}

func (l *MemoryLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

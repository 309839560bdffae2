package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

const (
	msgGenerationFailedTitle = "Generation Failed"
	msgGenerationFailed      = "Failed to generate QR code. Please try again."
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateGenerating
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateGenerating:
		return "generating"
	case StateRendered:
		return "rendered"
	default:
		return "idle"
	}
}

type qrRenderer interface {
	Render(opts qr.Options) (*qr.Artifact, error)
}

// Surface displays the current preview.
type Surface interface {
	Clear(ctx context.Context) error
	Mount(ctx context.Context, artifact *qr.Artifact) error
}

// Notifier shows transient notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n dto.Notification)
}

type GeneratorConfig struct {
	Preview  Dimensions
	Debounce time.Duration
	Render   RenderSettings
}

// Generator owns the preview of one session: it validates content, renders
// the styled code and mounts the result on the surface.
type Generator struct {
	renderer qrRenderer
	surface  Surface
	notifier Notifier
	logger   *types.Logger
	cfg      GeneratorConfig
	debounce *Debouncer

	mu       sync.Mutex
	state    State
	message  string
	artifact *qr.Artifact
}

func NewGenerator(renderer qrRenderer, surface Surface, notifier Notifier, logger *types.Logger, cfg GeneratorConfig) *Generator {
	return &Generator{
		renderer: renderer,
		surface:  surface,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		debounce: NewDebouncer(cfg.Debounce),
	}
}

// Configure replaces the preview settings. A pending scheduled generation
// keeps its delay, the next one uses the new one.
func (g *Generator) Configure(cfg GeneratorConfig) {
	g.debounce.SetDelay(cfg.Debounce)

	g.mu.Lock()
	g.cfg = cfg
	g.mu.Unlock()
}

// Generate runs a full cycle synchronously. Invalid content returns a
// *errorz.ValidationError and leaves the message for inline display, a failed
// render returns a *errorz.RenderError after notifying the user.
func (g *Generator) Generate(ctx context.Context, content string, opts styling.Options) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = StateValidating
	if res := validator.Content(content); !res.Valid {
		g.state = StateIdle
		g.message = res.Message
		g.artifact = nil
		if err := g.surface.Clear(ctx); err != nil {
			g.logger.Warnf("failed to clear preview: %v", err)
		}
		return &errorz.ValidationError{Message: res.Message}
	}

	g.message = ""
	g.state = StateGenerating

	ro := ToRendererOptions(opts, content, g.cfg.Preview)
	g.cfg.Render.apply(&ro)

	artifact, err := g.renderer.Render(ro)
	if err == nil {
		err = g.surface.Clear(ctx)
	}
	if err == nil {
		err = g.surface.Mount(ctx, artifact)
	}
	if err != nil {
		g.state = StateIdle
		g.message = msgGenerationFailed
		g.artifact = nil
		g.logger.Errorf("failed to generate qr code: %v", err)
		g.notifier.Notify(ctx, dto.Notification{
			Title:       msgGenerationFailedTitle,
			Description: msgGenerationFailed,
			Variant:     dto.NotificationDestructive,
		})
		return &errorz.RenderError{Err: err}
	}

	g.artifact = artifact
	g.state = StateRendered
	return nil
}

// Schedule debounces a generation. Only the last call of a burst runs; when it
// fires with blank content the preview is reset without a message.
func (g *Generator) Schedule(content string, opts styling.Options) {
	g.debounce.Trigger(func() {
		ctx := context.Background()
		if strings.TrimSpace(content) == "" {
			g.Reset(ctx)
			return
		}
		if err := g.Generate(ctx, content, opts); err != nil {
			g.logger.Debugf("scheduled generation ended with: %v", err)
		}
	})
}

// Reset clears the preview and returns to idle.
func (g *Generator) Reset(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = StateIdle
	g.message = ""
	g.artifact = nil
	if err := g.surface.Clear(ctx); err != nil {
		g.logger.Warnf("failed to clear preview: %v", err)
	}
}

// Stop drops a pending scheduled generation.
func (g *Generator) Stop() {
	g.debounce.Cancel()
}

func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Message is the inline validation or failure message, empty when there is none.
func (g *Generator) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// Artifact is the mounted preview, nil unless the state is rendered.
func (g *Generator) Artifact() *qr.Artifact {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.artifact
}

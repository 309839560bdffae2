package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

func newTestGenerator(r *recordingRenderer) (*Generator, *fakeSurface, *fakeNotifier) {
	surface := &fakeSurface{}
	notifier := &fakeNotifier{}
	g := NewGenerator(r, surface, notifier, testLogger(), GeneratorConfig{
		Preview:  Dimensions{Width: 280, Height: 280, Margin: 8},
		Debounce: 20 * time.Millisecond,
	})
	return g, surface, notifier
}

func TestGenerateRendersPreview(t *testing.T) {
	r := &recordingRenderer{}
	g, surface, notifier := newTestGenerator(r)

	require.NoError(t, g.Generate(context.Background(), "https://example.com", styling.Default()))

	assert.Equal(t, StateRendered, g.State())
	assert.Empty(t, g.Message())
	assert.NotNil(t, g.Artifact())
	assert.Equal(t, 1, surface.clears)
	assert.Equal(t, 1, surface.mounts())
	assert.Empty(t, notifier.all())

	opts := r.last()
	assert.Equal(t, 280, opts.Width)
	assert.Equal(t, 8, opts.Margin)
	assert.Equal(t, "https://example.com", opts.Data)
}

func TestGenerateEncodesTrimmedContent(t *testing.T) {
	r := &recordingRenderer{}
	g, _, _ := newTestGenerator(r)

	require.NoError(t, g.Generate(context.Background(), "  https://example.com \n", styling.Default()))
	assert.Equal(t, "https://example.com", r.last().Data)
}

func TestGenerateRejectsInvalidContent(t *testing.T) {
	r := &recordingRenderer{}
	g, surface, notifier := newTestGenerator(r)

	err := g.Generate(context.Background(), "   ", styling.Default())
	var verr *errorz.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter some content", verr.Message)
	assert.Equal(t, "Please enter some content", g.Message())

	err = g.Generate(context.Background(), strings.Repeat("a", 1001), styling.Default())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Content is too long (max 1000 characters)", g.Message())

	assert.Equal(t, StateIdle, g.State())
	assert.Nil(t, g.Artifact())
	assert.Zero(t, r.count(), "renderer is not called for invalid content")
	assert.Zero(t, surface.mounts())
	assert.Empty(t, notifier.all(), "validation failures do not toast")
}

func TestGenerateRenderFailure(t *testing.T) {
	r := &recordingRenderer{err: errBoom}
	g, surface, notifier := newTestGenerator(r)

	err := g.Generate(context.Background(), "hello", styling.Default())
	var rerr *errorz.RenderError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, errBoom)

	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, "Failed to generate QR code. Please try again.", g.Message())
	assert.Zero(t, surface.mounts())

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "Generation Failed", sent[0].Title)
	assert.Equal(t, dto.NotificationDestructive, sent[0].Variant)
}

func TestGenerateMountFailure(t *testing.T) {
	r := &recordingRenderer{}
	g, surface, notifier := newTestGenerator(r)
	surface.mountErr = errBoom

	err := g.Generate(context.Background(), "hello", styling.Default())
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, StateIdle, g.State())
	assert.Len(t, notifier.all(), 1)
}

func TestScheduleSupersedesPendingCalls(t *testing.T) {
	r := &recordingRenderer{}
	g, surface, _ := newTestGenerator(r)

	g.Schedule("h", styling.Default())
	g.Schedule("he", styling.Default())
	g.Schedule("hello", styling.Default())

	assert.Eventually(t, func() bool { return g.State() == StateRendered }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, r.count())
	assert.Equal(t, "hello", r.last().Data)
	assert.Equal(t, 1, surface.mounts())
}

func TestScheduleBlankContentResets(t *testing.T) {
	r := &recordingRenderer{}
	g, _, _ := newTestGenerator(r)
	require.NoError(t, g.Generate(context.Background(), "hello", styling.Default()))

	g.Schedule("  ", styling.Default())

	assert.Eventually(t, func() bool { return g.State() == StateIdle }, time.Second, 5*time.Millisecond)
	assert.Empty(t, g.Message())
	assert.Nil(t, g.Artifact())
	assert.Equal(t, 1, r.count())
}

func TestStopDropsPendingGeneration(t *testing.T) {
	r := &recordingRenderer{}
	g, _, _ := newTestGenerator(r)

	g.Schedule("hello", styling.Default())
	g.Stop()
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, r.count())
	assert.Equal(t, StateIdle, g.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "validating", StateValidating.String())
	assert.Equal(t, "generating", StateGenerating.String())
	assert.Equal(t, "rendered", StateRendered.String())
}

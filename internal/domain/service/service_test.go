package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

type fakeSurface struct {
	mu       sync.Mutex
	clears   int
	mounted  []*qr.Artifact
	mountErr error
}

func (s *fakeSurface) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	return nil
}

func (s *fakeSurface) Mount(_ context.Context, a *qr.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mountErr != nil {
		return s.mountErr
	}
	s.mounted = append(s.mounted, a)
	return nil
}

func (s *fakeSurface) mounts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mounted)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []dto.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, notification dto.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *fakeNotifier) all() []dto.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dto.Notification(nil), n.sent...)
}

// recordingRenderer renders for real and remembers the options it was given.
type recordingRenderer struct {
	mu    sync.Mutex
	calls []qr.Options
	err   error
}

func (r *recordingRenderer) Render(opts qr.Options) (*qr.Artifact, error) {
	r.mu.Lock()
	r.calls = append(r.calls, opts)
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return qr.NewRenderer().Render(opts)
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingRenderer) last() qr.Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[int64]dto.Session
	ttls     map[int64]time.Duration
	setErr   error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[int64]dto.Session{}, ttls: map[int64]time.Duration{}}
}

func (m *memorySessions) Get(_ context.Context, userID int64) (*dto.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, errorz.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Set(_ context.Context, s dto.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sessions[s.UserID] = s
	m.ttls[s.UserID] = ttl
	return nil
}

func (m *memorySessions) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

var errBoom = errors.New("boom")

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

type SessionStorage interface {
	Get(ctx context.Context, userID int64) (*dto.Session, error)
	Set(ctx context.Context, session dto.Session, ttl time.Duration) error
	Delete(ctx context.Context, userID int64) error
}

// GeneratorFactory builds the preview generator of a user.
type GeneratorFactory func(userID int64) *Generator

type SessionDefaults struct {
	Format Format
	Size   int
}

// SessionService owns the in-progress design of every user. Styling values are
// replaced wholesale on each edit, callers only ever get snapshots. Edits of
// one user are serialized. Content lives in process memory only, storage
// keeps the styling and export preferences.
type SessionService struct {
	storage  SessionStorage
	ttl      time.Duration
	defaults SessionDefaults
	factory  GeneratorFactory

	mu         sync.Mutex
	generators map[int64]*Generator
	contents   map[int64]string
	locks      map[int64]*sync.Mutex
	now        func() time.Time
}

func NewSessionService(storage SessionStorage, ttl time.Duration, defaults SessionDefaults, factory GeneratorFactory) *SessionService {
	return &SessionService{
		storage:    storage,
		ttl:        ttl,
		defaults:   defaults,
		factory:    factory,
		generators: make(map[int64]*Generator),
		contents:   make(map[int64]string),
		locks:      make(map[int64]*sync.Mutex),
		now:        time.Now,
	}
}

// lock holds the user's edit lock until the returned func is called.
func (s *SessionService) lock(userID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *SessionService) newSession(userID int64) dto.Session {
	return dto.Session{
		UserID:  userID,
		Styling: styling.Default(),
		Format:  string(s.defaults.Format),
		Size:    s.defaults.Size,
	}
}

// Get returns the session of the user, a fresh one if nothing is stored.
func (s *SessionService) Get(ctx context.Context, userID int64) (dto.Session, error) {
	var session dto.Session
	stored, err := s.storage.Get(ctx, userID)
	switch {
	case err == nil:
		session = *stored
	case errors.Is(err, errorz.ErrSessionNotFound):
		session = s.newSession(userID)
	default:
		return dto.Session{}, err
	}

	s.mu.Lock()
	session.Content = s.contents[userID]
	s.mu.Unlock()
	return session, nil
}

func (s *SessionService) save(ctx context.Context, session dto.Session) (dto.Session, error) {
	session.UpdatedAt = s.now()
	stored := session
	stored.Content = ""
	if err := s.storage.Set(ctx, stored, s.ttl); err != nil {
		return dto.Session{}, err
	}
	return session, nil
}

func (s *SessionService) schedule(session dto.Session) {
	if g := s.Generator(session.UserID); g != nil {
		g.Schedule(session.Content, session.Styling)
	}
}

// SetContent stores new content and schedules a preview.
func (s *SessionService) SetContent(ctx context.Context, userID int64, content string) (dto.Session, error) {
	defer s.lock(userID)()

	session, err := s.Get(ctx, userID)
	if err != nil {
		return dto.Session{}, err
	}
	session, err = s.save(ctx, session)
	if err != nil {
		return dto.Session{}, err
	}

	s.mu.Lock()
	s.contents[userID] = content
	s.mu.Unlock()
	session.Content = content
	s.schedule(session)
	return session, nil
}

// ApplyStyling replaces the styling with the result of fn and schedules a preview.
// A failing fn leaves the session untouched.
func (s *SessionService) ApplyStyling(ctx context.Context, userID int64, fn func(styling.Options) (styling.Options, error)) (dto.Session, error) {
	defer s.lock(userID)()

	session, err := s.Get(ctx, userID)
	if err != nil {
		return dto.Session{}, err
	}

	next, err := fn(session.Styling)
	if err != nil {
		return dto.Session{}, err
	}
	if next.Equal(session.Styling) {
		return session, nil
	}
	session.Styling = next

	session, err = s.save(ctx, session)
	if err != nil {
		return dto.Session{}, err
	}
	s.schedule(session)
	return session, nil
}

func (s *SessionService) SetExportPreferences(ctx context.Context, userID int64, format Format, size int) (dto.Session, error) {
	defer s.lock(userID)()

	session, err := s.Get(ctx, userID)
	if err != nil {
		return dto.Session{}, err
	}
	if format != "" {
		session.Format = string(format)
	}
	if size > 0 {
		session.Size = size
	}
	return s.save(ctx, session)
}

// Generator returns the generator of the user, creating it on first use.
func (s *SessionService) Generator(userID int64) *Generator {
	if s.factory == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.generators[userID]
	if !ok {
		g = s.factory(userID)
		s.generators[userID] = g
	}
	return g
}

// Configure applies new preview settings to every live generator.
func (s *SessionService) Configure(cfg GeneratorConfig) {
	s.mu.Lock()
	live := make([]*Generator, 0, len(s.generators))
	for _, g := range s.generators {
		live = append(live, g)
	}
	s.mu.Unlock()

	for _, g := range live {
		g.Configure(cfg)
	}
}

// Message is the inline message of the user's preview, empty when there is
// no generator yet.
func (s *SessionService) Message(userID int64) string {
	s.mu.Lock()
	g, ok := s.generators[userID]
	s.mu.Unlock()
	if !ok {
		return ""
	}
	return g.Message()
}

// Regenerate runs the generation cycle right away, skipping the debounce.
func (s *SessionService) Regenerate(ctx context.Context, userID int64) error {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	g := s.Generator(userID)
	if g == nil {
		return nil
	}
	g.Stop()
	return g.Generate(ctx, session.Content, session.Styling)
}

// Reset drops the stored session and the content, then clears the preview.
func (s *SessionService) Reset(ctx context.Context, userID int64) error {
	defer s.lock(userID)()

	if err := s.storage.Delete(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	g, ok := s.generators[userID]
	delete(s.generators, userID)
	delete(s.contents, userID)
	s.mu.Unlock()

	if ok {
		g.Stop()
		g.Reset(ctx)
	}
	return nil
}

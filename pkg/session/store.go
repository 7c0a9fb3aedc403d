package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"workshop-registration/pkg/form"
	"workshop-registration/pkg/metrics"
)

var ErrSessionExpired = errors.New("session expired")

// Factory builds the form for a new session
type Factory func() *form.Form

type entry struct {
	form      *form.Form
	expiresAt time.Time
}

// Store keeps one form per browser session, in memory only
type Store struct {
	factory Factory
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

// Option configures a Store
type Option func(*Store)

// WithMetrics reports the number of live sessions
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a session store whose sessions live for ttl after their last use
func NewStore(factory Factory, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session and returns its ID
func (s *Store) Create() (string, *form.Form) {
	id := uuid.NewString()
	f := s.factory()

	s.mu.Lock()
	s.entries[id] = &entry{form: f, expiresAt: s.now().Add(s.ttl)}
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return id, f
}

// Get returns the form for id and extends its lifetime
func (s *Store) Get(id string) (*form.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[id]
	if !exists {
		return nil, ErrSessionExpired
	}

	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.entries, id)
		s.metrics.SetActiveSessions(len(s.entries))
		return nil, ErrSessionExpired
	}

	e.expiresAt = now.Add(s.ttl)
	return e.form, nil
}

// GetOrCreate returns the form for id, starting a new session when id is unknown or expired
func (s *Store) GetOrCreate(id string) (string, *form.Form, bool) {
	if id != "" {
		if f, err := s.Get(id); err == nil {
			return id, f, false
		}
	}
	newID, f := s.Create()
	return newID, f, true
}

// Len returns the number of sessions held, including expired ones not yet swept
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Debug("expired sessions swept", slog.Int("removed", removed), slog.Int("remaining", s.Len()))
			}
		}
	}
}

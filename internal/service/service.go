// Package service implements the todo kernel: the operations every front end
// (terminal shell, MCP server) calls, with the business rules enforced on top
// of the session directory.
package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-ports/todo/internal/apperr"
	"github.com/go-ports/todo/internal/config"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/session"
	"github.com/go-ports/todo/internal/store"
)

// Service orchestrates all todo operations for one session directory.
// Calls are serialized, so each one validates and mutates without
// interleaving with another.
type Service struct {
	maxActive int
	now       func() time.Time

	dir *session.Directory
	mu  sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithMaxActive sets the pending-todo cap. Values below 1 are ignored.
func WithMaxActive(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.maxActive = n
		}
	}
}

// WithClock replaces time.Now as the CreatedAt source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over st with nobody logged in.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		maxActive: models.DefaultMaxActive,
		now:       time.Now,
		dir:       session.New(st),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Service using the store driver and cap from cfg.
func Open(cfg *config.Config) (*Service, error) {
	st, err := store.Open(cfg.Store.Driver)
	if err != nil {
		return nil, fmt.Errorf("service.Open: %w", err)
	}
	return New(st, WithMaxActive(cfg.Todos.MaxActive)), nil
}

// Close releases the backing store.
func (s *Service) Close() error {
	return s.dir.Store().Close()
}

// MaxActive returns the pending-todo cap.
func (s *Service) MaxActive() int { return s.maxActive }

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// Login makes name the active user. See session.Directory.Login.
func (s *Service) Login(name string) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, created, err := s.dir.Login(name)
	if err != nil {
		return nil, false, err
	}
	if created {
		slog.Debug("user created", "user", u.Name)
	}
	return u, created, nil
}

// Logout clears the active user. ok is false when nobody was logged in.
func (s *Service) Logout() (name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.Logout()
}

// CurrentUser returns a snapshot of the active user, or nil.
func (s *Service) CurrentUser() (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.Current()
}

// requireUser returns the active user or a not_logged_in error.
func (s *Service) requireUser() (*models.User, error) {
	u, err := s.dir.Current()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotLoggedIn
	}
	return u, nil
}

// ---------------------------------------------------------------------------
// Todos
// ---------------------------------------------------------------------------

// Add appends a pending todo for the active user. Completed todos do not
// count against the cap.
func (s *Service) Add(text string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.ErrEmptyText
	}
	if u.ActiveCount() >= s.maxActive {
		return nil, apperr.Newf(apperr.KindCapacityExceeded, "Max %d unfinished todos allowed", s.maxActive)
	}

	t, err := s.dir.Store().InsertTodo(u.Name, text, s.now())
	if err != nil {
		return nil, apperr.Internal("add", err)
	}
	slog.Debug("todo added", "user", u.Name, "id", t.ID)
	return t, nil
}

// List returns the active user's todos matching filter, newest first.
// The returned slice is owned by the caller.
func (s *Service) List(filter string) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	f, err := models.ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	out := make([]models.Todo, 0, len(u.Todos))
	for i := len(u.Todos) - 1; i >= 0; i-- {
		if f.Match(u.Todos[i]) {
			out = append(out, u.Todos[i])
		}
	}
	return out, nil
}

// Complete marks a pending todo as finished. Finishing is one-way.
func (s *Service) Complete(id int) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	t, ok := u.Find(id)
	if !ok {
		return nil, notFound(id)
	}
	if t.Completed {
		return nil, apperr.Newf(apperr.KindAlreadyDone, "Todo #%d is already finished", id)
	}

	done, found, err := s.dir.Store().MarkCompleted(u.Name, id)
	if err != nil {
		return nil, apperr.Internal("complete", err)
	}
	if !found {
		return nil, notFound(id)
	}
	return done, nil
}

// Remove deletes a todo and returns it. Its id is never handed out again.
func (s *Service) Remove(id int) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if _, ok := u.Find(id); !ok {
		return nil, notFound(id)
	}

	removed, found, err := s.dir.Store().DeleteTodo(u.Name, id)
	if err != nil {
		return nil, apperr.Internal("remove", err)
	}
	if !found {
		return nil, notFound(id)
	}
	slog.Debug("todo removed", "user", u.Name, "id", id)
	return removed, nil
}

func notFound(id int) error {
	return apperr.Newf(apperr.KindNotFound, "Todo #%d not found", id)
}

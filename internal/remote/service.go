package remote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/time/rate"

	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/uiutil"
)

// Backend performs account actions. Implementations must be safe for
// concurrent use.
type Backend interface {
	Perform(ctx context.Context, postID string, action Action) error
	// Authenticated reports whether account actions are available.
	Authenticated() bool
}

// Mutator is the mutation API consumed by the UI.
type Mutator interface {
	Perform(p *post.Post, action Action) tea.Cmd
	Authenticated() bool
}

// DoneMsg is sent once the backend confirmed an action and the post flags
// were updated.
type DoneMsg struct {
	PostID string
	Action Action
	Flags  post.Flags
}

const defaultTimeout = 15 * time.Second

// Service is the [Mutator] used by the application. It rate limits requests
// to the backend and applies confirmed changes to the post.
type Service struct {
	backend Backend
	limiter *rate.Limiter
	timeout time.Duration
}

// Option configures a [Service].
type Option func(*Service)

// WithLimiter overrides the default rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithTimeout sets how long a single request may take, including the time
// spent waiting for the rate limiter.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService creates a service backed by b. By default it allows two
// requests per second with a burst of five.
func NewService(b Backend, opts ...Option) *Service {
	s := &Service{
		backend: b,
		limiter: rate.NewLimiter(rate.Limit(2), 5),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticated implements [Mutator].
func (s *Service) Authenticated() bool {
	return s.backend.Authenticated()
}

// Perform implements [Mutator]. The returned command blocks on the backend;
// Bubble Tea runs it off the update loop.
func (s *Service) Perform(p *post.Post, action Action) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		flags, err := s.Do(ctx, p, action)
		if err != nil {
			return uiutil.ReportError(err)()
		}
		return DoneMsg{PostID: p.ID, Action: action, Flags: flags}
	}
}

// Do performs action synchronously and returns the post flags after the
// change.
func (s *Service) Do(ctx context.Context, p *post.Post, action Action) (post.Flags, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return p.Flags(), fmt.Errorf("%s %s: rate limited: %w", action, p.ID, err)
	}
	if err := s.backend.Perform(ctx, p.ID, action); err != nil {
		return p.Flags(), fmt.Errorf("%s %s: %w", action, p.ID, err)
	}
	flags := p.UpdateFlags(action.Apply)
	slog.Debug("Action confirmed", "post", p.ID, "action", action)
	return flags, nil
}

package satellite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/rpc"
)

// Session is an authenticated connection to the Satellite XML-RPC API.
// The session token is mutated by Login, Logout and the one-shot teardown,
// so a Session must not be shared between goroutines; every workflow opens
// its own.
type Session struct {
	config  *config.Config
	client  rpc.Caller
	log     *log.Logger
	token   string
	oneShot bool
}

// New creates an unauthenticated session. Call Login before issuing
// operations, and Close on every exit path.
func New(cfg *config.Config, logger *log.Logger) (*Session, error) {
	client, err := rpc.NewClient(cfg.RPCURL())
	if err != nil {
		return nil, err
	}

	return &Session{config: cfg, client: client, log: logger}, nil
}

// OneShot creates a session that is already logged in and will log itself
// out again after the next operation. Intended for single lookups.
func OneShot(cfg *config.Config, logger *log.Logger) (*Session, error) {
	session, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	session.oneShot = true

	if err = session.Login(); err != nil {
		_ = session.client.Close()
		return nil, err
	}
	return session, nil
}

// Login exchanges the configured credentials for a session token.
func (s *Session) Login() error {
	value, err := s.client.Call("auth.login", s.config.User, s.config.Password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	token := value.String()
	if token == "" {
		return fmt.Errorf("%w: empty session token", ErrAuth)
	}

	s.token = token
	zap.S().Debugf("Logged in to '%s' as '%s'", s.config.URL, s.config.User)
	return nil
}

// Logout invalidates the session token. The remote call is best-effort;
// the token is cleared either way.
func (s *Session) Logout() {
	if s.token == "" {
		return
	}
	if _, err := s.client.Call("auth.logout", s.token); err != nil {
		zap.S().Debugf("Logout failed: %s", err)
	}
	s.reset()
}

// EnsureAuthed logs in unless a token is already held.
func (s *Session) EnsureAuthed() error {
	if s.token == "" {
		return s.Login()
	}
	return nil
}

// Close logs out and releases the transport. Safe to defer immediately
// after New; it guarantees the token is invalidated on every exit path.
func (s *Session) Close() error {
	s.Logout()
	return s.client.Close()
}

// call dispatches an authenticated request, prepending the session token as
// the first argument. In one-shot mode the session logs out after the call,
// regardless of its outcome; the call error still reaches the caller.
func (s *Session) call(method string, args ...any) (rpc.Value, error) {
	params := make([]any, 0, len(args)+1)
	params = append(params, s.token)
	params = append(params, args...)

	value, err := s.client.Call(method, params...)

	if s.oneShot && s.token != "" {
		if _, logoutErr := s.client.Call("auth.logout", s.token); logoutErr != nil {
			zap.S().Debugf("One-shot logout failed: %s", logoutErr)
		}
		s.reset()
	}

	return value, err
}

// suspendOneShot turns the one-shot flag off for the duration of a
// multi-call operation. The returned function logs the session out if it
// was one-shot, completing the deferred teardown.
func (s *Session) suspendOneShot() func() {
	wasOneShot := s.oneShot
	s.oneShot = false

	return func() {
		if wasOneShot {
			s.Logout()
		}
	}
}

func (s *Session) reset() {
	s.token = ""
	s.oneShot = false
}

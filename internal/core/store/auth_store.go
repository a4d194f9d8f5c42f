package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/core/ports"
)

// AuthStore tracks the current session: the authenticated user, the bearer
// token, a loading flag, and the last error message.
type AuthStore struct {
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	log     zerolog.Logger

	mu        sync.Mutex
	user      *domain.User
	token     string
	isLoading bool
	lastErr   string
}

func NewAuthStore(gateway ports.AuthGateway, tokens ports.TokenStore, log zerolog.Logger) *AuthStore {
	return &AuthStore{gateway: gateway, tokens: tokens, log: log}
}

// User returns a copy of the authenticated user, or nil.
func (s *AuthStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *AuthStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Err returns the display message of the last failed action, or "".
func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// IsAuthenticated reports whether both a token and a user profile are
// present. A token alone (e.g. freshly loaded from durable storage) is not
// a session.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// UserRole returns the session's role level, or "" when unauthenticated.
func (s *AuthStore) UserRole() domain.RoleLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.RoleLevel
}

// run is the shared action envelope. The loading flag is cleared in a defer
// so no error path can skip it.
func (s *AuthStore) run(fallback string, fn func() error) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isLoading = false
		s.mu.Unlock()
	}()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.lastErr = errorMessage(err, fallback)
		s.mu.Unlock()
		return err
	}
	return nil
}

// Login exchanges credentials for a session. On success the token is
// persisted to durable storage; on any failure the session state is left
// untouched and the error is returned to the caller.
func (s *AuthStore) Login(ctx context.Context, creds domain.Credentials) error {
	return s.run("Login failed", func() error {
		res, err := s.gateway.Login(ctx, creds)
		if err != nil {
			s.log.Error().Err(err).Msg("login failed")
			return err
		}

		s.mu.Lock()
		s.token = res.Token
		u := res.User
		s.user = &u
		s.mu.Unlock()

		if err := s.tokens.Save(res.Token); err != nil {
			s.log.Error().Err(err).Msg("persisting token failed")
			return err
		}

		s.log.Info().Str("user_id", res.User.ID).Msg("user logged in")
		return nil
	})
}

// Logout invalidates the session server-side on a best-effort basis and
// unconditionally clears local state and the persisted token. It always
// succeeds from the caller's perspective.
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.gateway.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout call failed")
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("clearing persisted token failed")
	}
	s.log.Info().Msg("user logged out")
}

// InitializeAuth loads a previously persisted token, if any, without
// contacting the network. The user profile is not re-fetched, so the
// session stays unauthenticated until the next login; the API exposes no
// profile endpoint to complete resumption.
func (s *AuthStore) InitializeAuth() {
	tok, err := s.tokens.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("reading persisted token failed")
		return
	}
	if tok == "" {
		return
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}

// ClearSession drops the in-memory session without touching durable
// storage. The HTTP client invokes this through the console when the
// backend rejects a request as unauthorized; the client has already
// cleared the persisted token by then.
func (s *AuthStore) ClearSession() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/domain"
)

type stubAuthGateway struct {
	loginResult *domain.LoginResult
	loginErr    error
	loginCalls  int

	logoutErr   error
	logoutCalls int
}

func (g *stubAuthGateway) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.loginResult, nil
}

func (g *stubAuthGateway) Logout(ctx context.Context) error {
	g.logoutCalls++
	return g.logoutErr
}

type memTokenStore struct {
	token string

	loadErr  error
	saveErr  error
	clearErr error
}

func (m *memTokenStore) Load() (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.token, nil
}

func (m *memTokenStore) Save(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokenStore) Clear() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

func testUser() domain.User {
	return domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", RoleLevel: domain.RoleAdmin, Status: domain.StatusOn}
}

func TestAuthStore_LoginSuccess(t *testing.T) {
	gw := &stubAuthGateway{loginResult: &domain.LoginResult{Token: "tok-123", User: testUser()}}
	tokens := &memTokenStore{}
	s := NewAuthStore(gw, tokens, zerolog.Nop())

	if err := s.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if got := s.Token(); got != "tok-123" {
		t.Fatalf("Token = %q, want tok-123", got)
	}
	if u := s.User(); u == nil || u.ID != "u1" {
		t.Fatalf("User = %+v, want u1", u)
	}
	if got := s.UserRole(); got != domain.RoleAdmin {
		t.Fatalf("UserRole = %q, want ADMIN", got)
	}
	if tokens.token != "tok-123" {
		t.Fatalf("token not persisted: %q", tokens.token)
	}
	if s.IsLoading() {
		t.Fatalf("loading flag left set")
	}
	if s.Err() != "" {
		t.Fatalf("unexpected error message: %q", s.Err())
	}
}

func TestAuthStore_LoginFailureLeavesStateUntouched(t *testing.T) {
	gw := &stubAuthGateway{loginErr: errors.New("invalid credentials")}
	s := NewAuthStore(gw, &memTokenStore{}, zerolog.Nop())

	err := s.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "wrong"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if s.IsAuthenticated() {
		t.Fatalf("should not be authenticated")
	}
	if s.Token() != "" {
		t.Fatalf("token should be empty, got %q", s.Token())
	}
	if s.User() != nil {
		t.Fatalf("user should be nil")
	}
	if got := s.Err(); got != "invalid credentials" {
		t.Fatalf("Err = %q, want invalid credentials", got)
	}
	if s.IsLoading() {
		t.Fatalf("loading flag left set")
	}
}

func TestAuthStore_LoginFallbackMessage(t *testing.T) {
	gw := &stubAuthGateway{loginErr: errors.New("")}
	s := NewAuthStore(gw, &memTokenStore{}, zerolog.Nop())

	if err := s.Login(context.Background(), domain.Credentials{}); err == nil {
		t.Fatalf("expected error")
	}
	if got := s.Err(); got != "Login failed" {
		t.Fatalf("Err = %q, want Login failed", got)
	}
}

func TestAuthStore_LoginPersistFailure(t *testing.T) {
	gw := &stubAuthGateway{loginResult: &domain.LoginResult{Token: "tok", User: testUser()}}
	tokens := &memTokenStore{saveErr: errors.New("disk full")}
	s := NewAuthStore(gw, tokens, zerolog.Nop())

	if err := s.Login(context.Background(), domain.Credentials{}); err == nil {
		t.Fatalf("expected error")
	}
	if got := s.Err(); got != "disk full" {
		t.Fatalf("Err = %q, want disk full", got)
	}
}

func TestAuthStore_LogoutAlwaysClears(t *testing.T) {
	gw := &stubAuthGateway{loginResult: &domain.LoginResult{Token: "tok", User: testUser()}}
	tokens := &memTokenStore{}
	s := NewAuthStore(gw, tokens, zerolog.Nop())
	if err := s.Login(context.Background(), domain.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	gw.logoutErr = errors.New("server unreachable")
	s.Logout(context.Background())

	if gw.logoutCalls != 1 {
		t.Fatalf("logoutCalls = %d, want 1", gw.logoutCalls)
	}
	if s.IsAuthenticated() || s.Token() != "" || s.User() != nil {
		t.Fatalf("session not cleared after logout")
	}
	if tokens.token != "" {
		t.Fatalf("persisted token not cleared: %q", tokens.token)
	}
}

func TestAuthStore_LogoutSurvivesClearFailure(t *testing.T) {
	gw := &stubAuthGateway{loginResult: &domain.LoginResult{Token: "tok", User: testUser()}}
	tokens := &memTokenStore{}
	s := NewAuthStore(gw, tokens, zerolog.Nop())
	if err := s.Login(context.Background(), domain.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	tokens.clearErr = errors.New("permission denied")
	s.Logout(context.Background())

	if s.Token() != "" || s.User() != nil {
		t.Fatalf("in-memory session not cleared")
	}
}

func TestAuthStore_InitializeAuthLoadsTokenOnly(t *testing.T) {
	gw := &stubAuthGateway{}
	tokens := &memTokenStore{token: "stored-token"}
	s := NewAuthStore(gw, tokens, zerolog.Nop())

	s.InitializeAuth()

	if got := s.Token(); got != "stored-token" {
		t.Fatalf("Token = %q, want stored-token", got)
	}
	// No profile endpoint exists, so a restored token is not a session.
	if s.IsAuthenticated() {
		t.Fatalf("restored token must not count as authenticated")
	}
	if s.User() != nil {
		t.Fatalf("user should stay nil")
	}
	if gw.loginCalls != 0 || gw.logoutCalls != 0 {
		t.Fatalf("InitializeAuth must not touch the network")
	}
}

func TestAuthStore_InitializeAuthEmptyStore(t *testing.T) {
	s := NewAuthStore(&stubAuthGateway{}, &memTokenStore{}, zerolog.Nop())
	s.InitializeAuth()
	if s.Token() != "" {
		t.Fatalf("Token = %q, want empty", s.Token())
	}
}

func TestAuthStore_InitializeAuthLoadError(t *testing.T) {
	tokens := &memTokenStore{loadErr: errors.New("corrupt")}
	s := NewAuthStore(&stubAuthGateway{}, tokens, zerolog.Nop())
	s.InitializeAuth()
	if s.Token() != "" {
		t.Fatalf("Token = %q, want empty on load error", s.Token())
	}
}

func TestAuthStore_ClearSessionKeepsDurableToken(t *testing.T) {
	gw := &stubAuthGateway{loginResult: &domain.LoginResult{Token: "tok", User: testUser()}}
	tokens := &memTokenStore{}
	s := NewAuthStore(gw, tokens, zerolog.Nop())
	if err := s.Login(context.Background(), domain.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	s.ClearSession()

	if s.IsAuthenticated() || s.Token() != "" || s.User() != nil {
		t.Fatalf("session not cleared")
	}
	if tokens.token != "tok" {
		t.Fatalf("ClearSession must not touch durable storage, got %q", tokens.token)
	}
}

func TestAuthStore_UserReturnsCopy(t *testing.T) {
	gw := &stubAuthGateway{loginResult: &domain.LoginResult{Token: "tok", User: testUser()}}
	s := NewAuthStore(gw, &memTokenStore{}, zerolog.Nop())
	if err := s.Login(context.Background(), domain.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	u := s.User()
	u.Name = "Mallory"
	if got := s.User().Name; got != "Alice" {
		t.Fatalf("internal user mutated through returned copy: %q", got)
	}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

type memTokens struct {
	token    string
	clearErr error
}

func (m *memTokens) Load() (string, error) { return m.token, nil }
func (m *memTokens) Save(token string) error {
	m.token = token
	return nil
}
func (m *memTokens) Clear() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens *memTokens, onUnauthorized func()) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{
		BaseURL:        srv.URL,
		Tokens:         tokens,
		OnUnauthorized: onUnauthorized,
		Logger:         zerolog.Nop(),
	})
}

func TestClient_DefaultHeaders(t *testing.T) {
	var gotIdent, gotContentType, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotIdent = r.Header.Get("interviewerName")
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, &memTokens{}, nil)

	if _, err := c.Post(context.Background(), "/login", "/login", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotIdent != "Benben" {
		t.Fatalf("interviewerName = %q", gotIdent)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected Authorization header without a stored token: %q", gotAuth)
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, &memTokens{token: "tok-42"}, nil)

	if _, err := c.Get(context.Background(), "/accounts", "/accounts"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-42" {
		t.Fatalf("Authorization = %q, want Bearer tok-42", gotAuth)
	}
}

func TestClient_UnauthorizedClearsTokenAndNotifies(t *testing.T) {
	tokens := &memTokens{token: "stale"}
	notified := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}, tokens, func() { notified++ })

	_, err := c.Get(context.Background(), "/accounts", "/accounts")
	if err == nil {
		t.Fatalf("expected error")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("StatusCode = %d", se.StatusCode)
	}
	if se.Error() != "token expired" {
		t.Fatalf("Error() = %q, want token expired", se.Error())
	}
	if tokens.token != "" {
		t.Fatalf("stored token not cleared: %q", tokens.token)
	}
	if notified != 1 {
		t.Fatalf("onUnauthorized fired %d times, want 1", notified)
	}
}

func TestClient_ServerMessagePrefersMessageField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"email already registered","error":"conflict"}`))
	}, &memTokens{}, nil)

	_, err := c.Post(context.Background(), "/create-account", "/create-account", nil)
	if err == nil || err.Error() != "email already registered" {
		t.Fatalf("err = %v, want server message", err)
	}
}

func TestClient_StatusErrorFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	}, &memTokens{}, nil)

	_, err := c.Get(context.Background(), "/accounts", "/accounts")
	if err == nil || err.Error() != "request failed with status 500" {
		t.Fatalf("err = %v, want generic status message", err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(ClientOptions{BaseURL: srv.URL, Tokens: &memTokens{}, Logger: zerolog.Nop()})

	_, err := c.Get(context.Background(), "/accounts", "/accounts")
	if err == nil {
		t.Fatalf("expected network error")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Fatalf("network failure must not be a StatusError")
	}
}

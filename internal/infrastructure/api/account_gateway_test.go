package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/domain"
)

func fixedBody(t *testing.T, status int, body string) *Client {
	t.Helper()
	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}, &memTokens{}, nil)
}

const goodAccount = `{"id":"1","name":"Alice","email":"alice@example.com","roleLevel":"ADMIN","status":"ON"}`

func TestAccountGatewayList_Envelope(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"data":[`+goodAccount+`],"total":1,"page":1,"pageSize":10}`)
	g := NewAccountGateway(c, zerolog.Nop())

	list, err := g.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != "1" {
		t.Fatalf("list = %+v", list)
	}
}

func TestAccountGatewayList_EmptyEnvelope(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"data":[]}`)
	g := NewAccountGateway(c, zerolog.Nop())

	list, err := g.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list = %+v, want empty", list)
	}
}

func TestAccountGatewayList_BareArrayFallback(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `[`+goodAccount+`,`+goodAccount+`]`)
	g := NewAccountGateway(c, zerolog.Nop())

	list, err := g.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list len = %d, want 2", len(list))
	}
}

func TestAccountGatewayList_InvalidMembersStillAccepted(t *testing.T) {
	// The envelope decodes but fails validation (member missing its email),
	// so the loose data-field fallback hands the records through as-is.
	c := fixedBody(t, http.StatusOK, `{"data":[{"id":"1","name":"Alice","roleLevel":"ADMIN","status":"ON"}]}`)
	g := NewAccountGateway(c, zerolog.Nop())

	list, err := g.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Email != "" {
		t.Fatalf("list = %+v", list)
	}
}

func TestAccountGatewayList_MalformedBody(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"items":[1,2,3]}`)
	g := NewAccountGateway(c, zerolog.Nop())

	_, err := g.List(context.Background())
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAccountGatewayList_HTTPErrorPassesThrough(t *testing.T) {
	c := fixedBody(t, http.StatusInternalServerError, `{"error":"database down"}`)
	g := NewAccountGateway(c, zerolog.Nop())

	_, err := g.List(context.Background())
	if err == nil || err.Error() != "database down" {
		t.Fatalf("err = %v", err)
	}
}

func TestAccountGatewayGet_Strict(t *testing.T) {
	c := fixedBody(t, http.StatusOK, goodAccount)
	g := NewAccountGateway(c, zerolog.Nop())

	acc, err := g.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if acc.Email != "alice@example.com" {
		t.Fatalf("account = %+v", acc)
	}
}

func TestAccountGatewayGet_RejectsInvalidShape(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"id":"1","name":"Alice"}`)
	g := NewAccountGateway(c, zerolog.Nop())

	if _, err := g.Get(context.Background(), "1"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestAccountGatewayCreate_Lenient(t *testing.T) {
	// A create response missing fields is logged but still returned.
	c := fixedBody(t, http.StatusCreated, `{"id":"9","name":"Erin"}`)
	g := NewAccountGateway(c, zerolog.Nop())

	acc, err := g.Create(context.Background(), domain.AccountForm{Name: "Erin"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if acc.ID != "9" {
		t.Fatalf("account = %+v", acc)
	}
}

func TestAccountGatewayCreate_RejectsUndecodableBody(t *testing.T) {
	c := fixedBody(t, http.StatusCreated, `[]`)
	g := NewAccountGateway(c, zerolog.Nop())

	if _, err := g.Create(context.Background(), domain.AccountForm{}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAccountGatewayUpdate_Strict(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"id":"1","name":"Renamed"}`)
	g := NewAccountGateway(c, zerolog.Nop())

	if _, err := g.Update(context.Background(), "1", domain.AccountUpdate{}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestAccountGatewayDelete_IgnoresBody(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}, &memTokens{}, nil)
	g := NewAccountGateway(c, zerolog.Nop())

	if err := g.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotPath != "/delete-account/abc" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestAuthGatewayLogin(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"token":"tok-1","user":{"id":"1","name":"Alice","email":"alice@example.com","roleLevel":"ADMIN","status":"ON"}}`)
	g := NewAuthGateway(c)

	res, err := g.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-1" || res.User.ID != "1" {
		t.Fatalf("result = %+v", res)
	}
}

func TestAuthGatewayLogin_MissingToken(t *testing.T) {
	c := fixedBody(t, http.StatusOK, `{"user":{"id":"1","name":"Alice","email":"alice@example.com","roleLevel":"ADMIN","status":"ON"}}`)
	g := NewAuthGateway(c)

	if _, err := g.Login(context.Background(), domain.Credentials{}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestAuthGatewayLogin_BadCredentialsMessage(t *testing.T) {
	c := fixedBody(t, http.StatusUnauthorized, `{"error":"invalid credentials"}`)
	g := NewAuthGateway(c)

	_, err := g.Login(context.Background(), domain.Credentials{})
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("err = %v", err)
	}
}

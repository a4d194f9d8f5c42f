package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benben6515/metc/internal/core/domain"
)

// AuthGateway implements ports.AuthGateway against the remote backend.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Login exchanges credentials for a token and user profile. The response
// is validated strictly against the login-response shape.
func (g *AuthGateway) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	raw, err := g.client.Post(ctx, "/login", "/login", creds)
	if err != nil {
		return nil, err
	}

	var res domain.LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if err := domain.ValidateShape(&res); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	return &res, nil
}

// Logout asks the backend to invalidate the current token. The response
// body is ignored.
func (g *AuthGateway) Logout(ctx context.Context) error {
	_, err := g.client.Post(ctx, "/logout", "/logout", nil)
	return err
}

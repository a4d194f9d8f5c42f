package ports

import (
	"context"

	"github.com/benben6515/metc/internal/core/domain"
)

// AuthGateway is the remote credential-exchange surface.
type AuthGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Logout(ctx context.Context) error
}

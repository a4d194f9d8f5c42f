package ports

import (
	"context"

	"github.com/benben6515/metc/internal/core/domain"
)

// AccountGateway is the remote CRUD surface for account records.
type AccountGateway interface {
	List(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, form domain.AccountForm) (*domain.Account, error)
	Update(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/domain"
)

// AccountGateway implements ports.AccountGateway against the remote
// backend. Response validation is deliberately asymmetric across the
// operations: the backend contract is not uniform, and the tolerances
// below match what it actually serves.
type AccountGateway struct {
	client *Client
	log    zerolog.Logger
}

func NewAccountGateway(client *Client, log zerolog.Logger) *AccountGateway {
	return &AccountGateway{client: client, log: log}
}

// List fetches all accounts. The body is first validated strictly against
// the {data: [...]} envelope; on failure the raw body is accepted when it
// is itself a list, then when it has a "data" field that is a list. Only
// after all three attempts does the call fail with a parse error. The
// fallback order is a deliberate accommodation and must not change.
func (g *AccountGateway) List(ctx context.Context) ([]domain.Account, error) {
	raw, err := g.client.Get(ctx, "/accounts", "/accounts")
	if err != nil {
		return nil, err
	}

	var env domain.AccountList
	if err := json.Unmarshal(raw, &env); err == nil {
		if verr := domain.ValidateShape(&env); verr == nil {
			return env.Data, nil
		} else {
			g.log.Warn().Err(verr).Msg("accounts envelope failed validation, trying raw body")
		}
	}

	var list []domain.Account
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var loose struct {
		Data []domain.Account `json:"data"`
	}
	if err := json.Unmarshal(raw, &loose); err == nil && loose.Data != nil {
		return loose.Data, nil
	}

	return nil, domain.ErrMalformedResponse
}

// Get fetches a single account. Strict validation, no fallback.
func (g *AccountGateway) Get(ctx context.Context, id string) (*domain.Account, error) {
	raw, err := g.client.Get(ctx, "/account/:id", "/account/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode account response: %w", err)
	}
	if err := domain.ValidateShape(&account); err != nil {
		return nil, fmt.Errorf("account response: %w", err)
	}
	return &account, nil
}

// Create posts the form. A response that decodes but fails shape
// validation is still returned as the record rather than failing the
// operation; this is a weaker guarantee than Get/Update on purpose.
func (g *AccountGateway) Create(ctx context.Context, form domain.AccountForm) (*domain.Account, error) {
	raw, err := g.client.Post(ctx, "/create-account", "/create-account", form)
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	if verr := domain.ValidateShape(&account); verr != nil {
		g.log.Warn().Err(verr).Msg("create response failed validation, using raw body")
	}
	return &account, nil
}

// Update patches the record. Strict validation, no fallback.
func (g *AccountGateway) Update(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	raw, err := g.client.Patch(ctx, "/update-account/:id", "/update-account/"+url.PathEscape(id), update)
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode update response: %w", err)
	}
	if err := domain.ValidateShape(&account); err != nil {
		return nil, fmt.Errorf("update response: %w", err)
	}
	return &account, nil
}

// Delete removes the record. The response body is ignored.
func (g *AccountGateway) Delete(ctx context.Context, id string) error {
	_, err := g.client.Delete(ctx, "/delete-account/:id", "/delete-account/"+url.PathEscape(id))
	return err
}

package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/core/ports"
)

// AccountStore tracks the working list of account records in server order,
// the record currently being edited, a loading flag, and the last error.
// The list and the current record are independent copies; mutations keep
// them in sync only where an operation says so.
type AccountStore struct {
	gateway ports.AccountGateway
	log     zerolog.Logger

	mu        sync.Mutex
	accounts  []domain.Account
	current   *domain.Account
	isLoading bool
	lastErr   string
}

func NewAccountStore(gateway ports.AccountGateway, log zerolog.Logger) *AccountStore {
	return &AccountStore{gateway: gateway, log: log}
}

// Accounts returns a copy of the working list, preserving server order.
func (s *AccountStore) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// CurrentAccount returns a copy of the record under edit, or nil.
func (s *AccountStore) CurrentAccount() *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	a := *s.current
	return &a
}

func (s *AccountStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// ActiveAccounts returns the subsequence of the list whose status is ON.
func (s *AccountStore) ActiveAccounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Account
	for _, a := range s.accounts {
		if a.Status == domain.StatusOn {
			out = append(out, a)
		}
	}
	return out
}

func (s *AccountStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

func (s *AccountStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// run mirrors AuthStore.run: the loading flag cannot stay set on any path.
func (s *AccountStore) run(fallback string, fn func() error) error {
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

// FetchAccounts replaces the working list wholesale with the server's
// response. On failure the list is left untouched.
func (s *AccountStore) FetchAccounts(ctx context.Context) error {
	return s.run("Failed to fetch accounts", func() error {
		accounts, err := s.gateway.List(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("fetch accounts failed")
			return err
		}

		s.mu.Lock()
		s.accounts = accounts
		s.mu.Unlock()

		s.log.Info().Int("count", len(accounts)).Msg("accounts fetched")
		return nil
	})
}

// FetchAccountByID loads a single record into CurrentAccount. On failure
// the current record is left untouched.
func (s *AccountStore) FetchAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	var fetched *domain.Account
	err := s.run("Failed to fetch account", func() error {
		account, err := s.gateway.Get(ctx, id)
		if err != nil {
			s.log.Error().Err(err).Str("account_id", id).Msg("fetch account failed")
			return err
		}

		s.mu.Lock()
		s.current = account
		s.mu.Unlock()

		fetched = account
		s.log.Info().Str("account_id", id).Msg("account fetched")
		return nil
	})
	return fetched, err
}

// CreateAccount posts the form and appends the resulting record to the end
// of the working list.
func (s *AccountStore) CreateAccount(ctx context.Context, form domain.AccountForm) (*domain.Account, error) {
	var created *domain.Account
	err := s.run("Failed to create account", func() error {
		account, err := s.gateway.Create(ctx, form)
		if err != nil {
			s.log.Error().Err(err).Msg("create account failed")
			return err
		}

		s.mu.Lock()
		s.accounts = append(s.accounts, *account)
		s.mu.Unlock()

		created = account
		s.log.Info().Str("account_id", account.ID).Msg("account created")
		return nil
	})
	return created, err
}

// UpdateAccount patches the record and replaces the matching list entry in
// place. When no entry matches the list is left as is, but the validated
// record is still returned; callers must not assume the list changed.
// CurrentAccount is never touched.
func (s *AccountStore) UpdateAccount(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	var updated *domain.Account
	err := s.run("Failed to update account", func() error {
		account, err := s.gateway.Update(ctx, id, update)
		if err != nil {
			s.log.Error().Err(err).Str("account_id", id).Msg("update account failed")
			return err
		}

		s.mu.Lock()
		for i := range s.accounts {
			if s.accounts[i].ID == id {
				s.accounts[i] = *account
				break
			}
		}
		s.mu.Unlock()

		updated = account
		s.log.Info().Str("account_id", id).Msg("account updated")
		return nil
	})
	return updated, err
}

// DeleteAccount removes every entry matching id from the working list once
// the server confirms the delete. On failure the list is left untouched.
func (s *AccountStore) DeleteAccount(ctx context.Context, id string) error {
	return s.run("Failed to delete account", func() error {
		if err := s.gateway.Delete(ctx, id); err != nil {
			s.log.Error().Err(err).Str("account_id", id).Msg("delete account failed")
			return err
		}

		s.mu.Lock()
		kept := s.accounts[:0]
		for _, a := range s.accounts {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		s.accounts = kept
		s.mu.Unlock()

		s.log.Info().Str("account_id", id).Msg("account deleted")
		return nil
	})
}

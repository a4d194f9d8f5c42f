// Package repository holds the stub backend's in-memory account storage.
// The stub exists for local development and tests, so records live for
// the lifetime of the process and no external store is involved.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benben6515/metc/internal/core/domain"
)

type record struct {
	account      domain.Account
	passwordHash string
}

// Memory is a mutex-guarded account store preserving insertion order,
// which is the order the list endpoint serves.
type Memory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*record
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[string]*record)}
}

// List returns all accounts in insertion order.
func (m *Memory) List(_ context.Context) []domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Account, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].account)
	}
	return out
}

func (m *Memory) Get(_ context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a := rec.account
	return &a, nil
}

// FindByEmail returns the account and its password hash for login checks.
func (m *Memory) FindByEmail(_ context.Context, email string) (*domain.Account, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		rec := m.byID[id]
		if rec.account.Email == email {
			a := rec.account
			return &a, rec.passwordHash, nil
		}
	}
	return nil, "", domain.ErrAccountNotFound
}

// Create inserts a new account. The server assigns the ID and timestamps;
// new accounts start with status ON.
func (m *Memory) Create(_ context.Context, form domain.AccountForm, passwordHash string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		if m.byID[id].account.Email == form.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	account := domain.Account{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Email:     form.Email,
		RoleLevel: form.RoleLevel,
		Status:    domain.StatusOn,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.byID[account.ID] = &record{account: account, passwordHash: passwordHash}
	m.order = append(m.order, account.ID)

	a := account
	return &a, nil
}

// Update applies the non-nil fields of the patch. passwordHash replaces
// the stored hash when non-empty.
func (m *Memory) Update(_ context.Context, id string, update domain.AccountUpdate, passwordHash string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	if update.Email != nil && *update.Email != rec.account.Email {
		for _, other := range m.order {
			if other != id && m.byID[other].account.Email == *update.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		rec.account.Email = *update.Email
	}
	if update.Name != nil {
		rec.account.Name = *update.Name
	}
	if update.RoleLevel != nil {
		rec.account.RoleLevel = *update.RoleLevel
	}
	if update.Status != nil {
		rec.account.Status = *update.Status
	}
	if passwordHash != "" {
		rec.passwordHash = passwordHash
	}
	rec.account.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	a := rec.account
	return &a, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.byID, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

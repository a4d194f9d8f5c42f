package revoke

import (
	"context"
	"sync"
	"time"
)

// MemoryRevoker keeps the denylist in process memory. Used when no Redis
// address is configured, and by tests.
type MemoryRevoker struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{expires: make(map[string]time.Time), now: time.Now}
}

func (r *MemoryRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purge()
	r.expires[token] = r.now().Add(ttl)
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purge()
	exp, ok := r.expires[token]
	return ok && r.now().Before(exp), nil
}

// purge drops expired entries. Called with the lock held.
func (r *MemoryRevoker) purge() {
	now := r.now()
	for token, exp := range r.expires {
		if !now.Before(exp) {
			delete(r.expires, token)
		}
	}
}

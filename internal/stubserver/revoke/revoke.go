// Package revoke records bearer tokens invalidated by logout until their
// natural expiry, so a logged-out token stops working before it expires.
package revoke

import (
	"context"
	"time"
)

// Revoker is the token denylist consulted by the auth middleware.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

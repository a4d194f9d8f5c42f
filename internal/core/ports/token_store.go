package ports

// TokenStore is the single durable key holding the bearer token between
// runs. Load returns an empty string when nothing is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

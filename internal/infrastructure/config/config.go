package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API  APIConfig
	Stub StubConfig
}

// APIConfig configures the console's HTTP client.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=https://api-frontend-interview-server.metcfire.com.tw"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
	// TokenFile overrides the default per-user token location.
	TokenFile string `env:"TOKEN_FILE"`
}

// StubConfig configures the local stub backend.
type StubConfig struct {
	Port      string        `env:"STUB_PORT,       default=8080"`
	JWTSecret string        `env:"STUB_JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"STUB_TOKEN_TTL,  default=24h"`
	SeedCount int           `env:"STUB_SEED_COUNT, default=12"`

	Redis RedisConfig
}

// RedisConfig selects the token-revocation backend. An empty Addr keeps
// revocation in memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

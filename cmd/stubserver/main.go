package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/benben6515/metc/internal/infrastructure/config"
	"github.com/benben6515/metc/internal/stubserver"
	"github.com/benben6515/metc/internal/stubserver/repository"
	"github.com/benben6515/metc/internal/stubserver/revoke"
	"github.com/benben6515/metc/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
		Output: os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repository.NewMemory()
	if err := stubserver.Seed(ctx, repo, cfg.Stub.SeedCount, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	var revoker revoke.Revoker = revoke.NewMemoryRevoker()
	if cfg.Stub.Redis.Addr != "" {
		rdb, err := revoke.Connect(ctx, cfg.Stub.Redis.Addr, cfg.Stub.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer rdb.Close()
		revoker = revoke.NewRedisRevoker(rdb)
		log.Info().Str("addr", cfg.Stub.Redis.Addr).Msg("token revocation backed by redis")
	}

	e := stubserver.NewRouter(stubserver.Options{
		Repo:      repo,
		Revoker:   revoker,
		JWTSecret: cfg.Stub.JWTSecret,
		TokenTTL:  cfg.Stub.TokenTTL,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Stub.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Stub.Port).Str("admin", stubserver.AdminEmail).Msg("stub backend started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("stub backend stopped")
}

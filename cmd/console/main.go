package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/benben6515/metc/internal/console"
	"github.com/benben6515/metc/internal/core/store"
	"github.com/benben6515/metc/internal/infrastructure/api"
	"github.com/benben6515/metc/internal/infrastructure/config"
	"github.com/benben6515/metc/internal/infrastructure/tokenfile"
	"github.com/benben6515/metc/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
		Output: os.Stderr,
	})

	tokenPath := cfg.API.TokenFile
	if tokenPath == "" {
		var err error
		tokenPath, err = tokenfile.DefaultPath()
		if err != nil {
			log.Fatal().Err(err).Msg("resolving token path failed")
		}
	}
	tokens := tokenfile.New(tokenPath)

	var authStore *store.AuthStore
	client := api.NewClient(api.ClientOptions{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
		Logger:  logger.With("api"),
		OnUnauthorized: func() {
			// Global forced-logout side effect: any 401 drops the session
			// and sends the user back to the login view.
			if authStore != nil {
				authStore.ClearSession()
			}
			fmt.Fprintln(os.Stderr, "Session expired; please sign in again.")
		},
	})

	authStore = store.NewAuthStore(api.NewAuthGateway(client), tokens, logger.With("auth"))
	accounts := store.NewAccountStore(api.NewAccountGateway(client, logger.With("api")), logger.With("accounts"))

	// Resume what can be resumed from the persisted token. The user
	// profile is not re-fetched, so a login is still needed for a full
	// session.
	authStore.InitializeAuth()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &console.App{
		Auth:     authStore,
		Accounts: accounts,
		In:       os.Stdin,
		Out:      os.Stdout,
		Log:      logger.With("console"),
	}
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Debug().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

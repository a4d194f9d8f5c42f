// Package stubserver assembles a local stand-in for the hosted account
// backend. It implements the console's exact wire contract so development
// and integration tests do not depend on the remote service.
package stubserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/stubserver/handler"
	"github.com/benben6515/metc/internal/stubserver/middleware"
	"github.com/benben6515/metc/internal/stubserver/repository"
	"github.com/benben6515/metc/internal/stubserver/revoke"
)

// Options carries the router's dependencies and tunables.
type Options struct {
	Repo      *repository.Memory
	Revoker   revoke.Revoker
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("stubserver"))
	e.Use(middleware.RateLimitPerIP(rate.Limit(50), 100))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(opts.Repo, opts.Revoker, opts.JWTSecret, opts.TokenTTL, opts.Logger)
	accountHandler := handler.NewAccountHandler(opts.Repo, opts.Logger)
	authRequired := middleware.Auth(opts.JWTSecret, opts.Revoker)
	canMutate := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, authRequired)

	// --- Account routes ---
	e.GET("/accounts", accountHandler.List, authRequired)
	e.GET("/account/:id", accountHandler.Get, authRequired)
	e.POST("/create-account", accountHandler.Create, authRequired, canMutate)
	e.PATCH("/update-account/:id", accountHandler.Update, authRequired, canMutate)
	e.DELETE("/delete-account/:id", accountHandler.Delete, authRequired, canMutate)

	// --- Probes and metrics ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

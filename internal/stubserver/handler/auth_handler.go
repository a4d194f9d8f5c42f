package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/stubserver/repository"
	"github.com/benben6515/metc/internal/stubserver/revoke"
)

type AuthHandler struct {
	repo      *repository.Memory
	revoker   revoke.Revoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthHandler(repo *repository.Memory, revoker revoke.Revoker, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{repo: repo, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login authenticates by email and password and returns a bearer token
// plus the user profile.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      200   {object}  domain.LoginResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, hash, err := h.repo.FindByEmail(c.Request().Context(), creds.Email)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)) != nil {
		return domain.ErrInvalidCredentials
	}
	// Disabled accounts cannot open sessions.
	if account.Status != domain.StatusOn {
		return domain.ErrInvalidCredentials
	}

	token, err := h.generateToken(account)
	if err != nil {
		return err
	}

	h.log.Info().Str("account_id", account.ID).Msg("login")
	return c.JSON(http.StatusOK, domain.LoginResult{
		Token: token,
		User: domain.User{
			ID:        account.ID,
			Name:      account.Name,
			Email:     account.Email,
			RoleLevel: account.RoleLevel,
			Status:    account.Status,
		},
	})
}

// Logout revokes the presented token for the remainder of its lifetime.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token != "" {
		if err := h.revoker.Revoke(c.Request().Context(), token, h.tokenTTL); err != nil {
			return err
		}
	}
	h.log.Info().Msg("logout")
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"account_id": account.ID,
		"email":      account.Email,
		"role":       string(account.RoleLevel),
		"exp":        time.Now().Add(h.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}

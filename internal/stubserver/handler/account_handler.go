package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/stubserver/repository"
)

// AccountHandler serves the account CRUD endpoints. The request and
// response shapes are the domain types themselves: console and stub share
// one wire contract by construction.
type AccountHandler struct {
	repo *repository.Memory
	log  zerolog.Logger
}

func NewAccountHandler(repo *repository.Memory, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{repo: repo, log: log}
}

type accountListResponse struct {
	Data     []domain.Account `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// List returns every account wrapped in the standard envelope.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  accountListResponse
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts := h.repo.List(c.Request().Context())
	return c.JSON(http.StatusOK, accountListResponse{
		Data:     accounts,
		Total:    len(accounts),
		Page:     1,
		PageSize: len(accounts),
	})
}

// Get returns a single account.
//
// @Summary      Get account
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]string
// @Router       /account/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Create registers a new account and returns the created record.
//
// @Summary      Create account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      domain.AccountForm  true  "New account"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /create-account [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var form domain.AccountForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account, err := h.repo.Create(c.Request().Context(), form, string(hash))
	if err != nil {
		return err
	}

	h.log.Info().Str("account_id", account.ID).Msg("account created")
	return c.JSON(http.StatusCreated, account)
}

// Update applies a partial update and returns the resulting record.
//
// @Summary      Update account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Account ID"
// @Param        body  body      domain.AccountUpdate  true  "Fields to change"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /update-account/{id} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	var update domain.AccountUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var hash string
	if update.Password != nil {
		raw, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(raw)
	}

	account, err := h.repo.Update(c.Request().Context(), c.Param("id"), update, hash)
	if err != nil {
		return err
	}

	h.log.Info().Str("account_id", account.ID).Msg("account updated")
	return c.JSON(http.StatusOK, account)
}

// Delete removes an account.
//
// @Summary      Delete account
// @Tags         accounts
// @Param        id  path  string  true  "Account ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /delete-account/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	h.log.Info().Str("account_id", c.Param("id")).Msg("account deleted")
	return c.NoContent(http.StatusNoContent)
}

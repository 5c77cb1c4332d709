package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-crm/auth-service/internal/api/metrics"
	"github.com/warehouse-crm/auth-service/internal/api/middleware"
	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
	accounts ports.AccountService
}

func NewAuthHandler(sessions ports.SessionService, accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{sessions: sessions, accounts: accounts}
}

// Login authenticates an account and returns a credential pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    toUserResponse(res.Account),
		Tokens:  tokenPair{Refresh: res.Refresh, Access: res.Access},
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return "bad_credentials"
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

// Register submits a self-service registration. The account stays inactive
// until an administrator activates it.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(account.Role)).Inc()

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "Registration request submitted",
		UserID:  account.ID,
		Note:    "Your account will be activated after administrator approval.",
	})
}

// Refresh issues a new access token for a valid refresh token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	access, err := h.sessions.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refreshResponse{Access: access})
}

// Logout revokes a refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.Logout(c.Request().Context(), req.Refresh); err != nil {
		return err
	}
	metrics.RevocationsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

// Profile returns the authenticated account.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(actor))
}

// CheckAuth reports who the access token belongs to.
//
// @Summary      Check authentication
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkAuthResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/check-auth [get]
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	status, err := h.sessions.CheckAuth(c.Request().Context(), middleware.BearerToken(c.Request()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkAuthResponse{
		User:            status.Username,
		IsAuthenticated: true,
		Role:            string(status.Role),
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-crm/auth-service/internal/api/metrics"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

// UserHandler serves the user management endpoints. Role checks live in the
// account service; the handler only resolves the actor and shapes payloads.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// List returns the accounts visible to the caller.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	accounts, err := h.accounts.ListVisibleAccounts(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(accounts))
}

// Create provisions an active account.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.CreateAccount(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userEnvelope{Message: "User created successfully", User: toUserResponse(account)})
}

// Pending lists accounts awaiting activation.
//
// @Summary      List pending users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  map[string]string
// @Router       /users/pending [get]
func (h *UserHandler) Pending(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	accounts, err := h.accounts.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(accounts))
}

// Update applies a partial edit.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.UpdateAccount(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{Message: "User updated", User: toUserResponse(account)})
}

// Delete removes an account.
//
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "Account ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.accounts.DeleteAccount(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Activate marks an account active.
//
// @Summary      Activate user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  userEnvelope
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.Activate(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.LifecycleChangesTotal.WithLabelValues("activate").Inc()
	return c.JSON(http.StatusOK, userEnvelope{Message: "User activated", User: toUserResponse(account)})
}

// Deactivate marks an account inactive.
//
// @Summary      Deactivate user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  userEnvelope
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.Deactivate(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.LifecycleChangesTotal.WithLabelValues("deactivate").Inc()
	return c.JSON(http.StatusOK, userEnvelope{Message: "User deactivated", User: toUserResponse(account)})
}

// BulkActivate activates every listed account.
//
// @Summary      Bulk activate users
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRequest  true  "Account IDs"
// @Success      200   {object}  bulkResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users/bulk/activate [post]
func (h *UserHandler) BulkActivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req bulkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.accounts.BulkActivate(c.Request().Context(), actor, req.IDs)
	if err != nil {
		return err
	}
	metrics.LifecycleChangesTotal.WithLabelValues("activate").Add(float64(n))
	return c.JSON(http.StatusOK, bulkResponse{Message: "Users activated", Updated: n})
}

// BulkDeactivate deactivates every listed account. Superuser accounts are
// skipped unless the caller is a superuser.
//
// @Summary      Bulk deactivate users
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRequest  true  "Account IDs"
// @Success      200   {object}  bulkResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users/bulk/deactivate [post]
func (h *UserHandler) BulkDeactivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req bulkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.accounts.BulkDeactivate(c.Request().Context(), actor, req.IDs)
	if err != nil {
		return err
	}
	metrics.LifecycleChangesTotal.WithLabelValues("deactivate").Add(float64(n))
	return c.JSON(http.StatusOK, bulkResponse{Message: "Users deactivated", Updated: n})
}

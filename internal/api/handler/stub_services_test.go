package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-crm/auth-service/internal/api/middleware"
	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

type stubSessionService struct {
	loginFn     func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	refreshFn   func(ctx context.Context, refresh string) (string, error)
	logoutFn    func(ctx context.Context, refresh string) error
	checkAuthFn func(ctx context.Context, access string) (*ports.AuthStatus, error)
}

func (s *stubSessionService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessionService) Refresh(ctx context.Context, refresh string) (string, error) {
	return s.refreshFn(ctx, refresh)
}

func (s *stubSessionService) Logout(ctx context.Context, refresh string) error {
	return s.logoutFn(ctx, refresh)
}

func (s *stubSessionService) Authenticate(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubSessionService) CheckAuth(ctx context.Context, access string) (*ports.AuthStatus, error) {
	return s.checkAuthFn(ctx, access)
}

// stubAccountService embeds the interface so each test only sets the calls it
// expects; anything else panics.
type stubAccountService struct {
	ports.AccountService
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	createFn         func(ctx context.Context, actor *domain.Account, in ports.CreateAccountInput) (*domain.Account, error)
	updateFn         func(ctx context.Context, actor *domain.Account, id string, in ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn         func(ctx context.Context, actor *domain.Account, id string) error
	listFn           func(ctx context.Context, actor *domain.Account) ([]*domain.Account, error)
	pendingFn        func(ctx context.Context, actor *domain.Account) ([]*domain.Account, error)
	activateFn       func(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error)
	deactivateFn     func(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error)
	bulkActivateFn   func(ctx context.Context, actor *domain.Account, ids []string) (int, error)
	bulkDeactivateFn func(ctx context.Context, actor *domain.Account, ids []string) (int, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) CreateAccount(ctx context.Context, actor *domain.Account, in ports.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubAccountService) UpdateAccount(ctx context.Context, actor *domain.Account, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, actor *domain.Account, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubAccountService) ListVisibleAccounts(ctx context.Context, actor *domain.Account) ([]*domain.Account, error) {
	return s.listFn(ctx, actor)
}

func (s *stubAccountService) ListPending(ctx context.Context, actor *domain.Account) ([]*domain.Account, error) {
	return s.pendingFn(ctx, actor)
}

func (s *stubAccountService) Activate(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error) {
	return s.activateFn(ctx, actor, id)
}

func (s *stubAccountService) Deactivate(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error) {
	return s.deactivateFn(ctx, actor, id)
}

func (s *stubAccountService) BulkActivate(ctx context.Context, actor *domain.Account, ids []string) (int, error) {
	return s.bulkActivateFn(ctx, actor, ids)
}

func (s *stubAccountService) BulkDeactivate(ctx context.Context, actor *domain.Account, ids []string) (int, error) {
	return s.bulkDeactivateFn(ctx, actor, ids)
}

// newContext builds an echo context with the validator installed and,
// when actor is non-nil, the actor the Auth middleware would have set.
func newContext(method, target, body string, actor *domain.Account) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ActorKey, actor)
	}
	return c, rec
}

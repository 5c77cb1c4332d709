package ports

import (
	"context"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// LoginResult carries a freshly issued credential pair.
type LoginResult struct {
	Account *domain.Account
	Access  string
	Refresh string
}

// AuthStatus is the answer to a credential check.
type AuthStatus struct {
	Username string
	Role     domain.Role
}

// SessionService implements the login, refresh and logout protocol.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refresh string) (string, error)
	Logout(ctx context.Context, refresh string) error
	// Authenticate resolves the actor behind an access credential.
	Authenticate(ctx context.Context, access string) (*domain.Account, error)
	CheckAuth(ctx context.Context, access string) (*AuthStatus, error)
}

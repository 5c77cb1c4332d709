package ports

import (
	"context"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// RegisterInput is a self-service registration request.
type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	PhoneNumber     string
	Role            domain.Role
}

// CreateAccountInput is an account created by an administrator.
type CreateAccountInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Role        domain.Role
}

// UpdateAccountInput is a partial edit; nil fields are left unchanged.
type UpdateAccountInput struct {
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Role        *domain.Role
	IsSuperuser *bool
}

// SuperuserInput bootstraps an operator account from the command line.
type SuperuserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AccountService implements the account lifecycle.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	CreateAccount(ctx context.Context, actor *domain.Account, in CreateAccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, actor *domain.Account, id string, in UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, actor *domain.Account, id string) error
	ListVisibleAccounts(ctx context.Context, actor *domain.Account) ([]*domain.Account, error)
	ListPending(ctx context.Context, actor *domain.Account) ([]*domain.Account, error)
	Activate(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error)
	Deactivate(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error)
	BulkActivate(ctx context.Context, actor *domain.Account, ids []string) (int, error)
	BulkDeactivate(ctx context.Context, actor *domain.Account, ids []string) (int, error)
}

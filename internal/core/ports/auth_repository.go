package ports

import (
	"context"
	"time"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// AccountFilter narrows AccountRepository.List. Zero-value fields do not filter.
type AccountFilter struct {
	IDs    []string      // match any of these IDs
	Roles  []domain.Role // match any of these roles
	Active *bool
}

// AccountRepository defines the persistence operations for accounts.
// Every method is atomic for a single record; Insert and Update enforce
// username and email uniqueness and report violations as
// domain.ErrUsernameTaken or domain.ErrEmailTaken.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Account, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// List returns matching accounts in insertion order.
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
}

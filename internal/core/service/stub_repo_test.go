package service

import (
	"context"
	"fmt"
	"time"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

// stubAccountRepo is an in-memory AccountRepository that keeps insertion order
// and enforces the same uniqueness rules as the Mongo indexes.
type stubAccountRepo struct {
	byID   map[string]*domain.Account
	order  []string
	nextID int

	listErr      error
	setActiveErr error
	touchErr     error
	setActiveIDs []string
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) conflict(a *domain.Account) error {
	for _, existing := range r.byID {
		if existing.ID == a.ID {
			continue
		}
		if existing.Username == a.Username {
			return domain.ErrUsernameTaken
		}
		if a.Email != "" && existing.Email == a.Email {
			return domain.ErrEmailTaken
		}
	}
	return nil
}

func (r *stubAccountRepo) Insert(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if err := r.conflict(a); err != nil {
		return nil, err
	}
	r.nextID++
	stored := a.Clone()
	stored.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return stored.Clone(), nil
}

func (r *stubAccountRepo) Update(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if _, ok := r.byID[a.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	if err := r.conflict(a); err != nil {
		return nil, err
	}
	r.byID[a.ID] = a.Clone()
	return a.Clone(), nil
}

func (r *stubAccountRepo) SetActive(_ context.Context, id string, active bool) (*domain.Account, error) {
	if r.setActiveErr != nil {
		return nil, r.setActiveErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.setActiveIDs = append(r.setActiveIDs, id)
	a.Active = active
	return a.Clone(), nil
}

func (r *stubAccountRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	if r.touchErr != nil {
		return r.touchErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.LastLoginAt = &at
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, id := range r.order {
		if a := r.byID[id]; a.Username == username {
			return a.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, id := range r.order {
		if a := r.byID[id]; email != "" && a.Email == email {
			return a.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAccountRepo) List(_ context.Context, f ports.AccountFilter) ([]*domain.Account, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*domain.Account{}
	for _, id := range r.order {
		a := r.byID[id]
		if len(f.IDs) > 0 && !containsString(f.IDs, a.ID) {
			continue
		}
		if len(f.Roles) > 0 && !containsRole(f.Roles, a.Role) {
			continue
		}
		if f.Active != nil && a.Active != *f.Active {
			continue
		}
		out = append(out, a.Clone())
	}
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsRole(list []domain.Role, r domain.Role) bool {
	for _, v := range list {
		if v == r {
			return true
		}
	}
	return false
}

// seed stores an account directly, bypassing the services. Password is hashed
// with the test hasher when non-empty.
func (r *stubAccountRepo) seed(a *domain.Account, password string) *domain.Account {
	if password != "" {
		hash, err := testHasher.Hash(password)
		if err != nil {
			panic(err)
		}
		a.PasswordHash = hash
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	created, err := r.Insert(context.Background(), a)
	if err != nil {
		panic(err)
	}
	return created
}

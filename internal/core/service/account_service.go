package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/policy"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

// AccountService implements registration, provisioning and activation.
// Every mutation is authorized by the policy package before it reaches the
// repository.
type AccountService struct {
	repo      ports.AccountRepository
	passwords PasswordHasher
	phones    PhoneNormalizer
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAccountService(repo ports.AccountRepository, passwords PasswordHasher, phones PhoneNormalizer, logger zerolog.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		passwords: passwords,
		phones:    phones,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an inactive account that waits for administrator approval.
// The username is the lower-cased email.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if !policy.CanRegisterAs(in.Role) {
		return nil, domain.NewValidationError("role", "this role cannot be requested at registration")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}
	if in.Password != in.PasswordConfirm {
		return nil, domain.NewValidationError("password_confirm", "passwords do not match")
	}
	if err := checkPasswordStrength(in.Password); err != nil {
		return nil, err
	}
	phone, err := s.phones.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, &domain.Account{
		Username:     email,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  phone,
		Role:         in.Role,
		Active:       false,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", string(created.Role)).Msg("registration pending approval")
	return created, nil
}

// CreateAccount provisions an account on behalf of a super admin. Unlike
// Register, the account is active from the start.
func (s *AccountService) CreateAccount(ctx context.Context, actor *domain.Account, in ports.CreateAccountInput) (*domain.Account, error) {
	if !policy.CanCreateAccount(actor) {
		return nil, fmt.Errorf("%w: only a super admin can create accounts", domain.ErrPermission)
	}

	account, err := s.newProvisionedAccount(ctx, in.Username, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	account.FirstName = strings.TrimSpace(in.FirstName)
	account.LastName = strings.TrimSpace(in.LastName)
	if account.PhoneNumber, err = s.phones.Normalize(in.PhoneNumber); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("account_id", created.ID).
		Str("role", string(created.Role)).
		Str("actor", actor.Username).
		Msg("account created")
	return created, nil
}

// CreateSuperuser bootstraps an operator account. It bypasses authorization
// and is only reachable from the command line.
func (s *AccountService) CreateSuperuser(ctx context.Context, in ports.SuperuserInput) (*domain.Account, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleSuperAdmin
	}
	account, err := s.newProvisionedAccount(ctx, in.Username, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	account.IsSuperuser = true

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", created.ID).Str("username", created.Username).Msg("superuser created")
	return created, nil
}

func (s *AccountService) newProvisionedAccount(ctx context.Context, username, email, password string, role domain.Role) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "unknown role")
	}
	if err := checkPasswordLength(password); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if email != "" {
		if err := s.ensureEmailFree(ctx, email, ""); err != nil {
			return nil, err
		}
	}
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		Username:     username,
		Email:        email,
		Role:         role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}, nil
}

// UpdateAccount applies a partial profile edit.
func (s *AccountService) UpdateAccount(ctx context.Context, actor *domain.Account, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	target, err := s.mutableTarget(ctx, actor, id, policy.ActionEdit)
	if err != nil {
		return nil, err
	}

	roleChange := in.Role != nil && *in.Role != target.Role
	superuserChange := in.IsSuperuser != nil && *in.IsSuperuser != target.IsSuperuser
	if (roleChange || superuserChange) && !policy.CanEditPrivilegedFields(actor) {
		return nil, fmt.Errorf("%w: only a superuser can change role or superuser status", domain.ErrPermission)
	}

	updated := target.Clone()
	if in.FirstName != nil {
		updated.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updated.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != "" && email != target.Email {
			if err := s.ensureEmailFree(ctx, email, target.ID); err != nil {
				return nil, err
			}
		}
		updated.Email = email
	}
	if in.PhoneNumber != nil {
		if updated.PhoneNumber, err = s.phones.Normalize(*in.PhoneNumber); err != nil {
			return nil, err
		}
	}
	if roleChange {
		if !in.Role.Valid() {
			return nil, domain.NewValidationError("role", "unknown role")
		}
		updated.Role = *in.Role
	}
	if superuserChange {
		updated.IsSuperuser = *in.IsSuperuser
	}

	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", saved.ID).Str("actor", actor.Username).Msg("account updated")
	return saved, nil
}

// DeleteAccount removes an account from the store.
func (s *AccountService) DeleteAccount(ctx context.Context, actor *domain.Account, id string) error {
	target, err := s.mutableTarget(ctx, actor, id, policy.ActionDelete)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", target.ID).Str("actor", actor.Username).Msg("account deleted")
	return nil
}

func (s *AccountService) mutableTarget(ctx context.Context, actor *domain.Account, id string, action policy.Action) (*domain.Account, error) {
	if !policy.CanManageUsers(actor) {
		return nil, fmt.Errorf("%w: user management requires an administrator role", domain.ErrPermission)
	}
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateAccount(actor, target, action) {
		return nil, fmt.Errorf("%w: superuser accounts can only be changed by a superuser", domain.ErrPermission)
	}
	return target, nil
}

// ListVisibleAccounts returns the accounts actor is allowed to see.
func (s *AccountService) ListVisibleAccounts(ctx context.Context, actor *domain.Account) ([]*domain.Account, error) {
	visibility := policy.CanListUsers(actor)
	if visibility.None() {
		return []*domain.Account{}, nil
	}

	var filter ports.AccountFilter
	if !visibility.All() {
		filter.Roles = visibility.Roles()
	}
	accounts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if visibility.Allows(a) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// ListPending returns every inactive account regardless of role.
func (s *AccountService) ListPending(ctx context.Context, actor *domain.Account) ([]*domain.Account, error) {
	if !policy.CanListPending(actor) {
		return nil, fmt.Errorf("%w: user management requires an administrator role", domain.ErrPermission)
	}
	inactive := false
	return s.repo.List(ctx, ports.AccountFilter{Active: &inactive})
}

// Activate marks an account active. Activating an active account is a no-op.
func (s *AccountService) Activate(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error) {
	return s.setActive(ctx, actor, id, true)
}

// Deactivate marks an account inactive. Deactivating an inactive account is a no-op.
func (s *AccountService) Deactivate(ctx context.Context, actor *domain.Account, id string) (*domain.Account, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *AccountService) setActive(ctx context.Context, actor *domain.Account, id string, active bool) (*domain.Account, error) {
	if !policy.CanActivateOrDeactivate(actor) {
		return nil, fmt.Errorf("%w: only a super admin can change activation state", domain.ErrPermission)
	}
	account, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("account_id", account.ID).
		Bool("active", active).
		Str("actor", actor.Username).
		Msg("activation state changed")
	return account, nil
}

// BulkActivate activates every matched account and returns how many were updated.
// Unknown IDs are ignored.
func (s *AccountService) BulkActivate(ctx context.Context, actor *domain.Account, ids []string) (int, error) {
	if !policy.CanActivateOrDeactivate(actor) {
		return 0, fmt.Errorf("%w: only a super admin can change activation state", domain.ErrPermission)
	}
	targets, err := s.matchTargets(ctx, ids)
	if err != nil {
		return 0, err
	}
	return s.setActiveAll(ctx, actor, targets, true)
}

// BulkDeactivate deactivates every matched non-superuser account. Superuser
// accounts are always skipped; the rest of the batch still applies.
func (s *AccountService) BulkDeactivate(ctx context.Context, actor *domain.Account, ids []string) (int, error) {
	if !policy.CanActivateOrDeactivate(actor) {
		return 0, fmt.Errorf("%w: only a super admin can change activation state", domain.ErrPermission)
	}
	targets, err := s.matchTargets(ctx, ids)
	if err != nil {
		return 0, err
	}

	regular := make([]*domain.Account, 0, len(targets))
	var superusers []*domain.Account
	for _, t := range targets {
		if t.IsSuperuser {
			superusers = append(superusers, t)
		} else {
			regular = append(regular, t)
		}
	}
	if len(superusers) > 0 {
		if policy.CanBulkDeactivate(superusers, actor) {
			s.logger.Info().
				Int("skipped", len(superusers)).
				Str("actor", actor.Username).
				Msg("superuser accounts are not deactivated in bulk, skipping")
		} else {
			s.logger.Warn().
				Int("skipped", len(superusers)).
				Str("actor", actor.Username).
				Msg("superuser accounts cannot be deactivated by a non-superuser, skipping")
		}
	}
	return s.setActiveAll(ctx, actor, regular, false)
}

func (s *AccountService) matchTargets(ctx context.Context, ids []string) ([]*domain.Account, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}
	return s.repo.List(ctx, ports.AccountFilter{IDs: unique})
}

// setActiveAll updates records one at a time; there is no cross-record
// transaction, so an error leaves earlier updates in place.
func (s *AccountService) setActiveAll(ctx context.Context, actor *domain.Account, targets []*domain.Account, active bool) (int, error) {
	updated := 0
	for _, t := range targets {
		if _, err := s.repo.SetActive(ctx, t.ID, active); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return updated, fmt.Errorf("bulk set active: %w", err)
		}
		updated++
	}
	s.logger.Info().
		Int("updated", updated).
		Bool("active", active).
		Str("actor", actor.Username).
		Msg("bulk activation state changed")
	return updated, nil
}

// ensureEmailFree fails with domain.ErrEmailTaken when email belongs to an
// account other than exceptID.
func (s *AccountService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == exceptID:
		return nil
	default:
		return domain.ErrEmailTaken
	}
}

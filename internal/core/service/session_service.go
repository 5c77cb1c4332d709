package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

// SessionService implements login, refresh, logout and credential checks on
// top of a CredentialIssuer.
type SessionService struct {
	repo      ports.AccountRepository
	issuer    ports.CredentialIssuer
	passwords PasswordHasher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewSessionService(repo ports.AccountRepository, issuer ports.CredentialIssuer, passwords PasswordHasher, logger zerolog.Logger) *SessionService {
	return &SessionService{
		repo:      repo,
		issuer:    issuer,
		passwords: passwords,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies the password first and only then the activation state, so an
// inactive account with a wrong password reports ErrAuthentication.
func (s *SessionService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.NewValidationError("", "username and password are required")
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthentication
		}
		return nil, err
	}
	if !s.passwords.Matches(account.PasswordHash, password) {
		return nil, domain.ErrAuthentication
	}
	if !account.Active {
		return nil, domain.ErrInactiveAccount
	}

	access, err := s.issuer.IssueAccess(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.issuer.IssueRefresh(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("account_id", account.ID).Msg("failed to record last login")
	} else {
		account.LastLoginAt = &now
	}

	s.logger.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login")
	return &ports.LoginResult{Account: account, Access: access, Refresh: refresh}, nil
}

// Refresh issues a new access token. The refresh token is not rotated and
// stays usable until it expires or is logged out.
func (s *SessionService) Refresh(ctx context.Context, refresh string) (string, error) {
	cred, err := s.verifyRefresh(ctx, refresh)
	if err != nil {
		return "", err
	}
	access, err := s.issuer.IssueAccess(cred.AccountID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// Logout places the refresh token on the revocation list.
func (s *SessionService) Logout(ctx context.Context, refresh string) error {
	cred, err := s.verifyRefresh(ctx, refresh)
	if err != nil {
		return err
	}
	if err := s.issuer.Revoke(ctx, cred); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	s.logger.Info().Str("account_id", cred.AccountID).Str("jti", cred.ID).Msg("logout")
	return nil
}

func (s *SessionService) verifyRefresh(ctx context.Context, raw string) (*domain.Credential, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: refresh token is required", domain.ErrInvalidCredential)
	}
	cred, err := s.issuer.Verify(raw, domain.TokenRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	revoked, err := s.issuer.IsRevoked(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token is blacklisted", domain.ErrInvalidCredential)
	}
	return cred, nil
}

// Authenticate resolves the account behind an access token. The revocation
// list is not consulted. Vanished and inactive accounts are rejected.
func (s *SessionService) Authenticate(ctx context.Context, access string) (*domain.Account, error) {
	if access == "" {
		return nil, domain.ErrUnauthenticated
	}
	cred, err := s.issuer.Verify(access, domain.TokenAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	account, err := s.repo.FindByID(ctx, cred.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthenticated)
		}
		return nil, err
	}
	if !account.Active {
		return nil, fmt.Errorf("%w: account is inactive", domain.ErrUnauthenticated)
	}
	return account, nil
}

func (s *SessionService) CheckAuth(ctx context.Context, access string) (*ports.AuthStatus, error) {
	account, err := s.Authenticate(ctx, access)
	if err != nil {
		return nil, err
	}
	return &ports.AuthStatus{Username: account.Username, Role: account.Role}, nil
}

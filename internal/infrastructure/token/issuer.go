// Package token issues and verifies HS256 signed access and refresh tokens.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

var (
	ErrWrongTokenType = errors.New("wrong token type")
	ErrMissingClaims  = errors.New("token is missing required claims")
	ErrNotRevocable   = errors.New("only refresh tokens can be revoked")
)

// RevocationStore remembers revoked token IDs until the token would have
// expired anyway.
type RevocationStore interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type claims struct {
	jwt.RegisteredClaims
	TokenType domain.TokenKind `json:"token_type"`
}

// Issuer implements ports.CredentialIssuer.
type Issuer struct {
	secret      []byte
	issuer      string
	accessTTL   time.Duration
	refreshTTL  time.Duration
	revocations RevocationStore
	now         func() time.Time
}

func NewIssuer(cfg Config, revocations RevocationStore) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: secret is required")
	}
	if revocations == nil {
		return nil, errors.New("token: revocation store is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		accessTTL:   cfg.AccessTTL,
		refreshTTL:  cfg.RefreshTTL,
		revocations: revocations,
		now:         time.Now,
	}, nil
}

func (i *Issuer) IssueAccess(accountID string) (string, error) {
	return i.issue(accountID, domain.TokenAccess, i.accessTTL)
}

func (i *Issuer) IssueRefresh(accountID string) (string, error) {
	return i.issue(accountID, domain.TokenRefresh, i.refreshTTL)
}

func (i *Issuer) issue(accountID string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	if accountID == "" {
		return "", ErrMissingClaims
	}
	now := i.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: kind,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, issuer, expiry and token type.
func (i *Issuer) Verify(raw string, kind domain.TokenKind) (*domain.Credential, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, err
	}
	if c.TokenType != kind {
		return nil, ErrWrongTokenType
	}
	if c.ID == "" || c.Subject == "" {
		return nil, ErrMissingClaims
	}

	cred := &domain.Credential{
		ID:        c.ID,
		AccountID: c.Subject,
		Kind:      c.TokenType,
		ExpiresAt: c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		cred.IssuedAt = c.IssuedAt.Time
	}
	return cred, nil
}

func (i *Issuer) Revoke(ctx context.Context, cred *domain.Credential) error {
	if cred == nil || cred.Kind != domain.TokenRefresh {
		return ErrNotRevocable
	}
	return i.revocations.Add(ctx, cred.ID, cred.ExpiresAt)
}

func (i *Issuer) IsRevoked(ctx context.Context, cred *domain.Credential) (bool, error) {
	if cred == nil {
		return false, ErrMissingClaims
	}
	return i.revocations.Contains(ctx, cred.ID)
}

package ports

import (
	"context"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// CredentialIssuer signs, verifies and revokes bearer credentials.
// Only refresh credentials are revocable; access credentials simply expire.
type CredentialIssuer interface {
	IssueAccess(accountID string) (string, error)
	IssueRefresh(accountID string) (string, error)
	// Verify checks signature, expiry and kind. It does not consult the
	// revocation list.
	Verify(raw string, kind domain.TokenKind) (*domain.Credential, error)
	Revoke(ctx context.Context, cred *domain.Credential) error
	IsRevoked(ctx context.Context, cred *domain.Credential) (bool, error)
}

package domain

import "time"

// TokenKind distinguishes access credentials from refresh credentials.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Credential is a verified bearer token.
type Credential struct {
	ID        string // jti
	AccountID string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

package service

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes; reject instead of truncating.
	maxPasswordBytes = 72
)

// PasswordHasher stores passwords as salted bcrypt hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost, falling back
// to bcrypt.DefaultCost when cost is out of range.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

func (h PasswordHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", domain.NewValidationError("password", "password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h PasswordHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func checkPasswordLength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return domain.NewValidationError("password", "password must be at least 8 characters")
	}
	return nil
}

// checkPasswordStrength applies the registration rules: minimum length, at
// least one digit and at least one letter.
func checkPasswordStrength(password string) error {
	if err := checkPasswordLength(password); err != nil {
		return err
	}
	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit {
		return domain.NewValidationError("password", "password must contain at least one digit")
	}
	if !hasLetter {
		return domain.NewValidationError("password", "password must contain at least one letter")
	}
	return nil
}

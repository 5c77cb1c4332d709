package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// PhoneNormalizer parses user supplied phone numbers into E.164.
type PhoneNormalizer struct {
	region string
}

// NewPhoneNormalizer uses region (ISO 3166 alpha-2) for numbers written
// without a country code.
func NewPhoneNormalizer(region string) PhoneNormalizer {
	return PhoneNormalizer{region: strings.ToUpper(strings.TrimSpace(region))}
}

// Normalize returns "" for an empty input.
func (p PhoneNormalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, p.region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", domain.NewValidationError("phone_number", "enter a valid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

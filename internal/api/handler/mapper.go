package handler

import (
	"strings"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

func toUserResponse(a *domain.Account) userResponse {
	return userResponse{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Role:        string(a.Role),
		RoleDisplay: a.Role.Label(),
		PhoneNumber: a.PhoneNumber,
		IsActive:    a.Active,
		DateJoined:  a.CreatedAt,
		LastLogin:   a.LastLoginAt,
	}
}

func toUserResponses(accounts []*domain.Account) []userResponse {
	out := make([]userResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toUserResponse(a))
	}
	return out
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:           r.Email,
		Password:        r.Password,
		PasswordConfirm: r.PasswordConfirm,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		PhoneNumber:     r.PhoneNumber,
		Role:            domain.Role(strings.TrimSpace(r.Role)),
	}
}

func (r createUserRequest) toInput() ports.CreateAccountInput {
	return ports.CreateAccountInput{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Role:        domain.Role(strings.TrimSpace(r.Role)),
	}
}

func (r updateUserRequest) toInput() ports.UpdateAccountInput {
	in := ports.UpdateAccountInput{
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		IsSuperuser: r.IsSuperuser,
	}
	if r.Role != nil {
		role := domain.Role(strings.TrimSpace(*r.Role))
		in.Role = &role
	}
	return in
}

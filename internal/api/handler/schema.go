package handler

import "time"

// --- Requests ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	PhoneNumber     string `json:"phone_number"`
	Role            string `json:"role" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type createUserRequest struct {
	Username    string `json:"username" validate:"required,max=150"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// updateUserRequest is a partial update; absent fields are left untouched.
type updateUserRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name" validate:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"role"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type bulkRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// --- Responses ---

// userResponse is the public projection of an account. It never carries the
// password hash.
type userResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	RoleDisplay string     `json:"role_display"`
	PhoneNumber string     `json:"phone_number"`
	IsActive    bool       `json:"is_active"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

type tokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Tokens  tokenPair    `json:"tokens"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Note    string `json:"note"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userEnvelope struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type checkAuthResponse struct {
	User            string `json:"user"`
	IsAuthenticated bool   `json:"is_authenticated"`
	Role            string `json:"role"`
}

type bulkResponse struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

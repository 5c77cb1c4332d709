package domain

import "time"

// Role is the fixed set of account roles.
type Role string

const (
	RoleSuperAdmin             Role = "super_admin"
	RoleMainWarehouseAdmin     Role = "main_warehouse_admin"
	RoleWarehouseAdmin         Role = "warehouse_admin"
	RoleMainWarehouseForwarder Role = "main_warehouse_forwarder"
	RoleWarehouseReceiver      Role = "warehouse_receiver"
)

// DefaultRole is assigned when an operator tool does not specify one.
const DefaultRole = RoleWarehouseReceiver

var roleLabels = map[Role]string{
	RoleSuperAdmin:             "Super Admin",
	RoleMainWarehouseAdmin:     "Main Warehouse Admin",
	RoleWarehouseAdmin:         "Warehouse Admin",
	RoleMainWarehouseForwarder: "Main Warehouse Forwarder",
	RoleWarehouseReceiver:      "Warehouse Receiver",
}

// Roles returns every known role, most privileged first.
func Roles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleMainWarehouseAdmin,
		RoleWarehouseAdmin,
		RoleMainWarehouseForwarder,
		RoleWarehouseReceiver,
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human readable name of the role.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Account models one human user of the warehouse application.
type Account struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Role         Role       `json:"role"`
	Active       bool       `json:"is_active"`
	IsSuperuser  bool       `json:"-"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"date_joined"`
	LastLoginAt  *time.Time `json:"last_login,omitempty"`
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.LastLoginAt != nil {
		t := *a.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

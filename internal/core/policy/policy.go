// Package policy holds the role-based authorization rules for account management.
//
// Every decision is an explicit allow-list over roles. Role rank is never used
// to derive permissions, so a change to one rule cannot silently widen another.
// A nil actor is denied everywhere.
package policy

import "github.com/warehouse-crm/auth-service/internal/core/domain"

// Action is a mutation guarded by the superuser veto.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// managedByMainAdmin are the roles a main_warehouse_admin may list.
var managedByMainAdmin = []domain.Role{
	domain.RoleWarehouseAdmin,
	domain.RoleMainWarehouseForwarder,
	domain.RoleWarehouseReceiver,
}

// selfRegistrable are the roles an anonymous registration may request.
var selfRegistrable = []domain.Role{
	domain.RoleWarehouseAdmin,
	domain.RoleMainWarehouseForwarder,
	domain.RoleWarehouseReceiver,
}

func hasRole(actor *domain.Account, roles ...domain.Role) bool {
	if actor == nil {
		return false
	}
	return containsRole(roles, actor.Role)
}

func containsRole(roles []domain.Role, r domain.Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanManageUsers reports whether actor may use the user management endpoints.
func CanManageUsers(actor *domain.Account) bool {
	return hasRole(actor, domain.RoleSuperAdmin, domain.RoleMainWarehouseAdmin)
}

// Visibility restricts which accounts an actor may list.
type Visibility struct {
	all   bool
	roles []domain.Role
}

// All reports whether every account is visible.
func (v Visibility) All() bool { return v.all }

// None reports whether no account is visible.
func (v Visibility) None() bool { return !v.all && len(v.roles) == 0 }

// Roles returns the visible roles when the filter is role-scoped.
func (v Visibility) Roles() []domain.Role {
	out := make([]domain.Role, len(v.roles))
	copy(out, v.roles)
	return out
}

// Allows reports whether account a passes the filter.
func (v Visibility) Allows(a *domain.Account) bool {
	if a == nil {
		return false
	}
	return v.all || containsRole(v.roles, a.Role)
}

// CanListUsers returns the visibility filter for actor.
func CanListUsers(actor *domain.Account) Visibility {
	switch {
	case hasRole(actor, domain.RoleSuperAdmin):
		return Visibility{all: true}
	case hasRole(actor, domain.RoleMainWarehouseAdmin):
		return Visibility{roles: managedByMainAdmin}
	default:
		return Visibility{}
	}
}

// CanListPending reports whether actor may list accounts awaiting activation.
// The pending list is never narrowed by role.
func CanListPending(actor *domain.Account) bool {
	return CanManageUsers(actor)
}

// CanCreateAccount reports whether actor may create accounts directly.
func CanCreateAccount(actor *domain.Account) bool {
	return hasRole(actor, domain.RoleSuperAdmin)
}

// CanMutateAccount vetoes edits and deletes of superuser accounts by
// non-superusers. Generic management authorization is checked separately.
func CanMutateAccount(actor, target *domain.Account, action Action) bool {
	if actor == nil || target == nil {
		return false
	}
	switch action {
	case ActionEdit, ActionDelete:
	default:
		return false
	}
	return !target.IsSuperuser || actor.IsSuperuser
}

// CanEditPrivilegedFields reports whether actor may change role or the
// superuser flag of an existing account.
func CanEditPrivilegedFields(actor *domain.Account) bool {
	return actor != nil && actor.IsSuperuser
}

// CanRegisterAs reports whether role may be requested by self-registration.
func CanRegisterAs(role domain.Role) bool {
	return containsRole(selfRegistrable, role)
}

// CanActivateOrDeactivate reports whether actor may flip activation state.
func CanActivateOrDeactivate(actor *domain.Account) bool {
	return hasRole(actor, domain.RoleSuperAdmin)
}

// CanBulkDeactivate reports whether actor may deactivate every account in
// targets. It is false when targets holds a superuser and actor is not one.
func CanBulkDeactivate(targets []*domain.Account, actor *domain.Account) bool {
	if actor == nil {
		return false
	}
	if actor.IsSuperuser {
		return true
	}
	for _, t := range targets {
		if t != nil && t.IsSuperuser {
			return false
		}
	}
	return true
}

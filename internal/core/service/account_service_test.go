package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

func newAccountSvc(repo *stubAccountRepo) *AccountService {
	return NewAccountService(repo, testHasher, NewPhoneNormalizer("US"), zerolog.Nop())
}

func registerInput(email string, role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Email:           email,
		Password:        "goodpass1",
		PasswordConfirm: "goodpass1",
		FirstName:       "Jane",
		LastName:        "Doe",
		Role:            role,
	}
}

func seedActor(repo *stubAccountRepo, username string, role domain.Role, superuser bool) *domain.Account {
	return repo.seed(&domain.Account{Username: username, Role: role, Active: true, IsSuperuser: superuser}, "")
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	in := registerInput(" Jane.Doe@Example.COM ", domain.RoleWarehouseReceiver)
	in.PhoneNumber = "650-253-0000"
	acc, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if acc.Username != "jane.doe@example.com" || acc.Email != "jane.doe@example.com" {
		t.Fatalf("expected lower-cased email as username, got %q / %q", acc.Username, acc.Email)
	}
	if acc.Active {
		t.Fatalf("self-registered account must start inactive")
	}
	if acc.IsSuperuser {
		t.Fatalf("self-registered account must not be a superuser")
	}
	if acc.PasswordHash == "" || acc.PasswordHash == "goodpass1" || !testHasher.Matches(acc.PasswordHash, "goodpass1") {
		t.Fatalf("expected a salted hash of the password")
	}
	if acc.PhoneNumber != "+16502530000" {
		t.Fatalf("expected normalised phone, got %q", acc.PhoneNumber)
	}
}

func TestAccountService_Register_RejectsPrivilegedRoles(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleMainWarehouseAdmin, "", "admin"} {
		_, err := svc.Register(context.Background(), registerInput("x@example.com", role))
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != "role" {
			t.Fatalf("role %q: expected role validation error, got %v", role, err)
		}
	}
}

func TestAccountService_Register_AlwaysInactive(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())
	for i, role := range []domain.Role{domain.RoleWarehouseAdmin, domain.RoleMainWarehouseForwarder, domain.RoleWarehouseReceiver} {
		acc, err := svc.Register(context.Background(), registerInput(string(rune('a'+i))+"@example.com", role))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", role, err)
		}
		if acc.Active {
			t.Fatalf("%s: expected inactive account", role)
		}
	}
}

func TestAccountService_Register_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	if _, err := svc.Register(context.Background(), registerInput("jane@example.com", domain.RoleWarehouseAdmin)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("JANE@example.com", domain.RoleWarehouseAdmin))
	if !errors.Is(err, domain.ErrEmailTaken) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_Register_PasswordRules(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	tests := []struct {
		name     string
		password string
		confirm  string
		field    string
	}{
		{"mismatch", "goodpass1", "goodpass2", "password_confirm"},
		{"too short", "abc123", "abc123", "password"},
		{"no digit", "abcdefghij", "abcdefghij", "password"},
		{"no letter", "1234567890", "1234567890", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := registerInput("p@example.com", domain.RoleWarehouseReceiver)
			in.Password, in.PasswordConfirm = tt.password, tt.confirm
			_, err := svc.Register(context.Background(), in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestAccountService_Register_RequiresEmail(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())
	_, err := svc.Register(context.Background(), registerInput("  ", domain.RoleWarehouseReceiver))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountService_Register_InvalidPhone(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())
	in := registerInput("p@example.com", domain.RoleWarehouseReceiver)
	in.PhoneNumber = "123"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateAccount
// ---------------------------------------------------------------------------

func TestAccountService_CreateAccount_SuperAdminOnly(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	in := ports.CreateAccountInput{Username: "bob", Password: "password", Role: domain.RoleWarehouseReceiver}

	for _, role := range []domain.Role{domain.RoleMainWarehouseAdmin, domain.RoleWarehouseAdmin, domain.RoleWarehouseReceiver} {
		actor := &domain.Account{ID: "x", Username: "x", Role: role, IsSuperuser: true}
		if _, err := svc.CreateAccount(context.Background(), actor, in); !errors.Is(err, domain.ErrPermission) {
			t.Fatalf("%s: expected ErrPermission, got %v", role, err)
		}
	}
	if _, err := svc.CreateAccount(context.Background(), nil, in); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("nil actor: expected ErrPermission, got %v", err)
	}
}

func TestAccountService_CreateAccount_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)

	acc, err := svc.CreateAccount(context.Background(), admin, ports.CreateAccountInput{
		Username:  "bob",
		Email:     "bob@example.com",
		Password:  "password",
		FirstName: "Bob",
		Role:      domain.RoleMainWarehouseAdmin,
	})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if !acc.Active {
		t.Fatalf("accounts created by a super admin are not forced inactive")
	}
	if acc.Role != domain.RoleMainWarehouseAdmin || acc.IsSuperuser {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if !testHasher.Matches(acc.PasswordHash, "password") {
		t.Fatalf("expected hashed password")
	}
}

func TestAccountService_CreateAccount_DefaultsRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)

	acc, err := svc.CreateAccount(context.Background(), admin, ports.CreateAccountInput{Username: "bob", Password: "password"})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if acc.Role != domain.DefaultRole {
		t.Fatalf("expected default role, got %s", acc.Role)
	}
}

func TestAccountService_CreateAccount_LowercasesEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)

	acc, err := svc.CreateAccount(context.Background(), admin, ports.CreateAccountInput{
		Username: "bob",
		Email:    "  Bob@Example.COM ",
		Password: "password",
	})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if acc.Email != "bob@example.com" {
		t.Fatalf("expected lowercased email, got %q", acc.Email)
	}

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", domain.RoleWarehouseReceiver)); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken on self-registration, got %v", err)
	}
	other := repo.seed(&domain.Account{Username: "other", Email: "other@example.com", Role: domain.RoleWarehouseReceiver, Active: true}, "")
	if _, err := svc.UpdateAccount(context.Background(), admin, other.ID, ports.UpdateAccountInput{Email: ptr("BOB@example.com")}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken on update, got %v", err)
	}
}

func TestAccountService_CreateAccount_Validation(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	repo.seed(&domain.Account{Username: "taken", Email: "taken@example.com", Role: domain.RoleWarehouseReceiver}, "")

	tests := []struct {
		name string
		in   ports.CreateAccountInput
		want error
	}{
		{"duplicate username", ports.CreateAccountInput{Username: "taken", Password: "password"}, domain.ErrUsernameTaken},
		{"duplicate email", ports.CreateAccountInput{Username: "fresh", Email: "taken@example.com", Password: "password"}, domain.ErrEmailTaken},
		{"missing username", ports.CreateAccountInput{Password: "password"}, domain.ErrValidation},
		{"short password", ports.CreateAccountInput{Username: "fresh", Password: "short"}, domain.ErrValidation},
		{"unknown role", ports.CreateAccountInput{Username: "fresh", Password: "password", Role: "admin"}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateAccount(context.Background(), admin, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAccountService_CreateSuperuser(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	acc, err := svc.CreateSuperuser(context.Background(), ports.SuperuserInput{Username: "root", Password: "password"})
	if err != nil {
		t.Fatalf("CreateSuperuser returned error: %v", err)
	}
	if !acc.IsSuperuser || !acc.Active || acc.Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected superuser: %+v", acc)
	}

	if _, err := svc.CreateSuperuser(context.Background(), ports.SuperuserInput{Username: "root", Password: "password"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func seedEveryRole(repo *stubAccountRepo) {
	for _, r := range domain.Roles() {
		repo.seed(&domain.Account{Username: "active-" + string(r), Role: r, Active: true}, "")
		repo.seed(&domain.Account{Username: "pending-" + string(r), Role: r, Active: false}, "")
	}
}

func TestAccountService_ListVisibleAccounts(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	seedEveryRole(repo)
	total := len(repo.order)

	super := &domain.Account{ID: "s", Role: domain.RoleSuperAdmin}
	all, err := svc.ListVisibleAccounts(context.Background(), super)
	if err != nil {
		t.Fatalf("ListVisibleAccounts returned error: %v", err)
	}
	if len(all) != total {
		t.Fatalf("super admin should see all %d accounts, got %d", total, len(all))
	}
	for i, a := range all {
		if a.ID != repo.order[i] {
			t.Fatalf("expected insertion order, got %s at %d", a.ID, i)
		}
	}

	main := &domain.Account{ID: "m", Role: domain.RoleMainWarehouseAdmin}
	scoped, err := svc.ListVisibleAccounts(context.Background(), main)
	if err != nil {
		t.Fatalf("ListVisibleAccounts returned error: %v", err)
	}
	if len(scoped) != 6 {
		t.Fatalf("expected 6 lower-role accounts, got %d", len(scoped))
	}
	for _, a := range scoped {
		if a.Role == domain.RoleSuperAdmin || a.Role == domain.RoleMainWarehouseAdmin {
			t.Fatalf("main warehouse admin must not see %s", a.Role)
		}
	}

	for _, role := range []domain.Role{domain.RoleWarehouseAdmin, domain.RoleMainWarehouseForwarder, domain.RoleWarehouseReceiver} {
		got, err := svc.ListVisibleAccounts(context.Background(), &domain.Account{ID: "o", Role: role})
		if err != nil || len(got) != 0 {
			t.Fatalf("%s: expected empty list, got %d (%v)", role, len(got), err)
		}
	}
}

func TestAccountService_ListPending_UnfilteredByRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	seedEveryRole(repo)

	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleMainWarehouseAdmin} {
		pending, err := svc.ListPending(context.Background(), &domain.Account{ID: "a", Role: role})
		if err != nil {
			t.Fatalf("%s: ListPending returned error: %v", role, err)
		}
		if len(pending) != len(domain.Roles()) {
			t.Fatalf("%s: expected every inactive account, got %d", role, len(pending))
		}
		for _, a := range pending {
			if a.Active {
				t.Fatalf("%s: pending list contains active account %s", role, a.Username)
			}
		}
	}

	if _, err := svc.ListPending(context.Background(), &domain.Account{ID: "r", Role: domain.RoleWarehouseAdmin}); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Activation
// ---------------------------------------------------------------------------

func TestAccountService_Activate_Idempotent(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	target := repo.seed(&domain.Account{Username: "jane", Role: domain.RoleWarehouseReceiver}, "")

	for i := 0; i < 2; i++ {
		acc, err := svc.Activate(context.Background(), admin, target.ID)
		if err != nil {
			t.Fatalf("call %d: Activate returned error: %v", i+1, err)
		}
		if !acc.Active {
			t.Fatalf("call %d: expected active account", i+1)
		}
	}
}

func TestAccountService_Deactivate_Idempotent(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	target := repo.seed(&domain.Account{Username: "jane", Role: domain.RoleWarehouseReceiver, Active: true}, "")

	for i := 0; i < 2; i++ {
		acc, err := svc.Deactivate(context.Background(), admin, target.ID)
		if err != nil || acc.Active {
			t.Fatalf("call %d: expected inactive account, got %+v (%v)", i+1, acc, err)
		}
	}
}

func TestAccountService_Activate_Errors(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	main := seedActor(repo, "main", domain.RoleMainWarehouseAdmin, true)
	target := repo.seed(&domain.Account{Username: "jane", Role: domain.RoleWarehouseReceiver}, "")

	if _, err := svc.Activate(context.Background(), main, target.ID); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission for main warehouse admin, got %v", err)
	}
	if _, err := svc.Deactivate(context.Background(), main, target.ID); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission for main warehouse admin, got %v", err)
	}
	if _, err := svc.Activate(context.Background(), admin, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountService_Deactivate_NoSuperuserVeto(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	su := seedActor(repo, "su", domain.RoleSuperAdmin, true)

	acc, err := svc.Deactivate(context.Background(), admin, su.ID)
	if err != nil || acc.Active {
		t.Fatalf("single-target deactivate applies to superusers too, got %+v (%v)", acc, err)
	}
}

func TestAccountService_BulkActivate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	a := repo.seed(&domain.Account{Username: "a", Role: domain.RoleWarehouseReceiver}, "")
	b := repo.seed(&domain.Account{Username: "b", Role: domain.RoleWarehouseAdmin, IsSuperuser: true}, "")

	n, err := svc.BulkActivate(context.Background(), admin, []string{a.ID, b.ID, a.ID, "missing", ""})
	if err != nil {
		t.Fatalf("BulkActivate returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 updated, got %d", n)
	}
	for _, id := range []string{a.ID, b.ID} {
		if !repo.byID[id].Active {
			t.Fatalf("expected %s to be active", id)
		}
	}

	if _, err := svc.BulkActivate(context.Background(), &domain.Account{ID: "m", Role: domain.RoleMainWarehouseAdmin}, []string{a.ID}); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}

func TestAccountService_BulkDeactivate_SkipsSuperusersForNonSuperuser(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	su := repo.seed(&domain.Account{Username: "su", Role: domain.RoleSuperAdmin, Active: true, IsSuperuser: true}, "")
	a := repo.seed(&domain.Account{Username: "a", Role: domain.RoleWarehouseReceiver, Active: true}, "")
	b := repo.seed(&domain.Account{Username: "b", Role: domain.RoleWarehouseAdmin, Active: true}, "")

	n, err := svc.BulkDeactivate(context.Background(), admin, []string{su.ID, a.ID, b.ID})
	if err != nil {
		t.Fatalf("BulkDeactivate returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}
	if !repo.byID[su.ID].Active {
		t.Fatalf("superuser must remain active")
	}
	if repo.byID[a.ID].Active || repo.byID[b.ID].Active {
		t.Fatalf("regular accounts must be deactivated")
	}
}

func TestAccountService_BulkDeactivate_SuperuserActorStillSkipsSuperusers(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	root := seedActor(repo, "root", domain.RoleSuperAdmin, true)
	su := repo.seed(&domain.Account{Username: "su", Role: domain.RoleSuperAdmin, Active: true, IsSuperuser: true}, "")
	a := repo.seed(&domain.Account{Username: "a", Role: domain.RoleWarehouseReceiver, Active: true}, "")

	n, err := svc.BulkDeactivate(context.Background(), root, []string{su.ID, a.ID})
	if err != nil || n != 1 {
		t.Fatalf("expected 1 updated, got %d (%v)", n, err)
	}
	if !repo.byID[su.ID].Active {
		t.Fatalf("bulk deactivation must never touch superuser accounts")
	}
	if repo.byID[a.ID].Active {
		t.Fatalf("regular account must be deactivated")
	}
}

func TestAccountService_BulkDeactivate_Empty(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)

	n, err := svc.BulkDeactivate(context.Background(), admin, nil)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 updated, got %d (%v)", n, err)
	}
}

func TestAccountService_BulkDeactivate_PartialOnStoreError(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	admin := seedActor(repo, "root", domain.RoleSuperAdmin, false)
	a := repo.seed(&domain.Account{Username: "a", Role: domain.RoleWarehouseReceiver, Active: true}, "")
	repo.setActiveErr = errors.New("mongo down")

	n, err := svc.BulkDeactivate(context.Background(), admin, []string{a.ID})
	if err == nil || n != 0 {
		t.Fatalf("expected store error with 0 updated, got %d (%v)", n, err)
	}
	if !errors.Is(err, repo.setActiveErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestAccountService_UpdateAccount_Profile(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	main := seedActor(repo, "main", domain.RoleMainWarehouseAdmin, false)
	target := repo.seed(&domain.Account{Username: "jane", Email: "jane@example.com", Role: domain.RoleWarehouseReceiver}, "")

	acc, err := svc.UpdateAccount(context.Background(), main, target.ID, ports.UpdateAccountInput{
		FirstName:   ptr(" Jane "),
		PhoneNumber: ptr("+1 650 253 0000"),
		Role:        ptr(domain.RoleWarehouseReceiver), // unchanged, not a privileged edit
	})
	if err != nil {
		t.Fatalf("UpdateAccount returned error: %v", err)
	}
	if acc.FirstName != "Jane" || acc.PhoneNumber != "+16502530000" {
		t.Fatalf("unexpected account: %+v", acc)
	}
}

func TestAccountService_UpdateAccount_Authorization(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	main := seedActor(repo, "main", domain.RoleMainWarehouseAdmin, false)
	receiver := seedActor(repo, "receiver", domain.RoleWarehouseReceiver, false)
	su := seedActor(repo, "su", domain.RoleSuperAdmin, true)
	target := repo.seed(&domain.Account{Username: "jane", Role: domain.RoleWarehouseReceiver}, "")

	if _, err := svc.UpdateAccount(context.Background(), receiver, target.ID, ports.UpdateAccountInput{FirstName: ptr("x")}); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission for non-manager, got %v", err)
	}
	if _, err := svc.UpdateAccount(context.Background(), main, su.ID, ports.UpdateAccountInput{FirstName: ptr("x")}); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected superuser veto, got %v", err)
	}
	if _, err := svc.UpdateAccount(context.Background(), main, target.ID, ports.UpdateAccountInput{Role: ptr(domain.RoleWarehouseAdmin)}); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission for role change by non-superuser, got %v", err)
	}
	if _, err := svc.UpdateAccount(context.Background(), main, target.ID, ports.UpdateAccountInput{IsSuperuser: ptr(true)}); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission for superuser flag by non-superuser, got %v", err)
	}
	if _, err := svc.UpdateAccount(context.Background(), main, "missing", ports.UpdateAccountInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	acc, err := svc.UpdateAccount(context.Background(), su, target.ID, ports.UpdateAccountInput{Role: ptr(domain.RoleWarehouseAdmin), IsSuperuser: ptr(true)})
	if err != nil {
		t.Fatalf("superuser edit failed: %v", err)
	}
	if acc.Role != domain.RoleWarehouseAdmin || !acc.IsSuperuser {
		t.Fatalf("privileged fields not applied: %+v", acc)
	}
}

func TestAccountService_UpdateAccount_EmailUniqueness(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	su := seedActor(repo, "su", domain.RoleSuperAdmin, true)
	repo.seed(&domain.Account{Username: "other", Email: "other@example.com", Role: domain.RoleWarehouseReceiver}, "")
	target := repo.seed(&domain.Account{Username: "jane", Email: "jane@example.com", Role: domain.RoleWarehouseReceiver}, "")

	if _, err := svc.UpdateAccount(context.Background(), su, target.ID, ports.UpdateAccountInput{Email: ptr("other@example.com")}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.UpdateAccount(context.Background(), su, target.ID, ports.UpdateAccountInput{Email: ptr("jane@example.com")}); err != nil {
		t.Fatalf("keeping the same email must succeed, got %v", err)
	}
	acc, err := svc.UpdateAccount(context.Background(), su, target.ID, ports.UpdateAccountInput{Email: ptr("")})
	if err != nil || acc.Email != "" {
		t.Fatalf("expected email to be cleared, got %+v (%v)", acc, err)
	}
}

func TestAccountService_DeleteAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	main := seedActor(repo, "main", domain.RoleMainWarehouseAdmin, false)
	su := seedActor(repo, "su", domain.RoleSuperAdmin, true)
	target := repo.seed(&domain.Account{Username: "jane", Role: domain.RoleWarehouseReceiver}, "")

	if err := svc.DeleteAccount(context.Background(), main, su.ID); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected superuser veto, got %v", err)
	}
	if err := svc.DeleteAccount(context.Background(), main, target.ID); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if _, ok := repo.byID[target.ID]; ok {
		t.Fatalf("expected account to be removed")
	}
	if err := svc.DeleteAccount(context.Background(), su, su.ID); err != nil {
		t.Fatalf("superuser may delete superusers, got %v", err)
	}
}

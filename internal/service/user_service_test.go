package service

import (
	"context"
	"testing"

	"tailorpos/internal/imagestore"
	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"
	"tailorpos/pkg/shortid"
)

func newUserService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	images := imagestore.NewDiskStore(t.TempDir(), "/static")
	return NewUserService(repo, images), repo
}

func signUp(t *testing.T, svc UserService, email, role string) *UserResponse {
	t.Helper()
	user, err := svc.SignUp(context.Background(), SignUpRequest{
		Name:     "Test Person",
		Email:    email,
		Password: "secret123",
		Phone:    "0123456789",
		Role:     role,
		Year:     1992,
		Month:    4,
		Day:      15,
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	return user
}

func TestSignUpAppliesRoleDefaults(t *testing.T) {
	svc, _ := newUserService(t)

	cashier := signUp(t, svc, "cashier@shop.test", model.RoleCashier)
	if cashier.Wallet != "500.00" || cashier.DiscountPercentage != "30.00" {
		t.Errorf("cashier defaults = %s / %s, want 500.00 / 30.00", cashier.Wallet, cashier.DiscountPercentage)
	}

	supervisor := signUp(t, svc, "supervisor@shop.test", model.RoleSupervisor)
	if supervisor.Wallet != "750.00" || supervisor.DiscountPercentage != "35.00" {
		t.Errorf("supervisor defaults = %s / %s, want 750.00 / 35.00", supervisor.Wallet, supervisor.DiscountPercentage)
	}

	tailor := signUp(t, svc, "tailor@shop.test", model.RoleTailor)
	if tailor.Wallet != "0.00" || tailor.DiscountPercentage != "0.00" {
		t.Errorf("tailor defaults = %s / %s, want 0.00 / 0.00", tailor.Wallet, tailor.DiscountPercentage)
	}

	if len(cashier.EmployeeCode) != shortid.EmployeeLength {
		t.Errorf("employee code %q length = %d, want %d", cashier.EmployeeCode, len(cashier.EmployeeCode), shortid.EmployeeLength)
	}
}

func TestSignUpRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Name: "X", Email: "x@shop.test", Password: "secret123", Phone: "0123456789",
		Role: "janitor", Year: 1990, Month: 1, Day: 1,
	})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	signUp(t, svc, "dup@shop.test", model.RoleSeller)

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Name: "Other", Email: "dup@shop.test", Password: "secret123", Phone: "0123456780",
		Role: model.RoleSeller, Year: 1991, Month: 2, Day: 2,
	})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestLoginSeparatesAdminAndStaff(t *testing.T) {
	svc, _ := newUserService(t)
	signUp(t, svc, "admin@shop.test", model.RoleAdmin)
	signUp(t, svc, "seller@shop.test", model.RoleSeller)
	ctx := context.Background()

	// Wrong password
	_, err := svc.LoginStaff(ctx, LoginRequest{Email: "seller@shop.test", Password: "wrong"})
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized for wrong password, got %v", err)
	}

	// Admins cannot use the staff login and vice versa.
	_, err = svc.LoginStaff(ctx, LoginRequest{Email: "admin@shop.test", Password: "secret123"})
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for admin on staff login, got %v", err)
	}
	_, err = svc.LoginAdmin(ctx, LoginRequest{Email: "seller@shop.test", Password: "secret123"})
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for staff on admin login, got %v", err)
	}

	tokens, err := svc.LoginAdmin(ctx, LoginRequest{Email: "admin@shop.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Error("expected both access and refresh tokens")
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _ := newUserService(t)
	signUp(t, svc, "seller@shop.test", model.RoleSeller)
	ctx := context.Background()

	tokens, err := svc.LoginStaff(ctx, LoginRequest{Email: "seller@shop.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rotated, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is single use.
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized for reused refresh token, got %v", err)
	}
}

func TestUpdateUserRoleChangeResetsDefaults(t *testing.T) {
	svc, _ := newUserService(t)
	user := signUp(t, svc, "promote@shop.test", model.RoleCashier)

	updated, err := svc.UpdateUser(context.Background(), user.ID.String(), UpdateUserRequest{
		Role: model.RoleSupervisor,
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Wallet != "750.00" || updated.DiscountPercentage != "35.00" {
		t.Errorf("after promotion = %s / %s, want 750.00 / 35.00", updated.Wallet, updated.DiscountPercentage)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService(t)
	user := signUp(t, svc, "gone@shop.test", model.RoleSeller)

	if err := svc.DeleteUser(context.Background(), user.ID.String()); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	_, err := svc.GetUserByID(context.Background(), user.ID.String())
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

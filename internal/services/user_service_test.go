package services

import (
	"errors"
	"net/http"
	"testing"
)

func TestRegisterValidation(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	_, err := svc.Register("", "alice@example.com", "secret1", "secret1")
	assertErrType(t, err, "EMPTY_FIELDS")

	_, err = svc.Register("Alice", "not-an-email", "secret1", "secret1")
	assertErrType(t, err, "INCORRECT_EMAIL")

	_, err = svc.Register("Alice", "alice@example.com", "secret1", "different")
	assertErrType(t, err, "PASSWORDS_NOT_MATCH")

	_, err = svc.Register("Alice", "alice@example.com", "short", "short")
	assertErrType(t, err, "PASSWORD_TOO_SHORT")
	var reqErr *Error
	if !errors.As(err, &reqErr) || reqErr.Extra["min"] != "6" {
		t.Fatalf("extra min = %v, want %q", reqErr.Extra["min"], "6")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	if _, err := svc.Register("Alice", "alice@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// The email check precedes password validation, so even an invalid
	// password on the second attempt reports the registered email.
	_, err := svc.Register("Mallory", "alice@example.com", "a", "b")
	assertErrType(t, err, "REGISTERED_EMAIL")
	var reqErr *Error
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", reqErr.Status, http.StatusForbidden)
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	created, err := svc.Register("Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Lists == nil || len(created.Lists) != 0 {
		t.Fatalf("lists = %v, want empty collection", created.Lists)
	}

	user, err := svc.Authenticate("alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("user id = %q, want %q", user.ID, created.ID)
	}

	_, err = svc.Authenticate("alice@example.com", "wrong-password")
	assertErrType(t, err, "INCORRECT_PASSWORD")

	_, err = svc.Authenticate("nobody@example.com", "secret1")
	assertErrType(t, err, "USER_NOT_FOUND")

	_, err = svc.Authenticate("", "")
	assertErrType(t, err, "EMPTY_FIELDS")
}

func TestChangePassword(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	user, err := svc.Register("Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ChangePassword(user.ID, "", "secret2", "secret2")
	assertErrType(t, err, "EMPTY_FIELDS")

	err = svc.ChangePassword(user.ID, "secret1", "secret2", "different")
	assertErrType(t, err, "PASSWORDS_NOT_MATCH")

	err = svc.ChangePassword(user.ID, "secret1", "short", "short")
	assertErrType(t, err, "PASSWORD_TOO_SHORT")

	err = svc.ChangePassword(user.ID, "wrong", "secret2", "secret2")
	assertErrType(t, err, "INCORRECT_PASSWORD")

	err = svc.ChangePassword(user.ID, "secret1", "secret1", "secret1")
	assertErrType(t, err, "SAME_PASSWORD")

	if err := svc.ChangePassword(user.ID, "secret1", "secret2", "secret2"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Authenticate("alice@example.com", "secret2"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	_, err = svc.Authenticate("alice@example.com", "secret1")
	assertErrType(t, err, "INCORRECT_PASSWORD")
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	user, err := svc.Register("Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.UpdateProfile(user.ID, "  ", "alice@example.com")
	assertErrType(t, err, "EMPTY_FIELDS")

	if err := svc.UpdateProfile(user.ID, "Alice Cooper", "cooper@example.com"); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	updated, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if updated.Name != "Alice Cooper" || updated.Email != "cooper@example.com" {
		t.Fatalf("updated user = %q/%q", updated.Name, updated.Email)
	}
}

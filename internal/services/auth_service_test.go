package services

import (
	"errors"
	"testing"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

func TestAuthServiceRegisterAndAuthenticate(t *testing.T) {
	users := newUserRepositoryStub()
	service := NewAuthService(users)

	user, err := service.Register("  Ana@Example.COM ", "StrongPass1", "es")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "ana@example.com" || user.Role != models.RoleMember || user.PasswordHash == "StrongPass1" {
		t.Fatalf("unexpected registered user %#v", user)
	}

	if _, err := service.Register("ana@example.com", "StrongPass1", "es"); !errors.Is(err, ErrAuthEmailExists) {
		t.Fatalf("expected ErrAuthEmailExists, got %v", err)
	}
	if _, err := service.Register("other@example.com", "weak", "es"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register("not-an-email", "StrongPass1", "es"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}

	authenticated, err := service.Authenticate("ANA@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, authenticated.ID)
	}

	for _, attempt := range [][2]string{{"ana@example.com", "WrongPass1"}, {"ghost@example.com", "StrongPass1"}, {"", ""}} {
		if _, err := service.Authenticate(attempt[0], attempt[1]); !errors.Is(err, ErrAuthInvalidLogin) {
			t.Fatalf("Authenticate(%q) expected ErrAuthInvalidLogin, got %v", attempt[0], err)
		}
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	users := newUserRepositoryStub()
	service := NewAuthService(users)

	user, err := service.Register("change@example.com", "StrongPass1", "en")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := service.SetTemporaryPassword(user.ID, "TempPass99"); err != nil {
		t.Fatalf("SetTemporaryPassword returned error: %v", err)
	}
	user, _ = users.FindByID(user.ID)
	if !user.MustChangePassword {
		t.Fatal("expected temporary password to force a change")
	}

	cases := []struct {
		current string
		next    string
		confirm string
		want    error
	}{
		{current: "", next: "NewPass123", confirm: "NewPass123", want: ErrPasswordChangeInvalid},
		{current: "TempPass99", next: "NewPass123", confirm: "NewPass124", want: ErrPasswordMismatch},
		{current: "WrongPass1", next: "NewPass123", confirm: "NewPass123", want: ErrInvalidCurrentPassword},
		{current: "TempPass99", next: "TempPass99", confirm: "TempPass99", want: ErrNewPasswordMustDiffer},
		{current: "TempPass99", next: "weakpass", confirm: "weakpass", want: ErrWeakPassword},
	}
	for _, tc := range cases {
		if err := service.ChangePassword(user, tc.current, tc.next, tc.confirm); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}

	if err := service.ChangePassword(user, "TempPass99", "NewPass123", "NewPass123"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	user, _ = users.FindByID(user.ID)
	if user.MustChangePassword {
		t.Fatal("expected password change to clear the forced change flag")
	}
	if _, err := service.Authenticate("change@example.com", "NewPass123"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestAuthServiceSetPasswordClearsForcedChange(t *testing.T) {
	users := newUserRepositoryStub()
	service := NewAuthService(users)

	user, err := service.Register("ops@example.com", "StrongPass1", "es")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := service.SetTemporaryPassword(user.ID, "TempPass99"); err != nil {
		t.Fatalf("SetTemporaryPassword returned error: %v", err)
	}

	if err := service.SetPassword(user.ID, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := service.SetPassword(user.ID, "ChosenPass42"); err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}

	stored, _ := users.FindByID(user.ID)
	if stored.MustChangePassword {
		t.Fatal("expected SetPassword to clear the forced change flag")
	}
	if _, err := service.Authenticate("ops@example.com", "ChosenPass42"); err != nil {
		t.Fatalf("Authenticate with chosen password returned error: %v", err)
	}
}

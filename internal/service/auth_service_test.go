package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/todopro_api/internal/utils"
)

func newTestAuth() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	svc := NewAuthService(users, "test-secret", time.Hour, "invite-42")
	svc.cost = bcrypt.MinCost
	return svc, users
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuth()

	token, err := svc.Signup(ctx, "  Ana@TodoPro.es ", "secret123", "invite-42")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email != "ana@todopro.es" || claims.UserID != 1 {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if users.users["ana@todopro.es"].PasswordHash == "secret123" {
		t.Fatalf("password stored in clear text")
	}

	if _, err := svc.Login(ctx, "ana@todopro.es", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestAuthService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth()
	if _, err := svc.Signup(ctx, "luis@todopro.es", "secret123", "invite-42"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"duplicate email", func() error { _, err := svc.Signup(ctx, "luis@todopro.es", "other123", "invite-42"); return err }, utils.ErrEmailTaken},
		{"bad email", func() error { _, err := svc.Signup(ctx, "not-an-email", "secret123", "invite-42"); return err }, utils.ErrInvalidInput},
		{"short password", func() error { _, err := svc.Signup(ctx, "new@todopro.es", "123", "invite-42"); return err }, utils.ErrInvalidInput},
		{"wrong password", func() error { _, err := svc.Login(ctx, "luis@todopro.es", "nope"); return err }, utils.ErrInvalidCredentials},
		{"unknown email", func() error { _, err := svc.Login(ctx, "ghost@todopro.es", "secret123"); return err }, utils.ErrInvalidCredentials},
		{"bad token", func() error { _, err := svc.ValidateToken("garbage"); return err }, utils.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientService(t *testing.T) {
	ctx := context.Background()
	store := &fakeClientStore{}
	svc := NewClientService(store)

	c, err := svc.Create(ctx, 7, &CreateClientRequest{Name: " Obras Sur ", Phone: "600", DieNie: "X123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Obras Sur" || c.UserID != 7 || c.ID == 0 {
		t.Fatalf("unexpected client %+v", c)
	}
	if _, err := svc.Create(ctx, 7, &CreateClientRequest{Name: "  "}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	mine, _ := svc.List(ctx, 7)
	theirs, _ := svc.List(ctx, 8)
	if len(mine) != 1 || len(theirs) != 0 {
		t.Fatalf("clients not scoped by user: mine=%d theirs=%d", len(mine), len(theirs))
	}

	store.err = errors.New("db down")
	if _, err := svc.List(ctx, 7); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAuthService_SignupNeedsInvite(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuth()

	for _, code := range []string{"", "invite-4", "INVITE-42"} {
		if _, err := svc.Signup(ctx, "eve@example.com", "secret123", code); !errors.Is(err, utils.ErrSignupClosed) {
			t.Fatalf("code %q: got %v", code, err)
		}
	}
	if len(users.users) != 0 {
		t.Fatalf("user created without invite")
	}

	closed := NewAuthService(users, "test-secret", time.Hour, "")
	if _, err := closed.Signup(ctx, "eve@example.com", "secret123", ""); !errors.Is(err, utils.ErrSignupClosed) {
		t.Fatalf("signup open without a configured code: %v", err)
	}
}

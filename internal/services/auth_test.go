package services

import (
	"context"
	"testing"
	"time"

	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewAuthService(
		db,
		log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		nil,
		"test-secret",
		time.Minute,
		time.Hour,
	)
	return svc
}

func TestRegisterUserValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		user types.User
	}{
		{name: "missing email", user: types.User{Password: "longenough", FirstName: "A"}},
		{name: "malformed email", user: types.User{Email: "not-an-email", Password: "longenough", FirstName: "A"}},
		{name: "short password", user: types.User{Email: "a@example.com", Password: "short", FirstName: "A"}},
		{name: "missing first name", user: types.User{Email: "a@example.com", Password: "longenough"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.user
			if _, err := svc.RegisterUser(ctx, &u); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAuthFlow(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, &types.User{
		Email:        "  Jordan@Example.COM ",
		Password:     "correct horse",
		FirstName:    "Jordan",
		PrimaryNiche: "podcaster",
		Timezone:     "America/New_York",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Email != "jordan@example.com" {
		t.Errorf("email = %q, want normalized", registered.Email)
	}
	if registered.Password == "correct horse" {
		t.Error("password stored in plaintext")
	}

	if _, err := svc.RegisterUser(ctx, &types.User{
		Email: "jordan@example.com", Password: "correct horse", FirstName: "Dup",
	}); err == nil {
		t.Error("duplicate email should be rejected")
	}

	if _, err := svc.LoginUser(ctx, "jordan@example.com", "wrong password"); err == nil {
		t.Error("wrong password should be rejected")
	}
	pair, err := svc.LoginUser(ctx, "jordan@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token pair")
	}

	authed, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != registered.ID {
		t.Fatalf("request data = %+v", rd)
	}
	if rd.Timezone != "America/New_York" {
		t.Errorf("timezone claim = %q", rd.Timezone)
	}

	if _, err := svc.SetContextFromToken(ctx, pair.AccessToken+"x"); err == nil {
		t.Error("tampered token should be rejected")
	}

	// Refresh rotates: the new pair works, the old refresh token does not.
	rotated, err := svc.RefreshUser(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}
	if _, err := svc.RefreshUser(ctx, pair.RefreshToken); err == nil {
		t.Error("spent refresh token should be rejected")
	}

	if err := svc.LogoutUser(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.RefreshUser(ctx, rotated.RefreshToken); err == nil {
		t.Error("refresh after logout should be rejected")
	}
}

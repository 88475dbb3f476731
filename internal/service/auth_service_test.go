package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"library-admin/internal/domain"
)

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	if _, err := SeedDefaultUsers(ctx, e.store, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	id, err := e.auth.Authenticate(ctx, "admin", "admin")
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if !id.IsAdmin || id.Username != "admin" || id.UserID == 0 {
		t.Fatalf("identity = %+v", id)
	}
	id, err = e.auth.Authenticate(ctx, "user", "user")
	if err != nil || id.IsAdmin {
		t.Fatalf("user = %+v, %v", id, err)
	}

	for _, c := range [][2]string{{"admin", "Admin"}, {"ghost", "ghost"}, {"", ""}} {
		if _, err := e.auth.Authenticate(ctx, c[0], c[1]); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%v: err = %v", c, err)
		}
	}
}

func TestSeedIsIdempotentAndResetClears(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	l := zap.NewNop()

	created, err := SeedDefaultUsers(ctx, e.store, l)
	if err != nil || len(created) != 2 {
		t.Fatalf("first seed = %v, %v", created, err)
	}
	created, err = SeedDefaultUsers(ctx, e.store, l)
	if err != nil || len(created) != 0 {
		t.Fatalf("second seed = %v, %v", created, err)
	}

	if _, err := e.catalog.AddUser(ctx, admin, UserInput{Username: "temp", Password: "t"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	removed, err := ResetUsers(ctx, e.store, l)
	if err != nil || removed != 3 {
		t.Fatalf("reset removed %d, %v", removed, err)
	}
	users, _ := e.catalog.ListUsers(ctx, admin)
	if len(users) != 2 {
		t.Fatalf("users after reset = %d", len(users))
	}
}

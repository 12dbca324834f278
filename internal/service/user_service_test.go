package service

import (
	"context"
	"errors"
	"testing"

	"shagun/internal/domain"
	"shagun/internal/repository"
)

// brokenUsers simulates a store outage
type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *domain.User) error { return errors.New("down") }
func (brokenUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("down")
}
func (brokenUsers) DeleteAll(context.Context) error { return errors.New("down") }

func setupUS(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(repository.NewMemoryUsers(repository.NewMemoryStore()))
}

func TestLogin_FallbackAdmin(t *testing.T) {
	us := setupUS(t)
	id, err := us.Login(context.Background(), "admin@example.com", "123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !id.IsAdmin || id.ID != "admin_id" || id.Name != "Admin" || id.Token != PlaceholderToken {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestLogin_StoredAccount(t *testing.T) {
	ctx := context.Background()
	us := setupUS(t)
	if created, err := us.EnsureAdmin(ctx); err != nil || !created {
		t.Fatalf("ensure admin: %v %v", created, err)
	}
	if created, _ := us.EnsureAdmin(ctx); created {
		t.Fatalf("seed admin must be created once")
	}

	id, err := us.Login(ctx, SeedAdmin.Email, SeedAdmin.Password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id.ID == "" || id.ID == "admin_id" || id.Name != SeedAdmin.Name || id.Email != SeedAdmin.Email {
		t.Fatalf("unexpected identity %+v", id)
	}

	if _, err := us.Login(ctx, SeedAdmin.Email, "PASSWORD123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("case mismatch must fail, got %v", err)
	}
	if _, err := us.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user must fail, got %v", err)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	us := NewUserService(brokenUsers{})
	if _, err := us.Login(context.Background(), "admin@example.com", "123456"); err != nil {
		t.Fatalf("fallback admin should pass during outage: %v", err)
	}
	if _, err := us.Login(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if _, err := us.EnsureAdmin(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"shagun/internal/domain"
	"shagun/internal/repository"
)

// Вход намеренно упрощён: пароль сравнивается как есть, токен постоянный.
// Для реального развёртывания схема непригодна.
const (
	FallbackAdminEmail    = "admin@example.com"
	FallbackAdminPassword = "123456"
	PlaceholderToken      = "dummy-token"

	fallbackAdminID   = "admin_id"
	fallbackAdminName = "Admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrServer             = errors.New("server error")
)

// SeedAdmin учётная запись, создаваемая при старте, если её нет
var SeedAdmin = domain.User{
	Name:     "Admin User",
	Email:    "admin@shagunfabrics.in",
	Password: "password123",
	IsAdmin:  true,
}

// UserService отвечает за вход и начальную учётную запись
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func isFallbackAdmin(email, password string) bool {
	return email == FallbackAdminEmail && password == FallbackAdminPassword
}

// Login сверяет пароль с сохранённым или с зашитой парой администратора.
// При сбое хранилища пускает только зашитую пару.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		slog.ErrorContext(ctx, "login lookup failed", "email", email, "error", err)
		if isFallbackAdmin(email, password) {
			return fallbackIdentity(email), nil
		}
		return nil, ErrServer
	}

	if (user != nil && user.Password == password) || isFallbackAdmin(email, password) {
		if user == nil {
			return fallbackIdentity(email), nil
		}
		return &domain.Identity{
			ID:      user.ID,
			Name:    user.Name,
			Email:   email,
			IsAdmin: true,
			Token:   PlaceholderToken,
		}, nil
	}
	return nil, ErrInvalidCredentials
}

func fallbackIdentity(email string) *domain.Identity {
	return &domain.Identity{
		ID:      fallbackAdminID,
		Name:    fallbackAdminName,
		Email:   email,
		IsAdmin: true,
		Token:   PlaceholderToken,
	}
}

// EnsureAdmin создаёт SeedAdmin, если записи с его email нет.
// Возвращает true, если запись была создана.
func (s *UserService) EnsureAdmin(ctx context.Context) (bool, error) {
	_, err := s.users.FindByEmail(ctx, SeedAdmin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	admin := SeedAdmin
	if err := s.users.Create(ctx, &admin); err != nil {
		return false, err
	}
	return true, nil
}

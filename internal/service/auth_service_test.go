package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/repository"
)

const testSecret = "test-secret-not-for-production"

func newAuthFixture(t *testing.T) (AuthService, repository.UserRepository) {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	return NewAuthService(userRepo, testSecret, time.Hour), userRepo
}

func TestAuthServiceRegister(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct-horse",
		Role:     "OWNER",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Email != "alice@example.com" {
		t.Errorf("email = %s, want lowercased", resp.Email)
	}
	if resp.Role != "OWNER" {
		t.Errorf("role = %s, want OWNER", resp.Role)
	}

	// Duplicate email, regardless of case.
	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Impostor",
		Email:    "ALICE@example.com",
		Password: "different-pass",
		Role:     "TENANT",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: expected ErrConflict, got %v", err)
	}

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "some-password",
		Role:     "LANDLORD",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad role: expected ErrValidation, got %v", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
		Role:     "OWNER",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("token_type = %s, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
	}

	// The issued token carries the identity claims.
	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != resp.User.ID {
		t.Errorf("user_id claim = %v, want %s", claims["user_id"], resp.User.ID)
	}
	if claims["role"] != "OWNER" {
		t.Errorf("role claim = %v, want OWNER", claims["role"])
	}

	// Wrong password and unknown email look identical to the caller.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthServiceGetUser(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, testTenant(""))

	got, err := svc.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("id = %s, want %s", got.ID, user.ID)
	}

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

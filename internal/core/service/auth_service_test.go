package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

func newTestAuth(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return NewAuthService("librarian", string(hash), "secret", time.Hour)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuth(t, "s3cret")

	token, err := svc.Login(context.Background(), "Librarian", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleLibrarian {
		t.Fatalf("expected role %s, got %v", domain.RoleLibrarian, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuth(t, "goodpass")

	if _, err := svc.Login(context.Background(), "librarian", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownName(t *testing.T) {
	svc := newTestAuth(t, "goodpass")

	if _, err := svc.Login(context.Background(), "alice", "goodpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DisabledWithoutHash(t *testing.T) {
	svc := NewAuthService("librarian", "", "secret", 0)

	if _, err := svc.Login(context.Background(), "librarian", "anything"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

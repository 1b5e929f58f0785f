package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// AuthService authenticates the librarian account of the HTTP surface.
type AuthService struct {
	librarianName string
	passwordHash  string
	jwtSecret     string
	tokenTTL      time.Duration
}

// NewAuthService returns an AuthService. An empty passwordHash disables login.
func NewAuthService(librarianName, passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		librarianName: librarianName,
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
	}
}

func (s *AuthService) Login(_ context.Context, name, password string) (string, error) {
	if name == "" || password == "" || s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if !strings.EqualFold(name, s.librarianName) {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(s.librarianName)
}

func (s *AuthService) generateToken(name string) (string, error) {
	claims := jwt.MapClaims{
		"name": name,
		"role": domain.RoleLibrarian,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

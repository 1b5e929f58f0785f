package ports

import "context"

// AuthService issues tokens for the HTTP surface.
type AuthService interface {
	Login(ctx context.Context, name, password string) (string, error)
}

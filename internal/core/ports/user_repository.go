package ports

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// UserRepository persists registered user names in registration order.
type UserRepository interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
}

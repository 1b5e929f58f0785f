package flatfile

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// UserRepository stores one user name per line.
type UserRepository struct {
	path string
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

func (r *UserRepository) LoadUsers(_ context.Context) ([]domain.User, error) {
	lines, err := readLines(r.path)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(lines))
	for _, line := range lines {
		users = append(users, domain.User{Name: line})
	}
	return users, nil
}

func (r *UserRepository) SaveUsers(_ context.Context, users []domain.User) error {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, u.Name)
	}
	return writeLines(r.path, lines)
}

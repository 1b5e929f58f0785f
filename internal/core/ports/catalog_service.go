package ports

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// BookFinder is the read side of the catalog shared by both roles.
type BookFinder interface {
	// FindBook returns the first book whose title equals title, ignoring case.
	FindBook(title string) (*domain.Book, error)
	// GetBook is FindBook returning a copy, safe to read while lending runs.
	GetBook(title string) (domain.Book, error)
	ListBooks() []domain.Book
	ListAvailable() []domain.Book
}

// CatalogAdmin groups the librarian capabilities.
type CatalogAdmin interface {
	AddBook(ctx context.Context, title, author string) (*domain.Book, error)
	RemoveBook(ctx context.Context, title string) error
	RegisterUser(ctx context.Context, name string) error
	ListUsers() []domain.User
	ListBooks() []domain.Book
}

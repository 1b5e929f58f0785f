package ports

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// Borrower groups the capabilities of a single library user.
type Borrower interface {
	ListAvailable() []domain.Book
	Borrow(ctx context.Context, book *domain.Book) error
	Return(ctx context.Context, book *domain.Book) error
	ListBorrowed() []domain.Book
	// FindBorrowed looks title up among the books this user holds.
	FindBorrowed(title string) (*domain.Book, error)
}

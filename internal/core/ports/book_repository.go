package ports

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// BookRepository persists the ordered book list. SaveBooks replaces the whole
// store; a store that does not exist yet loads as empty.
type BookRepository interface {
	LoadBooks(ctx context.Context) ([]*domain.Book, error)
	SaveBooks(ctx context.Context, books []*domain.Book) error
}

package service

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

var _ ports.Borrower = (*Ledger)(nil)

// Ledger is one user's record of the books they currently hold.
type Ledger struct {
	user  string
	store *LoanStore
}

// User returns the name the ledger belongs to.
func (l *Ledger) User() string {
	return l.user
}

// Borrow checks book out to this user. A book that is not available yields
// domain.ErrAlreadyCheckedOut and nothing changes.
func (l *Ledger) Borrow(ctx context.Context, book *domain.Book) error {
	return l.store.borrow(ctx, l.user, book)
}

// Return hands book back. Only the exact book this user borrowed can be
// returned; anything else yields domain.ErrNotBorrowed and nothing changes.
func (l *Ledger) Return(ctx context.Context, book *domain.Book) error {
	return l.store.giveBack(ctx, l.user, book)
}

// ListBorrowed returns the books held by this user in borrow order.
func (l *Ledger) ListBorrowed() []domain.Book {
	held := l.store.booksOf(l.user)
	out := make([]domain.Book, 0, len(held))
	for _, b := range held {
		out = append(out, *b)
	}
	return out
}

// FindBorrowed returns the first held book whose title equals title, ignoring case.
func (l *Ledger) FindBorrowed(title string) (*domain.Book, error) {
	book, _ := domain.FindBook(l.store.booksOf(l.user), title)
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

func (l *Ledger) ListAvailable() []domain.Book {
	return l.store.shelf.ListAvailable()
}

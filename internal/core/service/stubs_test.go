package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBookRepo struct {
	loaded  []*domain.Book
	loadErr error
	saveErr error
	saves   [][]domain.Book // snapshot of every SaveBooks call
}

func (r *stubBookRepo) LoadBooks(_ context.Context) ([]*domain.Book, error) {
	return r.loaded, r.loadErr
}

func (r *stubBookRepo) SaveBooks(_ context.Context, books []*domain.Book) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	snapshot := make([]domain.Book, 0, len(books))
	for _, b := range books {
		snapshot = append(snapshot, *b)
	}
	r.saves = append(r.saves, snapshot)
	return nil
}

func (r *stubBookRepo) last() []domain.Book {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

type stubUserRepo struct {
	loaded  []domain.User
	saveErr error
	saves   [][]domain.User
}

func (r *stubUserRepo) LoadUsers(_ context.Context) ([]domain.User, error) {
	return r.loaded, nil
}

func (r *stubUserRepo) SaveUsers(_ context.Context, users []domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves = append(r.saves, append([]domain.User(nil), users...))
	return nil
}

type stubLoanRepo struct {
	loaded  []domain.Loan
	saveErr error
	saves   [][]domain.Loan
}

func (r *stubLoanRepo) LoadLoans(_ context.Context) ([]domain.Loan, error) {
	return r.loaded, nil
}

func (r *stubLoanRepo) SaveLoans(_ context.Context, loans []domain.Loan) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves = append(r.saves, append([]domain.Loan(nil), loans...))
	return nil
}

func (r *stubLoanRepo) last() []domain.Loan {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newTestCatalog(books ...*domain.Book) (*Catalog, *stubBookRepo, *stubUserRepo) {
	bookRepo := &stubBookRepo{loaded: books}
	userRepo := &stubUserRepo{}
	c, err := NewCatalog(context.Background(), bookRepo, userRepo, discardLogger)
	if err != nil {
		panic(err)
	}
	return c, bookRepo, userRepo
}

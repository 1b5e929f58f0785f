package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
	"github.com/bookdesk/library-catalog/internal/pkg/metrics"
)

// Shelf abstracts the catalog operations lending depends on. The availability
// flip happens on the shared *domain.Book, so it is visible to every ledger.
type Shelf interface {
	FindBook(title string) (*domain.Book, error)
	ListAvailable() []domain.Book
	CheckOut(ctx context.Context, book *domain.Book) error
	CheckIn(ctx context.Context, book *domain.Book) error
	OnBookRemoved(fn func(ctx context.Context, book *domain.Book) error)
}

type loanEntry struct {
	user string
	book *domain.Book
	// orphaned marks a loan whose book left the catalog. The holder still
	// sees it, but it is no longer persisted.
	orphaned bool
}

// LoanStore holds every outstanding loan and persists them as (user, title)
// pairs. Per-user views are handed out as Ledgers.
type LoanStore struct {
	mu      sync.Mutex
	entries []loanEntry
	repo    ports.LoanRepository
	shelf   Shelf
	logger  zerolog.Logger
}

// NewLoanStore loads persisted loans and joins them against shelf by title.
// Loans whose title no longer resolves, or whose book is already held by an
// earlier loan, are dropped. A restored loan forces its book to checked out.
func NewLoanStore(ctx context.Context, repo ports.LoanRepository, shelf Shelf, logger zerolog.Logger) (*LoanStore, error) {
	loans, err := repo.LoadLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}

	s := &LoanStore{repo: repo, shelf: shelf, logger: logger}
	for _, l := range loans {
		book, err := shelf.FindBook(l.Title)
		if err != nil {
			logger.Warn().Str("user", l.UserName).Str("title", l.Title).Msg("dropping loan of unknown book")
			continue
		}
		if s.holder(book) != "" {
			logger.Warn().Str("user", l.UserName).Str("title", l.Title).Msg("dropping loan of a book already held")
			continue
		}
		if book.Available {
			if err := shelf.CheckOut(ctx, book); err != nil {
				return nil, fmt.Errorf("restore loan %q: %w", l.Title, err)
			}
		}
		s.entries = append(s.entries, loanEntry{user: l.UserName, book: book})
	}

	shelf.OnBookRemoved(s.orphan)

	logger.Info().Int("loans", len(s.entries)).Msg("loans restored")
	return s, nil
}

// Ledger returns the lending view of a single user.
func (s *LoanStore) Ledger(user string) *Ledger {
	return &Ledger{user: user, store: s}
}

func (s *LoanStore) borrow(ctx context.Context, user string, book *domain.Book) error {
	if err := domain.ValidateField("user", user); err != nil {
		metrics.LendingOperationsTotal.WithLabelValues("borrow", "invalid_input").Inc()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.shelf.CheckOut(ctx, book); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			metrics.LendingOperationsTotal.WithLabelValues("borrow", "invalid_state").Inc()
			return err
		}
		metrics.LendingOperationsTotal.WithLabelValues("borrow", "error").Inc()
		return fmt.Errorf("borrow: %w", err)
	}

	next := append(slices.Clone(s.entries), loanEntry{user: user, book: book})
	if err := s.save(ctx, next); err != nil {
		if revertErr := s.shelf.CheckIn(ctx, book); revertErr != nil {
			s.logger.Error().Err(revertErr).Str("title", book.Title).Msg("failed to revert check out")
		}
		metrics.LendingOperationsTotal.WithLabelValues("borrow", "error").Inc()
		return fmt.Errorf("borrow: %w", err)
	}
	s.entries = next

	metrics.LendingOperationsTotal.WithLabelValues("borrow", "ok").Inc()
	s.logger.Info().Str("user", user).Str("title", book.Title).Msg("book borrowed")
	return nil
}

func (s *LoanStore) giveBack(ctx context.Context, user string, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.entries, func(e loanEntry) bool {
		return e.user == user && e.book == book
	})
	if idx < 0 {
		metrics.LendingOperationsTotal.WithLabelValues("return", "invalid_state").Inc()
		return domain.ErrNotBorrowed
	}

	if err := s.shelf.CheckIn(ctx, book); err != nil {
		metrics.LendingOperationsTotal.WithLabelValues("return", "error").Inc()
		return fmt.Errorf("return: %w", err)
	}

	next := slices.Delete(slices.Clone(s.entries), idx, idx+1)
	if err := s.save(ctx, next); err != nil {
		if revertErr := s.shelf.CheckOut(ctx, book); revertErr != nil {
			s.logger.Error().Err(revertErr).Str("title", book.Title).Msg("failed to revert check in")
		}
		metrics.LendingOperationsTotal.WithLabelValues("return", "error").Inc()
		return fmt.Errorf("return: %w", err)
	}
	s.entries = next

	metrics.LendingOperationsTotal.WithLabelValues("return", "ok").Inc()
	s.logger.Info().Str("user", user).Str("title", book.Title).Msg("book returned")
	return nil
}

// orphan stops persisting loans of a book removed from the catalog, so a later
// book with the same title cannot inherit them on restart.
func (s *LoanStore) orphan(ctx context.Context, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.entries)
	changed := false
	for i := range next {
		if next[i].book == book && !next[i].orphaned {
			next[i].orphaned = true
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.save(ctx, next); err != nil {
		return fmt.Errorf("drop loans of removed book: %w", err)
	}
	s.entries = next

	s.logger.Warn().Str("title", book.Title).Msg("loan of removed book is no longer persisted")
	return nil
}

func (s *LoanStore) booksOf(user string) []*domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Book
	for _, e := range s.entries {
		if e.user == user {
			out = append(out, e.book)
		}
	}
	return out
}

// holder returns the user holding book, or "" when nobody does.
func (s *LoanStore) holder(book *domain.Book) string {
	for _, e := range s.entries {
		if e.book == book {
			return e.user
		}
	}
	return ""
}

func (s *LoanStore) save(ctx context.Context, entries []loanEntry) error {
	timer := prometheus.NewTimer(metrics.StoreWriteDuration.WithLabelValues("loans"))
	defer timer.ObserveDuration()

	loans := make([]domain.Loan, 0, len(entries))
	for _, e := range entries {
		if e.orphaned {
			continue
		}
		loans = append(loans, domain.Loan{UserName: e.user, Title: e.book.Title})
	}
	return s.repo.SaveLoans(ctx, loans)
}

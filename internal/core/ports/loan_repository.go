package ports

import (
	"context"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// LoanRepository persists outstanding (user, title) loans.
type LoanRepository interface {
	LoadLoans(ctx context.Context) ([]domain.Loan, error)
	SaveLoans(ctx context.Context, loans []domain.Loan) error
}

package flatfile

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// LoanRepository stores outstanding loans as user|title lines.
type LoanRepository struct {
	path   string
	logger zerolog.Logger
}

func NewLoanRepository(path string, logger zerolog.Logger) *LoanRepository {
	return &LoanRepository{path: path, logger: logger}
}

func (r *LoanRepository) LoadLoans(_ context.Context) ([]domain.Loan, error) {
	lines, err := readLines(r.path)
	if err != nil {
		return nil, err
	}

	loans := make([]domain.Loan, 0, len(lines))
	for n, line := range lines {
		parts := strings.Split(line, separator)
		if len(parts) != 2 {
			r.logger.Debug().Str("file", r.path).Int("line", n+1).Msg("skipping malformed loan line")
			continue
		}
		loans = append(loans, domain.Loan{UserName: parts[0], Title: parts[1]})
	}
	return loans, nil
}

func (r *LoanRepository) SaveLoans(_ context.Context, loans []domain.Loan) error {
	lines := make([]string, 0, len(loans))
	for _, l := range loans {
		lines = append(lines, l.UserName+separator+l.Title)
	}
	return writeLines(r.path, lines)
}

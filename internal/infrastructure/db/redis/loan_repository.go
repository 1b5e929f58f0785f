package redis

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// DefaultLoansKey is the list holding one JSON-encoded loan per element.
const DefaultLoansKey = "library:loans"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoanRepository keeps outstanding loans in a Redis list.
type LoanRepository struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

// NewLoanRepository creates a LoanRepository. An empty key selects DefaultLoansKey.
func NewLoanRepository(client *redis.Client, key string, logger zerolog.Logger) *LoanRepository {
	if key == "" {
		key = DefaultLoansKey
	}
	return &LoanRepository{client: client, key: key, logger: logger}
}

// LoadLoans skips list elements that do not decode.
func (r *LoanRepository) LoadLoans(ctx context.Context) ([]domain.Loan, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}

	loans := make([]domain.Loan, 0, len(raw))
	for i, item := range raw {
		var l domain.Loan
		if err := json.UnmarshalFromString(item, &l); err != nil {
			r.logger.Debug().Err(err).Int("index", i).Msg("skipping malformed loan")
			continue
		}
		loans = append(loans, l)
	}
	return loans, nil
}

// SaveLoans replaces the list atomically (MULTI/EXEC).
func (r *LoanRepository) SaveLoans(ctx context.Context, loans []domain.Loan) error {
	values := make([]interface{}, 0, len(loans))
	for _, l := range loans {
		s, err := json.MarshalToString(l)
		if err != nil {
			return fmt.Errorf("encode loan: %w", err)
		}
		values = append(values, s)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(values) > 0 {
			pipe.RPush(ctx, r.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save loans: %w", err)
	}
	return nil
}

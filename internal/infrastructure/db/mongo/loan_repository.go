package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

type loanDocument struct {
	Position int    `bson:"position"`
	UserName string `bson:"user_name"`
	Title    string `bson:"title"`
}

// LoanRepository implements ports.LoanRepository using MongoDB.
type LoanRepository struct {
	col *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) ports.LoanRepository {
	return &LoanRepository{col: db.Collection(collectionLoans)}
}

func (r *LoanRepository) LoadLoans(ctx context.Context) ([]domain.Loan, error) {
	var docs []loanDocument
	if err := findAll(ctx, r.col, &docs); err != nil {
		return nil, err
	}

	loans := make([]domain.Loan, 0, len(docs))
	for _, d := range docs {
		loans = append(loans, domain.Loan{UserName: d.UserName, Title: d.Title})
	}
	return loans, nil
}

func (r *LoanRepository) SaveLoans(ctx context.Context, loans []domain.Loan) error {
	docs := make([]interface{}, 0, len(loans))
	for i, l := range loans {
		docs = append(docs, loanDocument{Position: i, UserName: l.UserName, Title: l.Title})
	}
	return replaceAll(ctx, r.col, docs)
}

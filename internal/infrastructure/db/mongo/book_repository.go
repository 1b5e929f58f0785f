package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

type bookDocument struct {
	Position  int    `bson:"position"`
	Title     string `bson:"title"`
	Author    string `bson:"author"`
	Available bool   `bson:"available"`
}

// BookRepository implements ports.BookRepository using MongoDB.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) ports.BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

func (r *BookRepository) LoadBooks(ctx context.Context) ([]*domain.Book, error) {
	var docs []bookDocument
	if err := findAll(ctx, r.col, &docs); err != nil {
		return nil, err
	}

	books := make([]*domain.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, &domain.Book{Title: d.Title, Author: d.Author, Available: d.Available})
	}
	return books, nil
}

func (r *BookRepository) SaveBooks(ctx context.Context, books []*domain.Book) error {
	docs := make([]interface{}, 0, len(books))
	for i, b := range books {
		docs = append(docs, bookDocument{Position: i, Title: b.Title, Author: b.Author, Available: b.Available})
	}
	return replaceAll(ctx, r.col, docs)
}

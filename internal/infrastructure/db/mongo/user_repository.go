package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

type userDocument struct {
	Position int    `bson:"position"`
	Name     string `bson:"name"`
}

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) ports.UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var docs []userDocument
	if err := findAll(ctx, r.col, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, domain.User{Name: d.Name})
	}
	return users, nil
}

func (r *UserRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	docs := make([]interface{}, 0, len(users))
	for i, u := range users {
		docs = append(docs, userDocument{Position: i, Name: u.Name})
	}
	return replaceAll(ctx, r.col, docs)
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questdeck/internal/model"
)

// PassageRepo handles MongoDB operations for passages and their attribute
// records
type PassageRepo interface {
	Upsert(ctx context.Context, passage *model.Passage) error
	GetByTextID(ctx context.Context, textID string) (*model.Passage, error)
	List(ctx context.Context) ([]*model.Passage, error)
}

type passageRepo struct {
	collection *mongo.Collection
}

// NewPassageRepo creates a new passage repository
func NewPassageRepo(db *mongo.Database) PassageRepo {
	return &passageRepo{
		collection: db.Collection("passages"),
	}
}

func (r *passageRepo) Upsert(ctx context.Context, passage *model.Passage) error {
	now := time.Now()
	if passage.CreatedAt.IsZero() {
		passage.CreatedAt = now
	}
	passage.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"textId": passage.TextID}, passage, opts)
	return err
}

func (r *passageRepo) GetByTextID(ctx context.Context, textID string) (*model.Passage, error) {
	var passage model.Passage
	err := r.collection.FindOne(ctx, bson.M{"textId": textID}).Decode(&passage)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &passage, nil
}

func (r *passageRepo) List(ctx context.Context) ([]*model.Passage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var passages []*model.Passage
	if err := cursor.All(ctx, &passages); err != nil {
		return nil, err
	}
	return passages, nil
}

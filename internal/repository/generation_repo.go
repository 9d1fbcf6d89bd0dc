package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"questdeck/internal/model"
)

// GenerationRepo persists AI-generated questions. Decisions themselves are
// never stored; only the generation stage output is.
type GenerationRepo interface {
	SaveAll(ctx context.Context, questions []model.GeneratedQuestion) error
	GetByTextID(ctx context.Context, textID string) ([]model.GeneratedQuestion, error)
	DeleteByTextID(ctx context.Context, textID string) error
}

type generationRepo struct {
	collection *mongo.Collection
}

// NewGenerationRepo creates a new generation repository
func NewGenerationRepo(db *mongo.Database) GenerationRepo {
	return &generationRepo{
		collection: db.Collection("generated_questions"),
	}
}

func (r *generationRepo) SaveAll(ctx context.Context, questions []model.GeneratedQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		docs = append(docs, q)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *generationRepo) GetByTextID(ctx context.Context, textID string) ([]model.GeneratedQuestion, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"textId": textID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []model.GeneratedQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *generationRepo) DeleteByTextID(ctx context.Context, textID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"textId": textID})
	return err
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"questdeck/internal/model"
)

// CatalogRepo handles MongoDB operations for the question-type catalog and
// its rule table
type CatalogRepo interface {
	ListTypes(ctx context.Context) ([]model.QuestionType, error)
	ListRequirements(ctx context.Context) ([]model.Requirement, error)
	ReplaceTypes(ctx context.Context, types []model.QuestionType) error
	ReplaceRequirements(ctx context.Context, reqs []model.Requirement) error
}

type catalogRepo struct {
	types *mongo.Collection
	reqs  *mongo.Collection
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *mongo.Database) CatalogRepo {
	return &catalogRepo{
		types: db.Collection("question_types"),
		reqs:  db.Collection("type_requirements"),
	}
}

func (r *catalogRepo) ListTypes(ctx context.Context) ([]model.QuestionType, error) {
	cursor, err := r.types.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []model.QuestionType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *catalogRepo) ListRequirements(ctx context.Context) ([]model.Requirement, error) {
	cursor, err := r.reqs.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []model.Requirement
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *catalogRepo) ReplaceTypes(ctx context.Context, types []model.QuestionType) error {
	if _, err := r.types.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(types))
	for _, qt := range types {
		docs = append(docs, qt)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := r.types.InsertMany(ctx, docs)
	return err
}

func (r *catalogRepo) ReplaceRequirements(ctx context.Context, reqs []model.Requirement) error {
	if _, err := r.reqs.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(reqs))
	for _, req := range reqs {
		docs = append(docs, req)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := r.reqs.InsertMany(ctx, docs)
	return err
}

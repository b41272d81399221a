package mongo

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryCollectionName = "generated_queries"

// mongoQueryRepository implements repository.QueryRepository. It has no
// update path: archived prompts are immutable.
type mongoQueryRepository struct {
	collection *mongo.Collection
}

// NewMongoQueryRepository creates a new GeneratedQuery repository.
func NewMongoQueryRepository(db *mongo.Database) repository.QueryRepository {
	return &mongoQueryRepository{
		collection: db.Collection(queryCollectionName),
	}
}

func (r *mongoQueryRepository) Create(ctx context.Context, query *domain.GeneratedQuery) (primitive.ObjectID, error) {
	if query.GroupID == "" || query.ProfileID == primitive.NilObjectID || query.Prompt == "" {
		return primitive.NilObjectID, errors.New("generated query requires groupId, profileId and prompt")
	}
	query.ID = primitive.NewObjectID()
	query.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, query); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	return query.ID, nil
}

func (r *mongoQueryRepository) GetByGroupID(ctx context.Context, groupID string) (*domain.GeneratedQuery, error) {
	var query domain.GeneratedQuery
	err := r.collection.FindOne(ctx, bson.M{"groupId": groupID}).Decode(&query)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &query, nil
}

func EnsureQueryIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "profileId", Value: 1}},
		},
	})
}

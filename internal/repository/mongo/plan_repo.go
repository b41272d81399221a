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

const planCollectionName = "workout_plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new WorkoutPlan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan. A reused group id is reported as ErrDuplicateKey.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.GroupID == "" || plan.ProfileID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires groupId and profileId")
	}
	if plan.ID == primitive.NilObjectID {
		plan.ID = primitive.NewObjectID()
	}
	if plan.SessionIDs == nil {
		plan.SessionIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

func (r *mongoPlanRepository) findOne(ctx context.Context, filter bson.M) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	if err := r.collection.FindOne(ctx, filter).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoPlanRepository) GetByGroupID(ctx context.Context, groupID string) (*domain.WorkoutPlan, error) {
	return r.findOne(ctx, bson.M{"groupId": groupID})
}

func (r *mongoPlanRepository) GroupIDExists(ctx context.Context, groupID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"groupId": groupID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByProfileID returns the profile's plans, newest first.
func (r *mongoPlanRepository) ListByProfileID(ctx context.Context, profileID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"profileId": profileID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.WorkoutPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ReplaceSession uses the positional operator so the new id lands where
// the old one was.
func (r *mongoPlanRepository) ReplaceSession(ctx context.Context, planID, oldID, newID primitive.ObjectID) error {
	filter, update := replaceSessionDocs(planID, oldID, newID, time.Now().UTC())
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// replaceSessionDocs matches the plan only while it still lists oldID, which
// also binds the "$" in the update to that element.
func replaceSessionDocs(planID, oldID, newID primitive.ObjectID, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"_id": planID, "sessionIds": oldID}
	update := bson.M{"$set": bson.M{
		"sessionIds.$": newID,
		"updatedAt":    now,
	}}
	return filter, update
}

func (r *mongoPlanRepository) RemoveSession(ctx context.Context, planID, sessionID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": planID}, removeSessionUpdate(sessionID, time.Now().UTC()))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func removeSessionUpdate(sessionID primitive.ObjectID, now time.Time) bson.M {
	return bson.M{
		"$pull": bson.M{"sessionIds": sessionID},
		"$set":  bson.M{"updatedAt": now},
	}
}

func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var planIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "groupId", Value: 1}},
		Options: options.Index().SetUnique(true),
	},
	{
		Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "createdAt", Value: -1}},
	},
}

// EnsurePlanIndexes creates necessary indexes. The unique group id index
// backs the collision check done before minting.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, planIndexes)
}

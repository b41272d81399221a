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

const profileCollectionName = "profiles"

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new Profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

func (r *mongoProfileRepository) Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
	if profile.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("profile requires userId")
	}
	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	return profile.ID, nil
}

func (r *mongoProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.collection.FindOne(ctx, filter).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *mongoProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

// Update replaces the editable fields of a profile. UserID is immutable.
func (r *mongoProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == primitive.NilObjectID {
		return errors.New("profile ID is required for update")
	}
	profile.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"email":                profile.Email,
		"firstName":            profile.FirstName,
		"lastName":             profile.LastName,
		"dob":                  profile.DOB,
		"gender":               profile.Gender,
		"heightCm":             profile.HeightCm,
		"fitnessLevel":         profile.FitnessLevel,
		"eatingHabits":         profile.EatingHabits,
		"preferredIntensity":   profile.PreferredIntensity,
		"workoutPreferences":   profile.WorkoutPreferences,
		"preferredWorkoutTime": profile.PreferredWorkoutTime,
		"fitnessGoals":         profile.FitnessGoals,
		"workoutDays":          profile.WorkoutDays,
		"workoutsPerWeek":      profile.WorkoutsPerWeek,
		"currentInjuries":      profile.CurrentInjuries,
		"specificMuscleGroups": profile.SpecificMuscleGroups,
		"cardioPreferences":    profile.CardioPreferences,
		"recoveryAndRest":      profile.RecoveryAndRest,
		"preferredLocationId":  profile.PreferredLocationID,
		"updatedAt":            profile.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProfileIndexes makes userId unique: one profile per user.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

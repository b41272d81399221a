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

const (
	equipmentCollectionName = "equipment"
	locationCollectionName  = "locations"
)

// mongoEquipmentRepository implements repository.EquipmentRepository
type mongoEquipmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEquipmentRepository creates a new Equipment repository.
func NewMongoEquipmentRepository(db *mongo.Database) repository.EquipmentRepository {
	return &mongoEquipmentRepository{
		collection: db.Collection(equipmentCollectionName),
	}
}

// Create inserts an equipment item after applying the custom-name rule.
func (r *mongoEquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (primitive.ObjectID, error) {
	equipment.Normalize()
	if equipment.DisplayName() == "" {
		return primitive.NilObjectID, errors.New("equipment requires a name or a custom name")
	}
	equipment.ID = primitive.NewObjectID()
	equipment.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, equipment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	return equipment.ID, nil
}

func (r *mongoEquipmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Equipment, error) {
	var equipment domain.Equipment
	if err := r.collection.FindOne(ctx, filter).Decode(&equipment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *mongoEquipmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Equipment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByName looks up a canonical catalog item.
func (r *mongoEquipmentRepository) GetByName(ctx context.Context, name string) (*domain.Equipment, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoEquipmentRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Equipment, error) {
	if len(ids) == 0 {
		return []domain.Equipment{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoEquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoEquipmentRepository) find(ctx context.Context, filter bson.M) ([]domain.Equipment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []domain.Equipment{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// equipmentIndexes makes the canonical name unique. Sparse, because custom
// items carry no canonical name.
var equipmentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	},
	{
		Keys: bson.D{{Key: "category", Value: 1}},
	},
}

func EnsureEquipmentIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, equipmentIndexes)
}

// mongoLocationRepository implements repository.LocationRepository
type mongoLocationRepository struct {
	collection *mongo.Collection
}

// NewMongoLocationRepository creates a new Location repository.
func NewMongoLocationRepository(db *mongo.Database) repository.LocationRepository {
	return &mongoLocationRepository{
		collection: db.Collection(locationCollectionName),
	}
}

func (r *mongoLocationRepository) Create(ctx context.Context, location *domain.Location) (primitive.ObjectID, error) {
	if location.Name == "" || location.Category == "" {
		return primitive.NilObjectID, errors.New("location requires name and category")
	}
	if location.EquipmentIDs == nil {
		location.EquipmentIDs = []primitive.ObjectID{}
	}
	location.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, location); err != nil {
		return primitive.NilObjectID, err
	}
	return location.ID, nil
}

func (r *mongoLocationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Location, error) {
	var location domain.Location
	if err := r.collection.FindOne(ctx, filter).Decode(&location); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *mongoLocationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Location, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoLocationRepository) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	locations := []domain.Location{}
	if err = cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// AddEquipment links equipment to a location; $addToSet keeps the set unique.
func (r *mongoLocationRepository) AddEquipment(ctx context.Context, id primitive.ObjectID, equipmentIDs []primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"equipmentIds": bson.M{"$each": equipmentIDs}},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func EnsureLocationIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
}

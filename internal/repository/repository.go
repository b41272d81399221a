package repository

import (
	"alcyxob/ai-trainer/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Transactor runs fn as one atomic unit. Repositories called with the ctx
// handed to fn take part in the transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores one Profile per user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// EquipmentRepository is the shared equipment catalog.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Equipment, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Equipment, error)
	GetByName(ctx context.Context, name string) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
}

// LocationRepository is the shared location catalog.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Location, error)
	GetByName(ctx context.Context, name string) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
	AddEquipment(ctx context.Context, id primitive.ObjectID, equipmentIDs []primitive.ObjectID) error
}

// WeightRepository stores body-weight history. Lists are newest first.
type WeightRepository interface {
	Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error)
	// ListLatest returns at most limit entries; limit <= 0 means all.
	ListLatest(ctx context.Context, profileID primitive.ObjectID, limit int) ([]domain.WeightEntry, error)
	Delete(ctx context.Context, id, profileID primitive.ObjectID) error
}

// PlanRepository stores WorkoutPlan aggregates.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByGroupID(ctx context.Context, groupID string) (*domain.WorkoutPlan, error)
	GroupIDExists(ctx context.Context, groupID string) (bool, error)
	ListByProfileID(ctx context.Context, profileID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	// ReplaceSession swaps oldID for newID keeping its position in the plan.
	ReplaceSession(ctx context.Context, planID, oldID, newID primitive.ObjectID) error
	RemoveSession(ctx context.Context, planID, sessionID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// QueryRepository archives the prompts sent for each group. Write once.
type QueryRepository interface {
	Create(ctx context.Context, query *domain.GeneratedQuery) (primitive.ObjectID, error)
	GetByGroupID(ctx context.Context, groupID string) (*domain.GeneratedQuery, error)
}

// SessionRepository stores WorkoutSessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error)
	// ListLatestByProfileID returns at most limit sessions, newest date first.
	ListLatestByProfileID(ctx context.Context, profileID primitive.ObjectID, limit int) ([]domain.WorkoutSession, error)
	UpdateFeedback(ctx context.Context, id primitive.ObjectID, feedback domain.SessionFeedback) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
}

// ExerciseRepository stores the exercises of each session.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByWorkoutIDs(ctx context.Context, workoutIDs []primitive.ObjectID) ([]domain.Exercise, error)
	UpdateActualWeight(ctx context.Context, id primitive.ObjectID, weight string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByWorkoutIDs(ctx context.Context, workoutIDs []primitive.ObjectID) (int64, error)
}

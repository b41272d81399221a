package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise belongs to a WorkoutSession. Loads are free text ("40kg",
// "Bodyweight"); ActualWeight starts equal to RecommendedWeight.
type Exercise struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID         primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Name              string             `bson:"name" json:"name"`
	Sets              string             `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps              string             `bson:"reps,omitempty" json:"reps,omitempty"`
	RecommendedWeight string             `bson:"recommendedWeight,omitempty" json:"recommendedWeight,omitempty"`
	ActualWeight      string             `bson:"actualWeight,omitempty" json:"actualWeight,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Sequence          int                `bson:"sequence" json:"sequence"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

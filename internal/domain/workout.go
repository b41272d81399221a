package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is the aggregate created by one generation call. It owns the
// ordered list of sessions sharing its GroupID.
type WorkoutPlan struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GroupID    string               `bson:"groupId" json:"groupId"` // 20 digits, unique
	ProfileID  primitive.ObjectID   `bson:"profileId" json:"profileId"`
	Duration   PlanDuration         `bson:"duration" json:"duration"`
	StartDate  time.Time            `bson:"startDate" json:"startDate"`
	SessionIDs []primitive.ObjectID `bson:"sessionIds" json:"sessionIds"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// WarmUp and CoolDown live inside their session document, so they are
// created and deleted with it.
type WarmUp struct {
	Description string `bson:"description" json:"description"`
}

type CoolDown struct {
	Description string `bson:"description" json:"description"`
}

// WorkoutSession is one day of a plan.
type WorkoutSession struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	GroupID        string              `bson:"groupId" json:"groupId"`
	PlanID         primitive.ObjectID  `bson:"planId" json:"planId"`
	ProfileID      primitive.ObjectID  `bson:"profileId" json:"profileId"`
	Name           string              `bson:"name" json:"name"`
	Goal           string              `bson:"goal,omitempty" json:"goal,omitempty"`
	Explanation    string              `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Considerations string              `bson:"considerations,omitempty" json:"considerations,omitempty"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Date           time.Time           `bson:"date" json:"date"`
	LocationID     *primitive.ObjectID `bson:"locationId,omitempty" json:"locationId,omitempty"`
	WorkoutType    string              `bson:"workoutType,omitempty" json:"workoutType,omitempty"`
	MuscleGroups   []string            `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`
	WarmUp         WarmUp              `bson:"warmUp" json:"warmUp"`
	CoolDown       CoolDown            `bson:"coolDown" json:"coolDown"`

	// Filled in by the user after performing the workout.
	Completed        bool `bson:"completed" json:"completed"`
	TimeTakenMinutes *int `bson:"timeTakenMinutes,omitempty" json:"timeTakenMinutes,omitempty"`
	DifficultyRating *int `bson:"difficultyRating,omitempty" json:"difficultyRating,omitempty"`
	EnjoymentRating  *int `bson:"enjoymentRating,omitempty" json:"enjoymentRating,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SessionFeedback carries the user-editable fields of a session.
type SessionFeedback struct {
	Completed        *bool
	TimeTakenMinutes *int
	DifficultyRating *int
	EnjoymentRating  *int
}

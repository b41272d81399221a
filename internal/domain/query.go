package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanDuration is the length of a requested plan.
type PlanDuration string

const (
	DurationDay  PlanDuration = "day"
	DurationWeek PlanDuration = "week"
)

func (d PlanDuration) Valid() bool {
	return d == DurationDay || d == DurationWeek
}

// LocationSnapshot is the part of a Location a prompt needs.
type LocationSnapshot struct {
	Name      string   `bson:"name" json:"name"`
	Equipment []string `bson:"equipment" json:"equipment"`
}

// WeightReading is a weight entry with its BMI already resolved.
type WeightReading struct {
	Date     time.Time `bson:"date" json:"date"`
	WeightKg float64   `bson:"weightKg" json:"weightKg"`
	BMI      *float64  `bson:"bmi,omitempty" json:"bmi,omitempty"`
}

type ExerciseSummary struct {
	Name         string `bson:"name" json:"name"`
	Sets         string `bson:"sets" json:"sets"`
	Reps         string `bson:"reps" json:"reps"`
	ActualWeight string `bson:"actualWeight" json:"actualWeight"`
}

// SessionSummary is a past workout as it appears in a prompt.
type SessionSummary struct {
	Date             time.Time         `bson:"date" json:"date"`
	WorkoutType      string            `bson:"workoutType" json:"workoutType"`
	TimeTakenMinutes *int              `bson:"timeTakenMinutes,omitempty" json:"timeTakenMinutes,omitempty"`
	DifficultyRating *int              `bson:"difficultyRating,omitempty" json:"difficultyRating,omitempty"`
	Exercises        []ExerciseSummary `bson:"exercises" json:"exercises"`
}

// PromptInput is everything the plan prompt is rendered from. It is archived
// next to the rendered text so a single day can be replayed with one field
// changed instead of editing the text.
type PromptInput struct {
	Duration    PlanDuration      `bson:"duration" json:"duration"`
	StartDate   time.Time         `bson:"startDate" json:"startDate"`
	Profile     Profile           `bson:"profile" json:"profile"`
	WorkoutType string            `bson:"workoutType" json:"workoutType"`
	MaxMinutes  int               `bson:"maxMinutes" json:"maxMinutes"`
	Location    *LocationSnapshot `bson:"location,omitempty" json:"location,omitempty"`
	Weights     []WeightReading   `bson:"weights" json:"weights"`
	Sessions    []SessionSummary  `bson:"sessions" json:"sessions"`
}

// GeneratedQuery archives the prompt sent for a group. Written once.
type GeneratedQuery struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   string             `bson:"groupId" json:"groupId"`
	ProfileID primitive.ObjectID `bson:"profileId" json:"profileId"`
	Prompt    string             `bson:"prompt" json:"prompt"`
	Input     *PromptInput       `bson:"input,omitempty" json:"input,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

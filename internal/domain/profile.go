package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds a user's durable fitness preferences. One per user.
// Multi-select fields are real lists all the way down to storage.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Email     string             `bson:"email" json:"email"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	DOB       *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	HeightCm  *float64           `bson:"heightCm,omitempty" json:"heightCm,omitempty"`

	FitnessLevel         string   `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	EatingHabits         string   `bson:"eatingHabits,omitempty" json:"eatingHabits,omitempty"`
	PreferredIntensity   string   `bson:"preferredIntensity,omitempty" json:"preferredIntensity,omitempty"`
	WorkoutPreferences   []string `bson:"workoutPreferences,omitempty" json:"workoutPreferences,omitempty"`
	PreferredWorkoutTime int      `bson:"preferredWorkoutTime,omitempty" json:"preferredWorkoutTime,omitempty"` // minutes
	FitnessGoals         []string `bson:"fitnessGoals,omitempty" json:"fitnessGoals,omitempty"`
	WorkoutDays          []string `bson:"workoutDays,omitempty" json:"workoutDays,omitempty"`
	WorkoutsPerWeek      int      `bson:"workoutsPerWeek,omitempty" json:"workoutsPerWeek,omitempty"`
	CurrentInjuries      string   `bson:"currentInjuries,omitempty" json:"currentInjuries,omitempty"`
	SpecificMuscleGroups []string `bson:"specificMuscleGroups,omitempty" json:"specificMuscleGroups,omitempty"`
	CardioPreferences    []string `bson:"cardioPreferences,omitempty" json:"cardioPreferences,omitempty"`
	RecoveryAndRest      []string `bson:"recoveryAndRest,omitempty" json:"recoveryAndRest,omitempty"`

	PreferredLocationID *primitive.ObjectID `bson:"preferredLocationId,omitempty" json:"preferredLocationId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

var defaultWorkoutDays = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// DefaultWorkoutDays returns a fresh copy of the default training days.
func DefaultWorkoutDays() []string {
	days := make([]string, len(defaultWorkoutDays))
	copy(days, defaultWorkoutDays[:])
	return days
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

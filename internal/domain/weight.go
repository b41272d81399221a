package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightEntry is one body-weight measurement. BMI is never stored; see BMI.
type WeightEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID primitive.ObjectID `bson:"profileId" json:"profileId"`
	Date      time.Time          `bson:"date" json:"date"`
	WeightKg  float64            `bson:"weightKg" json:"weightKg"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// BMI computes weight / height_m^2 rounded to two decimals.
// It returns nil when the height is unknown or not positive.
func BMI(weightKg float64, heightCm *float64) *float64 {
	if heightCm == nil || *heightCm <= 0 || weightKg <= 0 {
		return nil
	}
	m := *heightCm / 100
	bmi := math.Round(weightKg/(m*m)*100) / 100
	return &bmi
}

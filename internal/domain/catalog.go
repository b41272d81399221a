package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment is either a canonical catalog item (Name) or a free-text
// custom item (CustomName). Exactly one of the two is populated.
type Equipment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	CustomName string             `bson:"customName,omitempty" json:"customName,omitempty"`
	Category   string             `bson:"category" json:"category"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Normalize enforces the custom-name rule: a custom name clears the canonical one.
func (e *Equipment) Normalize() {
	if e.CustomName != "" {
		e.Name = ""
	}
}

// DisplayName is the custom name when set, otherwise the canonical name.
func (e *Equipment) DisplayName() string {
	if e.CustomName != "" {
		return e.CustomName
	}
	return e.Name
}

// Location is a shared place to work out, with the equipment available there.
type Location struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Category     string               `bson:"category" json:"category"` // e.g. "Gym", "Park", "Home"
	Address      string               `bson:"address,omitempty" json:"address,omitempty"`
	EquipmentIDs []primitive.ObjectID `bson:"equipmentIds" json:"equipmentIds"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

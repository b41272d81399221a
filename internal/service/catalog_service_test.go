package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSeedIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewCatalogService(memEquipment{store}, memLocations{store})

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(domain.EquipmentCatalog), first.EquipmentCreated)
	assert.Equal(t, len(domain.StarterLocations), first.LocationsCreated)

	second, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.EquipmentCreated)
	assert.Zero(t, second.LocationsCreated)
	assert.Len(t, store.equipment, len(domain.EquipmentCatalog))

	gym, err := memLocations{store}.GetByName(ctx, "Standard Gym")
	require.NoError(t, err)
	detail, err := svc.GetLocation(ctx, gym.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Equipment, 60)
	for _, e := range detail.Equipment {
		assert.Contains(t, []string{"Gym Cardio Machines", "Gym Strength Machines", "Gym Free Weights", "Gym Benches and Racks"}, e.Category)
	}
}

func TestCreateEquipment(t *testing.T) {
	store := newMemStore()
	svc := NewCatalogService(memEquipment{store}, memLocations{store})

	custom, err := svc.CreateEquipment(ctx, "Kettlebell", "Grandpa's anvil", "")
	require.NoError(t, err)
	assert.Empty(t, custom.Name)
	assert.Equal(t, "Grandpa's anvil", custom.DisplayName())
	assert.Equal(t, "Miscellaneous", custom.Category)

	_, err = svc.CreateEquipment(ctx, "Kettlebell", "", "Gym Free Weights")
	require.NoError(t, err)
	_, err = svc.CreateEquipment(ctx, "Kettlebell", "", "Gym Free Weights")
	assert.ErrorIs(t, err, ErrEquipmentExists)

	_, err = svc.CreateEquipment(ctx, " ", "", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateLocation(t *testing.T) {
	store := newMemStore()
	svc := NewCatalogService(memEquipment{store}, memLocations{store})
	bench, err := svc.CreateEquipment(ctx, "Flat Bench", "", "Gym Benches and Racks")
	require.NoError(t, err)

	loc, err := svc.CreateLocation(ctx, "Garage", "Home", "", []primitive.ObjectID{bench.ID, bench.ID})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bench.ID}, loc.EquipmentIDs)
	require.Len(t, loc.Equipment, 1)

	_, err = svc.CreateLocation(ctx, "Garage", "", "", nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.CreateLocation(ctx, "Garage", "Home", "", []primitive.ObjectID{primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrValidationFailed)

	all, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository"
)

// testDatabase connects to MONGO_URI (a replica set, for transactions) and
// returns a throwaway database with indexes in place.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	client, err := ConnectDB(uri)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("ai_trainer_test_%d", time.Now().UnixNano()))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	EnsureIndexes(ctx, db)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = DisconnectDB(client)
	})
	return db
}

var groupSeq atomic.Int64

func newPlan(ids ...primitive.ObjectID) *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		GroupID:    fmt.Sprintf("%020d", groupSeq.Add(1)),
		ProfileID:  primitive.NewObjectID(),
		Duration:   domain.DurationWeek,
		SessionIDs: ids,
	}
}

func TestPlanSessionListUpdates(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewMongoPlanRepository(db)

	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	id, err := repo.Create(ctx, newPlan(a, b, c))
	require.NoError(t, err)

	replacement := primitive.NewObjectID()
	require.NoError(t, repo.ReplaceSession(ctx, id, b, replacement))
	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, replacement, c}, got.SessionIDs)

	assert.ErrorIs(t, repo.ReplaceSession(ctx, id, b, primitive.NewObjectID()), repository.ErrNotFound)

	require.NoError(t, repo.RemoveSession(ctx, id, a))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{replacement, c}, got.SessionIDs)
}

func TestPlanGroupIDIsUnique(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewMongoPlanRepository(db)

	plan := newPlan()
	_, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	dup := newPlan()
	dup.GroupID = plan.GroupID
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	exists, err := repo.GroupIDExists(ctx, plan.GroupID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTransactorCommitAndRollback(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewMongoPlanRepository(db)
	tx := NewMongoTransactor(db.Client())

	committed := newPlan()
	require.NoError(t, tx.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, committed)
		return err
	}))
	_, err := repo.GetByGroupID(ctx, committed.GroupID)
	assert.NoError(t, err)

	failure := errors.New("abort")
	aborted := newPlan()
	err = tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, aborted); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)
	_, err = repo.GetByGroupID(ctx, aborted.GroupID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEquipmentNameIndexIsSparse(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewMongoEquipmentRepository(db)

	for _, custom := range []string{"Sandbag", "Tractor Tyre"} {
		_, err := repo.Create(ctx, &domain.Equipment{CustomName: custom, Category: "Miscellaneous"})
		require.NoError(t, err, custom)
	}

	_, err := repo.Create(ctx, &domain.Equipment{Name: "Dumbbell", Category: "Free Weights"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Equipment{Name: "Dumbbell", Category: "Free Weights"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

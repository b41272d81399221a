package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/generation"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewGroupID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := newGroupID()
		require.NoError(t, err)
		assert.Regexp(t, groupIDPattern, id)
		seen[id] = true
	}
	assert.Len(t, seen, 200)
}

func TestGroupLocksSerializeOneGroup(t *testing.T) {
	locks := NewGroupLocks()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("12345678901234567890")
			defer unlock()
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, maxInside.Load())
	assert.Empty(t, locks.locks, "idle groups are forgotten")
}

func TestGroupLocksAreIndependent(t *testing.T) {
	locks := NewGroupLocks()
	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b waited for a")
	}
}

func TestHistorySelectorLimits(t *testing.T) {
	store := newMemStore()
	height := 180.0
	profile := &domain.Profile{ID: primitive.NewObjectID(), HeightCm: &height}

	for i := 0; i < 25; i++ {
		_, err := memWeights{store}.Create(ctx, &domain.WeightEntry{
			ProfileID: profile.ID,
			Date:      monday.AddDate(0, 0, -i),
			WeightKg:  75,
		})
		require.NoError(t, err)
	}
	for i := 0; i < 18; i++ {
		s := &domain.WorkoutSession{ProfileID: profile.ID, Name: "Day", Date: monday.AddDate(0, 0, -i), WorkoutType: "Strength Training"}
		_, err := memSessions{store}.Create(ctx, s)
		require.NoError(t, err)
		_, err = memExercises{store}.Create(ctx, &domain.Exercise{WorkoutID: s.ID, Name: "Squat", Sets: "3", Reps: "5"})
		require.NoError(t, err)
	}
	// someone else's history never leaks in
	_, err := memWeights{store}.Create(ctx, &domain.WeightEntry{ProfileID: primitive.NewObjectID(), Date: monday.AddDate(1, 0, 0), WeightKg: 99})
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		h := NewHistorySelector(memWeights{store}, memSessions{store}, memExercises{store}, 0, 0)
		weights, sessions, err := h.Select(ctx, profile)
		require.NoError(t, err)

		require.Len(t, weights, 20)
		require.Len(t, sessions, 15)
		assert.Equal(t, monday, weights[0].Date)
		assert.Equal(t, monday, sessions[0].Date)
		require.NotNil(t, weights[0].BMI)
		assert.InDelta(t, 23.15, *weights[0].BMI, 0.001)
		require.Len(t, sessions[0].Exercises, 1)
		assert.Equal(t, "Squat", sessions[0].Exercises[0].Name)
	})

	t.Run("configured", func(t *testing.T) {
		h := NewHistorySelector(memWeights{store}, memSessions{store}, memExercises{store}, 3, 2)
		weights, sessions, err := h.Select(ctx, profile)
		require.NoError(t, err)
		assert.Len(t, weights, 3)
		assert.Len(t, sessions, 2)
	})

	t.Run("no height", func(t *testing.T) {
		h := NewHistorySelector(memWeights{store}, memSessions{store}, memExercises{store}, 1, 1)
		weights, _, err := h.Select(ctx, &domain.Profile{ID: profile.ID})
		require.NoError(t, err)
		require.Len(t, weights, 1)
		assert.Nil(t, weights[0].BMI)
	})
}

func TestBuildSessionDateOverride(t *testing.T) {
	plan := &domain.WorkoutPlan{ID: primitive.NewObjectID(), GroupID: "00000000000000000001", ProfileID: primitive.NewObjectID()}
	w := mustWorkout(t, `{"name": "Leg Day", "date": "03/09/2024", "muscle group": ["Quads", "Hamstrings"]}`)

	b, err := buildSession(w, plan, nil, "strength_training", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC), b.session.Date)
	assert.Equal(t, []string{"Quads", "Hamstrings"}, b.session.MuscleGroups)
	assert.Equal(t, plan.GroupID, b.session.GroupID)

	forced := monday
	b, err = buildSession(w, plan, nil, "", &forced)
	require.NoError(t, err)
	assert.Equal(t, monday, b.session.Date)
}

func mustWorkout(t *testing.T, raw string) generation.WorkoutResult {
	t.Helper()
	workouts, err := generation.NormalizeWorkouts(raw)
	require.NoError(t, err)
	return workouts[0]
}

package service

import (
	"alcyxob/ai-trainer/internal/generation"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const replacementDay = `{"name": "Upper Body Blast", "date": "2031-01-01", "goal": "Strength",
	"exercises": [{"name": "Push Up", "sets": 4, "reps": 15, "recommended_weight": "Bodyweight"}],
	"warm_up": "Arm circles", "cool_down": "Chest stretch"}`

func TestRegenerateSessionReplacesOneDay(t *testing.T) {
	f := newFixture(t)
	detail := f.generate(t, 3)
	old := detail.Sessions[1]
	f.gen.replies = []string{replacementDay}

	got, err := f.regen.RegenerateSession(ctx, f.userID, old.ID)
	require.NoError(t, err)

	assert.Equal(t, "Upper Body Blast", got.Name)
	assert.Equal(t, old.Date, got.Date, "the model's date is ignored")
	assert.Equal(t, detail.GroupID, got.GroupID)
	assert.Equal(t, "Arm circles", got.WarmUp.Description)
	require.Len(t, got.Exercises, 1)
	assert.Equal(t, "4", got.Exercises[0].Sets)

	plan, err := f.plans.GetPlan(ctx, f.userID, detail.ID)
	require.NoError(t, err)
	require.Len(t, plan.SessionIDs, 3)
	assert.Equal(t, detail.SessionIDs[0], plan.SessionIDs[0])
	assert.Equal(t, got.ID, plan.SessionIDs[1])
	assert.Equal(t, detail.SessionIDs[2], plan.SessionIDs[2])

	assert.NotContains(t, f.store.sessions, old.ID)
	assert.Len(t, f.store.exercises, 5)
	for _, e := range f.store.exercises {
		assert.NotEqual(t, old.ID, e.WorkoutID)
	}

	prompt := f.gen.lastPrompt()
	assert.Contains(t, prompt, "one day tailored")
	assert.Contains(t, prompt, "The workout should start on 2024-09-03")
	assert.NotContains(t, prompt, "Preferred Workout Days")

	var archived bool
	for key := range f.files.objects {
		archived = archived || strings.HasPrefix(key, "generations/"+detail.GroupID+"/regenerated-")
	}
	assert.True(t, archived)
}

func TestRegenerateSessionFromTextOnlyArchive(t *testing.T) {
	f := newFixture(t)
	detail := f.generate(t, 2)

	query := f.store.queries[detail.GroupID]
	query.Input = nil
	f.store.queries[detail.GroupID] = query

	f.gen.replies = []string{"[" + replacementDay + "]"}
	_, err := f.regen.RegenerateSession(ctx, f.userID, detail.SessionIDs[1])
	require.NoError(t, err)

	prompt := f.gen.lastPrompt()
	assert.Contains(t, prompt, "one day tailored")
	assert.Contains(t, prompt, "The workout should start on 2024-09-03")
	assert.NotContains(t, prompt, "2024-09-02")
}

func TestRegenerateSessionFailureKeepsOldDay(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		genErr  error
		wantErr error
	}{
		{"generation fails", "", fmt.Errorf("%w: quota", generation.ErrGenerationService), generation.ErrGenerationService},
		{"malformed output", "no plan today", nil, generation.ErrMalformedGenerationOutput},
		{"nameless day", `[{"date": "2024-09-03", "exercises": []}]`, nil, ErrPartialMaterialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			detail := f.generate(t, 2)
			f.gen.replies = []string{tt.reply}
			f.gen.err = tt.genErr

			_, err := f.regen.RegenerateSession(ctx, f.userID, detail.SessionIDs[1])
			require.ErrorIs(t, err, tt.wantErr)

			plan, err := f.plans.GetPlan(ctx, f.userID, detail.ID)
			require.NoError(t, err)
			assert.Equal(t, detail.SessionIDs, plan.SessionIDs)
			assert.Len(t, f.store.exercises, 4)
		})
	}
}

func TestRegenerateMissingTarget(t *testing.T) {
	f := newFixture(t)
	detail := f.generate(t, 2)

	_, err := f.regen.RegenerateSession(ctx, f.userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrRegenerationTargetMissing)

	_, err = f.regen.RegenerateExercise(ctx, f.userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrRegenerationTargetMissing)

	delete(f.store.queries, detail.GroupID)
	_, err = f.regen.RegenerateSession(ctx, f.userID, detail.SessionIDs[0])
	assert.ErrorIs(t, err, ErrRegenerationTargetMissing)
	assert.Len(t, f.store.sessions, 2)
}

func TestRegenerateExerciseKeepsSiblings(t *testing.T) {
	f := newFixture(t)
	detail := f.generate(t, 2)
	session := detail.Sessions[0]
	old := session.Exercises[1]
	f.gen.replies = []string{"```json\n[{\"name\": \"Step Up\", \"sets\": \"3\", \"reps\": \"12 per leg\", \"recommended_weight\": 8}]\n```"}

	got, err := f.regen.RegenerateExercise(ctx, f.userID, old.ID)
	require.NoError(t, err)

	assert.Equal(t, "Step Up", got.Name)
	assert.Equal(t, "8", got.RecommendedWeight)
	assert.Equal(t, got.RecommendedWeight, got.ActualWeight)
	assert.Equal(t, session.ID, got.WorkoutID)
	assert.Equal(t, old.Sequence, got.Sequence)
	assert.Contains(t, f.gen.lastPrompt(), "Replace exercise 'Lunge 1', with sets: 3, reps: 12")

	reloaded, err := f.plans.GetSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Exercises, 2)
	assert.Equal(t, session.Exercises[0].ID, reloaded.Exercises[0].ID)
	assert.Equal(t, got.ID, reloaded.Exercises[1].ID)
	assert.NotContains(t, f.store.exercises, old.ID)
	assert.Len(t, f.store.exercises, 4)

	plan, err := f.plans.GetPlan(ctx, f.userID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.GroupID, plan.GroupID)
	assert.Equal(t, detail.SessionIDs, plan.SessionIDs)
}

func TestRegenerateExerciseFailureKeepsOld(t *testing.T) {
	f := newFixture(t)
	detail := f.generate(t, 1)
	old := detail.Sessions[0].Exercises[0]
	f.gen.err = fmt.Errorf("%w: %w", generation.ErrGenerationService, errors.New("deadline exceeded"))

	_, err := f.regen.RegenerateExercise(ctx, f.userID, old.ID)
	require.ErrorIs(t, err, generation.ErrGenerationService)

	stored, ok := f.store.exercises[old.ID]
	require.True(t, ok)
	assert.Equal(t, old.Name, stored.Name)
}

func TestReplayPromptPrefersStructuredInput(t *testing.T) {
	f := newFixture(t)
	detail := f.generate(t, 3)
	query := f.store.queries[detail.GroupID]
	session := f.store.sessions[detail.SessionIDs[2]]

	prompt, err := replayPrompt(&query, &session)
	require.NoError(t, err)
	assert.Contains(t, prompt, "The workout should start on 2024-09-04")
	assert.Contains(t, prompt, "one day tailored")
	assert.Equal(t, "week", string(query.Input.Duration), "the archive itself is not modified")
}

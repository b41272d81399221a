package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWorkoutsFencedExample(t *testing.T) {
	raw := "```json\n" + `[{"name":"Leg Day","goal":"strength","date":"2024-11-01","exercises":[{"name":"Squat","sets":"3","reps":"8","recommended_weight":"40kg","description":"form"}],"warm_up":"jog","cool_down":"stretch","explanation":"x"}]` + "\n```"

	workouts, err := NormalizeWorkouts(raw)
	require.NoError(t, err)
	require.Len(t, workouts, 1)

	w := workouts[0]
	assert.Equal(t, "Leg Day", w.Name.String())
	assert.Equal(t, "2024-11-01", w.Date.String())
	require.Len(t, w.Exercises, 1)
	assert.Equal(t, "40kg", w.Exercises[0].RecommendedWeight.String())
	assert.Equal(t, "jog", w.WarmUp.String())
}

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t"} {
		workouts, err := NormalizeWorkouts(raw)
		assert.Nil(t, workouts)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedGenerationOutput)
	}
}

func TestNormalizeRepairs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // first exercise reps
	}{
		{"bare json prefix", `json [{"name":"A","exercises":[{"name":"x","reps":"8"}]}]`, "8"},
		{"doubled braces", `[{{"name":"A","exercises":[{{"name":"x","reps":"8"}}]}}]`, "8"},
		{"unquoted range", "[{\"name\":\"A\",\"exercises\":[{\"name\":\"x\",\"sets\": 3, \"reps\": 8-12, \"recommended_weight\": 10 kg}]}]", "8-12"},
		{"numeric reps", `[{"name":"A","exercises":[{"name":"x","reps":10}]}]`, "10"},
		{"single object", `{"name":"A","exercises":[{"name":"x","reps":"5"}]}`, "5"},
		{"prose around fence", "Here is your plan:\n```\n[{\"name\":\"A\",\"exercises\":[{\"name\":\"x\",\"reps\":\"6\"}]}]\n```\nEnjoy!", "6"},
		{"fence without newline", "```[{\"name\":\"A\",\"exercises\":[{\"name\":\"x\",\"reps\":\"7\"}]}]```", "7"},
		{"tag glued to body", "```json[{\"name\":\"A\",\"exercises\":[{\"name\":\"x\",\"reps\":\"9\"}]}]```", "9"},
		{"tag and body on one line", "```json [{\"name\":\"A\",\"exercises\":[{\"name\":\"x\",\"reps\":\"11\"}]}]\n```", "11"},
		{"bare json prefix on its own line", "json\n[{\"name\":\"A\",\"exercises\":[{\"name\":\"x\",\"reps\":\"4\"}]}]", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workouts, err := NormalizeWorkouts(tt.raw)
			require.NoError(t, err)
			require.Len(t, workouts, 1)
			assert.Equal(t, "A", workouts[0].Name.String())
			require.NotEmpty(t, workouts[0].Exercises)
			assert.Equal(t, tt.want, workouts[0].Exercises[0].Reps.String())
		})
	}
}

func TestNormalizeUnquotedValuesKeepOtherFields(t *testing.T) {
	raw := "[{\"name\":\"A\",\"exercises\":[{\"name\":\"Lunge\",\"sets\": 3, \"reps\": 10 per leg, \"recommended_weight\": 10 kg}]}]"

	workouts, err := NormalizeWorkouts(raw)
	require.NoError(t, err)
	ex := workouts[0].Exercises[0]
	assert.Equal(t, "3", ex.Sets.String())
	assert.Equal(t, "10 per leg", ex.Reps.String())
	assert.Equal(t, "10 kg", ex.RecommendedWeight.String())
}

func TestNormalizeMuscleGroupList(t *testing.T) {
	workouts, err := NormalizeWorkouts(`[{"name":"A","muscle group":["Legs","Glutes"]}]`)
	require.NoError(t, err)
	assert.Equal(t, "Legs, Glutes", workouts[0].MuscleGroup.String())
}

func TestNormalizeRoundTripThroughFence(t *testing.T) {
	type workout struct {
		Name      string `json:"name"`
		Goal      string `json:"goal"`
		Date      string `json:"date"`
		WarmUp    string `json:"warm_up"`
		CoolDown  string `json:"cool_down"`
		Exercises []struct {
			Name string `json:"name"`
			Sets string `json:"sets"`
			Reps string `json:"reps"`
		} `json:"exercises"`
	}

	const n = 7
	in := make([]workout, n)
	for i := range in {
		in[i] = workout{
			Name:     fmt.Sprintf("Day %d", i+1),
			Goal:     "strength",
			Date:     fmt.Sprintf("2024-10-%02d", i+1),
			WarmUp:   "jog {easy}",
			CoolDown: "stretch",
		}
		in[i].Exercises = append(in[i].Exercises, struct {
			Name string `json:"name"`
			Sets string `json:"sets"`
			Reps string `json:"reps"`
		}{Name: "Squat", Sets: "3", Reps: fmt.Sprint(5 + i)})
	}

	body, err := json.MarshalIndent(in, "", "  ")
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + string(body) + "\n```",
		"```\n" + string(body) + "\n```",
		string(body),
	} {
		out, err := NormalizeWorkouts(wrapped)
		require.NoError(t, err)
		require.Len(t, out, n)
		for i := range in {
			assert.Equal(t, in[i].Name, out[i].Name.String())
			assert.Equal(t, in[i].Date, out[i].Date.String())
			assert.Equal(t, in[i].WarmUp, out[i].WarmUp.String())
			assert.Equal(t, in[i].CoolDown, out[i].CoolDown.String())
			require.Len(t, out[i].Exercises, 1)
			assert.Equal(t, in[i].Exercises[0].Reps, out[i].Exercises[0].Reps.String())
		}
	}
}

func TestNormalizeMalformedCarriesBoundedText(t *testing.T) {
	raw := "[{" + strings.Repeat("x", 5000)

	_, err := NormalizeWorkouts(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedGenerationOutput)

	var mErr *MalformedOutputError
	require.True(t, errors.As(err, &mErr))
	assert.Len(t, mErr.Text, maxDiagnosticChars)
	assert.NotNil(t, mErr.Err)
}

func TestNormalizeRejectsEmptyList(t *testing.T) {
	_, err := NormalizeWorkouts("[]")
	assert.ErrorIs(t, err, ErrMalformedGenerationOutput)
}

func TestNormalizeExercises(t *testing.T) {
	raw := "```json\n[\n  {\"name\": \"Goblet Squat\", \"sets\": \"3\", \"reps\": \"10\", \"recommended_weight\": \"16 kg\", \"description\": \"upright\"}\n]\n```"

	exercises, err := NormalizeExercises(raw)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Goblet Squat", exercises[0].Name.String())
	assert.Equal(t, "16 kg", exercises[0].RecommendedWeight.String())
}

func TestParseWorkoutDate(t *testing.T) {
	for _, s := range []string{"2024-10-28", "28-10-2024", "28/10/2024", "2024-10-28T09:00:00Z"} {
		d, err := ParseWorkoutDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, "2024-10-28", d.Format(DateLayout), s)
	}

	_, err := ParseWorkoutDate("")
	assert.Error(t, err)
	_, err = ParseWorkoutDate("next tuesday")
	assert.Error(t, err)
}

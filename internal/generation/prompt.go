package generation

import (
	"alcyxob/ai-trainer/internal/domain"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the date format used inside prompts.
const DateLayout = "2006-01-02"

// outputSchema is the structure every plan response must follow.
const outputSchema = `Format the entire response as valid JSON as follows:
[{
  "name": "Workout Name",
  "goal": "Goal of the workout",
  "muscle group": "Muscle group worked",
  "location": "Location of workout",
  "date": "28-10-2024",
  "exercises": [
    {
      "name": "Exercise Name",
      "sets": "3",
      "reps": "10 per leg",
      "recommended_weight": "10 kg",
      "description": "Exercise description"
    }
  ],
  "warm_up": "Warm-up details",
  "cool_down": "Cool-down details",
  "important_considerations": "Important considerations",
  "explanation": "Detailed explanation of the workout"
}]
`

const exerciseSchema = `Format the entire response as JSON as follows:
[
    {
        "name": "Exercise Name",
        "sets": "3",
        "reps": "10 per leg",
        "recommended_weight": "10 kg",
        "description": "Exercise description"
    }
]
`

// ComposePlanPrompt renders the plan request. Sections always appear in the
// same order; personal-info lines are only written for fields that are set.
func ComposePlanPrompt(in domain.PromptInput) (string, error) {
	if in.Location == nil {
		return "", ErrLocationNotFound
	}
	if !in.Duration.Valid() {
		return "", fmt.Errorf("unknown plan duration %q", in.Duration)
	}

	var b strings.Builder
	p := in.Profile

	fmt.Fprintf(&b, "Imagine you are a personal trainer. Create a unique and challenging workout plan for one %s "+
		"tailored to the individual's current fitness goals and workout frequency. Avoid repetition of past exercises while "+
		"ensuring a focus on under-targeted muscle groups based on workout history and user preference. "+
		"The workout should start on %s\n\n", in.Duration, in.StartDate.Format(DateLayout))

	b.WriteString("--- Personal Info ---\n")
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	line("Fitness Goals", domain.JoinLabels(p.FitnessGoals, domain.GoalLabel))
	line("Preferred Workout Type", domain.JoinLabels(strings.Split(in.WorkoutType, ","), domain.WorkoutTypeLabel))
	if in.MaxMinutes > 0 {
		fmt.Fprintf(&b, "Workout should not take longer than: %d minutes\n", in.MaxMinutes)
	}
	line("Preferred Workout Intensity", p.PreferredIntensity)
	line("Fitness Level", p.FitnessLevel)
	if p.WorkoutsPerWeek > 0 {
		fmt.Fprintf(&b, "Workouts Per Week: %d\n", p.WorkoutsPerWeek)
	}
	line("Current injuries to consider", p.CurrentInjuries)
	line("Specific Muscle Groups to Focus on", strings.Join(p.SpecificMuscleGroups, ", "))
	line("Cardio Preferences", strings.Join(p.CardioPreferences, ", "))
	if in.Duration == domain.DurationWeek {
		line("Preferred Workout Days", strings.Join(p.WorkoutDays, ", "))
		line("Recovery and Rest", strings.Join(p.RecoveryAndRest, ", "))
	}

	b.WriteString("\n--- Workout Location & Available Equipment ---\n")
	fmt.Fprintf(&b, "Location: %s\n", in.Location.Name)
	b.WriteString("Available Equipment for the Workout:\n")
	for _, e := range in.Location.Equipment {
		fmt.Fprintf(&b, "  - %s\n", e)
	}

	b.WriteString("\n--- Weight History ---\n")
	for _, w := range in.Weights {
		bmi := "n/a"
		if w.BMI != nil {
			bmi = fmt.Sprintf("%.2f", *w.BMI)
		}
		fmt.Fprintf(&b, "  - Date: %s, Weight: %.1f kg, BMI: %s\n", w.Date.Format(DateLayout), w.WeightKg, bmi)
	}

	b.WriteString("\n--- Past Workouts ---\n")
	for _, s := range in.Sessions {
		fmt.Fprintf(&b, "  - Date: %s\n", s.Date.Format(DateLayout))
		fmt.Fprintf(&b, "    Type: %s\n", s.WorkoutType)
		fmt.Fprintf(&b, "    Duration: %s mins\n", optionalInt(s.TimeTakenMinutes))
		fmt.Fprintf(&b, "    Difficulty: %s\n", optionalInt(s.DifficultyRating))
		b.WriteString("    Exercises:\n")
		for _, e := range s.Exercises {
			load := e.ActualWeight
			if load == "" {
				load = "Bodyweight"
			}
			fmt.Fprintf(&b, "      - %s: Sets %s, Reps %s, Weight: %s\n", e.Name, e.Sets, e.Reps, load)
		}
	}

	b.WriteString("\n--- Structured Workout Plan ---\n")
	b.WriteString(outputSchema)
	return b.String(), nil
}

func optionalInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprint(*v)
}

// ComposeExercisePrompt asks for a single replacement exercise working the
// same muscles as the one given.
func ComposeExercisePrompt(name, sets, reps string) string {
	return fmt.Sprintf("Replace exercise '%s', with sets: %s, reps: %s, "+
		"the replacement exercise should target similar muscle groups. ", name, sets, reps) + exerciseSchema
}

var startDatePattern = regexp.MustCompile(`The workout should start on \d{4}-\d{2}-\d{2}`)

// RewriteArchivedPrompt turns an archived week prompt into a one-day prompt
// starting on date. Text without the expected tokens is returned unchanged.
// Only used for archives written without their structured input.
func RewriteArchivedPrompt(prompt string, date time.Time) string {
	out := startDatePattern.ReplaceAllLiteralString(prompt, "The workout should start on "+date.Format(DateLayout))
	return strings.ReplaceAll(out, "one week tailored", "one day tailored")
}

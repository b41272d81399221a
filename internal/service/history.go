package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistorySelector picks the slice of a user's history embedded in a prompt:
// the latest weight entries and the latest sessions with their exercises.
type HistorySelector struct {
	weights   repository.WeightRepository
	sessions  repository.SessionRepository
	exercises repository.ExerciseRepository

	weightLimit  int
	sessionLimit int
}

func NewHistorySelector(weights repository.WeightRepository, sessions repository.SessionRepository, exercises repository.ExerciseRepository, weightLimit, sessionLimit int) *HistorySelector {
	if weightLimit <= 0 {
		weightLimit = 20
	}
	if sessionLimit <= 0 {
		sessionLimit = 15
	}
	return &HistorySelector{
		weights:      weights,
		sessions:     sessions,
		exercises:    exercises,
		weightLimit:  weightLimit,
		sessionLimit: sessionLimit,
	}
}

// Select returns both lists newest first.
func (h *HistorySelector) Select(ctx context.Context, profile *domain.Profile) ([]domain.WeightReading, []domain.SessionSummary, error) {
	entries, err := h.weights.ListLatest(ctx, profile.ID, h.weightLimit)
	if err != nil {
		return nil, nil, err
	}
	weights := make([]domain.WeightReading, 0, len(entries))
	for _, e := range entries {
		weights = append(weights, domain.WeightReading{
			Date:     e.Date,
			WeightKg: e.WeightKg,
			BMI:      domain.BMI(e.WeightKg, profile.HeightCm),
		})
	}

	sessions, err := h.sessions.ListLatestByProfileID(ctx, profile.ID, h.sessionLimit)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	exercises, err := h.exercises.GetByWorkoutIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byWorkout := groupExercises(exercises)

	summaries := make([]domain.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summary := domain.SessionSummary{
			Date:             s.Date,
			WorkoutType:      s.WorkoutType,
			TimeTakenMinutes: s.TimeTakenMinutes,
			DifficultyRating: s.DifficultyRating,
			Exercises:        []domain.ExerciseSummary{},
		}
		for _, e := range byWorkout[s.ID] {
			summary.Exercises = append(summary.Exercises, domain.ExerciseSummary{
				Name:         e.Name,
				Sets:         e.Sets,
				Reps:         e.Reps,
				ActualWeight: e.ActualWeight,
			})
		}
		summaries = append(summaries, summary)
	}
	return weights, summaries, nil
}

func groupExercises(exercises []domain.Exercise) map[primitive.ObjectID][]domain.Exercise {
	out := make(map[primitive.ObjectID][]domain.Exercise)
	for _, e := range exercises {
		out[e.WorkoutID] = append(out[e.WorkoutID], e)
	}
	return out
}

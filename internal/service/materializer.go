package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxGroupIDAttempts = 5

// PlanRepositories groups the stores a workout plan spans.
type PlanRepositories struct {
	Tx        repository.Transactor
	Profiles  repository.ProfileRepository
	Locations repository.LocationRepository
	Equipment repository.EquipmentRepository
	Plans     repository.PlanRepository
	Queries   repository.QueryRepository
	Sessions  repository.SessionRepository
	Exercises repository.ExerciseRepository
}

// SessionDetail is a session with its exercises.
type SessionDetail struct {
	domain.WorkoutSession
	Exercises []domain.Exercise `json:"exercises"`
}

// PlanDetail is a plan with its sessions in plan order.
type PlanDetail struct {
	domain.WorkoutPlan
	Sessions []SessionDetail `json:"sessions"`
}

type sessionBundle struct {
	session   *domain.WorkoutSession
	exercises []*domain.Exercise
}

// buildSession converts one generated workout into documents for plan.
// A non-nil date overrides the one the model picked. Missing names or
// unreadable dates are errors: nothing is stored with a blank field.
func buildSession(w generation.WorkoutResult, plan *domain.WorkoutPlan, locationID *primitive.ObjectID, workoutType string, date *time.Time) (*sessionBundle, error) {
	name := w.Name.String()
	if name == "" {
		return nil, errors.New("workout has no name")
	}

	var day time.Time
	if date != nil {
		day = *date
	} else {
		parsed, err := generation.ParseWorkoutDate(w.Date.String())
		if err != nil {
			return nil, fmt.Errorf("workout %q: %w", name, err)
		}
		day = parsed
	}

	session := &domain.WorkoutSession{
		ID:             primitive.NewObjectID(),
		GroupID:        plan.GroupID,
		PlanID:         plan.ID,
		ProfileID:      plan.ProfileID,
		Name:           name,
		Goal:           w.Goal.String(),
		Explanation:    w.Explanation.String(),
		Considerations: w.ImportantConsiderations.String(),
		Description:    w.Explanation.String(),
		Date:           day,
		LocationID:     locationID,
		WorkoutType:    workoutType,
		MuscleGroups:   splitList(w.MuscleGroup.String()),
		WarmUp:         domain.WarmUp{Description: w.WarmUp.String()},
		CoolDown:       domain.CoolDown{Description: w.CoolDown.String()},
	}

	bundle := &sessionBundle{session: session}
	for i, e := range w.Exercises {
		exercise, err := buildExercise(e, session.ID, i)
		if err != nil {
			return nil, fmt.Errorf("workout %q: %w", name, err)
		}
		bundle.exercises = append(bundle.exercises, exercise)
	}
	return bundle, nil
}

// buildExercise seeds the actual weight with the recommended one; the user
// overwrites it after training.
func buildExercise(e generation.ExerciseResult, workoutID primitive.ObjectID, sequence int) (*domain.Exercise, error) {
	name := e.Name.String()
	if name == "" {
		return nil, fmt.Errorf("exercise %d has no name", sequence+1)
	}
	return &domain.Exercise{
		WorkoutID:         workoutID,
		Name:              name,
		Sets:              e.Sets.String(),
		Reps:              e.Reps.String(),
		RecommendedWeight: e.RecommendedWeight.String(),
		ActualWeight:      e.RecommendedWeight.String(),
		Description:       e.Description.String(),
		Sequence:          sequence,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// mintGroupID draws ids until one is unused. The unique index on
// workout_plans still guards against a concurrent insert of the same id.
func (r PlanRepositories) mintGroupID(ctx context.Context) (string, error) {
	for i := 0; i < maxGroupIDAttempts; i++ {
		id, err := newGroupID()
		if err != nil {
			return "", err
		}
		exists, err := r.Plans.GroupIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.New("could not mint an unused group id")
}

func (r PlanRepositories) insertSession(ctx context.Context, b *sessionBundle) error {
	if _, err := r.Sessions.Create(ctx, b.session); err != nil {
		return err
	}
	for _, e := range b.exercises {
		if _, err := r.Exercises.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// deleteSession removes a session and its exercises. Warm-up and cool-down
// are part of the session document.
func (r PlanRepositories) deleteSession(ctx context.Context, sessionID primitive.ObjectID) error {
	if _, err := r.Exercises.DeleteByWorkoutIDs(ctx, []primitive.ObjectID{sessionID}); err != nil {
		return err
	}
	return r.Sessions.Delete(ctx, sessionID)
}

func (r PlanRepositories) sessionDetail(ctx context.Context, session *domain.WorkoutSession) (*SessionDetail, error) {
	exercises, err := r.Exercises.GetByWorkoutIDs(ctx, []primitive.ObjectID{session.ID})
	if err != nil {
		return nil, err
	}
	return &SessionDetail{WorkoutSession: *session, Exercises: exercises}, nil
}

func (r PlanRepositories) planDetail(ctx context.Context, plan *domain.WorkoutPlan) (*PlanDetail, error) {
	sessions, err := r.Sessions.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	exercises, err := r.Exercises.GetByWorkoutIDs(ctx, plan.SessionIDs)
	if err != nil {
		return nil, err
	}
	byWorkout := groupExercises(exercises)
	byID := make(map[primitive.ObjectID]domain.WorkoutSession, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
	}

	detail := &PlanDetail{WorkoutPlan: *plan, Sessions: []SessionDetail{}}
	for _, id := range plan.SessionIDs {
		s, ok := byID[id]
		if !ok {
			continue
		}
		ex := byWorkout[id]
		if ex == nil {
			ex = []domain.Exercise{}
		}
		detail.Sessions = append(detail.Sessions, SessionDetail{WorkoutSession: s, Exercises: ex})
	}
	return detail, nil
}

// ownedSession loads a session and checks it belongs to profileID. Someone
// else's session is reported as missing.
func (r PlanRepositories) ownedSession(ctx context.Context, profileID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := r.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.ProfileID != profileID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r PlanRepositories) ownedExercise(ctx context.Context, profileID, exerciseID primitive.ObjectID) (*domain.Exercise, *domain.WorkoutSession, error) {
	exercise, err := r.Exercises.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrExerciseNotFound
		}
		return nil, nil, err
	}
	session, err := r.ownedSession(ctx, profileID, exercise.WorkoutID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil, ErrExerciseNotFound
		}
		return nil, nil, err
	}
	return exercise, session, nil
}

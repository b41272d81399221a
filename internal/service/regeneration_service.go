package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/logger"
	"alcyxob/ai-trainer/internal/repository"
	"alcyxob/ai-trainer/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegenerationService replaces a single day or a single exercise of an
// existing plan and leaves the rest of the group as it was.
type RegenerationService interface {
	RegenerateSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*SessionDetail, error)
	RegenerateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
}

type regenerationService struct {
	repos     PlanRepositories
	generator generation.Generator
	storage   storage.FileStorage
	locks     *GroupLocks
}

// NewRegenerationService must share locks with the PlanService so that
// deletes and regenerations of one group are serialized.
func NewRegenerationService(repos PlanRepositories, generator generation.Generator, fileStorage storage.FileStorage, locks *GroupLocks) RegenerationService {
	return &regenerationService{
		repos:     repos,
		generator: generator,
		storage:   fileStorage,
		locks:     locks,
	}
}

func missingTarget(err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrExerciseNotFound) || errors.Is(err, ErrPlanNotFound) {
		return ErrRegenerationTargetMissing
	}
	return err
}

// RegenerateSession replays the archived input of the session's group as a
// one-day request for the session's date and swaps the result in, keeping
// the group id and the session's position in the plan.
func (s *regenerationService) RegenerateSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*SessionDetail, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	session, err := s.repos.ownedSession(ctx, profile.ID, sessionID)
	if err != nil {
		return nil, missingTarget(err)
	}

	unlock := s.locks.Lock(session.GroupID)
	defer unlock()

	// Reload under the lock: a concurrent delete or regeneration may have won.
	session, err = s.repos.ownedSession(ctx, profile.ID, sessionID)
	if err != nil {
		return nil, missingTarget(err)
	}
	plan, err := s.repos.Plans.GetByID(ctx, session.PlanID)
	if err != nil {
		return nil, missingTarget(err)
	}
	query, err := s.repos.Queries.GetByGroupID(ctx, session.GroupID)
	if err != nil {
		return nil, missingTarget(err)
	}

	prompt, err := replayPrompt(query, session)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	workouts, err := generation.NormalizeWorkouts(raw)
	if err != nil {
		logMalformed(err)
		return nil, err
	}

	var replacement *sessionBundle
	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := buildSession(workouts[0], plan, session.LocationID, session.WorkoutType, &session.Date)
		if err != nil {
			return err
		}
		if err := s.repos.deleteSession(ctx, session.ID); err != nil {
			return err
		}
		if err := s.repos.insertSession(ctx, b); err != nil {
			return err
		}
		if err := s.repos.Plans.ReplaceSession(ctx, plan.ID, session.ID, b.session.ID); err != nil {
			return err
		}
		replacement = b
		return nil
	})
	if err != nil {
		logger.Error("day regeneration aborted", "group_id", session.GroupID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPartialMaterialization, err)
	}
	archiveResponse(ctx, s.storage, session.GroupID, "regenerated-"+uuid.NewString()+".txt", raw)

	logger.Info("workout day regenerated", "group_id", session.GroupID, "replaced", session.ID.Hex(), "session", replacement.session.ID.Hex())
	return s.repos.sessionDetail(ctx, replacement.session)
}

// replayPrompt rebuilds the prompt from the archived structured input with
// the duration set to one day and the start date set to the session's date.
// Archives without structured input fall back to rewriting the stored text.
func replayPrompt(query *domain.GeneratedQuery, session *domain.WorkoutSession) (string, error) {
	if query.Input == nil {
		return generation.RewriteArchivedPrompt(query.Prompt, session.Date), nil
	}
	in := *query.Input
	in.Duration = domain.DurationDay
	in.StartDate = session.Date
	return generation.ComposePlanPrompt(in)
}

// RegenerateExercise asks for one replacement exercise and swaps it in under
// the same session and sequence. A failed generation leaves the old one.
func (s *regenerationService) RegenerateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	_, session, err := s.repos.ownedExercise(ctx, profile.ID, exerciseID)
	if err != nil {
		return nil, missingTarget(err)
	}

	unlock := s.locks.Lock(session.GroupID)
	defer unlock()

	exercise, _, err := s.repos.ownedExercise(ctx, profile.ID, exerciseID)
	if err != nil {
		return nil, missingTarget(err)
	}

	raw, err := s.generator.Generate(ctx, generation.ComposeExercisePrompt(exercise.Name, exercise.Sets, exercise.Reps))
	if err != nil {
		return nil, err
	}
	results, err := generation.NormalizeExercises(raw)
	if err != nil {
		logMalformed(err)
		return nil, err
	}

	var replacement *domain.Exercise
	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		e, err := buildExercise(results[0], exercise.WorkoutID, exercise.Sequence)
		if err != nil {
			return err
		}
		if err := s.repos.Exercises.Delete(ctx, exercise.ID); err != nil {
			return err
		}
		if _, err := s.repos.Exercises.Create(ctx, e); err != nil {
			return err
		}
		replacement = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPartialMaterialization, err)
	}

	logger.Info("exercise regenerated", "group_id", session.GroupID, "replaced", exercise.ID.Hex(), "exercise", replacement.ID.Hex())
	return replacement, nil
}

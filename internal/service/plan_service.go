package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/logger"
	"alcyxob/ai-trainer/internal/repository"
	"alcyxob/ai-trainer/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateRequest holds the per-request plan options. Zero values fall back
// to the profile: workout type to the joined workout preferences, location
// to the preferred location, length to the preferred workout time.
type GenerateRequest struct {
	Duration    domain.PlanDuration
	StartDate   time.Time
	WorkoutType string
	LocationID  *primitive.ObjectID
	MaxMinutes  int
}

type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, req GenerateRequest) (*PlanDetail, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetail, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
	GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*SessionDetail, error)
	DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error
	UpdateSessionFeedback(ctx context.Context, userID, sessionID primitive.ObjectID, feedback domain.SessionFeedback) (*SessionDetail, error)
	UpdateExerciseWeight(ctx context.Context, userID, exerciseID primitive.ObjectID, weight string) (*domain.Exercise, error)
	// ExportPlan uploads the plan as JSON and returns a temporary download URL.
	ExportPlan(ctx context.Context, userID, planID primitive.ObjectID) (string, error)
}

type planService struct {
	repos     PlanRepositories
	history   *HistorySelector
	generator generation.Generator
	storage   storage.FileStorage // nil when object storage is not configured
	locks     *GroupLocks
	now       func() time.Time
}

func NewPlanService(repos PlanRepositories, history *HistorySelector, generator generation.Generator, fileStorage storage.FileStorage, locks *GroupLocks) PlanService {
	return &planService{
		repos:     repos,
		history:   history,
		generator: generator,
		storage:   fileStorage,
		locks:     locks,
		now:       time.Now,
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, req GenerateRequest) (*PlanDetail, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}

	if req.Duration == "" {
		req.Duration = domain.DurationWeek
	}
	if !req.Duration.Valid() || req.MaxMinutes < 0 {
		return nil, ErrValidationFailed
	}
	if req.StartDate.IsZero() {
		req.StartDate = s.now().UTC()
	}
	req.StartDate = time.Date(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	if strings.TrimSpace(req.WorkoutType) == "" {
		req.WorkoutType = strings.Join(profile.WorkoutPreferences, ", ")
	}
	if req.MaxMinutes == 0 {
		req.MaxMinutes = profile.PreferredWorkoutTime
	}
	if req.LocationID == nil {
		req.LocationID = profile.PreferredLocationID
	}

	snapshot, err := s.locationSnapshot(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	weights, sessions, err := s.history.Select(ctx, profile)
	if err != nil {
		return nil, err
	}

	input := domain.PromptInput{
		Duration:    req.Duration,
		StartDate:   req.StartDate,
		Profile:     *profile,
		WorkoutType: req.WorkoutType,
		MaxMinutes:  req.MaxMinutes,
		Location:    snapshot,
		Weights:     weights,
		Sessions:    sessions,
	}
	prompt, err := generation.ComposePlanPrompt(input)
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

	plan, err := s.materialize(ctx, profile.ID, req.LocationID, input, prompt, workouts)
	if err != nil {
		return nil, err
	}
	archiveResponse(ctx, s.storage, plan.GroupID, "response.txt", raw)

	logger.Info("workout plan generated", "group_id", plan.GroupID, "sessions", len(plan.SessionIDs), "user_id", userID.Hex())
	return s.repos.planDetail(ctx, plan)
}

// locationSnapshot resolves the location and its equipment names for the prompt.
func (s *planService) locationSnapshot(ctx context.Context, id *primitive.ObjectID) (*domain.LocationSnapshot, error) {
	if id == nil {
		return nil, generation.ErrLocationNotFound
	}
	location, err := s.repos.Locations.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, generation.ErrLocationNotFound
		}
		return nil, err
	}
	equipment, err := s.repos.Equipment.GetByIDs(ctx, location.EquipmentIDs)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.LocationSnapshot{Name: location.Name, Equipment: make([]string, 0, len(equipment))}
	for i := range equipment {
		snapshot.Equipment = append(snapshot.Equipment, equipment[i].DisplayName())
	}
	return snapshot, nil
}

// materialize stores the plan, its archived query, every session and every
// exercise in one transaction under a fresh group id.
func (s *planService) materialize(ctx context.Context, profileID primitive.ObjectID, locationID *primitive.ObjectID, input domain.PromptInput, prompt string, workouts []generation.WorkoutResult) (*domain.WorkoutPlan, error) {
	groupID, err := s.repos.mintGroupID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPartialMaterialization, err)
	}
	unlock := s.locks.Lock(groupID)
	defer unlock()

	var plan *domain.WorkoutPlan
	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		// Built inside the closure: the transaction may be retried.
		plan = &domain.WorkoutPlan{
			ID:        primitive.NewObjectID(),
			GroupID:   groupID,
			ProfileID: profileID,
			Duration:  input.Duration,
			StartDate: input.StartDate,
		}

		bundles := make([]*sessionBundle, 0, len(workouts))
		for i, w := range workouts {
			b, err := buildSession(w, plan, locationID, input.WorkoutType, nil)
			if err != nil {
				return fmt.Errorf("day %d: %w", i+1, err)
			}
			bundles = append(bundles, b)
			plan.SessionIDs = append(plan.SessionIDs, b.session.ID)
		}

		if _, err := s.repos.Plans.Create(ctx, plan); err != nil {
			return err
		}
		query := &domain.GeneratedQuery{GroupID: groupID, ProfileID: profileID, Prompt: prompt, Input: &input}
		if _, err := s.repos.Queries.Create(ctx, query); err != nil {
			return err
		}
		for _, b := range bundles {
			if err := s.repos.insertSession(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("plan materialization aborted", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPartialMaterialization, err)
	}
	return plan, nil
}

// archiveResponse keeps the raw model output next to the plan. Best effort.
func archiveResponse(ctx context.Context, fs storage.FileStorage, groupID, name, raw string) {
	if fs == nil {
		return
	}
	key := fmt.Sprintf("generations/%s/%s", groupID, name)
	if err := fs.PutObject(ctx, key, "text/plain; charset=utf-8", []byte(raw)); err != nil {
		logger.Warn("failed to archive generation output", "group_id", groupID, "error", err)
	}
}

func logMalformed(err error) {
	var mErr *generation.MalformedOutputError
	if errors.As(err, &mErr) {
		logger.Warn("unparseable generation output", "error", mErr.Err, "text", mErr.Text)
	}
}

func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	return s.repos.Plans.ListByProfileID(ctx, profile.ID)
}

func (s *planService) ownedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	plan, err := s.repos.Plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.ProfileID != profile.ID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetail, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return s.repos.planDetail(ctx, plan)
}

// DeletePlan removes the plan with all its sessions and exercises. The
// archived query stays for audit.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(plan.GroupID)
	defer unlock()

	return s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		sessions, err := s.repos.Sessions.GetByPlanID(ctx, plan.ID)
		if err != nil {
			return err
		}
		ids := make([]primitive.ObjectID, 0, len(sessions))
		for _, session := range sessions {
			ids = append(ids, session.ID)
		}
		if _, err := s.repos.Exercises.DeleteByWorkoutIDs(ctx, ids); err != nil {
			return err
		}
		if _, err := s.repos.Sessions.DeleteByPlanID(ctx, plan.ID); err != nil {
			return err
		}
		if err := s.repos.Plans.Delete(ctx, plan.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPlanNotFound
			}
			return err
		}
		return nil
	})
}

func (s *planService) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*SessionDetail, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	session, err := s.repos.ownedSession(ctx, profile.ID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.repos.sessionDetail(ctx, session)
}

// DeleteSession removes one day of a plan. Sibling sessions are untouched;
// a plan left without sessions is deleted with it.
func (s *planService) DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return err
	}
	session, err := s.repos.ownedSession(ctx, profile.ID, sessionID)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(session.GroupID)
	defer unlock()

	return s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repos.deleteSession(ctx, session.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		err := s.repos.Plans.RemoveSession(ctx, session.PlanID, session.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		plan, err := s.repos.Plans.GetByID(ctx, session.PlanID)
		if err != nil {
			return err
		}
		if len(plan.SessionIDs) > 0 {
			return nil
		}
		// Last day gone: drop the empty aggregate, the archived query stays.
		return s.repos.Plans.Delete(ctx, plan.ID)
	})
}

func (s *planService) UpdateSessionFeedback(ctx context.Context, userID, sessionID primitive.ObjectID, feedback domain.SessionFeedback) (*SessionDetail, error) {
	if !validRating(feedback.DifficultyRating) || !validRating(feedback.EnjoymentRating) {
		return nil, ErrValidationFailed
	}
	if feedback.TimeTakenMinutes != nil && *feedback.TimeTakenMinutes < 0 {
		return nil, ErrValidationFailed
	}

	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.ownedSession(ctx, profile.ID, sessionID); err != nil {
		return nil, err
	}
	if err := s.repos.Sessions.UpdateFeedback(ctx, sessionID, feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, userID, sessionID)
}

// validRating accepts an unset rating or 1..10.
func validRating(r *int) bool {
	return r == nil || (*r >= 1 && *r <= 10)
}

func (s *planService) UpdateExerciseWeight(ctx context.Context, userID, exerciseID primitive.ObjectID, weight string) (*domain.Exercise, error) {
	profile, err := profileForUser(ctx, s.repos.Profiles, userID)
	if err != nil {
		return nil, err
	}
	exercise, _, err := s.repos.ownedExercise(ctx, profile.ID, exerciseID)
	if err != nil {
		return nil, err
	}

	weight = strings.TrimSpace(weight)
	if err := s.repos.Exercises.UpdateActualWeight(ctx, exercise.ID, weight); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	exercise.ActualWeight = weight
	return exercise, nil
}

func (s *planService) ExportPlan(ctx context.Context, userID, planID primitive.ObjectID) (string, error) {
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}
	detail, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	key := fmt.Sprintf("exports/%s/%s.json", detail.GroupID, uuid.NewString())
	if err := s.storage.PutObject(ctx, key, "application/json", body); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return url, nil
}

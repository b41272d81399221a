package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileUpdate carries the editable profile fields. Nil pointers and nil
// slices leave the stored value untouched.
type ProfileUpdate struct {
	FirstName            *string
	LastName             *string
	DOB                  *time.Time
	Gender               *string
	HeightCm             *float64
	FitnessLevel         *string
	EatingHabits         *string
	PreferredIntensity   *string
	WorkoutPreferences   []string
	PreferredWorkoutTime *int
	FitnessGoals         []string
	WorkoutDays          []string
	WorkoutsPerWeek      *int
	CurrentInjuries      *string
	SpecificMuscleGroups []string
	CardioPreferences    []string
	RecoveryAndRest      []string
	PreferredLocationID  *primitive.ObjectID
}

// WeightView is a weight entry with its BMI computed from the current height.
type WeightView struct {
	domain.WeightEntry
	BMI *float64 `json:"bmi"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error)
	AddWeight(ctx context.Context, userID primitive.ObjectID, date time.Time, weightKg float64) (*WeightView, error)
	ListWeights(ctx context.Context, userID primitive.ObjectID) ([]WeightView, error)
	DeleteWeight(ctx context.Context, userID, entryID primitive.ObjectID) error
}

type profileService struct {
	profileRepo  repository.ProfileRepository
	locationRepo repository.LocationRepository
	weightRepo   repository.WeightRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, locationRepo repository.LocationRepository, weightRepo repository.WeightRepository) ProfileService {
	return &profileService{
		profileRepo:  profileRepo,
		locationRepo: locationRepo,
		weightRepo:   weightRepo,
	}
}

// profileForUser maps a missing profile to ErrProfileNotFound.
func profileForUser(ctx context.Context, repo repository.ProfileRepository, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	return profileForUser(ctx, s.profileRepo, userID)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, u ProfileUpdate) (*domain.Profile, error) {
	profile, err := profileForUser(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	if u.HeightCm != nil && *u.HeightCm <= 0 {
		return nil, ErrValidationFailed
	}
	if u.PreferredWorkoutTime != nil && *u.PreferredWorkoutTime < 0 {
		return nil, ErrValidationFailed
	}
	if u.WorkoutsPerWeek != nil && (*u.WorkoutsPerWeek < 0 || *u.WorkoutsPerWeek > 7) {
		return nil, ErrValidationFailed
	}
	if u.PreferredLocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *u.PreferredLocationID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrValidationFailed
			}
			return nil, err
		}
		profile.PreferredLocationID = u.PreferredLocationID
	}

	setString(&profile.FirstName, u.FirstName)
	setString(&profile.LastName, u.LastName)
	setString(&profile.Gender, u.Gender)
	setString(&profile.FitnessLevel, u.FitnessLevel)
	setString(&profile.EatingHabits, u.EatingHabits)
	setString(&profile.PreferredIntensity, u.PreferredIntensity)
	setString(&profile.CurrentInjuries, u.CurrentInjuries)
	if u.DOB != nil {
		profile.DOB = u.DOB
	}
	if u.HeightCm != nil {
		profile.HeightCm = u.HeightCm
	}
	if u.PreferredWorkoutTime != nil {
		profile.PreferredWorkoutTime = *u.PreferredWorkoutTime
	}
	if u.WorkoutsPerWeek != nil {
		profile.WorkoutsPerWeek = *u.WorkoutsPerWeek
	}
	setList(&profile.WorkoutPreferences, u.WorkoutPreferences)
	setList(&profile.FitnessGoals, u.FitnessGoals)
	setList(&profile.WorkoutDays, u.WorkoutDays)
	setList(&profile.SpecificMuscleGroups, u.SpecificMuscleGroups)
	setList(&profile.CardioPreferences, u.CardioPreferences)
	setList(&profile.RecoveryAndRest, u.RecoveryAndRest)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setList copies v so the profile never shares a slice with the caller.
func setList(dst *[]string, v []string) {
	if v != nil {
		*dst = append([]string{}, v...)
	}
}

func (s *profileService) AddWeight(ctx context.Context, userID primitive.ObjectID, date time.Time, weightKg float64) (*WeightView, error) {
	if date.IsZero() || weightKg <= 0 {
		return nil, ErrValidationFailed
	}
	profile, err := profileForUser(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	entry := &domain.WeightEntry{ProfileID: profile.ID, Date: date.UTC(), WeightKg: weightKg}
	if _, err := s.weightRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return &WeightView{WeightEntry: *entry, BMI: domain.BMI(entry.WeightKg, profile.HeightCm)}, nil
}

func (s *profileService) ListWeights(ctx context.Context, userID primitive.ObjectID) ([]WeightView, error) {
	profile, err := profileForUser(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.weightRepo.ListLatest(ctx, profile.ID, 0)
	if err != nil {
		return nil, err
	}

	views := make([]WeightView, 0, len(entries))
	for _, e := range entries {
		views = append(views, WeightView{WeightEntry: e, BMI: domain.BMI(e.WeightKg, profile.HeightCm)})
	}
	return views, nil
}

func (s *profileService) DeleteWeight(ctx context.Context, userID, entryID primitive.ObjectID) error {
	profile, err := profileForUser(ctx, s.profileRepo, userID)
	if err != nil {
		return err
	}
	if err := s.weightRepo.Delete(ctx, entryID, profile.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWeightNotFound
		}
		return err
	}
	return nil
}

package service

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrSessionNotFound  = errors.New("workout session not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrWeightNotFound   = errors.New("weight entry not found")
	ErrEquipmentExists  = errors.New("equipment already exists")

	// ErrPartialMaterialization means persisting a generated plan failed.
	// The transaction was aborted, so nothing of the plan was stored.
	ErrPartialMaterialization = errors.New("could not store generated plan")
	// ErrRegenerationTargetMissing means the session, exercise or archived
	// prompt to regenerate from no longer exists.
	ErrRegenerationTargetMissing = errors.New("regeneration target not found")

	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrExportFailed       = errors.New("failed to export plan")
)

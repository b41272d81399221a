package api

import (
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/logger"
	"alcyxob/ai-trainer/internal/repository"
	"alcyxob/ai-trainer/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error to a status code. Generation
// failures get a fixed message; model output never reaches the client.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, generation.ErrLocationNotFound):
		abortWithError(c, http.StatusBadRequest, "No workout location selected. Set a preferred location or pass locationId.")
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWeightNotFound),
		errors.Is(err, service.ErrRegenerationTargetMissing),
		errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEquipmentExists), errors.Is(err, service.ErrUserAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, generation.ErrGenerationService), errors.Is(err, generation.ErrMalformedGenerationOutput):
		logger.Warn("generation request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusBadGateway, "The workout generator is unavailable right now. Please try again.")
	case errors.Is(err, service.ErrStorageUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

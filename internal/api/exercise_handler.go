package api

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves single exercises inside a session.
type ExerciseHandler struct {
	planService  service.PlanService
	regenService service.RegenerationService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(planService service.PlanService, regenService service.RegenerationService) *ExerciseHandler {
	return &ExerciseHandler{planService: planService, regenService: regenService}
}

// --- DTOs ---

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                string `json:"id"`
	WorkoutID         string `json:"workoutId"`
	Name              string `json:"name"`
	Sets              string `json:"sets,omitempty"`
	Reps              string `json:"reps,omitempty"`
	RecommendedWeight string `json:"recommendedWeight,omitempty"`
	ActualWeight      string `json:"actualWeight,omitempty"`
	Description       string `json:"description,omitempty"`
	Sequence          int    `json:"sequence"`
}

// UpdateWeightRequest records the load actually used, e.g. "42.5kg".
type UpdateWeightRequest struct {
	ActualWeight string `json:"actualWeight"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                ex.ID.Hex(),
		WorkoutID:         ex.WorkoutID.Hex(),
		Name:              ex.Name,
		Sets:              ex.Sets,
		Reps:              ex.Reps,
		RecommendedWeight: ex.RecommendedWeight,
		ActualWeight:      ex.ActualWeight,
		Description:       ex.Description,
		Sequence:          ex.Sequence,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// UpdateExerciseWeight godoc
// @Summary Record the weight actually used for an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Param weight body UpdateWeightRequest true "Actual weight"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId}/weight [patch]
func (h *ExerciseHandler) UpdateExerciseWeight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	var req UpdateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.planService.UpdateExerciseWeight(c.Request.Context(), userID, exerciseID, req.ActualWeight)
	if err != nil {
		respondServiceError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// RegenerateExercise godoc
// @Summary Replace one exercise
// @Description Asks the workout generator for an exercise targeting the same muscles.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 502 {object} gin.H "Generator unavailable or unreadable answer"
// @Router /exercises/{exerciseId}/regenerate [post]
func (h *ExerciseHandler) RegenerateExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	exercise, err := h.regenService.RegenerateExercise(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondServiceError(c, err, "Failed to regenerate exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

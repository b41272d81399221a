package api

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type ProfileResponse struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	DOB                  *string   `json:"dob,omitempty"` // YYYY-MM-DD
	Gender               string    `json:"gender,omitempty"`
	HeightCm             *float64  `json:"heightCm,omitempty"`
	FitnessLevel         string    `json:"fitnessLevel,omitempty"`
	EatingHabits         string    `json:"eatingHabits,omitempty"`
	PreferredIntensity   string    `json:"preferredIntensity,omitempty"`
	WorkoutPreferences   []string  `json:"workoutPreferences"`
	PreferredWorkoutTime int       `json:"preferredWorkoutTime,omitempty"`
	FitnessGoals         []string  `json:"fitnessGoals"`
	WorkoutDays          []string  `json:"workoutDays"`
	WorkoutsPerWeek      int       `json:"workoutsPerWeek,omitempty"`
	CurrentInjuries      string    `json:"currentInjuries,omitempty"`
	SpecificMuscleGroups []string  `json:"specificMuscleGroups"`
	CardioPreferences    []string  `json:"cardioPreferences"`
	RecoveryAndRest      []string  `json:"recoveryAndRest"`
	PreferredLocationID  *string   `json:"preferredLocationId,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// UpdateProfileRequest: omitted fields keep their stored value.
type UpdateProfileRequest struct {
	FirstName            *string  `json:"firstName"`
	LastName             *string  `json:"lastName"`
	DOB                  *string  `json:"dob"`
	Gender               *string  `json:"gender"`
	HeightCm             *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	FitnessLevel         *string  `json:"fitnessLevel"`
	EatingHabits         *string  `json:"eatingHabits"`
	PreferredIntensity   *string  `json:"preferredIntensity"`
	WorkoutPreferences   []string `json:"workoutPreferences"`
	PreferredWorkoutTime *int     `json:"preferredWorkoutTime" binding:"omitempty,min=0"`
	FitnessGoals         []string `json:"fitnessGoals"`
	WorkoutDays          []string `json:"workoutDays"`
	WorkoutsPerWeek      *int     `json:"workoutsPerWeek" binding:"omitempty,min=0,max=7"`
	CurrentInjuries      *string  `json:"currentInjuries"`
	SpecificMuscleGroups []string `json:"specificMuscleGroups"`
	CardioPreferences    []string `json:"cardioPreferences"`
	RecoveryAndRest      []string `json:"recoveryAndRest"`
	PreferredLocationID  *string  `json:"preferredLocationId"`
}

type AddWeightRequest struct {
	Date     string  `json:"date" binding:"required"` // YYYY-MM-DD
	WeightKg float64 `json:"weightKg" binding:"required,gt=0"`
}

type WeightResponse struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	WeightKg float64  `json:"weightKg"`
	BMI      *float64 `json:"bmi"`
}

func MapProfileToResponse(p *domain.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	resp := ProfileResponse{
		ID:                   p.ID.Hex(),
		Email:                p.Email,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Gender:               p.Gender,
		HeightCm:             p.HeightCm,
		FitnessLevel:         p.FitnessLevel,
		EatingHabits:         p.EatingHabits,
		PreferredIntensity:   p.PreferredIntensity,
		WorkoutPreferences:   nonNil(p.WorkoutPreferences),
		PreferredWorkoutTime: p.PreferredWorkoutTime,
		FitnessGoals:         nonNil(p.FitnessGoals),
		WorkoutDays:          nonNil(p.WorkoutDays),
		WorkoutsPerWeek:      p.WorkoutsPerWeek,
		CurrentInjuries:      p.CurrentInjuries,
		SpecificMuscleGroups: nonNil(p.SpecificMuscleGroups),
		CardioPreferences:    nonNil(p.CardioPreferences),
		RecoveryAndRest:      nonNil(p.RecoveryAndRest),
		UpdatedAt:            p.UpdatedAt,
	}
	if p.DOB != nil {
		dob := p.DOB.Format(generation.DateLayout)
		resp.DOB = &dob
	}
	if p.PreferredLocationID != nil {
		hex := p.PreferredLocationID.Hex()
		resp.PreferredLocationID = &hex
	}
	return resp
}

func MapWeightToResponse(w service.WeightView) WeightResponse {
	return WeightResponse{
		ID:       w.ID.Hex(),
		Date:     w.Date.Format(generation.DateLayout),
		WeightKg: w.WeightKg,
		BMI:      w.BMI,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get my fitness profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} gin.H "Profile not found"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// UpdateProfile godoc
// @Summary Update my fitness profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := service.ProfileUpdate{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Gender:               req.Gender,
		HeightCm:             req.HeightCm,
		FitnessLevel:         req.FitnessLevel,
		EatingHabits:         req.EatingHabits,
		PreferredIntensity:   req.PreferredIntensity,
		WorkoutPreferences:   req.WorkoutPreferences,
		PreferredWorkoutTime: req.PreferredWorkoutTime,
		FitnessGoals:         req.FitnessGoals,
		WorkoutDays:          req.WorkoutDays,
		WorkoutsPerWeek:      req.WorkoutsPerWeek,
		CurrentInjuries:      req.CurrentInjuries,
		SpecificMuscleGroups: req.SpecificMuscleGroups,
		CardioPreferences:    req.CardioPreferences,
		RecoveryAndRest:      req.RecoveryAndRest,
	}
	if req.DOB != nil {
		dob, err := time.Parse(generation.DateLayout, *req.DOB)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid dob, expected YYYY-MM-DD.")
			return
		}
		update.DOB = &dob
	}
	if req.PreferredLocationID != nil {
		id, err := primitive.ObjectIDFromHex(*req.PreferredLocationID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid preferredLocationId format.")
			return
		}
		update.PreferredLocationID = &id
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// AddWeight godoc
// @Summary Record a body-weight measurement
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weight body AddWeightRequest true "Measurement"
// @Success 201 {object} WeightResponse
// @Router /profile/weights [post]
func (h *ProfileHandler) AddWeight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req AddWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	date, err := time.Parse(generation.DateLayout, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	view, err := h.profileService.AddWeight(c.Request.Context(), userID, date, req.WeightKg)
	if err != nil {
		respondServiceError(c, err, "Failed to record weight.")
		return
	}
	c.JSON(http.StatusCreated, MapWeightToResponse(*view))
}

// ListWeights godoc
// @Summary List my weight history, newest first
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WeightResponse
// @Router /profile/weights [get]
func (h *ProfileHandler) ListWeights(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	views, err := h.profileService.ListWeights(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve weights.")
		return
	}
	resp := make([]WeightResponse, len(views))
	for i, v := range views {
		resp[i] = MapWeightToResponse(v)
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteWeight godoc
// @Summary Delete a weight entry
// @Tags Profile
// @Security BearerAuth
// @Param weightId path string true "Weight entry ObjectID Hex"
// @Success 204
// @Router /profile/weights/{weightId} [delete]
func (h *ProfileHandler) DeleteWeight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathObjectID(c, "weightId")
	if !ok {
		return
	}
	if err := h.profileService.DeleteWeight(c.Request.Context(), userID, entryID); err != nil {
		respondServiceError(c, err, "Failed to delete weight entry.")
		return
	}
	c.Status(http.StatusNoContent)
}

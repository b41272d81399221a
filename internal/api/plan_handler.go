package api

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/service"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves generated plans and their sessions.
type PlanHandler struct {
	planService  service.PlanService
	regenService service.RegenerationService
}

func NewPlanHandler(planService service.PlanService, regenService service.RegenerationService) *PlanHandler {
	return &PlanHandler{planService: planService, regenService: regenService}
}

// --- DTOs ---

// GeneratePlanRequest: every field is optional. Missing values come from
// the caller's profile.
type GeneratePlanRequest struct {
	Duration    string `json:"duration" binding:"omitempty,oneof=day week"`
	StartDate   string `json:"startDate"` // YYYY-MM-DD
	WorkoutType string `json:"workoutType"`
	LocationID  string `json:"locationId"`
	MaxMinutes  int    `json:"maxMinutes" binding:"omitempty,min=0"`
}

type PlanSummaryResponse struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	Duration     string    `json:"duration"`
	StartDate    string    `json:"startDate"`
	SessionCount int       `json:"sessionCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PlanResponse struct {
	PlanSummaryResponse
	Sessions []SessionResponse `json:"sessions"`
}

type SessionResponse struct {
	ID               string             `json:"id"`
	GroupID          string             `json:"groupId"`
	PlanID           string             `json:"planId"`
	Name             string             `json:"name"`
	Goal             string             `json:"goal,omitempty"`
	Explanation      string             `json:"explanation,omitempty"`
	Considerations   string             `json:"importantConsiderations,omitempty"`
	Date             string             `json:"date"`
	LocationID       *string            `json:"locationId,omitempty"`
	WorkoutType      string             `json:"workoutType,omitempty"`
	MuscleGroups     []string           `json:"muscleGroups"`
	WarmUp           string             `json:"warmUp"`
	CoolDown         string             `json:"coolDown"`
	Completed        bool               `json:"completed"`
	TimeTakenMinutes *int               `json:"timeTakenMinutes,omitempty"`
	DifficultyRating *int               `json:"difficultyRating,omitempty"`
	EnjoymentRating  *int               `json:"enjoymentRating,omitempty"`
	Exercises        []ExerciseResponse `json:"exercises"`
}

type SessionFeedbackRequest struct {
	Completed        *bool `json:"completed"`
	TimeTakenMinutes *int  `json:"timeTakenMinutes" binding:"omitempty,min=0"`
	DifficultyRating *int  `json:"difficultyRating" binding:"omitempty,min=1,max=10"`
	EnjoymentRating  *int  `json:"enjoymentRating" binding:"omitempty,min=1,max=10"`
}

type ExportResponse struct {
	URL string `json:"url"`
}

func MapPlanSummaryToResponse(p *domain.WorkoutPlan) PlanSummaryResponse {
	if p == nil {
		return PlanSummaryResponse{}
	}
	return PlanSummaryResponse{
		ID:           p.ID.Hex(),
		GroupID:      p.GroupID,
		Duration:     string(p.Duration),
		StartDate:    p.StartDate.Format(generation.DateLayout),
		SessionCount: len(p.SessionIDs),
		CreatedAt:    p.CreatedAt,
	}
}

func MapPlanToResponse(p *service.PlanDetail) PlanResponse {
	if p == nil {
		return PlanResponse{}
	}
	resp := PlanResponse{
		PlanSummaryResponse: MapPlanSummaryToResponse(&p.WorkoutPlan),
		Sessions:            make([]SessionResponse, len(p.Sessions)),
	}
	for i := range p.Sessions {
		resp.Sessions[i] = MapSessionToResponse(&p.Sessions[i])
	}
	return resp
}

func MapSessionToResponse(s *service.SessionDetail) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	resp := SessionResponse{
		ID:               s.ID.Hex(),
		GroupID:          s.GroupID,
		PlanID:           s.PlanID.Hex(),
		Name:             s.Name,
		Goal:             s.Goal,
		Explanation:      s.Explanation,
		Considerations:   s.Considerations,
		Date:             s.Date.Format(generation.DateLayout),
		WorkoutType:      s.WorkoutType,
		MuscleGroups:     nonNil(s.MuscleGroups),
		WarmUp:           s.WarmUp.Description,
		CoolDown:         s.CoolDown.Description,
		Completed:        s.Completed,
		TimeTakenMinutes: s.TimeTakenMinutes,
		DifficultyRating: s.DifficultyRating,
		EnjoymentRating:  s.EnjoymentRating,
		Exercises:        MapExercisesToResponse(s.Exercises),
	}
	if s.LocationID != nil {
		hex := s.LocationID.Hex()
		resp.LocationID = &hex
	}
	return resp
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a workout plan
// @Description Asks the workout generator for a one-day or one-week plan and stores it.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GeneratePlanRequest false "Plan options"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Invalid input or no location"
// @Failure 429 {object} gin.H "Too many generation requests"
// @Failure 502 {object} gin.H "Generator unavailable or unreadable answer"
// @Router /plans [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req GeneratePlanRequest
	// An empty body asks for a plan built from profile defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	genReq := service.GenerateRequest{
		Duration:    domain.PlanDuration(req.Duration),
		WorkoutType: req.WorkoutType,
		MaxMinutes:  req.MaxMinutes,
	}
	if req.StartDate != "" {
		start, err := time.Parse(generation.DateLayout, req.StartDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD.")
			return
		}
		genReq.StartDate = start
	}
	if req.LocationID != "" {
		id, err := primitive.ObjectIDFromHex(req.LocationID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid locationId format.")
			return
		}
		genReq.LocationID = &id
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, genReq)
	if err != nil {
		respondServiceError(c, err, "Failed to generate workout plan.")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans godoc
// @Summary List my plans, newest first
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PlanSummaryResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve plans.")
		return
	}
	resp := make([]PlanSummaryResponse, len(plans))
	for i := range plans {
		resp[i] = MapPlanSummaryToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetPlan godoc
// @Summary Get a plan with its sessions and exercises
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ObjectID Hex"
// @Success 200 {object} PlanResponse
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a plan with all its sessions
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ObjectID Hex"
// @Success 204
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		respondServiceError(c, err, "Failed to delete plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPlan godoc
// @Summary Export a plan as JSON
// @Description Uploads the plan to object storage and returns a temporary download URL.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ObjectID Hex"
// @Success 200 {object} ExportResponse
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /plans/{planId}/export [post]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	url, err := h.planService.ExportPlan(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err, "Failed to export plan.")
		return
	}
	c.JSON(http.StatusOK, ExportResponse{URL: url})
}

// GetSession godoc
// @Summary Get one workout session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ObjectID Hex"
// @Success 200 {object} SessionResponse
// @Router /sessions/{sessionId} [get]
func (h *PlanHandler) GetSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	session, err := h.planService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// DeleteSession godoc
// @Summary Delete one day of a plan
// @Tags Sessions
// @Security BearerAuth
// @Param sessionId path string true "Session ObjectID Hex"
// @Success 204
// @Router /sessions/{sessionId} [delete]
func (h *PlanHandler) DeleteSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	if err := h.planService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		respondServiceError(c, err, "Failed to delete session.")
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSessionFeedback godoc
// @Summary Record how a session went
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ObjectID Hex"
// @Param feedback body SessionFeedbackRequest true "Feedback"
// @Success 200 {object} SessionResponse
// @Router /sessions/{sessionId}/feedback [patch]
func (h *PlanHandler) UpdateSessionFeedback(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	var req SessionFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.planService.UpdateSessionFeedback(c.Request.Context(), userID, sessionID, domain.SessionFeedback{
		Completed:        req.Completed,
		TimeTakenMinutes: req.TimeTakenMinutes,
		DifficultyRating: req.DifficultyRating,
		EnjoymentRating:  req.EnjoymentRating,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to update session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// RegenerateSession godoc
// @Summary Replace one day of a plan
// @Description Generates a new workout for the session's date and swaps it in.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ObjectID Hex"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} gin.H "Session or its archived prompt is gone"
// @Failure 502 {object} gin.H "Generator unavailable or unreadable answer"
// @Router /sessions/{sessionId}/regenerate [post]
func (h *PlanHandler) RegenerateSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	session, err := h.regenService.RegenerateSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondServiceError(c, err, "Failed to regenerate session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

package api

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	limiter *UserRateLimiter, // generation routes only
	authService service.AuthService,
	profileService service.ProfileService,
	catalogService service.CatalogService,
	planService service.PlanService,
	regenService service.RegenerationService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	catalogHandler := NewCatalogHandler(catalogService)
	planHandler := NewPlanHandler(planService, regenService)
	exerciseHandler := NewExerciseHandler(planService, regenService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)
	throttle := limiter.Middleware()

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.GET("/weights", profileHandler.ListWeights)
			profileGroup.POST("/weights", profileHandler.AddWeight)
			profileGroup.DELETE("/weights/:weightId", profileHandler.DeleteWeight)
		}

		// Catalog is readable by everyone, curated by admins.
		protected.GET("/equipment", catalogHandler.ListEquipment)
		protected.POST("/equipment", adminOnly, catalogHandler.CreateEquipment)
		protected.GET("/locations", catalogHandler.ListLocations)
		protected.GET("/locations/:locationId", catalogHandler.GetLocation)
		protected.POST("/locations", adminOnly, catalogHandler.CreateLocation)

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", throttle, planHandler.GeneratePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
			planGroup.POST("/:planId/export", planHandler.ExportPlan)
		}

		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("/:sessionId", planHandler.GetSession)
			sessionGroup.DELETE("/:sessionId", planHandler.DeleteSession)
			sessionGroup.PATCH("/:sessionId/feedback", planHandler.UpdateSessionFeedback)
			sessionGroup.POST("/:sessionId/regenerate", throttle, planHandler.RegenerateSession)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.PATCH("/:exerciseId/weight", exerciseHandler.UpdateExerciseWeight)
			exerciseGroup.POST("/:exerciseId/regenerate", throttle, exerciseHandler.RegenerateExercise)
		}
	}
}

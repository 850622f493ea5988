package api

import (
	"alcyxob/exercise-catalog/internal/domain" // Needed for RoleMiddleware
	"alcyxob/exercise-catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	catalogService service.CatalogService,
	mediaService service.MediaService,
) {
	exerciseHandler := NewExerciseHandler(catalogService)
	mediaHandler := NewMediaHandler(mediaService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
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

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			// GET /api/v1/exercises?name=
			exerciseGroup.GET("", exerciseHandler.ReadExercises)
			// POST /api/v1/exercises - private to the caller
			exerciseGroup.POST("", exerciseHandler.CreateExercise)

			exerciseGroup.GET("/categories", exerciseHandler.ReadCategories)

			exerciseGroup.GET("/descriptions", exerciseHandler.ReadDescriptions)
			exerciseGroup.POST("/descriptions", exerciseHandler.CreateDescription)

			exerciseGroup.POST("/variants", exerciseHandler.CreateVariant)
			// PUT /api/v1/exercises/variants/{variantId}
			exerciseGroup.PUT("/variants/:variantId", exerciseHandler.UpdateVariant)

			exerciseGroup.POST("/media/upload-url", mediaHandler.RequestUploadURL)
			exerciseGroup.GET("/media/download-url", mediaHandler.RequestDownloadURL)
		}

		// --- Admin Routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			// POST /api/v1/admin/exercises - global exercise
			adminGroup.POST("/exercises", exerciseHandler.CreateGlobalExercise)
		}
	}
}

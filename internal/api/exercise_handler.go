package api

import (
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the catalog service dependency.
type ExerciseHandler struct {
	catalogService service.CatalogService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(catalogService service.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
// Video and Image hold object keys returned by the media upload endpoint.
type CreateExerciseRequest struct {
	Name       string `json:"name" binding:"required"`
	Video      string `json:"video"`
	Image      string `json:"image"`
	CategoryID string `json:"categoryId" binding:"required"`
}

// CreateVariantRequest defines the expected JSON for creating a variant.
type CreateVariantRequest struct {
	Name       string `json:"name" binding:"required"`
	Video      string `json:"video"`
	Image      string `json:"image"`
	CategoryID string `json:"categoryId"` // Empty inherits the exercise's category
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// UpdateVariantRequest replaces the display fields of a variant.
type UpdateVariantRequest struct {
	Name       string `json:"name" binding:"required"`
	Video      string `json:"video"`
	Image      string `json:"image"`
	CategoryID string `json:"categoryId"`
}

type CreateDescriptionRequest struct {
	Description string  `json:"description" binding:"required"`
	ExerciseID  *string `json:"exerciseId"`
}

// --- Handler Methods ---

// ReadExercises godoc
// @Summary Search the exercise catalog
// @Description Lists global exercises and the caller's private ones, each merged with the caller's variant.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param name query string false "Case-insensitive substring of the exercise or variant name"
// @Success 200 {array} domain.UnifiedExercise
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ReadExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercises, err := h.catalogService.ReadExercises(c.Request.Context(), userID, c.Query("name"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve exercises.")
		return
	}

	if exercises == nil {
		exercises = []domain.UnifiedExercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise godoc
// @Summary Create a private exercise
// @Description Creates an exercise only the authenticated user can see.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	h.createExercise(c, &userID)
}

// CreateGlobalExercise godoc
// @Summary Create a global exercise
// @Description Creates an exercise every user can see. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Router /admin/exercises [post]
func (h *ExerciseHandler) CreateGlobalExercise(c *gin.Context) {
	h.createExercise(c, nil)
}

func (h *ExerciseHandler) createExercise(c *gin.Context, owner *string) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.catalogService.CreateExercise(c.Request.Context(), service.CreateExerciseInput{
		Name:       req.Name,
		Video:      req.Video,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		UserID:     owner,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to create exercise.")
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

// ReadCategories godoc
// @Summary List exercise categories
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Category
// @Router /exercises/categories [get]
func (h *ExerciseHandler) ReadCategories(c *gin.Context) {
	categories, err := h.catalogService.ReadExercisesCategories(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve categories.")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// ReadDescriptions godoc
// @Summary List the caller's exercise notes
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Description
// @Router /exercises/descriptions [get]
func (h *ExerciseHandler) ReadDescriptions(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	descriptions, err := h.catalogService.ReadExercisesDescriptions(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve descriptions.")
		return
	}
	if descriptions == nil {
		descriptions = []domain.Description{}
	}
	c.JSON(http.StatusOK, descriptions)
}

// CreateDescription godoc
// @Summary Add a note, optionally pinned to an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param description body CreateDescriptionRequest true "Note"
// @Success 201 {object} domain.Description
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/descriptions [post]
func (h *ExerciseHandler) CreateDescription(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req CreateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	description, err := h.catalogService.CreateExerciseDescription(c.Request.Context(), service.CreateDescriptionInput{
		Description: req.Description,
		UserID:      userID,
		ExerciseID:  req.ExerciseID,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to create description.")
		return
	}

	c.JSON(http.StatusCreated, description)
}

// CreateVariant godoc
// @Summary Personalize an exercise
// @Tags Variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param variant body CreateVariantRequest true "Variant details"
// @Success 201 {object} domain.Variant
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 409 {object} gin.H "Variant already exists"
// @Router /exercises/variants [post]
func (h *ExerciseHandler) CreateVariant(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	variant, err := h.catalogService.CreateVariant(c.Request.Context(), service.CreateVariantInput{
		Name:       req.Name,
		Video:      req.Video,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		UserID:     userID,
		ExerciseID: req.ExerciseID,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to create variant.")
		return
	}

	c.JSON(http.StatusCreated, variant)
}

// UpdateVariant godoc
// @Summary Update one of the caller's variants
// @Tags Variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Param variant body UpdateVariantRequest true "New fields"
// @Success 200 {object} domain.Variant
// @Failure 404 {object} gin.H "Variant not found"
// @Router /exercises/variants/{variantId} [put]
func (h *ExerciseHandler) UpdateVariant(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	variant, err := h.catalogService.UpdateVariant(c.Request.Context(), service.UpdateVariantInput{
		VariantID:  c.Param("variantId"),
		Name:       req.Name,
		Video:      req.Video,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		UserID:     userID,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to update variant.")
		return
	}

	c.JSON(http.StatusOK, variant)
}

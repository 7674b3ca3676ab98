package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealmerge/backend/internal/metrics"
	"github.com/pageza/mealmerge/backend/internal/service"
)

// MealHandler serves the aggregated search and insert endpoints.
type MealHandler struct {
	aggregator *service.Aggregator
	store      *service.MealStoreService // nil when the datastore is disabled
	logger     *zap.Logger
}

// NewMealHandler creates a new MealHandler instance
func NewMealHandler(aggregator *service.Aggregator, store *service.MealStoreService, logger *zap.Logger) *MealHandler {
	return &MealHandler{
		aggregator: aggregator,
		store:      store,
		logger:     logger,
	}
}

// RegisterRoutes registers the meal routes
func (h *MealHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/meals/:name", h.GetMeals)
	router.POST("/add_meal/", h.AddMeal)
}

// GetMeals returns a balanced, shuffled selection of meals from both sources.
func (h *MealHandler) GetMeals(c *gin.Context) {
	result, err := h.aggregator.Search(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrTermTooShort) {
			metrics.ObserveSearch("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.ObserveSearch("error")
		h.logger.Error("meal search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ObserveSearch("ok")
	c.JSON(http.StatusOK, result)
}

// AddMeal inserts one user-submitted meal. Inserting a name that already
// exists is a no-op and still answers 200.
func (h *MealHandler) AddMeal(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "datastore is not configured"})
		return
	}

	var req AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.Add(c.Request.Context(), service.AddMealInput{
		Name:         req.Name,
		Category:     req.Category,
		Area:         req.Area,
		Instructions: req.Instructions,
		Images:       req.Images,
		Ingredients:  req.Ingredients,
		Minutes:      req.Minutes,
	})
	if err != nil {
		h.logger.Error("failed to add meal", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add meal"})
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Meal already exists", "name": req.Name})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal added successfully", "name": req.Name})
}

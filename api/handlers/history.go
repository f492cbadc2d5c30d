package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agriprofit/agriprofit/api/middleware"
	"github.com/agriprofit/agriprofit/internal/logger"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryHandler struct {
	predictions PredictionStore
}

func NewHistoryHandler(predictions PredictionStore) *HistoryHandler {
	return &HistoryHandler{predictions: predictions}
}

// List godoc
// @Summary List prediction history
// @Description Returns the authenticated user's most recent predictions
// @Tags Predictions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum records to return (default 20, max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/predictions [get]
func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	records, err := h.predictions.ListByUser(ctx, userID, limit)
	if err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("failed to list predictions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": records,
		"count":       len(records),
	})
}

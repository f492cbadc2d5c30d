package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agriprofit/agriprofit/api/middleware"
	"github.com/agriprofit/agriprofit/api/ws"
	"github.com/agriprofit/agriprofit/internal/logger"
	"github.com/agriprofit/agriprofit/internal/telemetry"
	"github.com/agriprofit/agriprofit/pkg/models"
	"github.com/agriprofit/agriprofit/pkg/validation"
)

// Predictor runs inference over a complete input record.
type Predictor interface {
	Predict(req *models.PredictionRequest) (*models.PredictionResult, error)
	Crops() []string
}

// PredictionStore persists predictions for the history listing.
type PredictionStore interface {
	Create(ctx context.Context, rec *models.PredictionRecord) error
	ListByUser(ctx context.Context, userID, limit int) ([]*models.PredictionRecord, error)
}

// ResponseCache is an optional read-through cache over identical inputs.
type ResponseCache interface {
	GetPrediction(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResponse, error)
	SetPrediction(ctx context.Context, req *models.PredictionRequest, resp *models.PredictionResponse) error
}

type PredictHandler struct {
	engine      Predictor
	predictions PredictionStore
	cache       ResponseCache
	hub         *ws.Hub
}

// NewPredictHandler wires the prediction pipeline. predictions, cache and
// hub may be nil; the corresponding step is skipped.
func NewPredictHandler(engine Predictor, predictions PredictionStore, cache ResponseCache, hub *ws.Hub) *PredictHandler {
	return &PredictHandler{
		engine:      engine,
		predictions: predictions,
		cache:       cache,
		hub:         hub,
	}
}

// Predict godoc
// @Summary Run a crop prediction
// @Description Predicts crop, yield, expense, revenue and profit/loss from soil, weather and expense inputs
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body models.PredictionRequest true "Soil, weather and expense record"
// @Success 200 {object} models.PredictionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Inference failure"
// @Router /api/predict_all [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validation.ValidatePredictionInput(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		cached, err := h.cache.GetPrediction(ctx, &req)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("prediction cache lookup failed")
		}
		telemetry.ObserveCacheLookup(err == nil && cached != nil)
		if cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	result, err := h.engine.Predict(&req)
	if err != nil {
		logger.WithError(err).Error("prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	resp := models.NewPredictionResponse(result)

	telemetry.ObservePrediction(result.Crop, outcome(result))

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		if err := h.cache.SetPrediction(ctx, &req, resp); err != nil {
			logger.WithError(err).Warn("failed to cache prediction")
		}
		cancel()
	}

	if h.predictions != nil {
		if userID, ok := middleware.GetUserID(c); ok {
			h.persist(c.Request.Context(), userID, &req, result)
		}
	}

	if h.hub != nil {
		ws.BroadcastPrediction(h.hub, result)
		if result.CropFailure {
			ws.BroadcastAlert(h.hub, "warning",
				fmt.Sprintf("crop failure predicted under current conditions (crop: %s)", result.Crop))
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PredictHandler) persist(ctx context.Context, userID int, req *models.PredictionRequest, res *models.PredictionResult) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rec := &models.PredictionRecord{
		UserID:  userID,
		Request: req,
		Crop:    res.Crop,
		YieldKg: res.YieldKg,
		Expense: res.Expense,
		Revenue: res.Revenue,
		Profit:  res.Profit,
		Loss:    res.Loss,
	}
	if err := h.predictions.Create(ctx, rec); err != nil {
		logger.WithError(err).WithField("user_id", userID).Warn("failed to persist prediction")
	}
}

func outcome(res *models.PredictionResult) string {
	switch {
	case res.CropFailure:
		return "failure"
	case res.Profit > 0:
		return "profit"
	default:
		return "loss"
	}
}

// Crops godoc
// @Summary List supported crops
// @Tags Predictions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/crops [get]
func (h *PredictHandler) ListCrops(c *gin.Context) {
	crops := h.engine.Crops()
	c.JSON(http.StatusOK, gin.H{
		"crops": crops,
		"count": len(crops),
	})
}

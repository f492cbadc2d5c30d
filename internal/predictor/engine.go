package predictor

import (
	"fmt"
	"math"
	"strings"

	"github.com/agriprofit/agriprofit/internal/logger"
	"github.com/agriprofit/agriprofit/internal/model"
	"github.com/agriprofit/agriprofit/pkg/models"
)

// Config tunes the agronomic rules layered on top of the raw model output.
type Config struct {
	// FailureSignalsRequired is how many extreme-condition signals must
	// fire before the prediction is reported as a crop failure.
	FailureSignalsRequired int
	// DefaultCropFactor is the yield factor used for crops without a
	// fixed entry in the factor table.
	DefaultCropFactor float64
	// MaxSuggestions caps the alternative-crop list.
	MaxSuggestions int
	// FailureYieldKg is the yield reported for a failed crop.
	FailureYieldKg float64
}

// Engine runs inference against the loaded artifacts and applies the
// correction and suggestion rules.
type Engine struct {
	cfg       Config
	artifacts *model.Artifacts
	crops     []string
}

func New(cfg Config, artifacts *model.Artifacts) *Engine {
	if cfg.FailureSignalsRequired == 0 {
		cfg.FailureSignalsRequired = 2
	}
	if cfg.DefaultCropFactor == 0 {
		cfg.DefaultCropFactor = 0.75
	}
	if cfg.MaxSuggestions == 0 {
		cfg.MaxSuggestions = 3
	}
	if cfg.FailureYieldKg == 0 {
		cfg.FailureYieldKg = 1.0
	}

	return &Engine{
		cfg:       cfg,
		artifacts: artifacts,
		crops:     artifacts.Crops(),
	}
}

// Crops returns the catalog of crops the engine can recommend.
func (e *Engine) Crops() []string {
	return e.crops
}

// Predict runs the full pipeline: crop classification, failure check,
// yield and expense regression with corrections, revenue/profit math and
// alternative-crop suggestions.
func (e *Engine) Predict(req *models.PredictionRequest) (*models.PredictionResult, error) {
	features := []float64{req.N, req.P, req.K, req.Temperature, req.Humidity, req.PH, req.Rainfall}
	costs := []float64{req.Fertilizer, req.Pesticide, req.Seed, req.Other}

	rawCrop, err := e.artifacts.PredictCrop(features)
	if err != nil {
		return nil, fmt.Errorf("predict crop: %w", err)
	}

	failure := e.isCropFailure(req)

	crop := "Crop Failure"
	if !failure {
		crop = adjustToValidCrop(rawCrop, e.crops)
	}

	rawYield, err := e.artifacts.PredictYield(features)
	if err != nil {
		return nil, fmt.Errorf("predict yield: %w", err)
	}
	yieldKg := e.cfg.FailureYieldKg
	if !failure {
		yieldKg = rawYield * yieldCorrection(req)
	}

	rawExpense, err := e.artifacts.PredictExpense(costs)
	if err != nil {
		return nil, fmt.Errorf("predict expense: %w", err)
	}
	expense := rawExpense * expenseCorrection(req)

	revenue := yieldKg * req.MarketPrice
	profit := math.Max(revenue-expense, 0)
	loss := math.Max(expense-revenue, 0)

	result := &models.PredictionResult{
		Crop:        crop,
		CropFailure: failure,
		YieldKg:     yieldKg,
		Expense:     expense,
		Revenue:     revenue,
		Profit:      profit,
		Loss:        loss,
		Suggestions: []models.SuggestionResult{},
	}

	if profit > 0 {
		result.Suggestions = e.suggestBestCrops(req, yieldKg)
		result.ShowSuggestions = true
	}

	logger.WithFields(map[string]interface{}{
		"crop":    result.Crop,
		"failure": failure,
		"yield":   yieldKg,
		"profit":  profit,
	}).Debug("prediction completed")

	return result, nil
}

// isCropFailure counts extreme-condition signals. Two or more mean the
// field is unlikely to sustain any crop.
func (e *Engine) isCropFailure(req *models.PredictionRequest) bool {
	extreme := 0
	if req.Temperature > 45 {
		extreme++
	}
	if req.Rainfall < 20 {
		extreme++
	}
	if req.PH < 5 {
		extreme++
	}
	if req.N < 20 {
		extreme++
	}
	if req.P < 15 {
		extreme++
	}
	if req.K < 15 {
		extreme++
	}
	return extreme >= e.cfg.FailureSignalsRequired
}

// yieldCorrection compounds the penalty multipliers for sub-optimal
// conditions.
func yieldCorrection(req *models.PredictionRequest) float64 {
	corr := 1.0

	if req.Temperature > 45 {
		corr *= 0.30
	} else if req.Temperature > 38 {
		corr *= 0.55
	}
	if req.Rainfall < 20 {
		corr *= 0.40
	} else if req.Rainfall < 40 {
		corr *= 0.65
	}
	if req.PH < 5 || req.PH > 8 {
		corr *= 0.50
	}
	if req.N < 40 {
		corr *= 0.60
	}
	if req.P < 30 {
		corr *= 0.70
	}
	if req.K < 30 {
		corr *= 0.60
	}
	if req.Humidity > 85 {
		corr *= 0.80
	}

	return corr
}

// expenseCorrection inflates the expense estimate under conditions that
// raise running costs.
func expenseCorrection(req *models.PredictionRequest) float64 {
	corr := 1.0

	if req.Temperature > 40 {
		corr *= 1.20
	}
	if req.Rainfall < 20 {
		corr *= 1.30
	}
	if req.Humidity > 90 {
		corr *= 1.15
	}

	return corr
}

// adjustToValidCrop maps a raw model label onto the known crop list. A
// prefix match rescues near-miss labels; the first catalog entry is the
// last resort.
func adjustToValidCrop(predicted string, valid []string) string {
	predicted = strings.ToLower(strings.TrimSpace(predicted))
	if len(valid) == 0 {
		return predicted
	}
	for _, v := range valid {
		if predicted == v {
			return v
		}
	}
	if len(predicted) >= 3 {
		prefix := predicted[:3]
		for _, v := range valid {
			if strings.Contains(v, prefix) {
				return v
			}
		}
	}
	return valid[0]
}

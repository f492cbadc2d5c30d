package predictor

import (
	"sort"

	"github.com/agriprofit/agriprofit/pkg/models"
)

// cropFactor holds the fixed per-crop yield factor relative to the
// predicted base yield. Crops not listed fall back to the configured
// default factor.
var cropFactor = map[string]float64{
	"rice":        0.78,
	"wheat":       0.74,
	"maize":       0.72,
	"banana":      0.70,
	"barley":      0.69,
	"blackgram":   0.68,
	"brinjal":     0.71,
	"sesame":      0.67,
	"chickpea":    0.73,
	"onion":       0.66,
	"chilli":      0.65,
	"cauliflower": 0.70,
	"pigeonpeas":  0.74,
	"potato":      0.76,
	"sorghum":     0.69,
	"sugarcane":   0.64,
}

// suggestBestCrops scores every catalog crop at a fixed fraction of the
// base yield against a fixed expense model and returns the top profitable
// candidates. Sorting is deterministic: profit descending, crop name as
// tie-breaker.
func (e *Engine) suggestBestCrops(req *models.PredictionRequest, baseYieldKg float64) []models.SuggestionResult {
	fixedExpense := req.Fertilizer*40 + req.Pesticide*120 + req.Seed + req.Other

	suggestions := make([]models.SuggestionResult, 0, len(e.crops))
	for _, crop := range e.crops {
		factor, ok := cropFactor[crop]
		if !ok {
			factor = e.cfg.DefaultCropFactor
		}

		approxYield := baseYieldKg * factor
		profit := approxYield*req.MarketPrice - fixedExpense
		if profit <= 0 {
			continue
		}

		suggestions = append(suggestions, models.SuggestionResult{
			Crop:    crop,
			YieldKg: approxYield,
			Profit:  profit,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Profit != suggestions[j].Profit {
			return suggestions[i].Profit > suggestions[j].Profit
		}
		return suggestions[i].Crop < suggestions[j].Crop
	})

	if len(suggestions) > e.cfg.MaxSuggestions {
		suggestions = suggestions[:e.cfg.MaxSuggestions]
	}
	return suggestions
}

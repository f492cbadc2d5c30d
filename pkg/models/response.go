package models

import "github.com/agriprofit/agriprofit/pkg/format"

// NewPredictionResponse converts a raw inference result into the wire
// response, rendering the legacy display strings and attaching the raw
// numeric fields.
func NewPredictionResponse(res *PredictionResult) *PredictionResponse {
	best := make([]CropSuggestion, len(res.Suggestions))
	for i, s := range res.Suggestions {
		best[i] = CropSuggestion{
			Crop:   s.Crop,
			Yield:  format.YieldKg(s.YieldKg),
			Profit: format.Currency(s.Profit),
		}
	}

	return &PredictionResponse{
		PredictedCrop:    res.Crop,
		PredictedYield:   format.YieldKg(res.YieldKg),
		TotalExpense:     format.Currency(res.Expense),
		PredictedRevenue: format.Currency(res.Revenue),
		Profit:           format.Currency(res.Profit),
		Loss:             format.Currency(res.Loss),
		BestCrops:        best,
		ShowSuggestions:  res.ShowSuggestions,

		YieldKgPerHa: res.YieldKg,
		ExpenseRaw:   res.Expense,
		RevenueRaw:   res.Revenue,
		ProfitRaw:    res.Profit,
		LossRaw:      res.Loss,
		Currency:     format.CurrencyCode,
	}
}

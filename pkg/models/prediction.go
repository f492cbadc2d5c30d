package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FlexFloat decodes a JSON number or a numeric string. Form clients send
// field values as strings; API clients send numbers. Unparseable values
// decode to zero rather than failing the whole request.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// PredictionRequest is the input record for /api/predict_all.
type PredictionRequest struct {
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
	Fertilizer  float64 `json:"fertilizer"`
	Pesticide   float64 `json:"pesticide"`
	Seed        float64 `json:"seed"`
	Other       float64 `json:"other"`
	MarketPrice float64 `json:"market_price"`
}

// UnmarshalJSON accepts both the short payload keys and the legacy long-form
// field names emitted by older clients (Fertilizer_Usage_kg_per_hectare and
// friends). A non-zero short key wins when both are present.
func (r *PredictionRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		N           FlexFloat  `json:"N"`
		P           FlexFloat  `json:"P"`
		K           FlexFloat  `json:"K"`
		Temperature FlexFloat  `json:"temperature"`
		Humidity    FlexFloat  `json:"humidity"`
		PH          FlexFloat  `json:"ph"`
		Rainfall    FlexFloat  `json:"rainfall"`
		Fertilizer  *FlexFloat `json:"fertilizer"`
		Pesticide   *FlexFloat `json:"pesticide"`
		Seed        *FlexFloat `json:"seed"`
		Other       *FlexFloat `json:"other"`
		MarketPrice FlexFloat  `json:"market_price"`

		FertilizerLegacy *FlexFloat `json:"Fertilizer_Usage_kg_per_hectare"`
		PesticideLegacy  *FlexFloat `json:"Pesticide_Usage_litre_per_hectare"`
		SeedLegacy       *FlexFloat `json:"Seed_Expense_per_hectare(INR)"`
		OtherLegacy      *FlexFloat `json:"Other_Expense(INR)"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// A zero short key falls through to the legacy key, so clients that
	// send both `fertilizer: 0` and a populated long-form field keep
	// their old behavior.
	pick := func(short, legacy *FlexFloat) float64 {
		if short != nil && *short != 0 {
			return float64(*short)
		}
		if legacy != nil {
			return float64(*legacy)
		}
		if short != nil {
			return float64(*short)
		}
		return 0
	}

	r.N = float64(raw.N)
	r.P = float64(raw.P)
	r.K = float64(raw.K)
	r.Temperature = float64(raw.Temperature)
	r.Humidity = float64(raw.Humidity)
	r.PH = float64(raw.PH)
	r.Rainfall = float64(raw.Rainfall)
	r.Fertilizer = pick(raw.Fertilizer, raw.FertilizerLegacy)
	r.Pesticide = pick(raw.Pesticide, raw.PesticideLegacy)
	r.Seed = pick(raw.Seed, raw.SeedLegacy)
	r.Other = pick(raw.Other, raw.OtherLegacy)
	r.MarketPrice = float64(raw.MarketPrice)
	return nil
}

// CacheKey returns a canonical representation of the request used to key
// the prediction cache. Field order is fixed.
func (r *PredictionRequest) CacheKey() string {
	return fmt.Sprintf("%g|%g|%g|%g|%g|%g|%g|%g|%g|%g|%g|%g",
		r.N, r.P, r.K, r.Temperature, r.Humidity, r.PH, r.Rainfall,
		r.Fertilizer, r.Pesticide, r.Seed, r.Other, r.MarketPrice)
}

// SuggestionResult is one alternative crop candidate with raw numbers.
type SuggestionResult struct {
	Crop    string  `json:"crop"`
	YieldKg float64 `json:"yield_kg_per_ha"`
	Profit  float64 `json:"profit"`
}

// PredictionResult carries the raw inference outcome before any display
// formatting is applied.
type PredictionResult struct {
	Crop            string             `json:"crop"`
	CropFailure     bool               `json:"crop_failure"`
	YieldKg         float64            `json:"yield_kg_per_ha"`
	Expense         float64            `json:"expense"`
	Revenue         float64            `json:"revenue"`
	Profit          float64            `json:"profit"`
	Loss            float64            `json:"loss"`
	Suggestions     []SuggestionResult `json:"suggestions"`
	ShowSuggestions bool               `json:"show_suggestions"`
}

// CropSuggestion is the wire form of an alternative crop candidate.
type CropSuggestion struct {
	Crop   string `json:"Crop"`
	Yield  string `json:"Yield"`
	Profit string `json:"Profit"`
}

// PredictionResponse is the wire contract for /api/predict_all. The
// capitalized fields carry the display strings legacy clients parse; the
// lowercase fields carry raw numbers plus a currency label so clients do
// not have to strip units and symbols themselves.
type PredictionResponse struct {
	PredictedCrop    string           `json:"Predicted_Crop"`
	PredictedYield   string           `json:"Predicted_Yield"`
	TotalExpense     string           `json:"Total_Expense"`
	PredictedRevenue string           `json:"Predicted_Revenue"`
	Profit           string           `json:"Profit"`
	Loss             string           `json:"Loss"`
	BestCrops        []CropSuggestion `json:"Best_Crops"`
	ShowSuggestions  bool             `json:"show_suggestions"`

	YieldKgPerHa float64 `json:"yield_kg_per_ha"`
	ExpenseRaw   float64 `json:"expense"`
	RevenueRaw   float64 `json:"revenue"`
	ProfitRaw    float64 `json:"profit"`
	LossRaw      float64 `json:"loss"`
	Currency     string  `json:"currency"`
}

// PredictionRecord is a persisted prediction for the history listing.
type PredictionRecord struct {
	ID        int                `json:"id"`
	UserID    int                `json:"user_id"`
	Request   *PredictionRequest `json:"request"`
	Crop      string             `json:"crop"`
	YieldKg   float64            `json:"yield_kg_per_ha"`
	Expense   float64            `json:"expense"`
	Revenue   float64            `json:"revenue"`
	Profit    float64            `json:"profit"`
	Loss      float64            `json:"loss"`
	CreatedAt time.Time          `json:"created_at"`
}

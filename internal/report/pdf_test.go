package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriprofit/agriprofit/pkg/models"
)

func TestGenerate(t *testing.T) {
	resp := &models.PredictionResponse{
		PredictedCrop:    "rice",
		PredictedYield:   "2400.00 Kg/ha",
		TotalExpense:     "₹15,000.00",
		PredictedRevenue: "₹48,000.00",
		Profit:           "₹33,000.00",
		Loss:             "₹0.00",
		BestCrops: []models.CropSuggestion{
			{Crop: "rice", Yield: "1872.00 Kg/ha", Profit: "₹22,440.00"},
			{Crop: "potato", Yield: "1824.00 Kg/ha", Profit: "₹21,480.00"},
		},
		ExpenseRaw: 15000,
		RevenueRaw: 48000,
		ProfitRaw:  33000,
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, resp, nil))

	// A valid PDF starts with the magic header.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestGenerate_NoSuggestions(t *testing.T) {
	resp := &models.PredictionResponse{
		PredictedCrop:    "Crop Failure",
		PredictedYield:   "1.00 Kg/ha",
		TotalExpense:     "₹18,000.00",
		PredictedRevenue: "₹20.00",
		Profit:           "₹0.00",
		Loss:             "₹17,980.00",
		ExpenseRaw:       18000,
		RevenueRaw:       20,
		LossRaw:          17980,
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, resp, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestGenerate_WithChart(t *testing.T) {
	resp := &models.PredictionResponse{
		PredictedCrop:  "maize",
		PredictedYield: "2100.00 Kg/ha",
		ExpenseRaw:     12000,
		RevenueRaw:     30000,
		ProfitRaw:      18000,
	}

	var plain bytes.Buffer
	require.NoError(t, Generate(&plain, resp, nil))

	var withChart bytes.Buffer
	require.NoError(t, Generate(&withChart, resp, testPNG(t)))

	assert.True(t, bytes.HasPrefix(withChart.Bytes(), []byte("%PDF-")))
	assert.Greater(t, withChart.Len(), plain.Len())
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 46, G: 125, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAscii(t *testing.T) {
	assert.Equal(t, "Rs 5,000.00", ascii("₹5,000.00"))
	assert.Equal(t, "plain", ascii("plain"))
}

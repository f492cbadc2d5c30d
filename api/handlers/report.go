package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agriprofit/agriprofit/internal/logger"
	"github.com/agriprofit/agriprofit/internal/report"
	"github.com/agriprofit/agriprofit/pkg/models"
	"github.com/agriprofit/agriprofit/pkg/validation"
)

const chartImagePrefix = "data:image/png;base64,"

type ReportHandler struct {
	engine Predictor
}

func NewReportHandler(engine Predictor) *ReportHandler {
	return &ReportHandler{engine: engine}
}

// Generate godoc
// @Summary Download a prediction report
// @Description Runs a prediction over the submitted record and streams the result as a PDF, optionally embedding a client-captured chart image
// @Tags Predictions
// @Accept json
// @Produce application/pdf
// @Param request body models.PredictionRequest true "Soil, weather and expense record, plus an optional chart_image PNG data URL"
// @Success 200 {file} file "PDF report"
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/report [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// The record and the chart are decoded from the same body: the request
	// type's custom unmarshalling would swallow the chart_image key if the
	// two were combined into one struct.
	var req models.PredictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chart, err := decodeChartImage(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chart image"})
		return
	}

	if err := validation.ValidatePredictionInput(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.Predict(&req)
	if err != nil {
		logger.WithError(err).Error("report prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	resp := models.NewPredictionResponse(result)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	c.Status(http.StatusOK)

	if err := report.Generate(c.Writer, resp, chart); err != nil {
		// Headers are already written; log and drop the connection.
		logger.WithError(err).Error("failed to render report")
	}
}

// decodeChartImage extracts the optional chart_image PNG data URL from the
// request body. Absent chart → (nil, nil); present but undecodable → error.
func decodeChartImage(body []byte) ([]byte, error) {
	var aux struct {
		ChartImage string `json:"chart_image"`
	}
	if err := json.Unmarshal(body, &aux); err != nil {
		return nil, err
	}
	if aux.ChartImage == "" {
		return nil, nil
	}
	if !strings.HasPrefix(aux.ChartImage, chartImagePrefix) {
		return nil, errors.New("chart image must be a PNG data URL")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(aux.ChartImage, chartImagePrefix))
}

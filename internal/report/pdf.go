package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/agriprofit/agriprofit/pkg/format"
	"github.com/agriprofit/agriprofit/pkg/models"
)

// FileName is the suggested download name for generated reports.
const FileName = "AgriProfit_Report.pdf"

// Generate renders a prediction summary as a PDF and writes it to w.
// chart, when non-empty, is a PNG captured by the client (the profit
// breakdown canvas) and is embedded below the summary.
func Generate(w io.Writer, resp *models.PredictionResponse, chart []byte) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "AgriProfit Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		pdf.CellFormat(0, 8, fmt.Sprintf("%s: %s", label, value), "", 1, "L", false, 0, "")
	}
	// Core PDF fonts are Latin-1, so amounts are printed from the raw
	// numeric fields with an ASCII currency marker instead of the
	// rupee-symbol display strings.
	rupees := func(amount float64) string {
		return "Rs " + format.Amount(amount)
	}

	line("Predicted Crop", resp.PredictedCrop)
	line("Predicted Yield", resp.PredictedYield)
	line("Total Expense", rupees(resp.ExpenseRaw))
	line("Predicted Revenue", rupees(resp.RevenueRaw))
	line("Profit", rupees(resp.ProfitRaw))
	line("Loss", rupees(resp.LossRaw))
	pdf.Ln(6)

	if len(resp.BestCrops) > 0 {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, "Top Recommended Crops:", "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 12)
		for i, c := range resp.BestCrops {
			row := fmt.Sprintf("%d. %s  |  Yield: %s  |  Profit: %s",
				i+1, c.Crop, ascii(c.Yield), ascii(c.Profit))
			pdf.CellFormat(0, 8, row, "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	if len(chart) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(chart))
		pdf.ImageOptions("chart", 15, pdf.GetY(), 180, 0, false, opts, 0, "")
	}

	return pdf.Output(w)
}

// ascii rewrites the rupee symbol for the PDF core fonts, which only
// cover Latin-1.
func ascii(s string) string {
	return strings.ReplaceAll(s, "₹", "Rs ")
}

package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/entity"
)

// WritePDF renders the full report into the run directory: header,
// recommendation, indicator table, headline list, prediction block and the
// analysis text. Returns the file path.
func (w *Writer) WritePDF(runDir string, result *dto.AnalysisResult, stockData *dto.StockData, articles []entity.Article, predictionText string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(fmt.Sprintf("Stock Analysis: %s (%s)", result.Company, result.Symbol)), "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Generated on %s", result.AnalysisDate.Format("2006-01-02 15:04:05"))), "", "L", false)
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, tr(fmt.Sprintf("Recommendation: %s", result.Recommendation)), "", "L", false)
	pdf.Ln(4)

	if stockData != nil && len(stockData.Candles) > 0 {
		writeSectionTitle(pdf, tr, "Technical Indicators")
		writeIndicatorRow(pdf, tr, "Initial price", fmt.Sprintf("$%.2f", stockData.FirstPrice))
		writeIndicatorRow(pdf, tr, "Final price", fmt.Sprintf("$%.2f", stockData.LastPrice))
		writeIndicatorRow(pdf, tr, "Percentage change", fmt.Sprintf("%.2f%%", stockData.TrendPct))
		writeIndicatorRow(pdf, tr, "Annualized volatility", fmt.Sprintf("%.2f%%", stockData.Volatility))
		writeIndicatorRow(pdf, tr, "Average daily volume", fmt.Sprintf("%.0f", stockData.AvgVolume))
		writeIndicatorRow(pdf, tr, "7-day moving average", fmt.Sprintf("$%.2f", stockData.MA7))
		writeIndicatorRow(pdf, tr, "RSI (14)", fmt.Sprintf("%.2f", stockData.RSI))
		pdf.Ln(4)
	}

	if len(articles) > 0 {
		writeSectionTitle(pdf, tr, fmt.Sprintf("News Headlines (%d)", len(articles)))
		pdf.SetFont("Helvetica", "", 9)
		const maxHeadlines = 25
		shown := articles
		if len(shown) > maxHeadlines {
			shown = shown[:maxHeadlines]
		}
		for _, a := range shown {
			date := a.PublishedAt
			if idx := strings.Index(date, "T"); idx > 0 {
				date = date[:idx]
			}
			pdf.MultiCell(0, 4.5, tr(fmt.Sprintf("[%s] %s", date, a.Title)), "", "L", false)
		}
		if len(articles) > maxHeadlines {
			pdf.MultiCell(0, 4.5, tr(fmt.Sprintf("... and %d more.", len(articles)-maxHeadlines)), "", "L", false)
		}
		pdf.Ln(4)
	}

	if predictionText != "" {
		writeSectionTitle(pdf, tr, "Future Predictions")
		pdf.SetFont("Helvetica", "", 9)
		for _, line := range strings.Split(strings.TrimSpace(predictionText), "\n") {
			if strings.HasPrefix(line, "FUTURE PREDICTIONS") {
				continue
			}
			pdf.MultiCell(0, 4.5, tr(line), "", "L", false)
		}
		pdf.Ln(4)
	}

	writeSectionTitle(pdf, tr, "Analysis")
	writeAnalysisBody(pdf, tr, result.Analysis)

	path := filepath.Join(runDir, fmt.Sprintf("%s_%s.pdf",
		strings.ToUpper(result.Symbol), result.AnalysisDate.Format(runDirLayout)))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF report: %w", err)
	}
	return path, nil
}

func writeSectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, tr(title), "", "L", false)
}

func writeIndicatorRow(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(80, 5.5, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5.5, tr(value), "", 1, "L", false, 0, "")
}

func writeAnalysisBody(pdf *fpdf.Fpdf, tr func(string) string, analysis string) {
	for _, line := range strings.Split(analysis, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(strings.Trim(line, "*")), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
	}
}

package repository

import (
	"fmt"
	"strings"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/entity"
)

// BuildFinancialSummary renders the technical indicators as a prompt block.
func BuildFinancialSummary(stockData *dto.StockData) string {
	if stockData == nil || len(stockData.Candles) == 0 {
		return "No financial data available."
	}

	return fmt.Sprintf(`
- Initial price: $%.2f
- Final price: $%.2f
- Percentage change: %.2f%%
- Annualized volatility: %.2f%%
- Average daily volume: %.0f
- 7-day moving average: $%.2f
- RSI (Relative Strength Index): %.2f
`,
		stockData.FirstPrice,
		stockData.LastPrice,
		stockData.TrendPct,
		stockData.Volatility,
		stockData.AvgVolume,
		stockData.MA7,
		stockData.RSI,
	)
}

// BuildNewsSummary renders the article headlines as a prompt block, capped at
// maxArticles when that cap is positive.
func BuildNewsSummary(articles []entity.Article, maxArticles int) string {
	if len(articles) == 0 {
		return "No news available."
	}

	total := len(articles)
	selected := articles
	if maxArticles > 0 && maxArticles < total {
		selected = articles[:maxArticles]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "RELEVANT NEWS FROM THE LAST 4 WEEKS (total: %d):\n", total)
	for i, article := range selected {
		date := article.PublishedAt
		if idx := strings.Index(date, "T"); idx > 0 {
			date = date[:idx]
		}
		source := article.Source
		if source == "" {
			source = "Unknown source"
		}
		fmt.Fprintf(&b, "%d. [%s] %s (Source: %s)\n", i+1, date, article.Title, source)
	}
	if total > len(selected) {
		fmt.Fprintf(&b, "... and %d more articles not shown.\n", total-len(selected))
	}
	return b.String()
}

// BuildAnalysisPrompt assembles the full prompt sent to the model.
func BuildAnalysisPrompt(input *dto.AnalysisInput) string {
	predictionText := ""
	if input.PredictionText != "" {
		predictionText = input.PredictionText + "\n"
	}

	return fmt.Sprintf(`
[System]
You are an expert financial analyst tasked with providing a comprehensive analysis and detailed recommendation for the stock %s (%s). Your analysis must be strictly based on the provided data and must be professional, objective, and easily interpretable.

[Input_Data]
- Financial Data (last 4 weeks):
  %s

- Relevant news (last 4 weeks):
  %s

- Future value predictions for the next days (if available):
  %s

- Investment horizon: %s

[Analysis_Objectives]
1. **Historical Assessment:** Examine the recent historical performance of the stock, identifying significant trends and comparing it with market benchmarks if applicable.
2. **Volatility and Risk Analysis:** Assess the level of volatility and associated risks, highlighting any critical thresholds.
3. **News Impact:** Analyze the influence of news, giving greater relevance to authoritative and recent sources.
4. **Technical Indicators:** Identify and evaluate other relevant technical indicators (e.g., moving averages, RSI, MACD, supports and resistances).
5. **Market Context:** Consider the macroeconomic and sector context, integrating it into the analysis.
6. **Predictive Analysis:** If available, analyze the predicted future values, compare them with historical trends, and assess their plausibility based on the current context.
7. **Operational Recommendation:** Provide a clear final recommendation (BUY, SELL, or HOLD) with a detailed justification, highlighting any uncertainties or risks.

[Output_Format]
Organize the output into clear and well-structured sections:
- **Introduction:** Summary of the context, objectives, and main findings.
- **Historical and Technical Analysis:** Detailing trends, technical indicators, and volatility/risk assessment.
- **Sentiment and News Analysis:** Qualitative assessment of the impact of news, weighted by source/date.
- **Context and Benchmark:** Any comparisons with the general market or sector benchmarks.
- **Future Projections:** Analysis of predicted values for the coming days, assessment of their consistency with technical and fundamental analysis, and identification of possible turning points.
- **Final Recommendation:** Conclusions and operational indications (BUY, SELL, or HOLD) with detailed evidence and justifications.

The output language must be %s.

[Output_Formatting]
Use "**" before and after the titles of the various output sections.

[Output]
`,
		input.CompanyName,
		input.Symbol,
		input.FinancialSummary,
		input.NewsSummary,
		predictionText,
		input.InvestmentHorizon,
		input.OutputLanguage,
	)
}

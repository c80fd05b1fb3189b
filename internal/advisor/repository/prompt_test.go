package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/entity"
)

func TestBuildFinancialSummary(t *testing.T) {
	assert.Equal(t, "No financial data available.", BuildFinancialSummary(nil))
	assert.Equal(t, "No financial data available.", BuildFinancialSummary(&dto.StockData{Symbol: "AAPL"}))

	summary := BuildFinancialSummary(&dto.StockData{
		Symbol:     "AAPL",
		Candles:    []dto.Candle{{Date: "2025-03-14", Close: 228.5}},
		FirstPrice: 220.1,
		LastPrice:  228.5,
		TrendPct:   3.82,
		Volatility: 24.7,
		AvgVolume:  51234567,
		MA7:        226.3,
		RSI:        61.2,
	})
	assert.Contains(t, summary, "Initial price: $220.10")
	assert.Contains(t, summary, "Final price: $228.50")
	assert.Contains(t, summary, "Percentage change: 3.82%")
	assert.Contains(t, summary, "RSI (Relative Strength Index): 61.20")
}

func TestBuildNewsSummary(t *testing.T) {
	assert.Equal(t, "No news available.", BuildNewsSummary(nil, 10))

	articles := []entity.Article{
		{Title: "First", PublishedAt: "2025-03-12T09:00:00Z", Source: "Reuters"},
		{Title: "Second", PublishedAt: "2025-03-13T10:00:00Z"},
		{Title: "Third", PublishedAt: "2025-03-14T11:00:00Z", Source: "Bloomberg"},
	}

	summary := BuildNewsSummary(articles, 2)
	assert.Contains(t, summary, "(total: 3)")
	assert.Contains(t, summary, "1. [2025-03-12] First (Source: Reuters)")
	assert.Contains(t, summary, "2. [2025-03-13] Second (Source: Unknown source)")
	assert.NotContains(t, summary, "Third")
	assert.Contains(t, summary, "... and 1 more articles not shown.")

	uncapped := BuildNewsSummary(articles, 0)
	assert.Contains(t, uncapped, "Third")
	assert.NotContains(t, uncapped, "not shown")
}

func TestBuildAnalysisPrompt(t *testing.T) {
	input := &dto.AnalysisInput{
		CompanyName:       "Apple",
		Symbol:            "AAPL",
		FinancialSummary:  "FIN-BLOCK",
		NewsSummary:       "NEWS-BLOCK",
		PredictionText:    "FUTURE PREDICTIONS:\n- Day 1: $230.00\n",
		InvestmentHorizon: "medium term",
		OutputLanguage:    "english",
	}

	prompt := BuildAnalysisPrompt(input)
	assert.Contains(t, prompt, "Apple (AAPL)")
	assert.Contains(t, prompt, "FIN-BLOCK")
	assert.Contains(t, prompt, "NEWS-BLOCK")
	assert.Contains(t, prompt, "FUTURE PREDICTIONS")
	assert.Contains(t, prompt, "The output language must be english.")
	assert.Contains(t, prompt, "Investment horizon: medium term")
}

package dto

import "time"

// Candle is one daily bar of price history.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockData carries the price history and the derived technical indicators
// for one symbol over the analysis period.
type StockData struct {
	Symbol     string   `json:"symbol"`
	Candles    []Candle `json:"candles"`
	FirstPrice float64  `json:"first_price"`
	LastPrice  float64  `json:"last_price"`
	TrendPct   float64  `json:"trend_pct"`
	Volatility float64  `json:"volatility"`
	AvgVolume  float64  `json:"avg_volume"`
	MA7        float64  `json:"ma7"`
	RSI        float64  `json:"rsi"`
}

// PredictionPoint is one predicted future value from the external predictor.
type PredictionPoint struct {
	Date       string  `json:"date"`
	Prediction float64 `json:"prediction"`
}

// AnalysisInput is everything the AI provider needs to produce an analysis.
type AnalysisInput struct {
	CompanyName       string
	Symbol            string
	FinancialSummary  string
	NewsSummary       string
	PredictionText    string
	InvestmentHorizon string
	OutputLanguage    string
}

// AnalysisResult is the outcome of one full analysis run.
type AnalysisResult struct {
	Company        string         `json:"company"`
	Symbol         string         `json:"symbol"`
	Analysis       string         `json:"analysis"`
	Recommendation string         `json:"recommendation"`
	AnalysisDate   time.Time      `json:"analysis_date"`
	NewsStats      NewsFetchStats `json:"news_stats"`
	PDFPath        string         `json:"pdf_path,omitempty"`
}

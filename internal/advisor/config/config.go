package config

import (
	"strings"
	"time"

	"golang-stock-advisor/pkg/config"
)

// Analysis holds the general analysis parameters.
type Analysis struct {
	StockSymbol       string `mapstructure:"stock_symbol"`
	PeriodDays        int    `mapstructure:"period_days"`
	InvestmentHorizon string `mapstructure:"investment_horizon"`
	OutputLanguage    string `mapstructure:"output_language"`
	// MaxNewsArticles caps the headlines embedded in the prompt. Zero or
	// negative means no cap.
	MaxNewsArticles int               `mapstructure:"max_news_articles"`
	CompanyNames    map[string]string `mapstructure:"company_names"`
}

// NewsAPI holds the configuration for the news search API and the local cache.
type NewsAPI struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Language            string `mapstructure:"language"`
	SortBy              string `mapstructure:"sort_by"`
	PageSize            int    `mapstructure:"page_size"`
	QuerySuffix         string `mapstructure:"query_suffix"`
	RefreshNoNews       bool   `mapstructure:"refresh_no_news"`
	RefreshArticles     bool   `mapstructure:"refresh_articles"`
	MaxArticlesPerDay   int    `mapstructure:"max_articles_per_day"`
	DBDir               string `mapstructure:"db_dir"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// AI selects the analysis provider.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Together holds the configuration for the Together completions API.
type Together struct {
	APIKey              string  `mapstructure:"api_key"`
	BaseURL             string  `mapstructure:"base_url"`
	Model               string  `mapstructure:"model"`
	MaxTokens           int     `mapstructure:"max_tokens"`
	Temperature         float64 `mapstructure:"temperature"`
	TopP                float64 `mapstructure:"top_p"`
	TopK                int     `mapstructure:"top_k"`
	RepetitionPenalty   float64 `mapstructure:"repetition_penalty"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Prediction holds the configuration for the external prediction program.
type Prediction struct {
	Path      string `mapstructure:"path"`
	PythonBin string `mapstructure:"python_bin"`
}

// Report holds the configuration for run artifacts and the PDF report.
type Report struct {
	OutputDir string `mapstructure:"output_dir"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the advisor.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	Analysis     Analysis      `mapstructure:"analysis"`
	NewsAPI      NewsAPI       `mapstructure:"news_api"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	AI           AI            `mapstructure:"ai"`
	Together     Together      `mapstructure:"together"`
	Gemini       Gemini        `mapstructure:"gemini"`
	Prediction   Prediction    `mapstructure:"prediction"`
	Report       Report        `mapstructure:"report"`
	Telegram     Telegram      `mapstructure:"telegram"`
}

// Load loads the advisor configuration from the given path and applies
// defaults for anything the file leaves out.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Analysis.StockSymbol == "" {
		c.Analysis.StockSymbol = "AAPL"
	}
	c.Analysis.StockSymbol = strings.ToUpper(c.Analysis.StockSymbol)
	if c.Analysis.PeriodDays <= 0 {
		c.Analysis.PeriodDays = 28
	}
	if c.Analysis.InvestmentHorizon == "" {
		c.Analysis.InvestmentHorizon = "medium term"
	}
	if c.Analysis.OutputLanguage == "" {
		c.Analysis.OutputLanguage = "english"
	}

	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if c.NewsAPI.Language == "" {
		c.NewsAPI.Language = "en"
	}
	if c.NewsAPI.SortBy == "" {
		c.NewsAPI.SortBy = "relevancy"
	}
	// The search API accepts at most 100 results per page.
	if c.NewsAPI.PageSize < 1 || c.NewsAPI.PageSize > 100 {
		c.NewsAPI.PageSize = 100
	}
	if c.NewsAPI.DBDir == "" {
		c.NewsAPI.DBDir = "data/news_db"
	}
	if c.NewsAPI.MaxRequestPerMinute <= 0 {
		c.NewsAPI.MaxRequestPerMinute = 30
	}

	if c.YahooFinance.BaseURL == "" {
		c.YahooFinance.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.YahooFinance.MaxRequestPerMinute <= 0 {
		c.YahooFinance.MaxRequestPerMinute = 30
	}
	if c.YahooFinance.CacheTTL <= 0 {
		c.YahooFinance.CacheTTL = 5 * time.Minute
	}

	if c.AI.Provider == "" {
		c.AI.Provider = "together"
	}

	if c.Together.BaseURL == "" {
		c.Together.BaseURL = "https://api.together.xyz"
	}
	if c.Together.Model == "" {
		c.Together.Model = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"
	}
	if c.Together.MaxTokens <= 0 {
		c.Together.MaxTokens = 2048
	}
	if c.Together.Temperature <= 0 {
		c.Together.Temperature = 0.3
	}
	if c.Together.TopP <= 0 {
		c.Together.TopP = 0.9
	}
	if c.Together.TopK <= 0 {
		c.Together.TopK = 40
	}
	if c.Together.RepetitionPenalty <= 0 {
		c.Together.RepetitionPenalty = 1.0
	}
	if c.Together.MaxRequestPerMinute <= 0 {
		c.Together.MaxRequestPerMinute = 10
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.MaxRequestPerMinute <= 0 {
		c.Gemini.MaxRequestPerMinute = 10
	}

	if c.Prediction.PythonBin == "" {
		c.Prediction.PythonBin = "python3"
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "output/logs"
	}
}

// CompanyName resolves the company name for a symbol, preferring the
// configured overrides over the built-in map.
func (c *Config) CompanyName(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if name, ok := c.Analysis.CompanyNames[symbol]; ok {
		return name
	}
	if name, ok := defaultCompanyNames[symbol]; ok {
		return name
	}
	return "Company " + symbol
}

var defaultCompanyNames = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"AMZN":  "Amazon",
	"META":  "Meta",
	"TSLA":  "Tesla",
	"NVDA":  "NVIDIA",
	"NFLX":  "Netflix",
	"INTC":  "Intel",
	"AMD":   "AMD",
}

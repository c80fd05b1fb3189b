package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: stock-advisor
analysis:
  stock_symbol: tsla
news_api:
  page_size: 500
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TSLA", cfg.Analysis.StockSymbol)
	assert.Equal(t, 28, cfg.Analysis.PeriodDays)
	assert.Equal(t, "medium term", cfg.Analysis.InvestmentHorizon)
	assert.Equal(t, "https://newsapi.org/v2", cfg.NewsAPI.BaseURL)
	assert.Equal(t, 100, cfg.NewsAPI.PageSize, "page size above the API maximum falls back to 100")
	assert.Equal(t, "data/news_db", cfg.NewsAPI.DBDir)
	assert.Equal(t, "together", cfg.AI.Provider)
	assert.Equal(t, "output/logs", cfg.Report.OutputDir)
}

func TestCompanyName(t *testing.T) {
	cfg := &Config{}
	cfg.Analysis.CompanyNames = map[string]string{"ENI": "Eni S.p.A."}

	assert.Equal(t, "Eni S.p.A.", cfg.CompanyName("eni"))
	assert.Equal(t, "Apple", cfg.CompanyName("AAPL"))
	assert.Equal(t, "Company XYZ", cfg.CompanyName("xyz"))
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-advisor/internal/advisor/dto"
)

func chartResult(closes []float64, volumes []int64) *dto.YahooChartResult {
	result := &dto.YahooChartResult{}
	base := int64(1741564800) // 2025-03-10 00:00:00 UTC
	for i := range closes {
		result.Timestamp = append(result.Timestamp, base+int64(i)*86400)
	}
	result.Indicators.Quote = []dto.YahooQuote{{
		Close:  closes,
		Volume: volumes,
	}}
	return result
}

func TestBuildStockData(t *testing.T) {
	data, err := buildStockData("AAPL", chartResult(
		[]float64{100, 102, 101, 104, 106},
		[]int64{1000, 2000, 1500, 2500, 3000},
	))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", data.Symbol)
	require.Len(t, data.Candles, 5)
	assert.Equal(t, "2025-03-10", data.Candles[0].Date)
	assert.InDelta(t, 100, data.FirstPrice, 1e-9)
	assert.InDelta(t, 106, data.LastPrice, 1e-9)
	assert.InDelta(t, 6.0, data.TrendPct, 1e-9)
	assert.InDelta(t, 2000, data.AvgVolume, 1e-9)
	assert.Greater(t, data.Volatility, 0.0)
	assert.InDelta(t, (100.0+102+101+104+106)/5, data.MA7, 1e-9)
}

func TestBuildStockData_SkipsZeroCloses(t *testing.T) {
	data, err := buildStockData("AAPL", chartResult(
		[]float64{100, 0, 104},
		[]int64{1000, 0, 2000},
	))
	require.NoError(t, err)
	require.Len(t, data.Candles, 2)
	assert.InDelta(t, 104, data.LastPrice, 1e-9)
}

func TestBuildStockData_NoUsableData(t *testing.T) {
	_, err := buildStockData("AAPL", chartResult([]float64{0, 0}, []int64{0, 0}))
	assert.Error(t, err)

	_, err = buildStockData("AAPL", &dto.YahooChartResult{})
	assert.Error(t, err)
}

func TestRelativeStrengthIndex(t *testing.T) {
	// Monotonic rise has no losses.
	rising := chartResult([]float64{100, 101, 102, 103}, []int64{1, 1, 1, 1})
	data, err := buildStockData("AAPL", rising)
	require.NoError(t, err)
	assert.InDelta(t, 100, data.RSI, 1e-9)

	// Equal average gain and loss balances at 50.
	candles := []dto.Candle{{Close: 100}, {Close: 102}, {Close: 100}}
	assert.InDelta(t, 50, relativeStrengthIndex(candles, 14), 1e-9)
}

func TestMovingAverage_WindowLargerThanSeries(t *testing.T) {
	candles := []dto.Candle{{Close: 10}, {Close: 20}}
	assert.InDelta(t, 15, movingAverage(candles, 7), 1e-9)
	assert.InDelta(t, 0, movingAverage(nil, 7), 1e-9)
}

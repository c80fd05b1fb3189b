package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// YahooFinanceRepository retrieves daily price history and derives the
// technical indicators used in the analysis prompt.
type YahooFinanceRepository interface {
	GetStockData(ctx context.Context, symbol string, days int) (*dto.StockData, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	responseCache  *cache.Cache
}

// NewYahooFinanceRepository creates a rate-limited Yahoo Finance chart client
// with an in-process response cache.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: requestLimiter,
		responseCache:  cache.New(cfg.YahooFinance.CacheTTL, 2*cfg.YahooFinance.CacheTTL),
	}
}

func (r *yahooFinanceRepository) GetStockData(ctx context.Context, symbol string, days int) (*dto.StockData, error) {
	cacheKey := fmt.Sprintf("%s:%d", symbol, days)
	if cached, found := r.responseCache.Get(cacheKey); found {
		r.log.Debug("Serving stock data from cache", logger.StringField("symbol", symbol))
		return cached.(*dto.StockData), nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	now := time.Now()
	period1 := now.AddDate(0, 0, -days).Unix()
	period2 := now.Unix()

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		r.cfg.YahooFinance.BaseURL, symbol, period1, period2)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		r.log.Error("Failed to create Yahoo Finance request", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to create Yahoo Finance request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Error("Failed to send request to Yahoo Finance", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to send request to Yahoo Finance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Error("Received non-OK response from Yahoo Finance", logger.IntField("status_code", resp.StatusCode), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("received non-OK response from Yahoo Finance: %d", resp.StatusCode)
	}

	var chartResp dto.YahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		r.log.Error("Failed to decode Yahoo Finance response", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to decode Yahoo Finance response: %w", err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance error: %s (%s)", chartResp.Chart.Error.Description, chartResp.Chart.Error.Code)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data found for symbol %s", symbol)
	}

	stockData, err := buildStockData(symbol, &chartResp.Chart.Result[0])
	if err != nil {
		return nil, err
	}

	r.log.Info("Retrieved price history",
		logger.StringField("symbol", symbol),
		logger.IntField("candles", len(stockData.Candles)),
	)

	r.responseCache.Set(cacheKey, stockData, cache.DefaultExpiration)
	return stockData, nil
}

func buildStockData(symbol string, result *dto.YahooChartResult) (*dto.StockData, error) {
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data found for symbol %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	var candles []dto.Candle
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		candle := dto.Candle{
			Date:  utils.FormatDate(time.Unix(ts, 0).UTC()),
			Close: quote.Close[i],
		}
		if i < len(quote.Open) {
			candle.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			candle.High = quote.High[i]
		}
		if i < len(quote.Low) {
			candle.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			candle.Volume = quote.Volume[i]
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("no usable price data found for symbol %s", symbol)
	}

	stockData := &dto.StockData{
		Symbol:     symbol,
		Candles:    candles,
		FirstPrice: candles[0].Close,
		LastPrice:  candles[len(candles)-1].Close,
	}
	stockData.TrendPct = (stockData.LastPrice - stockData.FirstPrice) / stockData.FirstPrice * 100

	var volumeSum float64
	for _, c := range candles {
		volumeSum += float64(c.Volume)
	}
	stockData.AvgVolume = volumeSum / float64(len(candles))

	returns := dailyReturns(candles)
	stockData.Volatility = stdDev(returns) * math.Sqrt(252) * 100
	stockData.MA7 = movingAverage(candles, 7)
	stockData.RSI = relativeStrengthIndex(candles, 14)

	return stockData, nil
}

func dailyReturns(candles []dto.Candle) []float64 {
	var returns []float64
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (candles[i].Close-prev)/prev)
	}
	return returns
}

func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func movingAverage(candles []dto.Candle, window int) float64 {
	if len(candles) < window {
		window = len(candles)
	}
	if window == 0 {
		return 0
	}
	var sum float64
	for _, c := range candles[len(candles)-window:] {
		sum += c.Close
	}
	return sum / float64(window)
}

func relativeStrengthIndex(candles []dto.Candle, window int) float64 {
	if len(candles) < 2 {
		return 0
	}

	var deltas []float64
	for i := 1; i < len(candles); i++ {
		deltas = append(deltas, candles[i].Close-candles[i-1].Close)
	}
	if len(deltas) > window {
		deltas = deltas[len(deltas)-window:]
	}

	var gain, loss float64
	for _, d := range deltas {
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(len(deltas))
	avgLoss := loss / float64(len(deltas))

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

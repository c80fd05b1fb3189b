package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"

	"golang.org/x/time/rate"
)

// NewsAPIRepository searches the remote news API. The endpoint only accepts a
// contiguous from/to range, not a sparse date list.
type NewsAPIRepository interface {
	SearchArticles(ctx context.Context, query string, from, to time.Time) ([]dto.NewsAPIArticle, error)
}

type newsAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a rate-limited client for the news search API.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsAPIRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.NewsAPI.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		requestLimiter: requestLimiter,
	}
}

func (r *newsAPIRepository) SearchArticles(ctx context.Context, query string, from, to time.Time) ([]dto.NewsAPIArticle, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", utils.FormatDate(from))
	params.Set("to", utils.FormatDate(to))
	params.Set("language", r.cfg.NewsAPI.Language)
	params.Set("sortBy", r.cfg.NewsAPI.SortBy)
	params.Set("pageSize", strconv.Itoa(r.cfg.NewsAPI.PageSize))

	reqURL := r.cfg.NewsAPI.BaseURL + "/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		r.log.Error("Failed to create news API request", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to create news API request: %w", err)
	}
	req.Header.Set("X-Api-Key", r.cfg.NewsAPI.APIKey)
	req.Header.Set("Accept", "application/json")

	r.log.Debug("Calling news search API",
		logger.StringField("query", query),
		logger.StringField("from", utils.FormatDate(from)),
		logger.StringField("to", utils.FormatDate(to)),
		logger.StringField("sort_by", r.cfg.NewsAPI.SortBy),
		logger.IntField("page_size", r.cfg.NewsAPI.PageSize),
	)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Error("Failed to send request to news API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to news API: %w", err)
	}
	defer resp.Body.Close()

	var apiResp dto.NewsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		r.log.Error("Failed to decode news API response", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to decode news API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || apiResp.Status != "ok" {
		r.log.Error("Received error response from news API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("code", apiResp.Code),
			logger.StringField("message", apiResp.Message),
		)
		return nil, fmt.Errorf("news API error: %s (%s)", apiResp.Message, apiResp.Code)
	}

	r.log.Info("Retrieved articles from news API",
		logger.IntField("count", len(apiResp.Articles)),
		logger.StringField("query", query),
	)
	return apiResp.Articles, nil
}

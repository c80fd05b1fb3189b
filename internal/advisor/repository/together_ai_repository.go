package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"golang.org/x/time/rate"
)

// togetherAIRepository is an implementation of AIRepository that uses the
// Together completions API.
type togetherAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewTogetherAIRepository creates a new instance of togetherAIRepository.
func NewTogetherAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Together.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &togetherAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

// AnalyzeStock performs the stock analysis using the Together completions API.
func (r *togetherAIRepository) AnalyzeStock(ctx context.Context, input *dto.AnalysisInput) (string, error) {
	prompt := BuildAnalysisPrompt(input)

	payload := dto.TogetherCompletionRequest{
		Model:             r.cfg.Together.Model,
		Prompt:            prompt,
		MaxTokens:         r.cfg.Together.MaxTokens,
		Temperature:       r.cfg.Together.Temperature,
		TopP:              r.cfg.Together.TopP,
		TopK:              r.cfg.Together.TopK,
		RepetitionPenalty: r.cfg.Together.RepetitionPenalty,
		Stop:              []string{"\n\n\n"},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal Together request", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal Together request: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Together.BaseURL+"/v1/completions", bytes.NewBuffer(jsonPayload))
	if err != nil {
		r.logger.Error("Failed to create Together request", logger.ErrorField(err))
		return "", fmt.Errorf("failed to create Together request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.Together.APIKey)
	req.Header.Set("Content-Type", "application/json")

	r.logger.Info("Sending analysis request to Together API",
		logger.StringField("symbol", input.Symbol),
		logger.StringField("model", r.cfg.Together.Model),
	)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Together API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Together API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Received non-OK response from Together API", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("received non-OK response from Together API: %d", resp.StatusCode)
	}

	var completion dto.TogetherCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		r.logger.Error("Failed to decode Together response", logger.ErrorField(err))
		return "", fmt.Errorf("failed to decode Together response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("together API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("received empty choices from Together API")
	}

	analysisText := strings.TrimSpace(completion.Choices[0].Text)
	if analysisText == "" {
		return "", fmt.Errorf("received empty analysis text from Together API")
	}

	r.logger.Info("Received analysis from Together API", logger.IntField("length", len(analysisText)))
	return analysisText, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is an implementation of AIRepository that uses the
// Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// AnalyzeStock performs the stock analysis using the Gemini API.
func (r *geminiAIRepository) AnalyzeStock(ctx context.Context, input *dto.AnalysisInput) (string, error) {
	prompt := BuildAnalysisPrompt(input)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	r.logger.Info("Sending analysis request to Gemini API",
		logger.StringField("symbol", input.Symbol),
		logger.StringField("model", r.cfg.Gemini.Model),
	)

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		r.logger.Error("Failed to generate content with Gemini", logger.ErrorField(err))
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}

	analysisText := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if analysisText == "" {
		return "", fmt.Errorf("received empty analysis text from Gemini API")
	}

	r.logger.Info("Received analysis from Gemini API", logger.IntField("length", len(analysisText)))
	return analysisText, nil
}

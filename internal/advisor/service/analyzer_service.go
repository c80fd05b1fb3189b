package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/report"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/telegram"
)

// AnalyzerService runs one full analysis for a symbol: price history, news,
// optional predictions, the AI analysis itself and the report artifacts.
type AnalyzerService interface {
	Analyze(ctx context.Context, symbol string) (*dto.AnalysisResult, error)
}

type analyzerService struct {
	cfg        *config.Config
	log        *logger.Logger
	yahoo      repository.YahooFinanceRepository
	news       NewsService
	prediction repository.PredictionRepository
	ai         repository.AIRepository
	report     *report.Writer
	notifier   telegram.Notifier

	now func() time.Time
}

// NewAnalyzerService creates a new instance of analyzerService. The notifier
// may be nil when Telegram notifications are disabled.
func NewAnalyzerService(
	cfg *config.Config,
	log *logger.Logger,
	yahoo repository.YahooFinanceRepository,
	news NewsService,
	prediction repository.PredictionRepository,
	ai repository.AIRepository,
	reportWriter *report.Writer,
	notifier telegram.Notifier,
) AnalyzerService {
	return &analyzerService{
		cfg:        cfg,
		log:        log,
		yahoo:      yahoo,
		news:       news,
		prediction: prediction,
		ai:         ai,
		report:     reportWriter,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *analyzerService) Analyze(ctx context.Context, symbol string) (*dto.AnalysisResult, error) {
	startedAt := s.now()
	companyName := s.cfg.CompanyName(symbol)

	s.log.InfoContext(ctx, "Starting stock analysis",
		logger.StringField("symbol", symbol),
		logger.StringField("company", companyName))

	stockData, err := s.yahoo.GetStockData(ctx, symbol, s.cfg.Analysis.PeriodDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock data for %s: %w", symbol, err)
	}

	articles, newsStats := s.news.GetCompanyNews(ctx, companyName, symbol, s.cfg.Analysis.PeriodDays)

	predictionText, err := s.prediction.GetPredictions(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to get predictions, proceeding without them",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		predictionText = ""
	}

	input := &dto.AnalysisInput{
		CompanyName:       companyName,
		Symbol:            symbol,
		FinancialSummary:  repository.BuildFinancialSummary(stockData),
		NewsSummary:       repository.BuildNewsSummary(articles, s.cfg.Analysis.MaxNewsArticles),
		PredictionText:    predictionText,
		InvestmentHorizon: s.cfg.Analysis.InvestmentHorizon,
		OutputLanguage:    s.cfg.Analysis.OutputLanguage,
	}

	analysis, err := s.ai.AnalyzeStock(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &dto.AnalysisResult{
		Company:        companyName,
		Symbol:         symbol,
		Analysis:       analysis,
		Recommendation: ExtractRecommendation(analysis),
		AnalysisDate:   startedAt,
		NewsStats:      newsStats,
	}

	s.writeArtifacts(ctx, result, repository.BuildAnalysisPrompt(input), stockData, articles, predictionText)
	s.notify(ctx, result)

	s.log.InfoContext(ctx, "Stock analysis completed",
		logger.StringField("symbol", symbol),
		logger.StringField("recommendation", result.Recommendation))

	return result, nil
}

// writeArtifacts stores the run's prompt, response, summary and PDF report.
// Artifact failures never fail the analysis.
func (s *analyzerService) writeArtifacts(ctx context.Context, result *dto.AnalysisResult, prompt string, stockData *dto.StockData, articles []entity.Article, predictionText string) {
	runDir, err := s.report.RunDir(result.Symbol, result.AnalysisDate)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to create run directory", logger.ErrorField(err))
		return
	}

	if err := s.report.WritePrompt(runDir, result.Symbol, prompt); err != nil {
		s.log.WarnContext(ctx, "Failed to write prompt log", logger.ErrorField(err))
	}
	if err := s.report.WriteResponse(runDir, result.Symbol, result.Analysis); err != nil {
		s.log.WarnContext(ctx, "Failed to write response log", logger.ErrorField(err))
	}

	pdfPath, err := s.report.WritePDF(runDir, result, stockData, articles, predictionText)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to write PDF report", logger.ErrorField(err))
	} else {
		result.PDFPath = pdfPath
		s.log.InfoContext(ctx, "PDF report written", logger.StringField("path", pdfPath))
	}

	if err := s.report.WriteSummary(runDir, result); err != nil {
		s.log.WarnContext(ctx, "Failed to write run summary", logger.ErrorField(err))
	}
}

func (s *analyzerService) notify(ctx context.Context, result *dto.AnalysisResult) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatAnalysisForTelegram(result)); err != nil {
		s.log.WarnContext(ctx, "Failed to send Telegram notification", logger.ErrorField(err))
	}
}

// ExtractRecommendation derives the final call from the analysis text by
// counting explicit BUY, SELL and HOLD mentions. No mention at all yields
// INDETERMINATE, a tie between the most frequent mentions yields UNKNOWN.
func ExtractRecommendation(analysis string) string {
	counts := map[string]int{
		entity.RecommendationBuy:  strings.Count(analysis, entity.RecommendationBuy),
		entity.RecommendationSell: strings.Count(analysis, entity.RecommendationSell),
		entity.RecommendationHold: strings.Count(analysis, entity.RecommendationHold),
	}

	best := ""
	max := 0
	tied := false
	for _, rec := range []string{entity.RecommendationBuy, entity.RecommendationSell, entity.RecommendationHold} {
		switch {
		case counts[rec] > max:
			best = rec
			max = counts[rec]
			tied = false
		case counts[rec] == max && max > 0:
			tied = true
		}
	}

	if max == 0 {
		return entity.RecommendationIndeterminate
	}
	if tied {
		return entity.RecommendationUnknown
	}
	return best
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/report"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	configPath string
	symbolFlag string
	periodFlag int
	cronSpec   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Runs one full analysis for the configured stock symbol",
	Run:   runAnalyze,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective configuration",
	Run:   runConfig,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Runs the analysis on a cron schedule until interrupted",
	Run:   runSchedule,
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, appLogger := mustSetup()
	defer func() { _ = appLogger.Sync() }()

	analyzer, err := buildAnalyzer(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}

	result, err := analyzer.Analyze(ctx, cfg.Analysis.StockSymbol)
	if err != nil {
		appLogger.Fatal("Analysis failed", zap.Error(err))
	}

	fmt.Printf("\n%s\n\nRecommendation: %s\n", result.Analysis, result.Recommendation)
	if result.PDFPath != "" {
		fmt.Printf("Report: %s\n", result.PDFPath)
	}
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, appLogger := mustSetup()
	defer func() { _ = appLogger.Sync() }()

	// Secrets are masked, the rest is shown as loaded.
	shown := *cfg
	shown.NewsAPI.APIKey = mask(shown.NewsAPI.APIKey)
	shown.Together.APIKey = mask(shown.Together.APIKey)
	shown.Gemini.APIKey = mask(shown.Gemini.APIKey)
	shown.Telegram.BotToken = mask(shown.Telegram.BotToken)

	out, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to render configuration", zap.Error(err))
	}
	fmt.Println(string(out))
}

func runSchedule(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, appLogger := mustSetup()
	defer func() { _ = appLogger.Sync() }()

	analyzer, err := buildAnalyzer(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}

	c := cron.New()
	_, err = c.AddFunc(cronSpec, func() {
		if _, err := analyzer.Analyze(ctx, cfg.Analysis.StockSymbol); err != nil {
			appLogger.Error("Scheduled analysis failed",
				logger.StringField("symbol", cfg.Analysis.StockSymbol),
				logger.ErrorField(err))
		}
	})
	if err != nil {
		appLogger.Fatal("Invalid cron expression", zap.Error(err))
	}

	c.Start()
	appLogger.Info("Scheduler started",
		logger.StringField("cron", cronSpec),
		logger.StringField("symbol", cfg.Analysis.StockSymbol))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down scheduler...")
	cancel()
	<-c.Stop().Done()
	appLogger.Info("Scheduler stopped.")
}

func mustSetup() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if symbolFlag != "" {
		cfg.Analysis.StockSymbol = symbolFlag
	}
	if periodFlag > 0 {
		cfg.Analysis.PeriodDays = periodFlag
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func buildAnalyzer(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (service.AnalyzerService, error) {
	storeRepo, err := repository.NewNewsStoreRepository(cfg.NewsAPI.DBDir, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize news store: %w", err)
	}
	newsAPIRepo := repository.NewNewsAPIRepository(cfg, appLogger)
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	predictionRepo := repository.NewPredictionRepository(cfg, appLogger)

	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			return nil, err
		}
	default:
		aiRepo = repository.NewTogetherAIRepository(cfg, appLogger)
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Failed to initialize Telegram notifier, notifications disabled", zap.Error(err))
			notifier = nil
		}
	}

	newsService := service.NewNewsService(cfg, appLogger, storeRepo, newsAPIRepo)
	reportWriter := report.NewWriter(cfg, appLogger)

	return service.NewAnalyzerService(cfg, appLogger, yahooRepo, newsService, predictionRepo, aiRepo, reportWriter, notifier), nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "stock-advisor",
		Short: "AI-assisted stock analysis from price history, news and predictions",
	}

	for _, c := range []*cobra.Command{analyzeCmd, configCmd, scheduleCmd} {
		c.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
		c.Flags().StringVarP(&symbolFlag, "symbol", "s", "", "Stock symbol to analyze (overrides configuration)")
		c.Flags().IntVarP(&periodFlag, "period", "p", 0, "Analysis period in days (overrides configuration)")
	}
	scheduleCmd.Flags().StringVar(&cronSpec, "cron", "0 8 * * 1-5", "Cron expression for scheduled runs")

	rootCmd.AddCommand(analyzeCmd, configCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing stock-advisor CLI: %s\n", err)
		os.Exit(1)
	}
}

package repository

import (
	"context"

	"golang-stock-advisor/internal/advisor/dto"
)

// AIRepository produces the free-text analysis for a stock. Implementations
// wrap a specific model provider; the provider is selected from configuration.
type AIRepository interface {
	AnalyzeStock(ctx context.Context, input *dto.AnalysisInput) (string, error)
}

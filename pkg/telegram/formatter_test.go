package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/entity"
)

func TestFormatAnalysisForTelegram(t *testing.T) {
	result := &dto.AnalysisResult{
		Company:        "Apple",
		Symbol:         "AAPL",
		Analysis:       "Solid quarter.",
		Recommendation: entity.RecommendationBuy,
		AnalysisDate:   time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC),
		NewsStats:      dto.NewsFetchStats{DaysFromCache: 20, DaysFromRemote: 7, DaysWithNoNews: 2},
	}

	msg := FormatAnalysisForTelegram(result)
	assert.Contains(t, msg, "Apple (AAPL)")
	assert.Contains(t, msg, "🟢 *Recommendation:* BUY")
	assert.Contains(t, msg, "20 cached, 7 fetched, 2 empty")
	assert.Contains(t, msg, "Solid quarter.")
}

func TestFormatAnalysisForTelegram_TruncatesLongAnalysis(t *testing.T) {
	result := &dto.AnalysisResult{
		Company:        "Apple",
		Symbol:         "AAPL",
		Analysis:       strings.Repeat("x", 10000),
		Recommendation: entity.RecommendationHold,
		AnalysisDate:   time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC),
	}

	msg := FormatAnalysisForTelegram(result)
	assert.LessOrEqual(t, len(msg), 4090)
	assert.True(t, strings.HasSuffix(msg, "..."))
}

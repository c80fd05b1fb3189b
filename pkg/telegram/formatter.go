package telegram

import (
	"fmt"
	"strings"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/entity"
)

// FormatAnalysisForTelegram formats one analysis result into a Markdown
// message for Telegram, truncating the analysis body so the message stays
// under the Telegram length limit.
func FormatAnalysisForTelegram(result *dto.AnalysisResult) string {
	const maxLen = 4090

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 *Stock Analysis: %s (%s)*\n\n", result.Company, result.Symbol))

	var icon string
	switch result.Recommendation {
	case entity.RecommendationBuy:
		icon = "🟢"
	case entity.RecommendationSell:
		icon = "🔴"
	case entity.RecommendationHold:
		icon = "🟡"
	default:
		icon = "⚪️"
	}
	b.WriteString(fmt.Sprintf("%s *Recommendation:* %s\n", icon, result.Recommendation))
	b.WriteString(fmt.Sprintf("🗓 *Date:* %s\n", result.AnalysisDate.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("📰 *News days:* %d cached, %d fetched, %d empty\n\n",
		result.NewsStats.DaysFromCache, result.NewsStats.DaysFromRemote, result.NewsStats.DaysWithNoNews))

	analysis := result.Analysis
	if remaining := maxLen - b.Len() - 4; len(analysis) > remaining {
		analysis = analysis[:remaining] + "..."
	}
	b.WriteString(analysis)

	return b.String()
}

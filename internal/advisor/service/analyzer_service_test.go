package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-stock-advisor/internal/entity"
)

func TestExtractRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		analysis string
		want     string
	}{
		{
			name:     "clear buy",
			analysis: "Momentum is strong. Recommendation: BUY. A BUY at this level is supported by earnings.",
			want:     entity.RecommendationBuy,
		},
		{
			name:     "clear sell",
			analysis: "Deteriorating fundamentals. SELL.",
			want:     entity.RecommendationSell,
		},
		{
			name:     "hold wins over single buy mention",
			analysis: "Some would BUY here, but HOLD is prudent. HOLD until the next report.",
			want:     entity.RecommendationHold,
		},
		{
			name:     "tie yields unknown",
			analysis: "Arguments for BUY and for SELL are equally strong.",
			want:     entity.RecommendationUnknown,
		},
		{
			name:     "no mention yields indeterminate",
			analysis: "The outlook is mixed and no clear action emerges.",
			want:     entity.RecommendationIndeterminate,
		},
		{
			name:     "lowercase mentions do not count",
			analysis: "Many analysts say buy, others say sell.",
			want:     entity.RecommendationIndeterminate,
		},
		{
			name:     "empty analysis",
			analysis: "",
			want:     entity.RecommendationIndeterminate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRecommendation(tt.analysis))
		})
	}
}

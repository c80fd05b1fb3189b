package entity

// Recommendation values extracted from the model's analysis text.
const (
	RecommendationBuy           = "BUY"
	RecommendationSell          = "SELL"
	RecommendationHold          = "HOLD"
	RecommendationUnknown       = "UNKNOWN"       // tie between candidates
	RecommendationIndeterminate = "INDETERMINATE" // no candidate mentioned
)

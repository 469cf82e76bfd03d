// backend/src/models/forecast.go
package models

// Trend classification produced by the forecaster. Thresholds are fixed
// constants in USD/month units over the regression slope.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"
)

// Risk classification derived from the volatility of monthly totals.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// SeasonalEntry is one calendar month's payout multiplier relative to the
// mean monthly total. Month is zero-based (0 = January).
type SeasonalEntry struct {
	Month      int     `json:"month"`
	Multiplier float64 `json:"multiplier"`
}

// InstrumentGrowth ranks a company by the growth of its recent payments
// against its older ones.
type InstrumentGrowth struct {
	Name                string  `json:"name"`
	GrowthPercent       float64 `json:"growth_percent"`
	PredictedNextAmount float64 `json:"predicted_next_amount"`
}

// ForecastResult holds the trend extrapolation over a cleaned record set.
// The confidence figure is a bounded heuristic, not a statistical confidence
// interval, and the estimates are illustrative projections only.
type ForecastResult struct {
	NextQuarterEstimate  float64            `json:"next_quarter_estimate"`
	NextYearEstimate     float64            `json:"next_year_estimate"`
	Trend                string             `json:"trend"`
	ConfidencePercent    float64            `json:"confidence_percent"`
	SeasonalPattern      []SeasonalEntry    `json:"seasonal_pattern"`
	TopGrowthInstruments []InstrumentGrowth `json:"top_growth_instruments"`
	RiskLevel            string             `json:"risk_level"`
}

// backend/src/models/metrics.go
package models

import "time"

// Overall payout direction shown on the dashboard, comparing the last three
// months against the rest of the history with a ±10% band.
const (
	MetricsTrendUp     = "up"
	MetricsTrendDown   = "down"
	MetricsTrendStable = "stable"
)

// MonthTotal names the best-paying calendar month ("YYYY-MM").
type MonthTotal struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// CompanyTotal names the best-paying company by total USD received.
type CompanyTotal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DashboardMetrics holds the summary figures for a cleaned record set. All
// fields are recomputed on request; the reference time for the recency
// figures is passed in by the caller, never read from the ambient clock.
type DashboardMetrics struct {
	TotalUSD              float64      `json:"total_usd"`
	TotalEUR              float64      `json:"total_eur"`
	TotalTransactions     int          `json:"total_transactions"`
	UniqueCompanies       int          `json:"unique_companies"`
	AveragePerTransaction float64      `json:"average_per_transaction"`
	BestMonth             MonthTotal   `json:"best_month"`
	BestCompany           CompanyTotal `json:"best_company"`
	FirstDividend         time.Time    `json:"first_dividend"`
	LastDividend          time.Time    `json:"last_dividend"`
	MonthlyAverage        float64      `json:"monthly_average"`
	Trend                 string       `json:"trend"`
	DaysInvesting         int          `json:"days_investing"`
	DaysSinceLastPayment  int          `json:"days_since_last_payment"`
}

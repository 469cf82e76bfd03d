// backend/src/processors/metrics.go
package processors

import (
	"math"
	"sort"
	"time"

	"github.com/username/dividendvisor/backend/src/dates"
	"github.com/username/dividendvisor/backend/src/models"
)

// MetricsCalculator derives the dashboard summary over a cleaned record
// set. The reference time is an explicit parameter so the recency figures
// are reproducible in tests.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new instance of MetricsCalculator.
func NewMetricsCalculator() *MetricsCalculator { return &MetricsCalculator{} }

// Compute builds the dashboard metrics for the records, using now as the
// reference for trend and recency figures.
func (m *MetricsCalculator) Compute(records []models.DividendRecord, now time.Time) models.DashboardMetrics {
	if len(records) == 0 {
		return models.DashboardMetrics{
			Trend:         models.MetricsTrendStable,
			FirstDividend: now,
			LastDividend:  now,
		}
	}

	var totalUSD, totalEUR float64
	companySet := make(map[string]struct{})
	for _, rec := range records {
		totalUSD += rec.AmountNetUSD
		totalEUR += rec.AmountNetEUR
		companySet[rec.InstrumentName] = struct{}{}
	}

	parsed := make([]time.Time, len(records))
	for i, rec := range records {
		parsed[i] = dates.ParseAt(rec.PaymentDate, now)
	}
	first, last := parsed[0], parsed[0]
	for _, d := range parsed[1:] {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	// Month span of the observed history, floored at one month so averages
	// stay meaningful for single-payment uploads.
	monthsDiff := last.Sub(first).Hours() / 24 / 30
	if monthsDiff < 1 {
		monthsDiff = 1
	}

	threeMonthsAgo := now.AddDate(0, -3, 0)
	var recentSum, olderSum float64
	var recentCount, olderCount int
	for i, rec := range records {
		if parsed[i].Before(threeMonthsAgo) {
			olderSum += rec.AmountNetUSD
			olderCount++
		} else {
			recentSum += rec.AmountNetUSD
			recentCount++
		}
	}

	var recentAvg, olderAvg float64
	if recentCount > 0 {
		recentAvg = recentSum / 3
	}
	if olderCount > 0 {
		olderAvg = olderSum / math.Max(1, monthsDiff-3)
	}

	trend := models.MetricsTrendStable
	switch {
	case recentAvg > olderAvg*1.1:
		trend = models.MetricsTrendUp
	case recentAvg < olderAvg*0.9:
		trend = models.MetricsTrendDown
	}

	const day = 24 * time.Hour
	return models.DashboardMetrics{
		TotalUSD:              totalUSD,
		TotalEUR:              totalEUR,
		TotalTransactions:     len(records),
		UniqueCompanies:       len(companySet),
		AveragePerTransaction: totalUSD / float64(len(records)),
		BestMonth:             bestMonth(records, parsed),
		BestCompany:           bestCompany(records),
		FirstDividend:         first,
		LastDividend:          last,
		MonthlyAverage:        totalUSD / monthsDiff,
		Trend:                 trend,
		DaysInvesting:         int(math.Ceil(now.Sub(first).Hours() / 24)),
		DaysSinceLastPayment:  int(math.Ceil(now.Sub(last).Hours() / 24)),
	}
}

func bestMonth(records []models.DividendRecord, parsed []time.Time) models.MonthTotal {
	totals := make(map[string]float64)
	for i, rec := range records {
		totals[parsed[i].Format("2006-01")] += rec.AmountNetUSD
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := models.MonthTotal{}
	for _, k := range keys {
		if totals[k] > best.Amount {
			best = models.MonthTotal{Month: k, Amount: totals[k]}
		}
	}
	return best
}

func bestCompany(records []models.DividendRecord) models.CompanyTotal {
	totals := make(map[string]float64)
	var order []string
	for _, rec := range records {
		if _, ok := totals[rec.InstrumentName]; !ok {
			order = append(order, rec.InstrumentName)
		}
		totals[rec.InstrumentName] += rec.AmountNetUSD
	}

	best := models.CompanyTotal{}
	for _, name := range order {
		if totals[name] > best.Amount {
			best = models.CompanyTotal{Name: name, Amount: totals[name]}
		}
	}
	return best
}

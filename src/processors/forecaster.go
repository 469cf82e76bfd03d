// backend/src/processors/forecaster.go
package processors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/username/dividendvisor/backend/src/dates"
	"github.com/username/dividendvisor/backend/src/models"
)

// Trend slope thresholds, in USD/month units.
const (
	bullishSlope = 5.0
	bearishSlope = -5.0
)

// Volatility thresholds for the risk classification.
const (
	highRiskVolatility   = 0.5
	mediumRiskVolatility = 0.2
)

// minRecordsForForecast guards the regression against samples too small to
// say anything about.
const minRecordsForForecast = 3

// Forecaster derives trend projections from a cleaned record set. The
// confidence and risk figures are fixed heuristics kept for behaviour
// parity with the source system, not statistical measures.
type Forecaster struct{}

// NewForecaster creates a new instance of Forecaster.
func NewForecaster() *Forecaster { return &Forecaster{} }

type monthlyBucket struct {
	year  int
	month int // zero-based calendar month
	total float64
	count int
}

// Forecast computes the full projection set over the records. With fewer
// than 3 records it returns a zeroed, neutral result instead of running a
// meaningless regression.
func (f *Forecaster) Forecast(records []models.DividendRecord) models.ForecastResult {
	if len(records) < minRecordsForForecast {
		// Empty slices, not nil, so the JSON payload keeps its arrays.
		return models.ForecastResult{
			Trend:                models.TrendNeutral,
			RiskLevel:            models.RiskLow,
			SeasonalPattern:      []models.SeasonalEntry{},
			TopGrowthInstruments: []models.InstrumentGrowth{},
		}
	}

	months := f.monthlyTotals(records)
	slope, confidence := linearTrend(months)

	trend := models.TrendNeutral
	switch {
	case slope > bullishSlope:
		trend = models.TrendBullish
	case slope < bearishSlope:
		trend = models.TrendBearish
	}

	// Mean of the last three monthly totals; the divisor stays 3 even when
	// fewer months exist, matching the source system.
	recent := months
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var recentSum float64
	for _, m := range recent {
		recentSum += m.total
	}
	avgMonthly := recentSum / 3

	return models.ForecastResult{
		NextQuarterEstimate:  math.Max(0, avgMonthly*3+slope*3),
		NextYearEstimate:     math.Max(0, avgMonthly*12+slope*12),
		Trend:                trend,
		ConfidencePercent:    confidence,
		SeasonalPattern:      seasonalPattern(months, avgMonthly),
		TopGrowthInstruments: topGrowthInstruments(records),
		RiskLevel:            riskLevel(months, avgMonthly),
	}
}

// monthlyTotals buckets records by calendar year and zero-based month of the
// canonical payment date, in chronological order.
func (f *Forecaster) monthlyTotals(records []models.DividendRecord) []monthlyBucket {
	type key struct{ year, month int }
	buckets := make(map[key]*monthlyBucket)
	for _, rec := range records {
		d := dates.Parse(rec.PaymentDate)
		k := key{year: d.Year(), month: int(d.Month()) - 1}
		b, ok := buckets[k]
		if !ok {
			b = &monthlyBucket{year: k.year, month: k.month}
			buckets[k] = b
		}
		b.total += rec.AmountNetUSD
		b.count++
	}

	out := make([]monthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].year != out[j].year {
			return out[i].year < out[j].year
		}
		return out[i].month < out[j].month
	})
	return out
}

// linearTrend fits an ordinary least-squares line over the monthly totals,
// with the sequence index as the x axis. The confidence figure is the
// bounded heuristic min(95, |slope|*10 + (n/12)*20).
func linearTrend(months []monthlyBucket) (slope, confidence float64) {
	if len(months) < 2 {
		return 0, 0
	}

	xs := make([]float64, len(months))
	ys := make([]float64, len(months))
	for i, m := range months {
		xs[i] = float64(i)
		ys[i] = m.total
	}
	_, slope = stat.LinearRegression(xs, ys, nil, false)

	n := float64(len(months))
	confidence = math.Min(95, math.Abs(slope)*10+(n/12)*20)
	return slope, confidence
}

// seasonalPattern averages the historical totals of each calendar month and
// expresses them as multipliers over the overall monthly average. Months
// with no history default to the overall average, i.e. multiplier 1.
func seasonalPattern(months []monthlyBucket, avgMonthly float64) []models.SeasonalEntry {
	out := make([]models.SeasonalEntry, 0, 12)
	for month := 0; month < 12; month++ {
		var sum float64
		var n int
		for _, b := range months {
			if b.month == month {
				sum += b.total
				n++
			}
		}

		monthAvg := avgMonthly
		if n > 0 {
			monthAvg = sum / float64(n)
		}

		multiplier := 1.0
		if avgMonthly != 0 {
			multiplier = monthAvg / avgMonthly
		}
		out = append(out, models.SeasonalEntry{Month: month, Multiplier: multiplier})
	}
	return out
}

// topGrowthInstruments ranks companies by the growth of the mean of their
// last three payments over the mean of everything before. Companies with a
// single payment contribute zero growth; non-finite growth (an empty or
// zero history) is excluded. Top five by growth, descending.
func topGrowthInstruments(records []models.DividendRecord) []models.InstrumentGrowth {
	amounts := make(map[string][]float64)
	var order []string
	for _, rec := range records {
		if _, ok := amounts[rec.InstrumentName]; !ok {
			order = append(order, rec.InstrumentName)
		}
		amounts[rec.InstrumentName] = append(amounts[rec.InstrumentName], rec.AmountNetUSD)
	}

	out := make([]models.InstrumentGrowth, 0, len(order))
	for _, name := range order {
		series := amounts[name]
		if len(series) < 2 {
			out = append(out, models.InstrumentGrowth{Name: name})
			continue
		}

		recentStart := len(series) - 3
		if recentStart < 0 {
			recentStart = 0
		}
		var recentSum, olderSum float64
		for _, v := range series[recentStart:] {
			recentSum += v
		}
		for _, v := range series[:recentStart] {
			olderSum += v
		}
		recentAvg := recentSum / 3
		olderDiv := len(series) - 3
		if olderDiv < 1 {
			olderDiv = 1
		}
		olderAvg := olderSum / float64(olderDiv)

		growth := (recentAvg - olderAvg) / olderAvg * 100
		if math.IsNaN(growth) || math.IsInf(growth, 0) {
			continue
		}
		out = append(out, models.InstrumentGrowth{
			Name:                name,
			GrowthPercent:       growth,
			PredictedNextAmount: recentAvg * (1 + growth/100),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GrowthPercent != out[j].GrowthPercent {
			return out[i].GrowthPercent > out[j].GrowthPercent
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// riskLevel classifies the volatility of the monthly totals: their standard
// deviation (n−1 denominator, all months) over the recent monthly average.
func riskLevel(months []monthlyBucket, avgMonthly float64) string {
	volatility := 0.0
	if len(months) > 1 && avgMonthly != 0 {
		totals := make([]float64, len(months))
		for i, m := range months {
			totals[i] = m.total
		}
		volatility = stat.StdDev(totals, nil) / avgMonthly
	}

	switch {
	case volatility > highRiskVolatility:
		return models.RiskHigh
	case volatility > mediumRiskVolatility:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

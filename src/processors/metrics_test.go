package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/username/dividendvisor/backend/src/models"
)

func TestComputeMetrics(t *testing.T) {
	m := NewMetricsCalculator()
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	records := []models.DividendRecord{
		record("ACME", "01/01/2024", 10, 9),
		record("ACME", "01/02/2024", 20, 18),
		record("Beta", "15/03/2024", 25, 22),
	}

	got := m.Compute(records, now)

	assert.Equal(t, 55.0, got.TotalUSD)
	assert.Equal(t, 49.0, got.TotalEUR)
	assert.Equal(t, 3, got.TotalTransactions)
	assert.Equal(t, 2, got.UniqueCompanies)
	assert.InDelta(t, 55.0/3, got.AveragePerTransaction, 1e-9)

	assert.Equal(t, "2024-03", got.BestMonth.Month)
	assert.Equal(t, 25.0, got.BestMonth.Amount)
	assert.Equal(t, "ACME", got.BestCompany.Name)
	assert.Equal(t, 30.0, got.BestCompany.Amount)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.FirstDividend)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got.LastDividend)

	// 74-day span is 74/30 months.
	assert.InDelta(t, 55.0/(74.0/30.0), got.MonthlyAverage, 1e-9)

	// Everything landed inside the last three months.
	assert.Equal(t, models.MetricsTrendUp, got.Trend)

	assert.Equal(t, 91, got.DaysInvesting)
	assert.Equal(t, 17, got.DaysSinceLastPayment)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := NewMetricsCalculator()
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	got := m.Compute(nil, now)

	assert.Equal(t, models.MetricsTrendStable, got.Trend)
	assert.Equal(t, now, got.FirstDividend)
	assert.Equal(t, now, got.LastDividend)
	assert.Zero(t, got.TotalUSD)
	assert.Zero(t, got.TotalTransactions)
}

func TestComputeMetricsTrendDown(t *testing.T) {
	m := NewMetricsCalculator()
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	// Heavy payments early in the year, nothing recent.
	records := []models.DividendRecord{
		record("ACME", "01/01/2024", 100, 0),
		record("ACME", "01/02/2024", 100, 0),
		record("ACME", "01/03/2024", 100, 0),
		record("ACME", "01/10/2024", 1, 0),
	}

	got := m.Compute(records, now)
	assert.Equal(t, models.MetricsTrendDown, got.Trend)
}

func TestComputeMetricsSinglePaymentSpansOneMonth(t *testing.T) {
	m := NewMetricsCalculator()
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	records := []models.DividendRecord{
		record("ACME", "15/03/2024", 12, 0),
	}

	got := m.Compute(records, now)
	// The month span floors at one, so the monthly average equals the total.
	assert.InDelta(t, 12, got.MonthlyAverage, 1e-9)
	assert.Equal(t, got.FirstDividend, got.LastDividend)
}

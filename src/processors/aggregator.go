// backend/src/processors/aggregator.go
package processors

import (
	"sort"

	"github.com/username/dividendvisor/backend/src/dates"
	"github.com/username/dividendvisor/backend/src/models"
)

// Aggregator derives the grouped views of a cleaned record set. Every call
// recomputes from the full slice; there is no incremental path.
type Aggregator struct{}

// NewAggregator creates a new instance of Aggregator.
func NewAggregator() *Aggregator { return &Aggregator{} }

// ByDate groups records by the exact payment-date string, sums both
// currencies per group, orders the groups chronologically and computes the
// running cumulative totals in that order. Two strings naming the same
// calendar day in different forms deliberately stay separate groups.
func (a *Aggregator) ByDate(records []models.DividendRecord) []models.DateAggregate {
	groups := make(map[string]*models.DateAggregate)
	for _, rec := range records {
		agg, ok := groups[rec.PaymentDate]
		if !ok {
			agg = &models.DateAggregate{
				Date:       rec.PaymentDate,
				ParsedDate: dates.Parse(rec.PaymentDate),
			}
			groups[rec.PaymentDate] = agg
		}
		agg.TotalUSD += rec.AmountNetUSD
		agg.TotalEUR += rec.AmountNetEUR
	}

	out := make([]models.DateAggregate, 0, len(groups))
	for _, agg := range groups {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ParsedDate.Equal(out[j].ParsedDate) {
			return out[i].ParsedDate.Before(out[j].ParsedDate)
		}
		return out[i].Date < out[j].Date
	})

	var cumUSD, cumEUR float64
	for i := range out {
		cumUSD += out[i].TotalUSD
		cumEUR += out[i].TotalEUR
		out[i].CumulativeUSD = cumUSD
		out[i].CumulativeEUR = cumEUR
	}
	return out
}

// ByInstrumentAndDate groups records by (instrument name, payment date),
// summing both currencies per pair. No cumulative totals at this
// granularity. Output is ordered chronologically, then by name.
func (a *Aggregator) ByInstrumentAndDate(records []models.DividendRecord) []models.InstrumentAggregate {
	type key struct {
		name string
		date string
	}
	groups := make(map[key]*models.InstrumentAggregate)
	for _, rec := range records {
		k := key{name: rec.InstrumentName, date: rec.PaymentDate}
		agg, ok := groups[k]
		if !ok {
			agg = &models.InstrumentAggregate{
				InstrumentName: rec.InstrumentName,
				PaymentDate:    rec.PaymentDate,
				ParsedDate:     dates.Parse(rec.PaymentDate),
			}
			groups[k] = agg
		}
		agg.AmountUSD += rec.AmountNetUSD
		agg.AmountEUR += rec.AmountNetEUR
	}

	out := make([]models.InstrumentAggregate, 0, len(groups))
	for _, agg := range groups {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ParsedDate.Equal(out[j].ParsedDate) {
			return out[i].ParsedDate.Before(out[j].ParsedDate)
		}
		if out[i].InstrumentName != out[j].InstrumentName {
			return out[i].InstrumentName < out[j].InstrumentName
		}
		return out[i].PaymentDate < out[j].PaymentDate
	})
	return out
}

// Presentation sort fields accepted by the handlers. Cumulative values are
// computed before any of these apply and are never recomputed for display.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortDateAggregates returns a copy of aggs ordered for display. Unknown
// fields leave the chronological order untouched.
func SortDateAggregates(aggs []models.DateAggregate, field, order string) []models.DateAggregate {
	out := make([]models.DateAggregate, len(aggs))
	copy(out, aggs)

	less := func(i, j int) bool { return false }
	switch field {
	case "date":
		less = func(i, j int) bool { return out[i].ParsedDate.Before(out[j].ParsedDate) }
	case "total_usd":
		less = func(i, j int) bool { return out[i].TotalUSD < out[j].TotalUSD }
	case "total_eur":
		less = func(i, j int) bool { return out[i].TotalEUR < out[j].TotalEUR }
	case "cumulative_usd":
		less = func(i, j int) bool { return out[i].CumulativeUSD < out[j].CumulativeUSD }
	case "cumulative_eur":
		less = func(i, j int) bool { return out[i].CumulativeEUR < out[j].CumulativeEUR }
	default:
		return out
	}

	if order == SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

// SortInstrumentAggregates returns a copy of aggs ordered for display.
func SortInstrumentAggregates(aggs []models.InstrumentAggregate, field, order string) []models.InstrumentAggregate {
	out := make([]models.InstrumentAggregate, len(aggs))
	copy(out, aggs)

	less := func(i, j int) bool { return false }
	switch field {
	case "name":
		less = func(i, j int) bool { return out[i].InstrumentName < out[j].InstrumentName }
	case "date":
		less = func(i, j int) bool { return out[i].ParsedDate.Before(out[j].ParsedDate) }
	case "amount_usd":
		less = func(i, j int) bool { return out[i].AmountUSD < out[j].AmountUSD }
	case "amount_eur":
		less = func(i, j int) bool { return out[i].AmountEUR < out[j].AmountEUR }
	default:
		return out
	}

	if order == SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

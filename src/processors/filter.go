// backend/src/processors/filter.go
package processors

import (
	"sort"
	"strings"
	"time"

	"github.com/username/dividendvisor/backend/src/companies"
	"github.com/username/dividendvisor/backend/src/dates"
	"github.com/username/dividendvisor/backend/src/models"
)

// FilterOptions narrows and orders a cleaned record set for display. Nil
// range bounds mean unbounded.
type FilterOptions struct {
	Search    string
	Companies []string
	From      *time.Time
	To        *time.Time
	MinUSD    *float64
	MaxUSD    *float64
	SortBy    string // date, amount, company
	SortOrder string // asc, desc
}

// FilterRecords applies the options to the records and returns a new,
// ordered slice. The input is never mutated. now anchors the date sentinel
// for records whose payment date cannot be parsed.
func FilterRecords(records []models.DividendRecord, opts FilterOptions, now time.Time) []models.DividendRecord {
	out := make([]models.DividendRecord, 0, len(records))

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	companyFilter := make(map[string]struct{}, len(opts.Companies))
	for _, c := range opts.Companies {
		companyFilter[c] = struct{}{}
		// Selections may arrive as tickers; statements carry long names.
		if long, ok := companies.LongNameFor(c); ok {
			companyFilter[long] = struct{}{}
		}
	}

	for _, rec := range records {
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		if len(companyFilter) > 0 {
			if _, ok := companyFilter[rec.InstrumentName]; !ok {
				continue
			}
		}
		if opts.From != nil || opts.To != nil {
			d := dates.ParseAt(rec.PaymentDate, now)
			if opts.From != nil && d.Before(*opts.From) {
				continue
			}
			if opts.To != nil && d.After(*opts.To) {
				continue
			}
		}
		if opts.MinUSD != nil && rec.AmountNetUSD < *opts.MinUSD {
			continue
		}
		if opts.MaxUSD != nil && rec.AmountNetUSD > *opts.MaxUSD {
			continue
		}
		out = append(out, rec)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "date"
	}

	less := func(i, j int) bool { return false }
	switch sortBy {
	case "date":
		less = func(i, j int) bool {
			return dates.ParseAt(out[i].PaymentDate, now).Before(dates.ParseAt(out[j].PaymentDate, now))
		}
	case "amount":
		less = func(i, j int) bool { return out[i].AmountNetUSD < out[j].AmountNetUSD }
	case "company":
		less = func(i, j int) bool { return displayName(out[i]) < displayName(out[j]) }
	default:
		return out
	}

	if opts.SortOrder != SortAsc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

// matchesSearch checks the long name, the ticker from the lookup table, and
// the ISIN.
func matchesSearch(rec models.DividendRecord, search string) bool {
	if strings.Contains(strings.ToLower(rec.InstrumentName), search) {
		return true
	}
	if ticker, ok := companies.ShortNameFor(rec.InstrumentName); ok {
		if strings.Contains(strings.ToLower(ticker), search) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(rec.ISIN), search)
}

// displayName sorts companies the way they are shown: ticker when known,
// long name otherwise.
func displayName(rec models.DividendRecord) string {
	if ticker, ok := companies.ShortNameFor(rec.InstrumentName); ok {
		return ticker
	}
	return rec.InstrumentName
}

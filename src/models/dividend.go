// backend/src/models/dividend.go
package models

import "time"

// DividendRecord is one cleaned row of an uploaded dividend statement.
// PaymentDate keeps the original cell text: it is the grouping key used by
// the aggregators, and the display layer re-parses it when it needs a real
// date. Amounts are the net figures reported by the broker, one per currency.
type DividendRecord struct {
	PaymentDate            string  `json:"payment_date"`
	InstrumentName         string  `json:"instrument_name"`
	ISIN                   string  `json:"isin"`
	AmountNetUSD           float64 `json:"amount_net_usd"`
	AmountNetEUR           float64 `json:"amount_net_eur"`
	WithholdingTaxUSD      float64 `json:"withholding_tax_usd"`
	WithholdingTaxEUR      float64 `json:"withholding_tax_eur"`
	WithholdingRatePercent string  `json:"withholding_rate_percent"`
	PositionID             string  `json:"position_id"`
	Type                   string  `json:"type"`
}

// DateAggregate is the per-payment-date summary row. Cumulative fields are
// prefix sums over the whole set ordered by ParsedDate ascending, recomputed
// from scratch on every aggregation.
type DateAggregate struct {
	Date          string    `json:"date"`
	ParsedDate    time.Time `json:"parsed_date"`
	TotalUSD      float64   `json:"total_usd"`
	TotalEUR      float64   `json:"total_eur"`
	CumulativeUSD float64   `json:"cumulative_usd"`
	CumulativeEUR float64   `json:"cumulative_eur"`
}

// InstrumentAggregate sums payments per company per payment date. There is
// one entry per (instrument, date) pair, not one per instrument overall.
type InstrumentAggregate struct {
	InstrumentName string    `json:"instrument_name"`
	PaymentDate    string    `json:"payment_date"`
	ParsedDate     time.Time `json:"parsed_date"`
	AmountUSD      float64   `json:"amount_usd"`
	AmountEUR      float64   `json:"amount_eur"`
}

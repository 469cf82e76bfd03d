// backend/src/processors/cleaner.go
package processors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/username/dividendvisor/backend/src/models"
	"github.com/username/dividendvisor/backend/src/parsers/etoro"
	"github.com/username/dividendvisor/backend/src/security/validation"
)

// Column labels exactly as they appear on the Spanish-locale statements.
// Extraction keys rows by these, so the cleaner owns the mapping to typed
// fields.
const (
	ColPaymentDate = "Fecha de pago"
	ColInstrument  = "Nombre del instrumento"
	ColISIN        = "ISIN"
	ColAmountUSD   = "Dividendo neto recibido (USD)"
	ColAmountEUR   = "Dividendo neto recibido (EUR)"
	ColTaxUSD      = "Importe de la retención tributaria (USD)"
	ColTaxEUR      = "Importe de la retención tributaria (EUR)"
	ColTaxRate     = "Tasa de retención fiscal (%)"
	ColPositionID  = "ID de posición"
	ColType        = "Tipo"
)

// RecordCleaner turns loosely-typed extracted rows into validated
// DividendRecords.
type RecordCleaner struct{}

// NewRecordCleaner creates a new instance of RecordCleaner.
func NewRecordCleaner() *RecordCleaner { return &RecordCleaner{} }

// IsValidShape reports whether a raw row carries the minimum keys to be a
// dividend record: a payment date, an instrument name, and at least one of
// the two currency amounts. Presence only, no numeric type checking, since
// spreadsheet cells are frequently typed as text.
func (c *RecordCleaner) IsValidShape(raw etoro.RawRecord) bool {
	if raw == nil {
		return false
	}
	_, hasDate := raw[ColPaymentDate]
	_, hasInstrument := raw[ColInstrument]
	_, hasUSD := raw[ColAmountUSD]
	_, hasEUR := raw[ColAmountEUR]
	return hasDate && hasInstrument && (hasUSD || hasEUR)
}

// Clean filters and coerces raw rows into DividendRecords. Rows failing the
// shape check are dropped; surviving rows are coerced field by field; a
// second pass drops rows whose coerced amounts are both zero or less. Input
// order is preserved and the input is never mutated.
func (c *RecordCleaner) Clean(raw []etoro.RawRecord) []models.DividendRecord {
	var out []models.DividendRecord
	for _, item := range raw {
		if !c.IsValidShape(item) {
			continue
		}

		rec := models.DividendRecord{
			PaymentDate:            validation.CleanCellText(item[ColPaymentDate]),
			InstrumentName:         validation.CleanCellText(item[ColInstrument]),
			ISIN:                   validation.CleanCellText(item[ColISIN]),
			AmountNetUSD:           parseAmount(item[ColAmountUSD]),
			AmountNetEUR:           parseAmount(item[ColAmountEUR]),
			WithholdingTaxUSD:      parseAmount(item[ColTaxUSD]),
			WithholdingTaxEUR:      parseAmount(item[ColTaxEUR]),
			WithholdingRatePercent: validation.CleanCellText(item[ColTaxRate]),
			PositionID:             validation.CleanCellText(item[ColPositionID]),
			Type:                   validation.CleanCellText(item[ColType]),
		}

		// A malformed ISIN never invalidates the row, it is display-only.
		if err := validation.ValidateISIN(rec.ISIN); err != nil {
			rec.ISIN = ""
		}

		if rec.PaymentDate == "" || rec.InstrumentName == "" {
			continue
		}
		if rec.AmountNetUSD <= 0 && rec.AmountNetEUR <= 0 {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// numericPrefixRe captures the longest leading decimal, matching the
// permissive parse the source data was built around.
var numericPrefixRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseAmount parses a currency cell permissively: a full numeric parse
// first, then the longest numeric prefix, defaulting to 0 on failure.
func parseAmount(s string) float64 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return v
	}
	if prefix := numericPrefixRe.FindString(cleaned); prefix != "" {
		if v, err := strconv.ParseFloat(prefix, 64); err == nil {
			return v
		}
	}
	return 0
}

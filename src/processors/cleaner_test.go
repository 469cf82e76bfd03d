package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dividendvisor/backend/src/parsers/etoro"
)

func TestIsValidShape(t *testing.T) {
	c := NewRecordCleaner()

	tests := []struct {
		name string
		raw  etoro.RawRecord
		want bool
	}{
		{"nil row", nil, false},
		{
			"complete row",
			etoro.RawRecord{ColPaymentDate: "15/03/2024", ColInstrument: "Chevron", ColAmountUSD: "10"},
			true,
		},
		{
			"eur amount alone is enough",
			etoro.RawRecord{ColPaymentDate: "15/03/2024", ColInstrument: "Chevron", ColAmountEUR: "9"},
			true,
		},
		{
			"missing payment date",
			etoro.RawRecord{ColInstrument: "Chevron", ColAmountUSD: "10"},
			false,
		},
		{
			"missing instrument",
			etoro.RawRecord{ColPaymentDate: "15/03/2024", ColAmountUSD: "10"},
			false,
		},
		{
			"missing both amounts",
			etoro.RawRecord{ColPaymentDate: "15/03/2024", ColInstrument: "Chevron", ColISIN: "US123"},
			false,
		},
		{
			"amount typed as text still counts as present",
			etoro.RawRecord{ColPaymentDate: "15/03/2024", ColInstrument: "Chevron", ColAmountUSD: "n/a"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsValidShape(tt.raw))
		})
	}
}

func TestClean(t *testing.T) {
	c := NewRecordCleaner()

	raw := []etoro.RawRecord{
		{
			ColPaymentDate: "15/03/2024",
			ColInstrument:  "Chevron",
			ColAmountUSD:   "10.50",
			ColAmountEUR:   "9.80",
			ColTaxUSD:      "1.85",
			ColTaxRate:     "15%",
			ColPositionID:  "12345",
			ColType:        "Dividendo",
			ColISIN:        "US1667641005",
		},
		// passes shape, dropped by the business invariant: both amounts zero
		{ColPaymentDate: "16/03/2024", ColInstrument: "PepsiCo", ColAmountUSD: "0", ColAmountEUR: "0"},
		// fails shape: no instrument
		{ColPaymentDate: "17/03/2024", ColAmountUSD: "5"},
		// unparsable amount coerces to 0, EUR keeps the row alive
		{ColPaymentDate: "18/03/2024", ColInstrument: "Verizon", ColAmountUSD: "garbage", ColAmountEUR: "4.2"},
	}

	records := c.Clean(raw)
	require.Len(t, records, 2)

	assert.Equal(t, "Chevron", records[0].InstrumentName)
	assert.Equal(t, "15/03/2024", records[0].PaymentDate)
	assert.Equal(t, 10.50, records[0].AmountNetUSD)
	assert.Equal(t, 9.80, records[0].AmountNetEUR)
	assert.Equal(t, 1.85, records[0].WithholdingTaxUSD)
	assert.Equal(t, 0.0, records[0].WithholdingTaxEUR)
	assert.Equal(t, "15%", records[0].WithholdingRatePercent)
	assert.Equal(t, "12345", records[0].PositionID)
	assert.Equal(t, "Dividendo", records[0].Type)
	assert.Equal(t, "US1667641005", records[0].ISIN)

	assert.Equal(t, "Verizon", records[1].InstrumentName)
	assert.Equal(t, 0.0, records[1].AmountNetUSD)
	assert.Equal(t, 4.2, records[1].AmountNetEUR)
}

func TestCleanClearsMalformedISIN(t *testing.T) {
	c := NewRecordCleaner()

	raw := []etoro.RawRecord{
		{ColPaymentDate: "15/03/2024", ColInstrument: "Chevron", ColAmountUSD: "10", ColISIN: "US1667641005"},
		{ColPaymentDate: "16/03/2024", ColInstrument: "PepsiCo", ColAmountUSD: "10", ColISIN: "not-an-isin"},
	}

	records := c.Clean(raw)
	require.Len(t, records, 2)
	assert.Equal(t, "US1667641005", records[0].ISIN)
	assert.Equal(t, "", records[1].ISIN)
}

func TestCleanPreservesInputOrder(t *testing.T) {
	c := NewRecordCleaner()

	raw := []etoro.RawRecord{
		{ColPaymentDate: "03/03/2024", ColInstrument: "C", ColAmountUSD: "1"},
		{ColPaymentDate: "01/01/2024", ColInstrument: "A", ColAmountUSD: "1"},
		{ColPaymentDate: "02/02/2024", ColInstrument: "B", ColAmountUSD: "1"},
	}

	records := c.Clean(raw)
	require.Len(t, records, 3)
	assert.Equal(t, "C", records[0].InstrumentName)
	assert.Equal(t, "A", records[1].InstrumentName)
	assert.Equal(t, "B", records[2].InstrumentName)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	c := NewRecordCleaner()

	raw := []etoro.RawRecord{
		{ColPaymentDate: "15/03/2024", ColInstrument: "Chevron", ColAmountUSD: "10"},
	}
	c.Clean(raw)

	assert.Equal(t, "10", raw[0][ColAmountUSD])
	assert.Len(t, raw[0], 3)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10.5", 10.5},
		{" 10.5 ", 10.5},
		{"0", 0},
		{"-3.2", -3.2},
		{"12.5 USD", 12.5}, // numeric prefix wins
		{"1e2", 100},
		{"", 0},
		{"n/a", 0},
		{"USD 10", 0}, // no leading number
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAmount(tt.in))
		})
	}
}

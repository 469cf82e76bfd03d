// backend/src/dates/dates.go
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Broker statements mix two textual conventions plus raw spreadsheet serial
// numbers. The day-first pattern is always read as day/month/year (European
// convention) even though the digits would also match a US-style date.
var (
	dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	yearMonthDayRe = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
)

// serialEpochOffset is the number of days between the Unix epoch and the
// spreadsheet serial epoch (1899-12-30).
const serialEpochOffset = 25569

// Layouts tried as a last resort before giving up on a cell.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02/01/2006 15:04",
}

// Parse converts a raw spreadsheet cell into a canonical date using the
// current time as the sentinel for unusable input. See ParseAt.
func Parse(raw string) time.Time {
	return ParseAt(raw, time.Now().UTC())
}

// ParseAt converts a raw spreadsheet cell into a canonical date. Recognized
// forms, first match wins: D/M/YYYY (day first), YYYY/M/D, a numeric serial
// day count, and a short list of free-text layouts. It never fails: empty or
// unparseable input yields the supplied now value as a sentinel.
func ParseAt(raw string, now time.Time) time.Time {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return now
	}

	if m := dayMonthYearRe.FindStringSubmatch(cleaned); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	if m := yearMonthDayRe.FindStringSubmatch(cleaned); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	// Numeric cells arrive as serial day counts when the sheet is read raw.
	if serial, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return FromSerial(serial)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.UTC()
		}
	}

	return now
}

// FromSerial converts a spreadsheet serial day count (1899-12-30 epoch,
// 86400 seconds per day) into a canonical date.
func FromSerial(serial float64) time.Time {
	millis := int64((serial - serialEpochOffset) * 86400 * 1000)
	return time.UnixMilli(millis).UTC()
}

// Format renders a canonical date back to the zero-padded DD/MM/YYYY form
// used everywhere in the source statements.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAt_DayMonthYear(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"slash separated", "15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"dash separated", "15-03-2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"single digit day and month", "1/2/2024", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"day first even when ambiguous", "03/04/2024", time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  15/03/2024  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAt(tt.raw, now))
		})
	}
}

func TestParseAt_YearMonthDay(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ParseAt("2024-03-15", now))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ParseAt("2024/3/5", now))
}

func TestParseAt_Serial(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	// 44927 is 2023-01-01 with the 25569 day offset.
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), ParseAt("44927", now))
}

func TestParseAt_Sentinel(t *testing.T) {
	now := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now, ParseAt("", now))
	assert.Equal(t, now, ParseAt("   ", now))
	assert.Equal(t, now, ParseAt("not a date", now))
}

func TestParseAt_FallbackLayouts(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ParseAt("15 Mar 2024", now))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ParseAt("Mar 15, 2024", now))
}

func TestFromSerial(t *testing.T) {
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), FromSerial(44927))
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), FromSerial(25569))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "15/03/2024", Format(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "01/02/2024", Format(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatParseRoundTrip(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []string{"15/03/2024", "01/01/2023", "31/12/2025", "09/11/2024"} {
		assert.Equal(t, s, Format(ParseAt(s, now)))
	}
}

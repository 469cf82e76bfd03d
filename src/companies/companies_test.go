package companies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortNameFor(t *testing.T) {
	tests := []struct {
		name     string
		longName string
		want     string
		found    bool
	}{
		{"exact match", "Johnson & Johnson", "JNJ", true},
		{"case insensitive", "jOhNsOn & JoHnSoN", "JNJ", true},
		{"trimmed", "  Coca-Cola  ", "KO", true},
		{"unknown company", "Some Unknown Corp", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ShortNameFor(tt.longName)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLongNameFor(t *testing.T) {
	got, ok := LongNameFor("jnj")
	assert.True(t, ok)
	assert.Equal(t, "Johnson & Johnson", got)

	_, ok = LongNameFor("ZZZZ")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	assert.NotEmpty(t, all)

	all[0].Name = "mutated"
	again := All()
	assert.NotEqual(t, "mutated", again[0].Name)
}

func TestSearch(t *testing.T) {
	assert.Empty(t, Search(""))

	results := Search("energy")
	assert.NotEmpty(t, results)
	for _, c := range results {
		assert.Contains(t, []string{"ATO", "D", "DUK", "NEE"}, c.Name)
	}

	byTicker := Search("bbva")
	assert.Len(t, byTicker, 1)
	assert.Equal(t, "BBVA.MC", byTicker[0].Name)
}

// backend/src/companies/companies.go
package companies

import "strings"

// Company pairs a ticker symbol with the long-form name brokers print on
// statements. The table is display-only: aggregation always keys on the raw
// long name from the source file.
type Company struct {
	Name     string `json:"name"`
	LongName string `json:"long_name"`
}

var dataSource = []Company{
	// US companies
	{"ABBV", "AbbVie Inc"},
	{"APD", "Air Products & Chemicals Inc"},
	{"ATO", "Atmos Energy Corp"},
	{"BAC", "Bank of America Corp"},
	{"BEN", "Franklin Resources Inc."},
	{"CINF", "Cincinnati Financial Corp"},
	{"CLX", "Clorox Co"},
	{"CVX", "Chevron"},
	{"D", "Dominion Energy Inc"},
	{"DLR", "Digital Realty Trust Inc"},
	{"DUK", "Duke Energy Corp"},
	{"ED", "Consolidated Edison Inc"},
	{"ENB", "Enbridge Inc"},
	{"ESS", "Essex Property Trust Inc"},
	{"FRT", "Federal Realty Investment Trust"},
	{"GPC", "Genuine Parts Co"},
	{"HRL", "Hormel Foods Corp"},
	{"IBM", "International Business Machines Corporation (IBM)"},
	{"JNJ", "Johnson & Johnson"},
	{"JPM", "JPMorgan Chase & Co"},
	{"KMB", "Kimberly-Clark Corp"},
	{"KMI", "Kinder Morgan Inc"},
	{"KO", "Coca-Cola"},
	{"LEG", "Leggett & Platt Inc"},
	{"MCD", "McDonald's"},
	{"MDT.US", "Medtronic PLC"},
	{"MMM", "3M"},
	{"MO", "Altria Group Inc"},
	{"NEE", "NextEra Energy Inc"},
	{"O", "Realty Income Corp"},
	{"PEP", "PepsiCo"},
	{"PG", "Procter & Gamble Co"},
	{"STAG", "STAG Industrial Inc."},
	{"SWK", "Stanley Black & Decker Inc"},
	{"SYY", "Sysco Corp"},
	{"T", "AT&T Inc"},
	{"TGT", "Target Corp"},
	{"TROW", "T Rowe Price Group Inc"},
	{"TXN", "Texas Instruments Inc"},
	{"UGI", "UGI Corp"},
	{"UPS", "United Parcel Service Inc"},
	{"VZ", "Verizon"},
	{"WBA", "Walgreens Boots Alliance Inc"},
	{"XOM", "Exxon-Mobil"},

	// European companies
	{"A2A.MI", "A2A Group"},
	{"ALV.DE", "Allianz SE"},
	{"AMCR", "Amcor PLC"},
	{"BBVA.MC", "BBVA"},
	{"CABK.MC", "Caixabank"},
	{"DHL.DE", "Deutsche Post AG"},
	{"EN.PA", "Bouygues SA"},
	{"ENG.MC", "Enagas"},
	{"G.MI", "Assicurazioni Generali SpA"},
	{"REP.MC", "Repsol"},
	{"SAB.MC", "Banco Sabadell"},
	{"UPM.HE", "UPM-Kymmene Oyj"},
}

// ShortNameFor returns the ticker symbol for a long company name, matching
// case-insensitively after trimming. The second return reports whether the
// name is in the table.
func ShortNameFor(longName string) (string, bool) {
	if longName == "" {
		return "", false
	}
	needle := strings.ToLower(strings.TrimSpace(longName))
	for _, c := range dataSource {
		if strings.ToLower(c.LongName) == needle {
			return c.Name, true
		}
	}
	return "", false
}

// LongNameFor returns the long company name for a ticker symbol.
func LongNameFor(shortName string) (string, bool) {
	if shortName == "" {
		return "", false
	}
	needle := strings.ToLower(strings.TrimSpace(shortName))
	for _, c := range dataSource {
		if strings.ToLower(c.Name) == needle {
			return c.LongName, true
		}
	}
	return "", false
}

// All returns a copy of every known company mapping.
func All() []Company {
	out := make([]Company, len(dataSource))
	copy(out, dataSource)
	return out
}

// Search returns every company whose ticker or long name contains the term,
// case-insensitively. An empty term matches nothing.
func Search(term string) []Company {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	var out []Company
	for _, c := range dataSource {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.LongName), needle) {
			out = append(out, c)
		}
	}
	return out
}

package services

import (
	"fmt"
	"sort"
	"strings"
)

// validCountries is the fixed market list for the roll-up; any other
// location bucket becomes "Others".
var validCountries = []string{
	"UAE", "KSA", "Gulf", "Kuwait", "Egypt",
	"Oman", "Lebanon", "Levant", "Out Side UAE", "Jordan",
}

// CompanyAnalytics is one (company, country) roll-up group. Its ClientIDs
// list joins against the per-client analytics table.
type CompanyAnalytics struct {
	Company         string   `json:"company"`
	Country         string   `json:"country"`
	Representatives []string `json:"representatives"`
	ClientIDs       []string `json:"client_ids"`
	TotalQuotes     int      `json:"total_quotes"`
	ClosedQuotes    int      `json:"closed_quotes"`
	TotalValue      float64  `json:"total_value"`
	TotalRevenue    float64  `json:"total_revenue"`
	TotalClients    int      `json:"total_clients"`
	WinRatePct      float64  `json:"win_rate_pct"`
}

// ProcessCompanyData groups the raw quotation rows by (company, country) for
// hierarchical navigation. It works on the unreconciled row set: every
// version row counts as a quote here. Groups are sorted by total revenue
// descending.
func ProcessCompanyData(ds Dataset) (result []CompanyAnalytics, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("processing failed: %v", r)
		}
	}()

	trimmed := trimColumns(ds)
	hasLocation := trimmed.HasColumn(ColLocation)

	type key struct {
		company string
		country string
	}
	type group struct {
		reps      map[string]bool
		clientIDs map[string]bool
		agg       CompanyAnalytics
	}

	groups := make(map[key]*group)
	var order []key

	for _, cells := range trimmed.Rows {
		company := stringOrUnknown(cells[ColCompany])
		country := "Unknown"
		if hasLocation {
			country = countryBucket(cells[ColLocation])
		}

		k := key{company: company, country: country}
		g, ok := groups[k]
		if !ok {
			g = &group{
				reps:      make(map[string]bool),
				clientIDs: make(map[string]bool),
				agg:       CompanyAnalytics{Company: company, Country: country},
			}
			groups[k] = g
			order = append(order, k)
		}

		g.reps[stringOrUnknown(cells[ColClient])] = true
		g.clientIDs[stringOrUnknown(cells[ColClientID])] = true
		g.agg.TotalQuotes++
		if strings.TrimSpace(cells[ColStatus]) == StatusClosed {
			g.agg.ClosedQuotes++
		}
		g.agg.TotalValue += parseAmount(cells[ColTaxable])
		g.agg.TotalRevenue += parseAmount(cells[ColInvoiced])
	}

	result = make([]CompanyAnalytics, 0, len(order))
	for _, k := range order {
		g := groups[k]
		g.agg.Representatives = sortedKeys(g.reps)
		g.agg.ClientIDs = sortedKeys(g.clientIDs)
		g.agg.TotalClients = len(g.agg.ClientIDs)
		if g.agg.TotalQuotes > 0 {
			g.agg.WinRatePct = float64(g.agg.ClosedQuotes) / float64(g.agg.TotalQuotes) * 100
		}
		result = append(result, g.agg)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalRevenue != result[j].TotalRevenue {
			return result[i].TotalRevenue > result[j].TotalRevenue
		}
		if result[i].Company != result[j].Company {
			return result[i].Company < result[j].Company
		}
		return result[i].Country < result[j].Country
	})
	return result, nil
}

// countryBucket maps a location cell to a known market or "Others".
func countryBucket(location string) string {
	location = strings.TrimSpace(location)
	for _, c := range validCountries {
		if location == c {
			return c
		}
	}
	return "Others"
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

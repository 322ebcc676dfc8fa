package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuotationRow is one normalized quotation-version record. Amounts that
// failed coercion are already 0 here; an unparseable date leaves HasDate
// false so date aggregates can skip the row.
type QuotationRow struct {
	Index       int
	ClientID    string
	Client      string
	Company     string
	ProjectName string
	Number      string
	Status      string
	Location    string
	Date        time.Time
	HasDate     bool
	Taxable     float64
	Invoiced    float64
	Services    map[string]float64
}

// NormalizedData is the output of the schema normalizer: coerced rows plus
// the resolved capabilities of the source schema. Downstream steps branch on
// these flags instead of re-checking column presence.
type NormalizedData struct {
	Rows           []QuotationRow
	ActiveServices []string
	HasStatus      bool
	HasDate        bool
	HasName        bool
	HasTaxable     bool
	HasInvoiced    bool
}

// dateLayout is the primary day/month/year format of the quotation sheet.
const dateLayout = "02/01/2006"

// fallbackDateLayouts are tried in order when the primary format fails.
var fallbackDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// Normalize trims column names, coerces numeric and date columns, and fills
// defaults for missing optional columns. It fails only when a mandatory
// column (ClientID, Number) is absent.
func Normalize(ds Dataset) (*NormalizedData, error) {
	trimmed := trimColumns(ds)

	if !trimmed.HasColumn(ColClientID) {
		return nil, fmt.Errorf("missing mandatory column %q", ColClientID)
	}
	if !trimmed.HasColumn(ColNumber) {
		return nil, fmt.Errorf("missing mandatory column %q", ColNumber)
	}

	nd := &NormalizedData{
		HasStatus:   trimmed.HasColumn(ColStatus),
		HasDate:     trimmed.HasColumn(ColDate),
		HasName:     trimmed.HasColumn(ColName),
		HasTaxable:  trimmed.HasColumn(ColTaxable),
		HasInvoiced: trimmed.HasColumn(ColInvoiced),
	}
	for _, svc := range ServiceColumns {
		if trimmed.HasColumn(svc) {
			nd.ActiveServices = append(nd.ActiveServices, svc)
		}
	}

	nd.Rows = make([]QuotationRow, 0, len(trimmed.Rows))
	for i, cells := range trimmed.Rows {
		row := QuotationRow{
			Index:       i,
			ClientID:    stringOrUnknown(cells[ColClientID]),
			Client:      stringOrUnknown(cells[ColClient]),
			Company:     stringOrUnknown(cells[ColCompany]),
			ProjectName: stringOrUnknown(cells[ColName]),
			Number:      strings.TrimSpace(cells[ColNumber]),
			Status:      strings.TrimSpace(cells[ColStatus]),
			Location:    strings.TrimSpace(cells[ColLocation]),
			Taxable:     parseAmount(cells[ColTaxable]),
			Invoiced:    parseAmount(cells[ColInvoiced]),
			Services:    make(map[string]float64, len(nd.ActiveServices)),
		}
		if nd.HasDate {
			row.Date, row.HasDate = parseDate(cells[ColDate])
		}
		for _, svc := range nd.ActiveServices {
			row.Services[svc] = parseAmount(cells[svc])
		}
		nd.Rows = append(nd.Rows, row)
	}

	return nd, nil
}

// trimColumns strips surrounding whitespace from every column name and
// rewrites row keys accordingly. Later duplicates of a trimmed name keep the
// first occurrence's cell.
func trimColumns(ds Dataset) Dataset {
	out := Dataset{
		Columns: make([]string, 0, len(ds.Columns)),
		Rows:    make([]map[string]string, 0, len(ds.Rows)),
	}
	rename := make(map[string]string, len(ds.Columns))
	for _, c := range ds.Columns {
		t := strings.TrimSpace(c)
		if _, seen := rename[c]; seen {
			continue
		}
		rename[c] = t
		if !out.HasColumn(t) {
			out.Columns = append(out.Columns, t)
		}
	}
	for _, cells := range ds.Rows {
		row := make(map[string]string, len(cells))
		for k, v := range cells {
			t := strings.TrimSpace(k)
			if _, exists := row[t]; !exists {
				row[t] = v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// parseAmount coerces a cell to a number. Anything that does not parse
// (including an empty cell) becomes 0 so later sums never fail.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDate tries the exact day/month/year layout first and then a small set
// of free-form fallbacks. Unparseable dates are reported as missing.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return s
}

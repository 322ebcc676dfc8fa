package services

import (
	"regexp"
	"strconv"
	"strings"
)

// QuoteIdentity ties a quotation-version row to its project. All versions of
// one project share a QuoteID; ordering Version ascending makes the maximum
// the latest submission.
type QuoteIdentity struct {
	QuoteID string
	Version float64
}

// IdentifiedRow is a normalized row with its resolved quote identity.
type IdentifiedRow struct {
	QuotationRow
	QuoteIdentity
}

var digitRun = regexp.MustCompile(`\d+`)

// ResolveIdentity derives the project id and version number from a quote
// number like "region.client.type.project.version". The quote id is every
// segment but the last; with fewer than two segments the whole string is
// used. A blank number gets a synthetic per-row id so the row becomes its
// own single-version project.
func ResolveIdentity(number string, rowIndex int) QuoteIdentity {
	if number == "" {
		return QuoteIdentity{QuoteID: strconv.Itoa(rowIndex), Version: 1.0}
	}
	parts := strings.Split(number, ".")
	if len(parts) < 2 {
		return QuoteIdentity{QuoteID: number, Version: 1.0}
	}
	return QuoteIdentity{
		QuoteID: strings.Join(parts[:len(parts)-1], "."),
		Version: parseVersion(parts[len(parts)-1]),
	}
}

// parseVersion maps a version segment to a sortable number. Plain numbers
// parse directly; alphanumeric suffixes ("2-A") take the leading digit run
// plus 0.1 so they sort right after the base revision but before the next
// one. Anything else defaults to 1.0.
func parseVersion(segment string) float64 {
	segment = strings.TrimSpace(segment)
	if v, err := strconv.ParseFloat(segment, 64); err == nil {
		return v
	}
	if digits := digitRun.FindString(segment); digits != "" {
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			return v + 0.1
		}
	}
	return 1.0
}

// ResolveIdentities attaches quote identities to every normalized row.
func ResolveIdentities(rows []QuotationRow) []IdentifiedRow {
	out := make([]IdentifiedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, IdentifiedRow{
			QuotationRow:  row,
			QuoteIdentity: ResolveIdentity(row.Number, row.Index),
		})
	}
	return out
}

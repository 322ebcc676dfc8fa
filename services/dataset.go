// Package services contains the quotation analytics pipeline plus the
// import/export machinery around it.
package services

// Well-known column names of the quotation sheet. Header whitespace is
// stripped during normalization, so these are the trimmed forms.
const (
	ColClientID = "ClientID"
	ColClient   = "Client"
	ColCompany  = "Company"
	ColName     = "Name"
	ColNumber   = "Number"
	ColStatus   = "Estimate status"
	ColDate     = "Date"
	ColLocation = "Location"
	ColTaxable  = "Taxable amount"
	ColInvoiced = "converted to invoice (AMOUNT)"
)

// Quotation statuses that the reconciler cares about.
const (
	StatusClosed   = "Closed"
	StatusRejected = "Rejected"
	StatusUnknown  = "Unknown"
)

// ServiceColumns is the fixed set of per-service revenue columns, in the
// order used for tie-breaking and export flattening. Each is independently
// optional in an uploaded sheet.
var ServiceColumns = []string{
	"CME",
	"Design",
	"Med Com",
	"Multichannel",
	"Onsite Support",
	"Other Services",
	"Video",
	"Webinars",
	"Websites",
}

// Dataset is a raw tabular upload: one row per quotation version, with all
// cells kept as strings. Coercion happens in Normalize, never here.
type Dataset struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the dataset carries the given column.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

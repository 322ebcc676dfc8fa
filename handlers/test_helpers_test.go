package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// seedTestUpload creates an upload with a small quotation sheet: one
// resubmitted project for C-001 plus a single rejected quote for C-002.
func seedTestUpload(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()

	columns := []string{
		"ClientID", "Client", "Company", "Name", "Number", "Estimate status",
		"Location", "Date", "Taxable amount", "converted to invoice (AMOUNT)", "CME",
	}
	upload := testhelpers.CreateTestUpload(t, app, "quotes.csv", columns)

	rows := []map[string]string{
		{
			"ClientID": "C-001", "Client": "Sara", "Company": "Medline", "Name": "Summit",
			"Number": "X.1.1", "Estimate status": "Rejected", "Location": "UAE",
			"Date": "05/01/2023", "Taxable amount": "100", "converted to invoice (AMOUNT)": "0", "CME": "0",
		},
		{
			"ClientID": "C-001", "Client": "Sara", "Company": "Medline", "Name": "Summit",
			"Number": "X.1.2", "Estimate status": "Closed", "Location": "UAE",
			"Date": "19/01/2023", "Taxable amount": "150", "converted to invoice (AMOUNT)": "150", "CME": "50",
		},
		{
			"ClientID": "C-002", "Client": "Omar", "Company": "Gulf Pharma", "Name": "Launch",
			"Number": "Y.1.1", "Estimate status": "Rejected", "Location": "KSA",
			"Date": "03/03/2023", "Taxable amount": "80", "converted to invoice (AMOUNT)": "0", "CME": "80",
		},
	}
	for i, cells := range rows {
		testhelpers.CreateTestQuotationRow(t, app, upload.Id, i, cells)
	}
	return upload
}

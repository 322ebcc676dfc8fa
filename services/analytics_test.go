package services

import (
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func quotationDataset() Dataset {
	columns := []string{
		"ClientID", "Client", "Company", "Name", "Number", "Estimate status",
		"Location", "Date", "Taxable amount", "converted to invoice (AMOUNT)",
		"CME", "Design",
	}
	mkRow := func(cells ...string) map[string]string {
		row := make(map[string]string, len(columns))
		for i, c := range columns {
			row[c] = cells[i]
		}
		return row
	}
	return Dataset{
		Columns: columns,
		Rows: []map[string]string{
			mkRow("C-001", "Sara", "Medline", "Summit", "X.1.1", "Rejected", "UAE", "05/01/2023", "100", "0", "0", "0"),
			mkRow("C-001", "Sara", "Medline", "Summit", "X.1.2", "Closed", "UAE", "19/01/2023", "150", "150", "50", "0"),
			mkRow("C-002", "Omar", "Medline", "Launch", "Y.1.1", "Rejected", "KSA", "03/03/2023", "80", "0", "0", "80"),
		},
	}
}

func TestProcessCustomerData_ResubmittedQuote(t *testing.T) {
	clients, err := ProcessCustomerData(quotationDataset(), testNow)
	if err != nil {
		t.Fatalf("ProcessCustomerData() error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}

	c1 := clients[0]
	if c1.ClientID != "C-001" {
		t.Fatalf("clients[0] = %q, want C-001 (sorted output)", c1.ClientID)
	}
	if c1.TotalQuotations != 1 {
		t.Errorf("TotalQuotations = %d, want 1 (two versions, one project)", c1.TotalQuotations)
	}
	if c1.WinRatePct != 100 {
		t.Errorf("WinRatePct = %v, want 100", c1.WinRatePct)
	}
	if c1.TotalProjectValue != 150 {
		t.Errorf("TotalProjectValue = %v, want 150 (latest version)", c1.TotalProjectValue)
	}
	if c1.CLV != 150 {
		t.Errorf("CLV = %v, want 150", c1.CLV)
	}
	if c1.RevenueByService != 50 {
		t.Errorf("RevenueByService = %v, want 50", c1.RevenueByService)
	}
	if got := c1.ServiceRevenueBreakdown["CME"]; got != 1.0 {
		t.Errorf("CME share = %v, want 1.0", got)
	}
	if c1.TotalOffersSent != 2 {
		t.Errorf("TotalOffersSent = %d, want 2", c1.TotalOffersSent)
	}
	if c1.CustomerSegment != SegmentLow {
		t.Errorf("CustomerSegment = %q, want %q", c1.CustomerSegment, SegmentLow)
	}

	c2 := clients[1]
	if c2.WinRatePct != 0 || c2.LossRatePct != 100 {
		t.Errorf("C-002 rates = (%v, %v), want (0, 100)", c2.WinRatePct, c2.LossRatePct)
	}
	if c2.TopServiceByValue != "Design" {
		t.Errorf("C-002 TopServiceByValue = %q, want Design", c2.TopServiceByValue)
	}
}

// Running the pipeline twice over the same input must produce identical
// output: nothing in the pipeline may depend on map iteration order or
// mutate its input.
func TestProcessCustomerData_Deterministic(t *testing.T) {
	ds := quotationDataset()
	first, err := ProcessCustomerData(ds, testNow)
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := ProcessCustomerData(ds, testNow)
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("pipeline output differs between identical runs")
	}
}

// With a status column present, every reconciled quote is either converted
// or lost, so the two always partition the total.
func TestProcessCustomerData_StatusPartition(t *testing.T) {
	clients, err := ProcessCustomerData(quotationDataset(), testNow)
	if err != nil {
		t.Fatalf("ProcessCustomerData() error: %v", err)
	}
	for _, c := range clients {
		if c.ConvertedQuotations+c.LostQuotations != c.TotalQuotations {
			t.Errorf("client %s: %d + %d != %d",
				c.ClientID, c.ConvertedQuotations, c.LostQuotations, c.TotalQuotations)
		}
	}
}

func TestProcessCustomerData_MissingMandatoryColumn(t *testing.T) {
	ds := Dataset{
		Columns: []string{"ClientID", "Date"},
		Rows:    []map[string]string{{"ClientID": "C-1", "Date": "05/01/2023"}},
	}
	if _, err := ProcessCustomerData(ds, testNow); err == nil {
		t.Fatal("expected error for missing Number column")
	}
}

func TestProcessCustomerData_NoServiceColumns(t *testing.T) {
	ds := Dataset{
		Columns: []string{"ClientID", "Number", "Estimate status"},
		Rows: []map[string]string{
			{"ClientID": "C-1", "Number": "A.1.1", "Estimate status": "Closed"},
		},
	}
	clients, err := ProcessCustomerData(ds, testNow)
	if err != nil {
		t.Fatalf("ProcessCustomerData() error: %v", err)
	}
	if clients[0].TopServiceByValue != NoService {
		t.Errorf("TopServiceByValue = %q, want %q", clients[0].TopServiceByValue, NoService)
	}
}

func TestProcessCustomerData_NoStatusColumn(t *testing.T) {
	ds := Dataset{
		Columns: []string{"ClientID", "Number"},
		Rows: []map[string]string{
			{"ClientID": "C-1", "Number": "A.1.1"},
			{"ClientID": "C-1", "Number": "A.2.1"},
		},
	}
	clients, err := ProcessCustomerData(ds, testNow)
	if err != nil {
		t.Fatalf("ProcessCustomerData() error: %v", err)
	}
	c := clients[0]
	if c.ConvertedQuotations != 0 || c.LostQuotations != 0 {
		t.Errorf("without a status column nothing converts or loses, got (%d, %d)",
			c.ConvertedQuotations, c.LostQuotations)
	}
	if c.TotalQuotations != 2 {
		t.Errorf("TotalQuotations = %d, want 2", c.TotalQuotations)
	}
}

func TestProcessCustomerData_UnparseableDates(t *testing.T) {
	ds := Dataset{
		Columns: []string{"ClientID", "Number", "Date"},
		Rows: []map[string]string{
			{"ClientID": "C-1", "Number": "A.1.1", "Date": "not a date"},
		},
	}
	clients, err := ProcessCustomerData(ds, testNow)
	if err != nil {
		t.Fatalf("ProcessCustomerData() error: %v", err)
	}
	c := clients[0]
	if c.HasDateData {
		t.Error("HasDateData should be false when no date parsed")
	}
	if c.YearsActive != minYearsActive {
		t.Errorf("YearsActive = %v, want sentinel %v", c.YearsActive, minYearsActive)
	}
	if c.IdleTimeDays != 0 {
		t.Errorf("IdleTimeDays = %v, want 0", c.IdleTimeDays)
	}
}

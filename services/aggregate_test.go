package services

import (
	"testing"
	"time"
)

func TestAggregateClients_OffersCountRawRows(t *testing.T) {
	raw := []IdentifiedRow{
		identified("C-1", "A.1.1", 0, "Rejected", 100),
		identified("C-1", "A.1.2", 1, "Closed", 150),
		identified("C-1", "A.2.1", 2, "Closed", 50),
	}
	reconciled := Reconcile(raw, true)

	aggs := AggregateClients(reconciled, raw, nil)
	if len(aggs) != 1 {
		t.Fatalf("expected 1 client, got %d", len(aggs))
	}
	agg := aggs[0]
	if agg.TotalQuotations != 2 {
		t.Errorf("TotalQuotations = %d, want 2 (deduplicated projects)", agg.TotalQuotations)
	}
	if agg.TotalOffersSent != 3 {
		t.Errorf("TotalOffersSent = %d, want 3 (every version row)", agg.TotalOffersSent)
	}
	if agg.ConvertedQuotations != 2 {
		t.Errorf("ConvertedQuotations = %d, want 2", agg.ConvertedQuotations)
	}
	if agg.TotalProjectValue != 200 {
		t.Errorf("TotalProjectValue = %v, want 200 (latest versions only)", agg.TotalProjectValue)
	}
}

func TestAggregateClients_ServicePresenceAcrossVersions(t *testing.T) {
	// The early rejected version pitched Video; the winning version did not.
	// Diversity still counts Video for the project.
	v1 := identified("C-1", "A.1.1", 0, "Rejected", 100)
	v1.Services = map[string]float64{"Video": 500}
	v2 := identified("C-1", "A.1.2", 1, "Closed", 150)
	v2.Services = map[string]float64{"CME": 150}

	raw := []IdentifiedRow{v1, v2}
	reconciled := Reconcile(raw, true)
	aggs := AggregateClients(reconciled, raw, []string{"CME", "Video"})

	agg := aggs[0]
	if agg.ServiceProjects["Video"] != 1 {
		t.Errorf("ServiceProjects[Video] = %d, want 1 (presence in any version)", agg.ServiceProjects["Video"])
	}
	if agg.ServiceTotals["Video"] != 0 {
		t.Errorf("ServiceTotals[Video] = %v, want 0 (revenue from latest version only)", agg.ServiceTotals["Video"])
	}
	if agg.ServiceTotals["CME"] != 150 {
		t.Errorf("ServiceTotals[CME] = %v, want 150", agg.ServiceTotals["CME"])
	}
}

func TestAggregateClients_DateRange(t *testing.T) {
	mk := func(number string, index int, day int) IdentifiedRow {
		r := identified("C-1", number, index, "Closed", 10)
		r.Date = time.Date(2023, 3, day, 0, 0, 0, 0, time.UTC)
		r.HasDate = true
		return r
	}
	// Out-of-order input dates.
	raw := []IdentifiedRow{mk("A.1.1", 0, 20), mk("A.2.1", 1, 5), mk("A.3.1", 2, 12)}
	aggs := AggregateClients(Reconcile(raw, true), raw, nil)

	agg := aggs[0]
	if !agg.HasDates {
		t.Fatal("expected HasDates")
	}
	if agg.FirstQuoteDate.Day() != 5 || agg.LastQuoteDate.Day() != 20 {
		t.Errorf("date range = (%v, %v), want days 5 and 20", agg.FirstQuoteDate, agg.LastQuoteDate)
	}
	for i := 1; i < len(agg.QuoteDates); i++ {
		if agg.QuoteDates[i].Before(agg.QuoteDates[i-1]) {
			t.Error("QuoteDates not sorted ascending")
		}
	}
}

func TestAggregateClients_ProjectDiversityByName(t *testing.T) {
	a := identified("C-1", "A.1.1", 0, "Closed", 10)
	a.ProjectName = "Summit"
	b := identified("C-1", "A.2.1", 1, "Closed", 10)
	b.ProjectName = "Summit"
	c := identified("C-1", "A.3.1", 2, "Closed", 10)
	c.ProjectName = "Webcast"

	raw := []IdentifiedRow{a, b, c}
	aggs := AggregateClients(Reconcile(raw, true), raw, nil)
	if aggs[0].ProjectDiversity != 2 {
		t.Errorf("ProjectDiversity = %d, want 2 distinct names", aggs[0].ProjectDiversity)
	}
}

func TestAggregateClients_SortedByClientID(t *testing.T) {
	raw := []IdentifiedRow{
		identified("C-3", "A.1.1", 0, "Closed", 10),
		identified("C-1", "B.1.1", 1, "Closed", 10),
		identified("C-2", "C.1.1", 2, "Closed", 10),
	}
	aggs := AggregateClients(Reconcile(raw, true), raw, nil)
	want := []string{"C-1", "C-2", "C-3"}
	for i, w := range want {
		if aggs[i].ClientID != w {
			t.Errorf("aggs[%d].ClientID = %q, want %q", i, aggs[i].ClientID, w)
		}
	}
}

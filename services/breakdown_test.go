package services

import (
	"math"
	"testing"
)

func TestBuildServiceBreakdowns_SharesSumToOne(t *testing.T) {
	agg := ClientAggregate{
		TotalQuotations: 2,
		ServiceTotals: map[string]float64{
			"CME":    60,
			"Design": 30,
			"Video":  10,
		},
		ServiceProjects: map[string]int{"CME": 2, "Design": 1, "Video": 1},
	}
	var a ClientAnalytics
	buildServiceBreakdowns(&a, agg, []string{"CME", "Design", "Video"})

	var sum float64
	for _, share := range a.ServiceRevenueBreakdown {
		sum += share
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("shares sum to %v, want 1.0", sum)
	}
	if a.ServiceRevenueBreakdown["CME"] != 0.6 {
		t.Errorf("CME share = %v, want 0.6", a.ServiceRevenueBreakdown["CME"])
	}
	if a.RevenueByService != 100 {
		t.Errorf("RevenueByService = %v, want 100", a.RevenueByService)
	}
	if a.TopServiceByValue != "CME" {
		t.Errorf("TopServiceByValue = %q, want CME", a.TopServiceByValue)
	}
	if a.ServiceAvgRevenuePerProject["CME"] != 30 {
		t.Errorf("CME avg per project = %v, want 30", a.ServiceAvgRevenuePerProject["CME"])
	}
	if a.ProjectDiversityBreakdown["CME"] != 1.0 {
		t.Errorf("CME diversity = %v, want 1.0", a.ProjectDiversityBreakdown["CME"])
	}
}

func TestBuildServiceBreakdowns_NoServiceColumns(t *testing.T) {
	var a ClientAnalytics
	buildServiceBreakdowns(&a, ClientAggregate{TotalQuotations: 1}, nil)

	if a.TopServiceByVolume != NoService || a.TopServiceByValue != NoService {
		t.Errorf("top services = (%q, %q), want %q", a.TopServiceByVolume, a.TopServiceByValue, NoService)
	}
	if a.RevenueByService != 0 {
		t.Errorf("RevenueByService = %v, want 0", a.RevenueByService)
	}
	if a.ServiceRevenueBreakdown == nil || a.ProjectDiversityBreakdown == nil {
		t.Error("breakdown maps must be initialized even without services")
	}
}

func TestBuildServiceBreakdowns_AllZeroRevenue(t *testing.T) {
	agg := ClientAggregate{
		TotalQuotations: 1,
		ServiceTotals:   map[string]float64{"CME": 0, "Design": 0},
		ServiceProjects: map[string]int{},
	}
	var a ClientAnalytics
	buildServiceBreakdowns(&a, agg, []string{"CME", "Design"})

	if a.TopServiceByValue != NoService {
		t.Errorf("TopServiceByValue = %q, want %q", a.TopServiceByValue, NoService)
	}
	if len(a.ServiceRevenueBreakdown) != 0 {
		t.Errorf("expected no share entries for zero revenue, got %v", a.ServiceRevenueBreakdown)
	}
}

func TestTopService_TieKeepsEnumerationOrder(t *testing.T) {
	totals := map[string]float64{"Design": 50, "CME": 50}
	got := topService(totals, []string{"CME", "Design"})
	if got != "CME" {
		t.Errorf("topService tie = %q, want CME (first in enumeration order)", got)
	}
}

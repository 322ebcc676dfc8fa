package services

import (
	"fmt"
	"time"
)

// ClientAnalytics is one output row of the pipeline: every aggregate and
// derived metric for a single client. Records are computed once per run and
// never mutated afterwards.
type ClientAnalytics struct {
	ClientID string `json:"client_id"`

	FirstQuoteDate time.Time `json:"first_quote_date"`
	LastQuoteDate  time.Time `json:"last_quote_date"`
	// HasDateData is false when none of the client's dates parsed; the
	// date-derived metrics then hold sentinel values instead of NaN.
	HasDateData bool `json:"has_date_data"`

	AverageDaysBetweenQuotes float64 `json:"average_days_between_quotes"`
	YearsActive              float64 `json:"years_active"`
	ProjectsPerYear          float64 `json:"projects_per_year"`
	ProjectDiversity         int     `json:"project_diversity"`

	TotalProjectValue float64 `json:"total_project_value"`
	CLV               float64 `json:"clv"`

	TotalQuotations     int     `json:"total_quotations"`
	ConvertedQuotations int     `json:"converted_quotations"`
	LostQuotations      int     `json:"lost_quotations"`
	WinRatePct          float64 `json:"win_rate_pct"`
	LossRatePct         float64 `json:"loss_rate_pct"`

	TopServiceByVolume string  `json:"top_service_by_volume"`
	TopServiceByValue  string  `json:"top_service_by_value"`
	RevenueByService   float64 `json:"revenue_by_service"`

	RetentionRate       float64 `json:"retention_rate"`
	ChurnRate           float64 `json:"churn_rate"`
	QuoteToProjectRatio float64 `json:"quote_to_project_ratio"`
	CustomerSegment     string  `json:"customer_segment"`

	IdleTimeDays  float64 `json:"idle_time_days"`
	IdleTimeYears float64 `json:"idle_time_years"`

	TotalOffersSent     int     `json:"total_offers_sent"`
	OCDS                float64 `json:"ocds"`
	AvgOffersPerProject float64 `json:"avg_offers_per_project"`

	ServiceRevenueBreakdown     map[string]float64 `json:"service_revenue_breakdown"`
	ProjectDiversityBreakdown   map[string]float64 `json:"project_diversity_breakdown"`
	ServiceTotalRevenue         map[string]float64 `json:"service_total_revenue"`
	ServiceAvgRevenuePerProject map[string]float64 `json:"service_avg_revenue_per_project"`
}

// ProcessCustomerData runs the full analytics pipeline over a raw quotation
// table and returns one record per client, sorted by ClientID. The current
// time is injected so idle-time metrics stay testable. Any panic inside the
// pipeline is downgraded to the error return; per-field problems never abort
// the run (bad cells were already replaced with sentinels by Normalize).
func ProcessCustomerData(ds Dataset, now time.Time) (result []ClientAnalytics, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("processing failed: %v", r)
		}
	}()

	nd, err := Normalize(ds)
	if err != nil {
		return nil, err
	}

	rows := ResolveIdentities(nd.Rows)
	quotes := Reconcile(rows, nd.HasStatus)
	aggs := AggregateClients(quotes, rows, nd.ActiveServices)

	result = make([]ClientAnalytics, 0, len(aggs))
	for _, agg := range aggs {
		a := ClientAnalytics{
			ClientID:            agg.ClientID,
			FirstQuoteDate:      agg.FirstQuoteDate,
			LastQuoteDate:       agg.LastQuoteDate,
			HasDateData:         agg.HasDates,
			ProjectDiversity:    agg.ProjectDiversity,
			TotalProjectValue:   agg.TotalProjectValue,
			CLV:                 agg.CLV,
			TotalQuotations:     agg.TotalQuotations,
			ConvertedQuotations: agg.ConvertedQuotations,
			LostQuotations:      agg.LostQuotations,
			TotalOffersSent:     agg.TotalOffersSent,
		}
		deriveMetrics(&a, agg, now)
		buildServiceBreakdowns(&a, agg, nd.ActiveServices)
		a.CustomerSegment = SegmentCustomer(a.CLV, a.WinRatePct, float64(a.ConvertedQuotations))
		result = append(result, a)
	}
	return result, nil
}

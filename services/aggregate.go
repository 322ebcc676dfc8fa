package services

import (
	"sort"
	"time"
)

// ClientAggregate carries the raw per-client aggregates the metric deriver
// and breakdown builder work from.
type ClientAggregate struct {
	ClientID string

	FirstQuoteDate time.Time
	LastQuoteDate  time.Time
	HasDates       bool
	// QuoteDates are the valid latest-version dates, sorted ascending.
	QuoteDates []time.Time

	TotalQuotations     int
	ConvertedQuotations int
	LostQuotations      int
	TotalProjectValue   float64
	CLV                 float64
	ProjectDiversity    int

	// ServiceTotals sums each service column over latest-version rows only.
	ServiceTotals map[string]float64

	// TotalOffersSent counts raw version rows, not deduplicated projects.
	TotalOffersSent int

	// ServiceProjects counts, per service, the distinct projects where any
	// version carried a nonzero amount for that service.
	ServiceProjects map[string]int
}

// AggregateClients groups reconciled quotes by client. Offer counts and
// per-service project presence come from the unreconciled row set, which is
// intentional: every submitted version counts as one offer, and a service
// pitched in an early rejected version still counts toward diversity.
func AggregateClients(reconciled []ReconciledQuote, raw []IdentifiedRow, activeServices []string) []ClientAggregate {
	byClient := make(map[string]*ClientAggregate)
	var order []string

	get := func(clientID string) *ClientAggregate {
		agg, ok := byClient[clientID]
		if !ok {
			agg = &ClientAggregate{
				ClientID:        clientID,
				ServiceTotals:   make(map[string]float64, len(activeServices)),
				ServiceProjects: make(map[string]int, len(activeServices)),
			}
			byClient[clientID] = agg
			order = append(order, clientID)
		}
		return agg
	}

	projectNames := make(map[string]map[string]bool)

	for _, q := range reconciled {
		agg := get(q.ClientID)
		agg.TotalQuotations++
		switch q.FinalStatus {
		case StatusClosed:
			agg.ConvertedQuotations++
		case StatusRejected:
			agg.LostQuotations++
		}
		agg.TotalProjectValue += q.Taxable
		agg.CLV += q.Invoiced
		for _, svc := range activeServices {
			agg.ServiceTotals[svc] += q.Services[svc]
		}
		if q.HasDate {
			agg.QuoteDates = append(agg.QuoteDates, q.Date)
		}
		names := projectNames[q.ClientID]
		if names == nil {
			names = make(map[string]bool)
			projectNames[q.ClientID] = names
		}
		names[q.ProjectName] = true
	}

	// Per-service project presence over all versions.
	servicePresence := make(map[string]map[string]map[string]bool)
	for _, row := range raw {
		agg := get(row.ClientID)
		agg.TotalOffersSent++

		for _, svc := range activeServices {
			if row.Services[svc] == 0 {
				continue
			}
			perSvc := servicePresence[row.ClientID]
			if perSvc == nil {
				perSvc = make(map[string]map[string]bool)
				servicePresence[row.ClientID] = perSvc
			}
			quotes := perSvc[svc]
			if quotes == nil {
				quotes = make(map[string]bool)
				perSvc[svc] = quotes
			}
			quotes[row.QuoteID] = true
		}
	}

	sort.Strings(order)

	out := make([]ClientAggregate, 0, len(order))
	for _, clientID := range order {
		agg := byClient[clientID]
		agg.ProjectDiversity = len(projectNames[clientID])
		for svc, quotes := range servicePresence[clientID] {
			agg.ServiceProjects[svc] = len(quotes)
		}
		if len(agg.QuoteDates) > 0 {
			sort.Slice(agg.QuoteDates, func(i, j int) bool {
				return agg.QuoteDates[i].Before(agg.QuoteDates[j])
			})
			agg.FirstQuoteDate = agg.QuoteDates[0]
			agg.LastQuoteDate = agg.QuoteDates[len(agg.QuoteDates)-1]
			agg.HasDates = true
		}
		out = append(out, *agg)
	}
	return out
}

package services

// NoService is reported as the top service when a client has no positive
// service revenue or the sheet carried no service columns at all.
const NoService = "No Service"

// buildServiceBreakdowns fills the per-service maps and top-service fields.
// Revenue figures come from latest-version rows only; the diversity
// breakdown counts projects where any version pitched the service. Zero
// entries stay out of the maps so exports can default them deterministically.
func buildServiceBreakdowns(a *ClientAnalytics, agg ClientAggregate, activeServices []string) {
	a.ServiceRevenueBreakdown = make(map[string]float64)
	a.ProjectDiversityBreakdown = make(map[string]float64)
	a.ServiceTotalRevenue = make(map[string]float64)
	a.ServiceAvgRevenuePerProject = make(map[string]float64)

	if len(activeServices) == 0 {
		a.TopServiceByVolume = NoService
		a.TopServiceByValue = NoService
		a.RevenueByService = 0
		return
	}

	var total float64
	for _, svc := range activeServices {
		total += agg.ServiceTotals[svc]
	}
	a.RevenueByService = total

	a.TopServiceByVolume = topService(agg.ServiceTotals, activeServices)
	a.TopServiceByValue = a.TopServiceByVolume

	quotations := float64(agg.TotalQuotations)
	for _, svc := range activeServices {
		sum := agg.ServiceTotals[svc]

		if total != 0 {
			if share := sum / total; share > 0 {
				a.ServiceRevenueBreakdown[svc] = share
			}
		}
		if quotations > 0 {
			if avg := sum / quotations; avg > 0 {
				a.ServiceAvgRevenuePerProject[svc] = avg
			}
		}
		if sum != 0 {
			a.ServiceTotalRevenue[svc] = sum
		}
		if count := agg.ServiceProjects[svc]; count > 0 && quotations > 0 {
			a.ProjectDiversityBreakdown[svc] = float64(count) / quotations
		}
	}
}

// topService returns the service with the maximum summed revenue, ties going
// to the first service in enumeration order. All-zero (or negative) totals
// mean no service.
func topService(totals map[string]float64, activeServices []string) string {
	best := ""
	var bestVal float64
	for _, svc := range activeServices {
		v := totals[svc]
		if best == "" || v > bestVal {
			best = svc
			bestVal = v
		}
	}
	if best == "" || bestVal <= 0 {
		return NoService
	}
	return best
}

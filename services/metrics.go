package services

import (
	"math"
	"time"
)

// Fixed design constants of the derived metrics.
const (
	// minYearsActive stands in for a zero activity span (about one day) so
	// per-year ratios never divide by zero.
	minYearsActive = 0.003
	// fallbackAvgGapDays is used when the gap computation is impossible for
	// a multi-quote client (e.g. its dates never parsed).
	fallbackAvgGapDays = 30.0

	daysPerYear = 365.0

	retentionConversionWeight = 0.5
	retentionEngagementWeight = 0.2
	retentionActivityWeight   = 0.3
	// activityNormYears is the activity span treated as full engagement.
	activityNormYears = 5.0
)

// deriveMetrics fills every ratio derived from the client aggregates:
// activity span, idle time, quote cadence, win/loss rates, retention/churn,
// and the offer-difficulty scores.
func deriveMetrics(a *ClientAnalytics, agg ClientAggregate, now time.Time) {
	if agg.HasDates {
		active := agg.LastQuoteDate.Sub(agg.FirstQuoteDate).Hours() / 24 / daysPerYear
		if active == 0 {
			active = minYearsActive
		}
		a.YearsActive = active
		a.IdleTimeDays = math.Floor(now.Sub(agg.LastQuoteDate).Hours() / 24)
		a.IdleTimeYears = a.IdleTimeDays / daysPerYear
	} else {
		a.YearsActive = minYearsActive
		a.IdleTimeDays = 0
		a.IdleTimeYears = 0
	}

	a.AverageDaysBetweenQuotes = averageGapDays(agg)

	projects := float64(agg.ProjectDiversity)
	if a.YearsActive < 1 {
		a.ProjectsPerYear = projects
	} else {
		a.ProjectsPerYear = projects / a.YearsActive
	}

	total := float64(agg.TotalQuotations)
	a.WinRatePct = float64(agg.ConvertedQuotations) / total * 100
	a.LossRatePct = float64(agg.LostQuotations) / total * 100

	a.RetentionRate = retentionRate(agg, a.YearsActive, a.AverageDaysBetweenQuotes)
	a.ChurnRate = 1 - a.RetentionRate

	if a.ProjectsPerYear > 0 {
		a.QuoteToProjectRatio = total / a.ProjectsPerYear
	} else {
		a.QuoteToProjectRatio = total
	}

	offers := float64(agg.TotalOffersSent)
	if agg.ConvertedQuotations > 0 {
		a.OCDS = offers / float64(agg.ConvertedQuotations)
	} else {
		// No wins: report the raw offer count as "infinitely difficult".
		a.OCDS = offers
	}
	if agg.TotalQuotations > 0 {
		a.AvgOffersPerProject = offers / total
	}
}

// averageGapDays is the mean day gap between consecutive quote dates, sorted
// ascending. Single-quote clients report 0; multi-quote clients whose dates
// cannot support the computation fall back to 30 days.
func averageGapDays(agg ClientAggregate) float64 {
	if agg.TotalQuotations <= 1 {
		return 0
	}
	if len(agg.QuoteDates) < 2 {
		return fallbackAvgGapDays
	}
	var sum float64
	for i := 1; i < len(agg.QuoteDates); i++ {
		sum += agg.QuoteDates[i].Sub(agg.QuoteDates[i-1]).Hours() / 24
	}
	return sum / float64(len(agg.QuoteDates)-1)
}

// retentionRate blends conversion, quoting frequency and activity span into
// a score in [0,1]. Single-quote clients collapse to 1.0 (won) or 0.0.
func retentionRate(agg ClientAggregate, yearsActive, avgGapDays float64) float64 {
	if agg.TotalQuotations <= 1 {
		if agg.ConvertedQuotations > 0 {
			return 1.0
		}
		return 0.0
	}

	conversion := float64(agg.ConvertedQuotations) / float64(agg.TotalQuotations)

	engagement := 0.5
	if avgGapDays > 0 {
		engagement = clamp01((daysPerYear - avgGapDays) / daysPerYear)
	}

	activity := math.Min(yearsActive/activityNormYears, 1.0)

	retention := conversion*retentionConversionWeight +
		engagement*retentionEngagementWeight +
		activity*retentionActivityWeight
	return clamp01(retention)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

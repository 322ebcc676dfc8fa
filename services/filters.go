package services

import "strings"

// AnalyticsFilter narrows the per-client table for the dashboard. Zero
// values mean "no constraint".
type AnalyticsFilter struct {
	Segment      string
	MinCLV       float64
	MinWinRate   float64
	MinRetention float64
	Search       string
}

// FilterAnalytics returns the clients passing every set constraint. Search
// is a case-insensitive substring match on ClientID. Input order is kept.
func FilterAnalytics(clients []ClientAnalytics, f AnalyticsFilter) []ClientAnalytics {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]ClientAnalytics, 0, len(clients))
	for _, c := range clients {
		if f.Segment != "" && c.CustomerSegment != f.Segment {
			continue
		}
		if c.CLV < f.MinCLV {
			continue
		}
		if c.WinRatePct < f.MinWinRate {
			continue
		}
		if c.RetentionRate < f.MinRetention {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.ClientID), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

package services

import "sort"

// ReconciledQuote is the single representative of one (client, quote id)
// project: the latest version's row data with the status reconciled across
// all versions of the project.
type ReconciledQuote struct {
	IdentifiedRow
	FinalStatus string
}

// Reconcile collapses version rows into one quote per (client, quote id).
// The latest version (max version number, later input row on ties) supplies
// the amount, service, name and date fields. The final status is Closed if
// any version closed, otherwise Rejected — a project keeps Rejected across
// any number of rejected resubmissions. Without a status column every quote
// reports StatusUnknown.
func Reconcile(rows []IdentifiedRow, hasStatus bool) []ReconciledQuote {
	type group struct {
		latest    IdentifiedRow
		anyClosed bool
	}

	type key struct {
		clientID string
		quoteID  string
	}

	groups := make(map[key]*group)
	order := make([]key, 0, len(rows))

	for _, row := range rows {
		k := key{clientID: row.ClientID, quoteID: row.QuoteID}
		g, ok := groups[k]
		if !ok {
			g = &group{latest: row}
			groups[k] = g
			order = append(order, k)
		} else if row.Version >= g.latest.Version {
			g.latest = row
		}
		if row.Status == StatusClosed {
			g.anyClosed = true
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].clientID != order[j].clientID {
			return order[i].clientID < order[j].clientID
		}
		return order[i].quoteID < order[j].quoteID
	})

	out := make([]ReconciledQuote, 0, len(order))
	for _, k := range order {
		g := groups[k]
		status := StatusUnknown
		if hasStatus {
			if g.anyClosed {
				status = StatusClosed
			} else {
				status = StatusRejected
			}
		}
		out = append(out, ReconciledQuote{
			IdentifiedRow: g.latest,
			FinalStatus:   status,
		})
	}
	return out
}

// Package templates holds the server-rendered views. Components are written
// directly against templ's ComponentFunc API.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// AnalyticsRow is one pre-formatted row of the client analytics table.
type AnalyticsRow struct {
	ClientID       string
	Segment        string
	SegmentClass   string
	CLV            string
	WinRate        string
	Retention      string
	Quotations     int
	Converted      int
	Lost           int
	OffersSent     int
	OCDS           string
	TopService     string
	LastQuoteDate  string
	IdleTimeDays   string
	MissingDates   bool
}

// AnalyticsData feeds the client analytics table view.
type AnalyticsData struct {
	UploadID   string
	UploadName string
	Rows       []AnalyticsRow
	TotalCount int
	Segment    string
	Search     string
}

// CompanyRow is one pre-formatted row of the company roll-up table.
type CompanyRow struct {
	Company      string
	Country      string
	Clients      int
	ClientIDs    string
	TotalQuotes  int
	ClosedQuotes int
	TotalRevenue string
	WinRate      string
}

// CompanyData feeds the company roll-up view.
type CompanyData struct {
	UploadID   string
	UploadName string
	Rows       []CompanyRow
}

// UploadData feeds the upload page.
type UploadData struct {
	ActiveUploadID   string
	ActiveUploadName string
}

// ValidationRowError is one row-level upload problem for display.
type ValidationRowError struct {
	Row     int
	Field   string
	Message string
}

// ValidationData feeds the post-validation fragment.
type ValidationData struct {
	FileName  string
	TotalRows int
	ValidRows int
	ErrorRows int
	Errors    []ValidationRowError
}

func esc(s string) string { return html.EscapeString(s) }

// Layout wraps a body component in the page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<title>%s</title>`+
				`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`+
				`<link rel="stylesheet" href="/static/app.css">`+
				`</head><body><header class="topbar"><a href="/">Quotelens</a>`+
				`<nav><a href="/upload">Upload</a></nav></header><main>`,
			esc(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// UploadPage renders the sheet upload form.
func UploadPage(data UploadData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		active := ""
		if data.ActiveUploadName != "" {
			active = fmt.Sprintf(`<p class="hint">Active dataset: %s</p>`, esc(data.ActiveUploadName))
		}
		_, err := fmt.Fprintf(w,
			`<section class="card"><h1>Upload Quotation Sheet</h1>%s`+
				`<form hx-post="/uploads" hx-target="#validation-result" hx-encoding="multipart/form-data">`+
				`<input type="file" name="file" accept=".csv,.xlsx" required>`+
				`<button type="submit" class="btn btn-primary">Validate</button>`+
				`</form><div id="validation-result"></div></section>`,
			active)
		return err
	})
}

// ValidationResultFragment renders the validation outcome plus the commit
// form when the upload is usable.
func ValidationResultFragment(data ValidationData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="validation-summary"><p>%s: %d rows, %d clean, %d with warnings.</p>`,
			esc(data.FileName), data.TotalRows, data.ValidRows, data.ErrorRows); err != nil {
			return err
		}
		if len(data.Errors) > 0 {
			if _, err := io.WriteString(w,
				`<table class="table table-compact"><thead><tr><th>Row</th><th>Field</th><th>Problem</th></tr></thead><tbody>`); err != nil {
				return err
			}
			for _, e := range data.Errors {
				if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
					e.Row, esc(e.Field), esc(e.Message)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`<form hx-post="/uploads/commit" hx-encoding="multipart/form-data">`+
				`<input type="file" name="file" accept=".csv,.xlsx" required>`+
				`<button type="submit" class="btn">Commit Upload</button></form></div>`)
		return err
	})
}

// AnalyticsPage is the full client analytics page.
func AnalyticsPage(data AnalyticsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section class="card"><h1>Client Analytics — %s</h1>`+
				`<form hx-get="/uploads/%s/analytics" hx-target="#analytics-table">`+
				`<select name="segment"><option value="">All segments</option>`+
				`<option%s>High</option><option%s>Medium</option><option%s>Low</option></select>`+
				`<input type="search" name="q" placeholder="Search client" value="%s">`+
				`<input type="number" name="min_clv" placeholder="Min CLV" step="any">`+
				`<input type="number" name="min_win_rate" placeholder="Min win rate %%" step="any">`+
				`<button type="submit" class="btn">Filter</button></form>`+
				`<p class="links"><a href="/uploads/%s/export/csv">CSV</a> `+
				`<a href="/uploads/%s/export/excel">Excel</a> `+
				`<a href="/uploads/%s/export/pdf">PDF</a> `+
				`<a href="/uploads/%s/companies">Companies</a></p>`+
				`<div id="analytics-table">`,
			esc(data.UploadName), esc(data.UploadID),
			selectedIf(data.Segment == "High"), selectedIf(data.Segment == "Medium"), selectedIf(data.Segment == "Low"),
			esc(data.Search),
			esc(data.UploadID), esc(data.UploadID), esc(data.UploadID), esc(data.UploadID)); err != nil {
			return err
		}
		if err := AnalyticsTable(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></section>`)
		return err
	})
}

// AnalyticsTable is the table fragment swapped by the filter form.
func AnalyticsTable(data AnalyticsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<p class="count">%d of %d clients</p>`+
				`<table class="table"><thead><tr>`+
				`<th>Client</th><th>Segment</th><th>CLV</th><th>Win Rate</th>`+
				`<th>Retention</th><th>Quotes</th><th>Won</th><th>Lost</th>`+
				`<th>Offers</th><th>OCDS</th><th>Top Service</th><th>Last Quote</th><th>Idle Days</th>`+
				`</tr></thead><tbody>`,
			len(data.Rows), data.TotalCount); err != nil {
			return err
		}
		for _, r := range data.Rows {
			lastQuote := r.LastQuoteDate
			if r.MissingDates {
				lastQuote = "insufficient data"
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td><span class="badge %s">%s</span></td>`+
					`<td>%s</td><td>%s</td><td>%s</td>`+
					`<td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td>`+
					`<td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(r.ClientID), esc(r.SegmentClass), esc(r.Segment),
				esc(r.CLV), esc(r.WinRate), esc(r.Retention),
				r.Quotations, r.Converted, r.Lost, r.OffersSent, esc(r.OCDS),
				esc(r.TopService), esc(lastQuote), esc(r.IdleTimeDays)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// CompanyPage renders the company roll-up table.
func CompanyPage(data CompanyData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section class="card"><h1>Companies — %s</h1>`+
				`<p class="links"><a href="/uploads/%s/analytics">Back to clients</a></p>`+
				`<table class="table"><thead><tr>`+
				`<th>Company</th><th>Country</th><th>Clients</th><th>Client IDs</th>`+
				`<th>Quotes</th><th>Closed</th><th>Revenue</th><th>Win Rate</th>`+
				`</tr></thead><tbody>`,
			esc(data.UploadName), esc(data.UploadID)); err != nil {
			return err
		}
		for _, r := range data.Rows {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td>`+
					`<td>%d</td><td>%d</td><td>%s</td><td>%s</td></tr>`,
				esc(r.Company), esc(r.Country), r.Clients, esc(r.ClientIDs),
				r.TotalQuotes, r.ClosedQuotes, esc(r.TotalRevenue), esc(r.WinRate)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

// NoUploadPage is shown when no dataset has been committed yet.
func NoUploadPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<section class="card"><h1>No dataset yet</h1>`+
				`<p>Upload a quotation sheet to see client analytics.</p>`+
				`<p><a class="btn btn-primary" href="/upload">Upload</a></p></section>`)
		return err
	})
}

func selectedIf(cond bool) string {
	if cond {
		return ` selected`
	}
	return ""
}

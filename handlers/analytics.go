package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/services"
	"quotelens/templates"
)

// HandleHome redirects to the analytics dashboard of the latest upload, or
// shows the empty state when nothing has been committed yet.
// Route: GET /
func HandleHome(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		upload := latestUpload(app)
		if upload == nil {
			page := templates.Layout("Quotelens", templates.NoUploadPage())
			return page.Render(e.Request.Context(), e.Response)
		}
		return e.Redirect(http.StatusFound, fmt.Sprintf("/uploads/%s/analytics", upload.Id))
	}
}

// HandleClientAnalytics runs the analytics pipeline over one upload and
// renders the per-client table, applying any filter query parameters. HTMX
// requests get just the table fragment.
// Route: GET /uploads/{uploadId}/analytics
func HandleClientAnalytics(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		upload, err := app.FindRecordById("uploads", e.Request.PathValue("uploadId"))
		if err != nil {
			return e.String(http.StatusNotFound, "Upload not found")
		}

		ds, err := buildUploadDataset(app, upload)
		if err != nil {
			log.Printf("client_analytics: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load upload data")
		}

		clients, err := services.ProcessCustomerData(ds, time.Now())
		if err != nil {
			log.Printf("client_analytics: %v", err)
			return ErrorToast(e, http.StatusUnprocessableEntity, err.Error())
		}

		filter := parseAnalyticsFilter(e.Request)
		filtered := services.FilterAnalytics(clients, filter)

		data := templates.AnalyticsData{
			UploadID:   upload.Id,
			UploadName: upload.GetString("file_name"),
			Rows:       buildAnalyticsRows(filtered),
			TotalCount: len(clients),
			Segment:    filter.Segment,
			Search:     filter.Search,
		}

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.AnalyticsTable(data).Render(e.Request.Context(), e.Response)
		}
		page := templates.Layout("Client Analytics", templates.AnalyticsPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}

// HandleCompanyAnalytics renders the company/country roll-up for one upload.
// Route: GET /uploads/{uploadId}/companies
func HandleCompanyAnalytics(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		upload, err := app.FindRecordById("uploads", e.Request.PathValue("uploadId"))
		if err != nil {
			return e.String(http.StatusNotFound, "Upload not found")
		}

		ds, err := buildUploadDataset(app, upload)
		if err != nil {
			log.Printf("company_analytics: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load upload data")
		}

		companies, err := services.ProcessCompanyData(ds)
		if err != nil {
			log.Printf("company_analytics: %v", err)
			return ErrorToast(e, http.StatusUnprocessableEntity, err.Error())
		}

		data := templates.CompanyData{
			UploadID:   upload.Id,
			UploadName: upload.GetString("file_name"),
		}
		for _, c := range companies {
			data.Rows = append(data.Rows, templates.CompanyRow{
				Company:      c.Company,
				Country:      c.Country,
				Clients:      c.TotalClients,
				ClientIDs:    strings.Join(c.ClientIDs, ", "),
				TotalQuotes:  c.TotalQuotes,
				ClosedQuotes: c.ClosedQuotes,
				TotalRevenue: services.FormatAED(c.TotalRevenue),
				WinRate:      services.FormatPercent(c.WinRatePct),
			})
		}

		page := templates.Layout("Companies", templates.CompanyPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}

// parseAnalyticsFilter reads the filter query parameters. Unparseable
// numbers are treated as unset.
func parseAnalyticsFilter(r *http.Request) services.AnalyticsFilter {
	q := r.URL.Query()
	f := services.AnalyticsFilter{
		Segment: strings.TrimSpace(q.Get("segment")),
		Search:  strings.TrimSpace(q.Get("q")),
	}
	if v, err := strconv.ParseFloat(q.Get("min_clv"), 64); err == nil {
		f.MinCLV = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_win_rate"), 64); err == nil {
		f.MinWinRate = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_retention"), 64); err == nil {
		f.MinRetention = v
	}
	return f
}

const displayDateLayout = "02 Jan 2006"

// buildAnalyticsRows pre-formats the pipeline output for the table view.
func buildAnalyticsRows(clients []services.ClientAnalytics) []templates.AnalyticsRow {
	rows := make([]templates.AnalyticsRow, 0, len(clients))
	for _, c := range clients {
		row := templates.AnalyticsRow{
			ClientID:     c.ClientID,
			Segment:      c.CustomerSegment,
			SegmentClass: "badge-" + strings.ToLower(c.CustomerSegment),
			CLV:          services.FormatAED(c.CLV),
			WinRate:      services.FormatPercent(c.WinRatePct),
			Retention:    fmt.Sprintf("%.2f", c.RetentionRate),
			Quotations:   c.TotalQuotations,
			Converted:    c.ConvertedQuotations,
			Lost:         c.LostQuotations,
			OffersSent:   c.TotalOffersSent,
			OCDS:         fmt.Sprintf("%.2f", c.OCDS),
			TopService:   c.TopServiceByValue,
			MissingDates: !c.HasDateData,
		}
		if c.HasDateData {
			row.LastQuoteDate = c.LastQuoteDate.Format(displayDateLayout)
			row.IdleTimeDays = fmt.Sprintf("%.0f", c.IdleTimeDays)
		}
		rows = append(rows, row)
	}
	return rows
}

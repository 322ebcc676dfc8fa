package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/services"
)

// loadAnalyticsForExport rebuilds the dataset for an upload and runs the
// full pipeline. Exports always use the unfiltered client set.
func loadAnalyticsForExport(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, []services.ClientAnalytics, error) {
	upload, err := app.FindRecordById("uploads", e.Request.PathValue("uploadId"))
	if err != nil {
		return nil, nil, fmt.Errorf("upload not found: %w", err)
	}

	ds, err := buildUploadDataset(app, upload)
	if err != nil {
		return nil, nil, err
	}

	clients, err := services.ProcessCustomerData(ds, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return upload, clients, nil
}

// HandleExportCSV downloads the full flat analytics table as CSV.
// Route: GET /uploads/{uploadId}/export/csv
func HandleExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		upload, clients, err := loadAnalyticsForExport(app, e)
		if err != nil {
			log.Printf("export_csv: %v", err)
			return e.String(http.StatusNotFound, "Failed to load analytics")
		}

		csvBytes, err := services.GenerateAnalyticsCSV(clients)
		if err != nil {
			log.Printf("export_csv: generate failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate CSV file")
		}

		filename := fmt.Sprintf("%s_Analytics.csv", sanitizeFilename(upload.GetString("file_name")))
		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(csvBytes)
		return nil
	}
}

// HandleExportExcel downloads the analytics table as a styled Excel workbook.
// Route: GET /uploads/{uploadId}/export/excel
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		upload, clients, err := loadAnalyticsForExport(app, e)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Failed to load analytics")
		}

		xlsxBytes, err := services.GenerateAnalyticsExcel(clients)
		if err != nil {
			log.Printf("export_excel: generate failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("%s_Analytics.xlsx", sanitizeFilename(upload.GetString("file_name")))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleExportPDF downloads the portfolio summary PDF.
// Route: GET /uploads/{uploadId}/export/pdf
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		upload, clients, err := loadAnalyticsForExport(app, e)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Failed to load analytics")
		}

		pdfBytes, err := services.GenerateAnalyticsPDF(clients, time.Now().Format("02 Jan 2006"))
		if err != nil {
			log.Printf("export_pdf: generate failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("%s_Summary.pdf", sanitizeFilename(upload.GetString("file_name")))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// sanitizeFilename strips characters that are unsafe in download filenames
// and drops the source file extension.
func sanitizeFilename(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", `"`, "_", "<", "_", ">", "_", "|", "_", " ", "_",
	)
	name = replacer.Replace(name)
	if name == "" {
		name = "export"
	}
	return name
}

package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/services"
	"quotelens/templates"
)

// HandleUploadPage renders the sheet upload form.
// Route: GET /upload
func HandleUploadPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.UploadData{}
		if active := latestUpload(app); active != nil {
			data.ActiveUploadID = active.Id
			data.ActiveUploadName = active.GetString("file_name")
		}

		page := templates.Layout("Upload", templates.UploadPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}

// HandleUploadValidate receives a quotation sheet, validates it, and returns
// the validation results as an HTMX partial. Nothing is persisted yet.
// Route: POST /uploads
func HandleUploadValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateQuotationFile(file, header.Filename)
		if err != nil {
			log.Printf("upload_validate: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		data := templates.ValidationData{
			FileName:  result.FileName,
			TotalRows: result.TotalRows,
			ValidRows: result.ValidRows,
			ErrorRows: result.ErrorRows,
		}
		for _, ve := range result.Errors {
			data.Errors = append(data.Errors, templates.ValidationRowError{
				Row:     ve.Row,
				Field:   ve.Field,
				Message: ve.Message,
			})
		}
		return templates.ValidationResultFragment(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleUploadCommit re-validates the uploaded sheet and persists it as a new
// upload batch with one record per raw row.
// Route: POST /uploads/commit
func HandleUploadCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateQuotationFile(file, header.Filename)
		if err != nil {
			log.Printf("upload_commit: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		upload, err := saveUploadBatch(app, result)
		if err != nil {
			log.Printf("upload_commit: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", fmt.Sprintf("%d quotation rows imported", result.TotalRows))
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/uploads/%s/analytics", upload.Id))
		return e.NoContent(http.StatusOK)
	}
}

// saveUploadBatch stores the validated sheet: one uploads record plus one
// quotation_rows record per data row, all under a fresh batch id.
func saveUploadBatch(app *pocketbase.PocketBase, result *services.ValidationResult) (*core.Record, error) {
	uploadsCol, err := app.FindCollectionByNameOrId("uploads")
	if err != nil {
		return nil, fmt.Errorf("uploads collection not found: %w", err)
	}
	rowsCol, err := app.FindCollectionByNameOrId("quotation_rows")
	if err != nil {
		return nil, fmt.Errorf("quotation_rows collection not found: %w", err)
	}

	columnsJSON, err := json.Marshal(result.Data.Columns)
	if err != nil {
		return nil, fmt.Errorf("marshal columns: %w", err)
	}

	upload := core.NewRecord(uploadsCol)
	upload.Set("file_name", result.FileName)
	upload.Set("batch_id", uuid.NewString())
	upload.Set("columns_json", string(columnsJSON))
	upload.Set("row_count", len(result.Data.Rows))
	if err := app.Save(upload); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	for i, cells := range result.Data.Rows {
		cellsJSON, err := json.Marshal(cells)
		if err != nil {
			return nil, fmt.Errorf("marshal row %d: %w", i, err)
		}
		record := core.NewRecord(rowsCol)
		record.Set("upload", upload.Id)
		record.Set("row_index", i)
		record.Set("cells_json", string(cellsJSON))
		if err := app.Save(record); err != nil {
			return nil, fmt.Errorf("save row %d: %w", i, err)
		}
	}
	return upload, nil
}

// HandleUploadErrorReport downloads the validation errors as an Excel file.
// Route: POST /uploads/errors
func HandleUploadErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errors []services.ValidationError
		if err := json.NewDecoder(e.Request.Body).Decode(&errors); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(errors)
		if err != nil {
			log.Printf("upload_error_report: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("Upload_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

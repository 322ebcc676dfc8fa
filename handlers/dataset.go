package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/services"
)

// latestUpload returns the most recently created upload record, or nil when
// no sheet has been committed yet.
func latestUpload(app *pocketbase.PocketBase) *core.Record {
	uploadsCol, err := app.FindCollectionByNameOrId("uploads")
	if err != nil {
		return nil
	}
	records, err := app.FindRecordsByFilter(uploadsCol, "id != ''", "-created", 1, 0, nil)
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}

// buildUploadDataset reconstructs the raw quotation table for an upload from
// its stored rows, preserving the original column order and row order.
func buildUploadDataset(app *pocketbase.PocketBase, upload *core.Record) (services.Dataset, error) {
	var columns []string
	if err := json.Unmarshal([]byte(upload.GetString("columns_json")), &columns); err != nil {
		return services.Dataset{}, fmt.Errorf("upload %s has invalid columns: %w", upload.Id, err)
	}

	rowsCol, err := app.FindCollectionByNameOrId("quotation_rows")
	if err != nil {
		return services.Dataset{}, fmt.Errorf("quotation_rows collection not found: %w", err)
	}

	records, err := app.FindRecordsByFilter(
		rowsCol,
		"upload = {:uploadId}",
		"row_index",
		0, 0,
		map[string]any{"uploadId": upload.Id},
	)
	if err != nil {
		return services.Dataset{}, fmt.Errorf("query rows for upload %s: %w", upload.Id, err)
	}

	ds := services.Dataset{Columns: columns}
	ds.Rows = make([]map[string]string, 0, len(records))
	for _, rec := range records {
		var cells map[string]string
		if err := json.Unmarshal([]byte(rec.GetString("cells_json")), &cells); err != nil {
			return services.Dataset{}, fmt.Errorf("row %s has invalid cells: %w", rec.Id, err)
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return ds, nil
}

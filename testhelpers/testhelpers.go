// Package testhelpers provides utilities for testing PocketBase-based
// applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test
// finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUpload creates an upload record with the given file name and
// column order and returns it.
func CreateTestUpload(t *testing.T, app *pocketbase.PocketBase, fileName string, columns []string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("uploads")
	if err != nil {
		t.Fatalf("failed to find uploads collection: %v", err)
	}

	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		t.Fatalf("failed to marshal columns: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("file_name", fileName)
	record.Set("batch_id", uuid.NewString())
	record.Set("columns_json", string(columnsJSON))
	record.Set("row_count", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test upload: %v", err)
	}

	return record
}

// CreateTestQuotationRow creates a quotation_rows record linked to an
// upload and returns it.
func CreateTestQuotationRow(t *testing.T, app *pocketbase.PocketBase, uploadID string, rowIndex int, cells map[string]string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotation_rows")
	if err != nil {
		t.Fatalf("failed to find quotation_rows collection: %v", err)
	}

	cellsJSON, err := json.Marshal(cells)
	if err != nil {
		t.Fatalf("failed to marshal cells: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("upload", uploadID)
	record.Set("row_index", rowIndex)
	record.Set("cells_json", string(cellsJSON))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation row: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package collections

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type rowDef struct {
	clientID string
	client   string
	company  string
	name     string
	number   string
	status   string
	location string
	date     string
	taxable  string
	invoiced string
	cme      string
	design   string
	video    string
}

var seedColumns = []string{
	"ClientID", "Client", "Company", "Name", "Number", "Estimate status",
	"Location", "Date", "Taxable amount", "converted to invoice (AMOUNT)",
	"CME", "Design", "Video",
}

// seedRows is a small demo sheet: three clients across two companies, with
// one resubmitted quotation (two versions of AE.101.EST.1).
var seedRows = []rowDef{
	{"C-001", "Sara", "Medline FZ", "Cardio Summit", "AE.101.EST.1.1", "Rejected", "UAE", "05/01/2023", "42000", "0", "30000", "12000", "0"},
	{"C-001", "Sara", "Medline FZ", "Cardio Summit", "AE.101.EST.1.2", "Closed", "UAE", "19/01/2023", "45500", "45500", "32000", "13500", "0"},
	{"C-001", "Sara", "Medline FZ", "Onco Webcast", "AE.101.EST.2.1", "Closed", "UAE", "12/06/2023", "28000", "28000", "0", "8000", "20000"},
	{"C-002", "Omar", "Medline FZ", "Derma Launch", "AE.102.EST.1.1", "Rejected", "KSA", "03/03/2023", "15500", "0", "0", "15500", "0"},
	{"C-003", "Lina", "Gulf Pharma", "Neuro Forum", "AE.201.EST.1.1", "Closed", "Kuwait", "22/09/2023", "91000", "88000", "61000", "0", "30000"},
	{"C-003", "Lina", "Gulf Pharma", "Neuro Forum", "AE.201.EST.1.2-A", "Closed", "Kuwait", "30/09/2023", "94000", "94000", "64000", "0", "30000"},
}

// Seed inserts a demo upload when the uploads collection is empty so the
// dashboard renders something on first run.
func Seed(app *pocketbase.PocketBase) error {
	uploadsCol, err := app.FindCollectionByNameOrId("uploads")
	if err != nil {
		return fmt.Errorf("uploads collection not found: %w", err)
	}

	existing, err := app.FindAllRecords(uploadsCol)
	if err == nil && len(existing) > 0 {
		return nil
	}

	rowsCol, err := app.FindCollectionByNameOrId("quotation_rows")
	if err != nil {
		return fmt.Errorf("quotation_rows collection not found: %w", err)
	}

	columnsJSON, err := json.Marshal(seedColumns)
	if err != nil {
		return fmt.Errorf("marshal seed columns: %w", err)
	}

	upload := core.NewRecord(uploadsCol)
	upload.Set("file_name", "demo-quotations.csv")
	upload.Set("batch_id", uuid.NewString())
	upload.Set("columns_json", string(columnsJSON))
	upload.Set("row_count", len(seedRows))
	if err := app.Save(upload); err != nil {
		return fmt.Errorf("save seed upload: %w", err)
	}

	for i, def := range seedRows {
		cells := map[string]string{
			"ClientID":                      def.clientID,
			"Client":                        def.client,
			"Company":                       def.company,
			"Name":                          def.name,
			"Number":                        def.number,
			"Estimate status":               def.status,
			"Location":                      def.location,
			"Date":                          def.date,
			"Taxable amount":                def.taxable,
			"converted to invoice (AMOUNT)": def.invoiced,
			"CME":                           def.cme,
			"Design":                        def.design,
			"Video":                         def.video,
		}
		cellsJSON, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("marshal seed row %d: %w", i, err)
		}

		record := core.NewRecord(rowsCol)
		record.Set("upload", upload.Id)
		record.Set("row_index", i)
		record.Set("cells_json", string(cellsJSON))
		if err := app.Save(record); err != nil {
			return fmt.Errorf("save seed row %d: %w", i, err)
		}
	}

	fmt.Printf("Seeded demo upload with %d quotation rows\n", len(seedRows))
	return nil
}

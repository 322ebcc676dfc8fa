package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// GenerateAnalyticsCSV serializes the per-client table with the flat export
// column contract.
func GenerateAnalyticsCSV(clients []ClientAnalytics) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(AnalyticsExportColumns()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range FlattenAnalytics(clients) {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

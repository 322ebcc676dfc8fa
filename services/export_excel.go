package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateAnalyticsExcel creates a styled Excel workbook of the per-client
// analytics table and returns the file contents as a byte slice.
func GenerateAnalyticsExcel(clients []ClientAnalytics) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Client Analytics"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := AnalyticsExportColumns()

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary style: %w", err)
	}

	// Header row.
	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		f.SetCellValue(sheetName, cell, h)
	}
	firstCol, _ := excelize.CoordinatesToCellName(1, 1)
	lastCol, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, fmt.Errorf("last header cell name: %w", err)
	}
	f.SetCellStyle(sheetName, firstCol, lastCol, headerStyle)

	// ClientID column wider than the rest.
	colA, _ := excelize.ColumnNumberToName(1)
	f.SetColWidth(sheetName, colA, colA, 22)
	if lastName, err := excelize.ColumnNumberToName(len(columns)); err == nil {
		colB, _ := excelize.ColumnNumberToName(2)
		f.SetColWidth(sheetName, colB, lastName, 16)
	}

	// Data rows.
	var totalCLV, totalValue float64
	for rowIdx, row := range FlattenAnalytics(clients) {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell name: %w", err)
			}
			f.SetCellValue(sheetName, cell, sanitizeExcelCell(value))
		}
		start, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		end, _ := excelize.CoordinatesToCellName(len(columns), rowIdx+2)
		f.SetCellStyle(sheetName, start, end, dataStyle)
	}
	for _, c := range clients {
		totalCLV += c.CLV
		totalValue += c.TotalProjectValue
	}

	// Summary rows after a blank line.
	summaryRow := len(clients) + 3
	labelCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow)
	f.SetCellValue(sheetName, labelCell, "Total CLV:")
	f.SetCellValue(sheetName, valueCell, FormatAED(totalCLV))
	f.SetCellStyle(sheetName, labelCell, valueCell, summaryStyle)

	labelCell, _ = excelize.CoordinatesToCellName(1, summaryRow+1)
	valueCell, _ = excelize.CoordinatesToCellName(2, summaryRow+1)
	f.SetCellValue(sheetName, labelCell, "Total Project Value:")
	f.SetCellValue(sheetName, valueCell, FormatAED(totalValue))
	f.SetCellStyle(sheetName, labelCell, valueCell, summaryStyle)

	labelCell, _ = excelize.CoordinatesToCellName(1, summaryRow+2)
	valueCell, _ = excelize.CoordinatesToCellName(2, summaryRow+2)
	f.SetCellValue(sheetName, labelCell, "Clients:")
	f.SetCellValue(sheetName, valueCell, len(clients))
	f.SetCellStyle(sheetName, labelCell, valueCell, summaryStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +,
// -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '@', '\t', '\r', '|':
		return "'" + s
	case '-':
		// Negative numbers are fine; only quote non-numeric leading dashes.
		if len(s) > 1 && (s[1] >= '0' && s[1] <= '9') {
			return s
		}
		return "'" + s
	}
	return s
}

// thinBorders returns excelize borders for thin lines on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

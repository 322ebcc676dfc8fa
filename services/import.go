package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level problem on one row of an
// uploaded quotation sheet.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an upload.
// Field-level errors are advisory: the pipeline substitutes sentinels for
// bad cells, so rows with errors still commit.
type ValidationResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Data      Dataset           `json:"-"`
	FileName  string            `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// BuildDataset converts headers + positional rows into a Dataset. Short rows
// pad missing cells with empty strings; header names keep their raw form
// (Normalize trims them later).
func BuildDataset(headers []string, rows [][]string) Dataset {
	ds := Dataset{Columns: headers}
	ds.Rows = make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		cells := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				cells[h] = row[i]
			} else {
				cells[h] = ""
			}
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return ds
}

// ValidateQuotationFile parses an uploaded quotation sheet and checks it for
// problems. Missing mandatory columns (ClientID, Number) are structural and
// returned as an error; bad dates and non-numeric amounts are collected as
// row-level warnings.
func ValidateQuotationFile(file io.Reader, fileName string) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	ds := BuildDataset(headers, dataRows)

	trimmedHas := func(name string) bool {
		for _, h := range headers {
			if strings.TrimSpace(h) == name {
				return true
			}
		}
		return false
	}
	if !trimmedHas(ColClientID) {
		return nil, fmt.Errorf("missing mandatory column %q", ColClientID)
	}
	if !trimmedHas(ColNumber) {
		return nil, fmt.Errorf("missing mandatory column %q", ColNumber)
	}

	result := &ValidationResult{
		TotalRows: len(dataRows),
		Data:      ds,
		FileName:  fileName,
	}

	numericCols := make([]string, 0, len(ServiceColumns)+2)
	for _, col := range append([]string{ColTaxable, ColInvoiced}, ServiceColumns...) {
		if trimmedHas(col) {
			numericCols = append(numericCols, col)
		}
	}
	hasDate := trimmedHas(ColDate)

	for rowIdx, cells := range ds.Rows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		value := func(col string) string {
			for k, v := range cells {
				if strings.TrimSpace(k) == col {
					return strings.TrimSpace(v)
				}
			}
			return ""
		}

		for _, col := range numericCols {
			v := value(col)
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Row:     rowNum,
					Field:   col,
					Message: fmt.Sprintf("%s %q is not numeric and will be treated as 0", col, v),
				})
			}
		}

		if hasDate {
			if v := value(ColDate); v != "" {
				if _, ok := parseDate(v); !ok {
					result.Errors = append(result.Errors, ValidationError{
						Row:     rowNum,
						Field:   ColDate,
						Message: fmt.Sprintf("Date %q is not parseable and will be excluded from date metrics", v),
					})
				}
			}
		}
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation
// errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Problem")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 26)
	f.SetColWidth(sheet, "C", "C", 60)

	for i, e := range errors {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}

// Package importer provides CSV and Excel import functionality for box
// tables. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/athul8raj/cargo-planning/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []model.BoxRow
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Length      int
	Width       int
	Height      int
	Quantity    int
	Weight      int
	Destination int
	Stackable   int
	BoxID       int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"length":      {"length", "len", "l"},
	"width":       {"width", "breadth", "w", "b"},
	"height":      {"height", "h"},
	"quantity":    {"quantity", "qty", "no_of_boxes", "count", "num", "pcs"},
	"weight":      {"weight", "wt", "kg", "mass"},
	"destination": {"destination", "dest", "to", "city"},
	"stackable":   {"stackable", "stackability", "stack"},
	"boxid":       {"box id", "boxid", "id", "box", "r-code", "shipping code"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Length:      -1,
		Width:       -1,
		Height:      -1,
		Quantity:    -1,
		Weight:      -1,
		Destination: -1,
		Stackable:   -1,
		BoxID:       -1,
	}

	assign := func(role string, idx int) {
		switch role {
		case "length":
			if mapping.Length == -1 {
				mapping.Length = idx
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = idx
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = idx
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = idx
			}
		case "weight":
			if mapping.Weight == -1 {
				mapping.Weight = idx
			}
		case "destination":
			if mapping.Destination == -1 {
				mapping.Destination = idx
			}
		case "stackable":
			if mapping.Stackable == -1 {
				mapping.Stackable = idx
			}
		case "boxid":
			if mapping.BoxID == -1 {
				mapping.BoxID = idx
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping matching the canonical sheet
		// layout: Length, Width, Height, Quantity, Weight, Destination,
		// Stackable, Box ID.
		return ColumnMapping{
			Length:      0,
			Width:       1,
			Height:      2,
			Quantity:    3,
			Weight:      4,
			Destination: 5,
			Stackable:   6,
			BoxID:       7,
		}, false
	}

	return mapping, true
}

// normalizeStackable converts a stackability cell to the canonical
// "Yes"/"No" spelling. Returns the value and whether the input was
// recognized.
func normalizeStackable(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "":
		return "Yes", true
	case "no", "n", "false", "0":
		return "No", true
	default:
		return "Yes", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDim parses a numeric cell into an integer. Fractional values
// are truncated, matching the integer pipeline downstream. The sign is
// not checked here.
func parseDim(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// parseRow extracts a BoxRow from a row using the given column mapping.
// Returns the row, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, rowCount int) (model.BoxRow, string, string) {
	var out model.BoxRow

	type dim struct {
		name string
		idx  int
		dst  *int
	}
	dims := []dim{
		{"length", mapping.Length, &out.Length},
		{"width", mapping.Width, &out.Width},
		{"height", mapping.Height, &out.Height},
	}
	for _, d := range dims {
		cell := getCell(row, d.idx)
		if cell == "" {
			return model.BoxRow{}, fmt.Sprintf("%s: Missing %s value", rowLabel, d.name), ""
		}
		v, err := parseDim(cell)
		if err != nil {
			return model.BoxRow{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, d.name, cell), ""
		}
		*d.dst = v
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.BoxRow{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.BoxRow{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}
	out.Quantity = qty

	weightStr := getCell(row, mapping.Weight)
	if weightStr == "" {
		return model.BoxRow{}, fmt.Sprintf("%s: Missing weight value", rowLabel), ""
	}
	weight, err := parseDim(weightStr)
	if err != nil {
		return model.BoxRow{}, fmt.Sprintf("%s: Invalid weight '%s'", rowLabel, weightStr), ""
	}
	out.Weight = weight

	out.Destination = getCell(row, mapping.Destination)
	if out.Destination == "" {
		return model.BoxRow{}, fmt.Sprintf("%s: Missing destination", rowLabel), ""
	}

	if out.Length <= 0 || out.Width <= 0 || out.Height <= 0 || out.Quantity <= 0 {
		return model.BoxRow{}, fmt.Sprintf("%s: Dimensions and quantity must be positive", rowLabel), ""
	}

	var warning string
	stackStr := getCell(row, mapping.Stackable)
	stack, ok := normalizeStackable(stackStr)
	if !ok {
		warning = fmt.Sprintf("%s: Unknown stackability '%s', defaulting to Yes", rowLabel, stackStr)
	}
	out.Stackable = stack

	out.BoxID = getCell(row, mapping.BoxID)
	if out.BoxID == "" {
		out.BoxID = fmt.Sprintf("BOX-%d", rowCount+1)
	}

	return out, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a box table from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a box table from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a box table from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// TruckSheetName is the workbook sheet holding one truck per row as
// [length, width, height] in centimeters.
const TruckSheetName = "truck_size"

// ImportTrucksExcel reads the truck-size sheet of a workbook. Trucks
// are named TRUCK-1, TRUCK-2, ... in row order. A header row is
// skipped when the first cell is not numeric.
func ImportTrucksExcel(path string) ([]model.Truck, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(TruckSheetName)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", TruckSheetName, err)
	}

	var trucks []model.Truck
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected length, width, height", i+1)
		}
		l, errL := parseDim(strings.TrimSpace(row[0]))
		w, errW := parseDim(strings.TrimSpace(row[1]))
		h, errH := parseDim(strings.TrimSpace(row[2]))
		if errL != nil || errW != nil || errH != nil {
			if i == 0 && len(trucks) == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: invalid truck dimensions", i+1)
		}
		trucks = append(trucks, model.Truck{
			Name:   fmt.Sprintf("TRUCK-%d", len(trucks)+1),
			Length: l,
			Width:  w,
			Height: h,
		})
	}
	if len(trucks) == 0 {
		return nil, fmt.Errorf("sheet %q has no trucks", TruckSheetName)
	}
	return trucks, nil
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into box rows.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if mapping.Weight == -1 {
			missing = append(missing, "Weight")
		}
		if mapping.Destination == -1 {
			missing = append(missing, "Destination")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][0]), 64); err != nil {
				// First column is not numeric - might be an unrecognized header.
				// Skip it as a header but use positional mapping.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		boxRow, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Rows))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Rows = append(result.Rows, boxRow)
	}

	return result
}

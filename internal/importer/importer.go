// Package importer reads scenario lists from CSV, Excel and DXF files.
// Tabular files hold one scenario per row. It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CrankHint/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Scenarios []model.Scenario
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// X[i] and Y[i] hold the columns of role i+1; -1 means absent.
type ColumnMapping struct {
	Name int
	X    [model.MaxRoles]int
	Y    [model.MaxRoles]int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name": {"name", "scenario", "label", "title"},
	"x1":   {"x1", "bottom wrist x", "bottom_x", "wrist1 x"},
	"y1":   {"y1", "bottom wrist y", "bottom_y", "wrist1 y"},
	"x2":   {"x2", "elbow x", "elbow_x"},
	"y2":   {"y2", "elbow y", "elbow_y"},
	"x3":   {"x3", "top wrist x", "top_x", "wrist2 x"},
	"y3":   {"y3", "top wrist y", "top_y", "wrist2 y"},
	"x4":   {"x4", "action x", "action_x"},
	"y4":   {"y4", "action y", "action_y"},
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
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

// positionalMapping is used when the first row is not a header:
// name, x1, y1, x2, y2, x3, y3, x4, y4.
func positionalMapping() ColumnMapping {
	m := ColumnMapping{Name: 0}
	for i := range model.MaxRoles {
		m.X[i] = 1 + 2*i
		m.Y[i] = 2 + 2*i
	}
	return m
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1}
	for i := range model.MaxRoles {
		mapping.X[i] = -1
		mapping.Y[i] = -1
	}

	isHeader := false
	for col, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for key, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				slot := columnSlot(&mapping, key)
				if *slot == -1 {
					*slot = col
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

// columnSlot returns the mapping field for a canonical column name.
func columnSlot(m *ColumnMapping, key string) *int {
	if key == "name" {
		return &m.Name
	}
	idx := int(key[1]-'1')
	if key[0] == 'x' {
		return &m.X[idx]
	}
	return &m.Y[idx]
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCoord parses a pixel coordinate. Fractional values are rounded and
// reported through the returned flag.
func parseCoord(s string) (int, bool, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("invalid coordinate '%s'", s)
	}
	return int(math.Round(f)), true, nil
}

// parseRow extracts a Scenario from a row using the given column mapping.
// Returns the scenario, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Scenario, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Scenario %d", count+1)
	}

	var points []model.Point
	rounded := false
	for i := range model.MaxRoles {
		role := model.Role(i + 1)
		xs := getCell(row, mapping.X[i])
		ys := getCell(row, mapping.Y[i])

		if xs == "" && ys == "" {
			if role == model.RoleAction {
				break
			}
			return model.Scenario{}, fmt.Sprintf("%s: Missing %s target", rowLabel, role), ""
		}
		if xs == "" || ys == "" {
			return model.Scenario{}, fmt.Sprintf("%s: %s target needs both x and y", rowLabel, role), ""
		}

		x, rx, err := parseCoord(xs)
		if err != nil {
			return model.Scenario{}, fmt.Sprintf("%s: %s x: %v", rowLabel, role, err), ""
		}
		y, ry, err := parseCoord(ys)
		if err != nil {
			return model.Scenario{}, fmt.Sprintf("%s: %s y: %v", rowLabel, role, err), ""
		}
		rounded = rounded || rx || ry
		points = append(points, model.Point{X: x, Y: y})
	}

	var warning string
	if rounded {
		warning = fmt.Sprintf("%s: Fractional coordinates rounded to whole pixels", rowLabel)
	}
	return model.NewScenario(name, points...), "", warning
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

// Import dispatches on the file extension.
func Import(path string, screenHeight int) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path, screenHeight)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports scenarios from a CSV file.
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

// ImportCSVFromReader imports scenarios from a CSV reader with a specific delimiter.
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

// ImportExcel imports scenarios from an Excel (.xlsx) file.
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

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a scenario.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Roles 1..3 are required, role 4 is optional
		missing := []string{}
		for i := range model.MaxRoles - 1 {
			if mapping.X[i] == -1 {
				missing = append(missing, fmt.Sprintf("X%d", i+1))
			}
			if mapping.Y[i] == -1 {
				missing = append(missing, fmt.Sprintf("Y%d", i+1))
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric second column
		if _, _, err := parseCoord(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		sc, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Scenarios))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Scenarios = append(result.Scenarios, sc)
	}

	return result
}

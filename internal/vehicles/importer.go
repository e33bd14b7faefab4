package vehicles

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of parsing a roster file. Rows are the
// valid vehicles; Errors lists skipped rows as "Row N: ..." where N is the
// spreadsheet line number.
type ImportResult struct {
	Rows    []Input   `json:"rows"`
	Errors  []string  `json:"errors"`
	Created []Vehicle `json:"created,omitempty"`
}

const missingFieldsMessage = "Missing required fields (year, make, model, or vin)"

// column aliases, compared after lower-casing the header cell.
var columnAliases = map[string][]string{
	"name":                {"name"},
	"year":                {"year"},
	"make":                {"make"},
	"model":               {"model"},
	"vin":                 {"vin"},
	"license_plate":       {"license_plate", "licenseplate"},
	"license_plate_state": {"license_plate_state", "licenseplatestate"},
}

// ParseFile picks a parser from the file extension.
func ParseFile(name string, r io.Reader) (ImportResult, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return ImportResult{}, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(name))
	}
}

// ParseCSV reads a roster CSV with a header row.
func ParseCSV(r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, rec)
	}
	return parseRecords(records), nil
}

// ParseXLSX reads the first worksheet of a roster workbook.
func ParseXLSX(r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return parseRecords(rows), nil
}

func parseRecords(records [][]string) ImportResult {
	result := ImportResult{Rows: []Input{}, Errors: []string{}}
	if len(records) == 0 {
		return result
	}

	columns := headerIndex(records[0])
	field := func(rec []string, key string) string {
		for _, idx := range columns[key] {
			if idx < len(rec) {
				if v := trim(rec[idx]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	dataIndex := 0
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		line := dataIndex + 2
		dataIndex++

		in := Input{
			Name:              field(rec, "name"),
			Year:              field(rec, "year"),
			Make:              field(rec, "make"),
			Model:             field(rec, "model"),
			VIN:               field(rec, "vin"),
			LicensePlate:      field(rec, "license_plate"),
			LicensePlateState: field(rec, "license_plate_state"),
		}
		if validateInput(in) != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", line, missingFieldsMessage))
			continue
		}
		if in.Name == "" {
			in.Name = in.LicensePlate
		}
		result.Rows = append(result.Rows, in)
	}
	return result
}

func headerIndex(header []string) map[string][]int {
	positions := make(map[string]int, len(header))
	for i, cell := range header {
		cell = strings.TrimPrefix(cell, "\ufeff")
		key := strings.ToLower(trim(cell))
		if _, ok := positions[key]; !ok {
			positions[key] = i
		}
	}
	out := make(map[string][]int, len(columnAliases))
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := positions[alias]; ok {
				out[canonical] = append(out[canonical], idx)
			}
		}
	}
	return out
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if trim(cell) != "" {
			return false
		}
	}
	return true
}

// Package tabular turns an uploaded byte buffer (CSV or XLSX) into
// normalized rows ready for entity extraction. Parsing never touches the
// database; the schema layer is the single source of validation errors.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyInput reports a zero-byte upload. Terminal for the job.
	ErrEmptyInput = errors.New("file is empty")
	// ErrNoDataRows reports a header-only upload. Terminal for the job.
	ErrNoDataRows = errors.New("file must have at least one data row")
)

// RawRow maps a normalized column name to the raw cell value.
type RawRow map[string]string

// Table is the ordered result of loading one upload.
type Table struct {
	Columns []string
	Rows    []RawRow
}

// xlsxMagic is the zip local-file-header signature; XLSX files are zip
// containers.
var xlsxMagic = []byte{'P', 'K', 0x03, 0x04}

// LoadRows parses the uploaded buffer into a Table. Column names are
// normalized; fully empty rows are dropped.
func LoadRows(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	var records [][]string
	var err error
	if bytes.HasPrefix(data, xlsxMagic) {
		records, err = readXLSX(data)
	} else {
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	table := &Table{}
	for _, name := range records[0] {
		table.Columns = append(table.Columns, NormalizeColumnName(name))
	}
	for _, cells := range records[1:] {
		row := RawRow{}
		empty := true
		for i, col := range table.Columns {
			if i >= len(cells) {
				break
			}
			value := strings.TrimSpace(cells[i])
			row[col] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			table.Rows = append(table.Rows, row)
		}
	}
	if len(table.Rows) == 0 {
		return nil, ErrNoDataRows
	}
	return table, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer book.Close()
	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	return book.GetRows(sheets[0])
}

// NormalizeColumnName lower-cases a header, treats underscores as spaces and
// collapses internal whitespace, so "  Rack_No  " becomes "rack no".
func NormalizeColumnName(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, "_", " "))
	return strings.Join(strings.Fields(name), " ")
}

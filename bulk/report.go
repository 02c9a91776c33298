package bulk

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"dcim/dao/model"
)

// BuildErrorCSV renders the failing rows back as CSV with an extra
// "Error Message" column. Results for the same input row are combined
// into one line. Returns nil when no row errored.
func BuildErrorCSV(results []RowResult, columns []string) ([]byte, error) {
	type errRow struct {
		raw      map[string]string
		messages []string
	}
	byRow := map[int]*errRow{}
	var order []int
	for _, res := range results {
		if res.Status != model.RowError || res.Error == "" {
			continue
		}
		row, ok := byRow[res.Row]
		if !ok {
			row = &errRow{raw: res.OriginalRow}
			byRow[res.Row] = row
			order = append(order, res.Row)
		}
		row.messages = append(row.messages, fmt.Sprintf("%s: %s", res.EntityType, res.Error))
	}
	if len(byRow) == 0 {
		return nil, nil
	}
	sort.Ints(order)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append(append([]string{}, columns...), "Error Message")
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rowNum := range order {
		row := byRow[rowNum]
		record := make([]string, 0, len(columns)+1)
		for _, col := range columns {
			record = append(record, row.raw[col])
		}
		record = append(record, strings.Join(row.messages, "; "))
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package reports

import (
	"bytes"
	"encoding/csv"
)

// Row maps a header to its cell value.
type Row map[string]string

// RenderCSV writes a header line followed by one line per row, with columns
// in header order. Keys missing from a row render as empty cells; keys not
// named in headers are ignored. Cells containing commas or quotes are quoted
// and inner quotes doubled.
func RenderCSV(headers []string, rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			record[i] = row[h]
		}
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

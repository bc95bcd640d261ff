// Package spreadsheet parses uploaded Excel workbooks into row maps for the
// bulk ingestion endpoints.
package spreadsheet

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("spreadsheet has no data rows")

// RowError reports one rejected row of a bulk upload. Row numbers are the
// spreadsheet's own (header is row 1).
type RowError struct {
	Row    int    `json:"row"`
	Detail string `json:"detail"`
}

// Report summarizes a bulk upload. Accepted rows stay committed even when
// later rows fail.
type Report struct {
	BatchID  string     `json:"batch_id"`
	Inserted int        `json:"inserted"`
	Errors   []RowError `json:"errors"`
}

// Rows reads the first sheet of an xlsx workbook. The first row is treated as
// the header; every following row becomes a map keyed by the lowercased,
// trimmed header cells. Short rows are padded with empty strings.
func Rows(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			} else {
				record[h] = ""
			}
		}
		out = append(out, record)
	}
	return out, nil
}

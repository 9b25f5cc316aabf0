// Package transfer moves todos in and out of CSV and Excel files.
package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Canonical field names of an imported row.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
	FieldCategory    = "category"
	FieldCompleted   = "completed"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, use CSV or Excel (.xlsx) files")
	ErrNoData            = errors.New("file must contain a header row and at least one data row")
)

var aliases = map[string]string{
	"title":       FieldTitle,
	"task":        FieldTitle,
	"name":        FieldTitle,
	"description": FieldDescription,
	"desc":        FieldDescription,
	"details":     FieldDescription,
	"due date":    FieldDueDate,
	"duedate":     FieldDueDate,
	"due":         FieldDueDate,
	"date":        FieldDueDate,
	"category":    FieldCategory,
	"type":        FieldCategory,
	"completed":   FieldCompleted,
	"done":        FieldCompleted,
	"status":      FieldCompleted,
}

// Row is one imported line keyed by canonical field name.
// Columns with an unknown header keep their raw header as key.
type Row map[string]string

// Header maps a column header to its canonical field name.
func Header(h string) string {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(h))]; ok {
		return f
	}
	return h
}

func toRows(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = Header(h)
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := Row{}
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReadCSV reads rows from CSV data with a header line.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return toRows(records), nil
}

// ReadXLSX reads rows from the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse excel file: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoData
	}
	return toRows(records), nil
}

// ReadFile reads rows from a .csv or .xlsx file.
func ReadFile(path string) ([]Row, error) {
	var read func(io.Reader) ([]Row, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = ReadCSV
	case ".xlsx":
		read = ReadXLSX
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks are not supported", ErrUnsupportedFormat)
	default:
		return nil, ErrUnsupportedFormat
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}

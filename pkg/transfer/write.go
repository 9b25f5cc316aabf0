package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Todos"

var exportHeader = []string{"Title", "Description", "Category", "Due Date", "Completed", "Created Date", "Updated Date"}

var columnWidths = []float64{30, 50, 12, 12, 10, 12, 12}

// Records turns c into a header line followed by one line per todo.
func Records(c todo.Collection) [][]string {
	out := make([][]string, 0, len(c)+1)
	out = append(out, exportHeader)
	for _, t := range c {
		out = append(out, []string{
			t.Title,
			t.Description,
			string(t.Category),
			date.FormatISO(t.DueDate),
			yesNo(t.Completed),
			isoOrEmpty(t.CreatedAt),
			isoOrEmpty(t.UpdatedAt),
		})
	}
	return out
}

func isoOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(date.ISO)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func WriteCSV(w io.Writer, c todo.Collection) error {
	return writeCSV(w, Records(c))
}

func writeCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes c as a workbook with a single sheet.
func WriteXLSX(w io.Writer, c todo.Collection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	for i, rec := range Records(c) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write excel file: %w", err)
	}
	return nil
}

// WriteFile exports c to path, choosing the format from its extension.
func WriteFile(path string, c todo.Collection) error {
	var write func(io.Writer, todo.Collection) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".xlsx":
		write = WriteXLSX
	default:
		return ErrUnsupportedFormat
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var sampleRows = [][]string{
	{"Title", "Description", "Category", "Due Date", "Completed"},
	{"Complete project proposal", "Finish the Q1 project proposal document", "Work", "2025-02-15", "No"},
	{"Buy groceries", "Milk, bread, eggs, and vegetables", "Personal", "2025-02-10", "No"},
	{"Fix critical bug", "Address the login issue reported by users", "Urgent", "2025-02-08", "Yes"},
}

// WriteTemplate writes a sample CSV file showing the columns import understands.
func WriteTemplate(w io.Writer) error {
	return writeCSV(w, sampleRows)
}

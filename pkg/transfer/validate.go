package transfer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

var errTitleRequired = errors.New("title is required")

// RowResult is the outcome of validating one row. Exactly one of Draft and
// Errors is set.
type RowResult struct {
	// Row is the 1-based data row number, not counting the header
	Row      int
	Draft    *todo.Draft
	Errors   criterio.FieldErrors
	Warnings []string
}

func (r RowResult) Valid() bool {
	return r.Draft != nil
}

// Validate checks row number index (0-based) and turns it into a draft,
// replacing bad optional values with defaults.
func Validate(row Row, index int) RowResult {
	res := RowResult{Row: index + 1}
	warn := func(format string, args ...any) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Row %d: ", res.Row)+fmt.Sprintf(format, args...))
	}

	var errs criterio.FieldErrorsBuilder
	title := strings.TrimSpace(row[FieldTitle])
	if title == "" {
		errs = errs.Append(FieldTitle, errTitleRequired)
	}

	d := todo.Draft{
		Title:       title,
		Description: strings.TrimSpace(row[FieldDescription]),
		Category:    todo.DefaultCategory,
		Completed:   truthy(row[FieldCompleted]),
	}
	if raw := strings.TrimSpace(row[FieldCategory]); raw != "" {
		if c, ok := todo.ParseCategory(raw); ok {
			d.Category = c
		} else {
			warn("Invalid category %q, defaulting to %s", raw, todo.DefaultCategory)
		}
	}
	if raw := strings.TrimSpace(row[FieldDueDate]); raw != "" {
		due, err := date.ParseAbsolute(raw)
		if err != nil {
			warn("Invalid due date %q, ignoring", raw)
		} else {
			d.DueDate = due
		}
	}

	if err := errs.ToError(); err != nil {
		var fe criterio.FieldErrors
		if errors.As(err, &fe) {
			res.Errors = fe
		}
		return res
	}
	res.Draft = &d
	return res
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

type Report struct {
	Valid    []todo.Draft
	Invalid  []RowResult
	Warnings []string
}

// Messages lists every error and warning of the report, one per line.
func (r Report) Messages() []string {
	var out []string
	for _, inv := range r.Invalid {
		for _, fe := range inv.Errors {
			out = append(out, fmt.Sprintf("Row %d: %s: %v", inv.Row, fe.Field, fe.Err))
		}
	}
	return append(out, r.Warnings...)
}

// Process validates every row. Rows that fail keep their position in the
// report but never stop the others.
func Process(rows []Row) Report {
	var rep Report
	for i, row := range rows {
		res := Validate(row, i)
		rep.Warnings = append(rep.Warnings, res.Warnings...)
		if !res.Valid() {
			rep.Invalid = append(rep.Invalid, res)
			continue
		}
		rep.Valid = append(rep.Valid, *res.Draft)
	}
	return rep
}

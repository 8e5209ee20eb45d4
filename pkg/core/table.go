// Package core provides the intermediate representation (IR) models and validation logic
// for protein quantification data used by potomato.
package core

import (
	"fmt"
	"strings"
)

// Column is a single named column of a wide-format table.
type Column struct {
	Name  string
	Cells []string
}

// RawTable is a wide-format table: one row per protein, one column per field or sample.
type RawTable struct {
	Columns []Column
}

// NewRawTable builds a table from a header and row-major records.
func NewRawTable(header []string, rows [][]string) (*RawTable, error) {
	t := &RawTable{Columns: make([]Column, len(header))}
	for i, name := range header {
		t.Columns[i] = Column{Name: name, Cells: make([]string, 0, len(rows))}
	}

	for r, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(header))
		}
		for i, cell := range row {
			t.Columns[i].Cells = append(t.Columns[i].Cells, cell)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Names returns the column names in table order.
func (t *RawTable) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NumRows returns the number of rows (proteins) in the table.
func (t *RawTable) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Column returns the column with the given name.
func (t *RawTable) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Select returns a new table holding only the named columns, in the given order.
func (t *RawTable) Select(names []string) (*RawTable, error) {
	out := &RawTable{Columns: make([]Column, 0, len(names))}
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		out.Columns = append(out.Columns, c)
	}
	return out, nil
}

// Validate checks that column names are unique and all columns have equal length.
func (t *RawTable) Validate() error {
	var errs []string

	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c.Name] {
			errs = append(errs, fmt.Sprintf("duplicate column %q", c.Name))
		}
		seen[c.Name] = true
	}

	n := t.NumRows()
	for _, c := range t.Columns {
		if len(c.Cells) != n {
			errs = append(errs, fmt.Sprintf("column %q has %d rows, expected %d", c.Name, len(c.Cells), n))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "RawTable",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}

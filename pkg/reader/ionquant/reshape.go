package ionquant

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// Sample name suffixes stripped from intensity column headers.
const (
	maxLFQSuffix    = " maxlfq intensity"
	intensitySuffix = " intensity"
)

// SampleName strips the intensity suffix from a column header, case-insensitively.
func SampleName(column string, useMaxLFQ bool) string {
	suffix := intensitySuffix
	if useMaxLFQ {
		suffix = maxLFQSuffix
	}
	if len(column) >= len(suffix) && strings.EqualFold(column[len(column)-len(suffix):], suffix) {
		return column[:len(column)-len(suffix)]
	}
	return column
}

// ParseIntensity parses an intensity cell. IonQuant writes 0 for proteins that were
// not detected, so zero, empty, NA and NaN cells all become the missing value.
func ParseIntensity(cell string) (null.Float, error) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "na", "nan":
		return null.Float{}, nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return null.Float{}, err
	}
	if v == 0 {
		return null.Float{}, nil
	}
	return null.FloatFrom(v), nil
}

// Reshape melts the selected intensity columns of t into long form: one record per
// (row, intensity column) pair, ordered column by column. Missing values are kept.
// It returns the lower-cased identifier column names alongside the records.
func Reshape(t *core.RawTable, idCols []string, sel Selection) ([]core.Record, []string, error) {
	ids := make([]core.Column, len(idCols))
	for i, name := range idCols {
		c, ok := t.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("identifier column %q not in table", name)
		}
		ids[i] = c
	}

	rows := t.NumRows()
	records := make([]core.Record, 0, rows*len(sel.Columns))
	for _, name := range sel.Columns {
		col, ok := t.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("intensity column %q not in table", name)
		}
		sample := SampleName(name, sel.UseMaxLFQ)

		for r := 0; r < rows; r++ {
			v, err := ParseIntensity(col.Cells[r])
			if err != nil {
				return nil, nil, &core.ValidationError{
					Field:   name,
					Message: fmt.Sprintf("row %d: invalid intensity %q", r+1, col.Cells[r]),
				}
			}

			rowIDs := make([]string, len(ids))
			for i, c := range ids {
				rowIDs[i] = c.Cells[r]
			}
			records = append(records, core.Record{
				IDs:       rowIDs,
				Sample:    sample,
				Intensity: v,
			})
		}
	}

	lower := make([]string, len(idCols))
	for i, name := range idCols {
		lower[i] = strings.ToLower(name)
	}
	return records, lower, nil
}

// Package tsv writes protein datasets as long-form, tab-separated tables.
package tsv

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// MissingValue is written for undetected intensities and unassigned conditions.
const MissingValue = "NA"

// Row is one long-form output line.
type Row struct {
	Protein   string `csv:"protein"`
	Sample    string `csv:"sample"`
	Condition string `csv:"condition"`
	Intensity string `csv:"intensity"`
}

// Rows converts the records of d to output rows.
func Rows(d *core.ProteinDataset) []*Row {
	primary := 0
	for i, c := range d.IDColumns() {
		if c == d.PrimaryIDColumn() {
			primary = i
		}
	}

	records := d.Records()
	rows := make([]*Row, len(records))
	for i, rec := range records {
		row := &Row{
			Protein:   rec.IDs[primary],
			Sample:    rec.Sample,
			Condition: MissingValue,
			Intensity: MissingValue,
		}
		if rec.Condition.Valid {
			row.Condition = rec.Condition.String
		}
		if rec.Intensity.Valid {
			row.Intensity = strconv.FormatFloat(rec.Intensity.Float64, 'g', -1, 64)
		}
		rows[i] = row
	}
	return rows
}

// Write writes d to w as a tab-separated table with a header line.
func Write(w io.Writer, d *core.ProteinDataset) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(Rows(d), gocsv.NewSafeCSVWriter(cw)); err != nil {
		return errors.Wrap(err, "failed to write long-form table")
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes d to a new file at path.
func WriteFile(path string, d *core.ProteinDataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, d)
}

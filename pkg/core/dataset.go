package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"
)

// Default long-form field names.
const (
	SampleColumn    = "sample"
	IntensityColumn = "intensity"
	ConditionColumn = "condition"
)

// Scale is the numeric scale of a dataset's intensities.
type Scale int

const (
	ScaleRaw Scale = iota
	ScaleLog2
)

func (s Scale) String() string {
	switch s {
	case ScaleRaw:
		return "raw"
	case ScaleLog2:
		return "log2"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// Record is one (protein, sample) observation in long form.
type Record struct {
	IDs       []string    // values of the dataset's identifier columns, in column order
	Sample    string      // bare sample name
	Intensity null.Float  // invalid when the protein was not detected
	Condition null.String // invalid when the sample has no condition
}

// DatasetConfig describes the column roles of a ProteinDataset.
type DatasetConfig struct {
	IDColumns       []string
	SampleColumn    string // defaults to SampleColumn
	IntensityColumn string // defaults to IntensityColumn
	Conditions      *ConditionMap
	Assignment      Assignment // optional sample -> condition
	Logger          logrus.FieldLogger
}

// ProteinDataset holds protein intensities in long form. Only Log2Transform mutates it
// after construction, and only the intensity values.
type ProteinDataset struct {
	records    []Record
	idCols     []string
	primaryID  int
	sampleCol  string
	intenCol   string
	conditions *ConditionMap
	assignment Assignment
	scale      Scale
	log        logrus.FieldLogger
}

// NewProteinDataset takes ownership of records and attaches conditions from cfg.Assignment.
func NewProteinDataset(records []Record, cfg DatasetConfig) (*ProteinDataset, error) {
	if len(cfg.IDColumns) == 0 {
		return nil, &ConfigurationError{Message: "dataset requires at least one identifier column"}
	}
	for i, rec := range records {
		if len(rec.IDs) != len(cfg.IDColumns) {
			return nil, &ValidationError{
				Field:   "Record",
				Message: fmt.Sprintf("record %d has %d identifiers, expected %d", i, len(rec.IDs), len(cfg.IDColumns)),
			}
		}
	}

	d := &ProteinDataset{
		records:    records,
		idCols:     append([]string(nil), cfg.IDColumns...),
		sampleCol:  cfg.SampleColumn,
		intenCol:   cfg.IntensityColumn,
		conditions: cfg.Conditions,
		assignment: cfg.Assignment,
		log:        cfg.Logger,
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	if d.sampleCol == "" {
		d.sampleCol = SampleColumn
	}
	if d.intenCol == "" {
		d.intenCol = IntensityColumn
	}
	for i, c := range d.idCols {
		if strings.EqualFold(c, "protein") {
			d.primaryID = i
			break
		}
	}

	if d.assignment != nil {
		for i := range d.records {
			cond, ok := d.assignment[d.records[i].Sample]
			d.records[i].Condition = null.NewString(cond, ok)
		}
	}

	return d, nil
}

// Len returns the number of long-form records.
func (d *ProteinDataset) Len() int {
	return len(d.records)
}

// Proteins returns the distinct values of the primary identifier column in order of appearance.
func (d *ProteinDataset) Proteins() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range d.records {
		id := rec.IDs[d.primaryID]
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Samples returns the distinct sample names in order of appearance.
func (d *ProteinDataset) Samples() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range d.records {
		if !seen[rec.Sample] {
			seen[rec.Sample] = true
			out = append(out, rec.Sample)
		}
	}
	return out
}

// Records returns a copy of the long-form records.
func (d *ProteinDataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, rec := range d.records {
		out[i] = rec
		out[i].IDs = append([]string(nil), rec.IDs...)
	}
	return out
}

func (d *ProteinDataset) IDColumns() []string       { return append([]string(nil), d.idCols...) }
func (d *ProteinDataset) PrimaryIDColumn() string   { return d.idCols[d.primaryID] }
func (d *ProteinDataset) SampleColumn() string      { return d.sampleCol }
func (d *ProteinDataset) IntensityColumn() string   { return d.intenCol }
func (d *ProteinDataset) Conditions() *ConditionMap { return d.conditions }
func (d *ProteinDataset) Scale() Scale              { return d.scale }

// Condition returns the condition assigned to sample.
func (d *ProteinDataset) Condition(sample string) (string, bool) {
	cond, ok := d.assignment[sample]
	return cond, ok
}

// Log2Transform replaces every detected intensity with its base-2 logarithm. Missing
// values pass through. It fails without modifying the dataset if the dataset is already
// log-scaled, which is also logged as a warning, or if any detected intensity is not
// positive.
func (d *ProteinDataset) Log2Transform() error {
	const op = "log2 transform"

	if d.scale == ScaleLog2 {
		d.log.Warn("Dataset is already log2-scaled; refusing to transform it again")
		return &DomainError{Op: op, Message: "dataset is already log2-scaled"}
	}

	for _, rec := range d.records {
		if !rec.Intensity.Valid {
			continue
		}
		if v := rec.Intensity.Float64; v <= 0 || math.IsNaN(v) {
			return &DomainError{
				Op:      op,
				Message: fmt.Sprintf("intensity %g for protein %s in sample %s is not positive", v, rec.IDs[d.primaryID], rec.Sample),
			}
		}
	}

	for i := range d.records {
		if d.records[i].Intensity.Valid {
			d.records[i].Intensity.Float64 = math.Log2(d.records[i].Intensity.Float64)
		}
	}
	d.scale = ScaleLog2
	return nil
}

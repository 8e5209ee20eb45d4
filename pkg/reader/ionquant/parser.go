package ionquant

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/potomato/pkg/core"
	"github.com/ChrisMcGann/potomato/pkg/reader/tsv"
)

// Options controls how an IonQuant protein table is parsed.
type Options struct {
	ConditionTags string // comma-separated condition tags; empty for none
	UseMaxLFQ     bool   // prefer MaxLFQ intensities when present
	Logger        logrus.FieldLogger
}

// DefaultOptions returns options that prefer MaxLFQ intensities and assign no conditions.
func DefaultOptions() Options {
	return Options{UseMaxLFQ: true}
}

// Parser parses IonQuant combined_protein.tsv tables.
type Parser struct {
	opts Options
	log  logrus.FieldLogger
}

// NewParser creates a new IonQuant parser.
func NewParser(opts Options) *Parser {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Parser{opts: opts, log: log}
}

// Parse runs the full pipeline: classify columns, select intensities, validate
// condition tags, reshape to long form and build the dataset. Nothing is returned
// on failure, and any file opened for src is closed before Parse returns.
func (p *Parser) Parse(src core.InputSource) (*core.ProteinDataset, error) {
	p.log.Info("Parsing IonQuant protein input...")

	var (
		names []string
		load  func(columns []string) (*core.RawTable, error)
	)
	switch s := src.(type) {
	case core.FilePath:
		r, err := tsv.Open(string(s), p.log)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		names = r.Header()
		load = r.ReadTable
	case core.LoadedTable:
		if s.Table == nil {
			return nil, errors.New("loaded table is nil")
		}
		if err := s.Table.Validate(); err != nil {
			return nil, err
		}
		names = s.Table.Names()
		load = s.Table.Select
	default:
		return nil, errors.Errorf("unsupported input source %T", src)
	}

	groups := ClassifyColumns(names)
	p.log.Debugf("Found %d identifier, %d MaxLFQ and %d raw intensity columns",
		len(groups.Identifier), len(groups.MaxLFQ), len(groups.RawIntensity))
	for _, name := range unclassified(names, groups) {
		p.log.Debugf("Ignoring column %q", name)
	}
	if len(groups.Identifier) == 0 {
		return nil, &core.ConfigurationError{Message: "no protein identifier column found"}
	}

	sel, err := SelectIntensityColumns(groups, p.opts.UseMaxLFQ, p.log)
	if err != nil {
		return nil, err
	}

	var (
		conditions *core.ConditionMap
		assignment core.Assignment
	)
	if p.opts.ConditionTags != "" {
		conditions, err = ParseConditionTags(p.opts.ConditionTags, p.log)
		if err != nil {
			return nil, err
		}
		byColumn, err := ValidateConditionTags(conditions, sel.Columns, p.log)
		if err != nil {
			return nil, err
		}
		assignment = make(core.Assignment, len(byColumn))
		for col, tag := range byColumn {
			assignment[SampleName(col, sel.UseMaxLFQ)] = tag
		}
	}

	keep := make([]string, 0, len(groups.Identifier)+len(sel.Columns))
	keep = append(keep, groups.Identifier...)
	keep = append(keep, sel.Columns...)
	table, err := load(keep)
	if err != nil {
		return nil, err
	}

	records, idCols, err := Reshape(table, groups.Identifier, sel)
	if err != nil {
		return nil, err
	}

	return core.NewProteinDataset(records, core.DatasetConfig{
		IDColumns:  idCols,
		Conditions: conditions,
		Assignment: assignment,
		Logger:     p.log,
	})
}

// ReadFile parses the IonQuant protein table at path.
func ReadFile(path string, opts Options) (*core.ProteinDataset, error) {
	return NewParser(opts).Parse(core.FilePath(path))
}

// ReadTable parses an IonQuant protein table that is already in memory.
func ReadTable(t *core.RawTable, opts Options) (*core.ProteinDataset, error) {
	return NewParser(opts).Parse(core.LoadedTable{Table: t})
}

// Package reader selects the parser for a quantification tool's output format.
package reader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/potomato/pkg/core"
	"github.com/ChrisMcGann/potomato/pkg/reader/ionquant"
)

// Supported input formats.
const (
	FormatIonQuant = "ionquant"
)

// Level is the granularity of an input table.
type Level string

const (
	LevelProtein Level = "protein"
	LevelPeptide Level = "peptide"
)

var (
	// ErrUnsupportedFormat is returned for input formats with no parser.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrUnsupportedLevel is returned for input levels with no parser.
	ErrUnsupportedLevel = errors.New("unsupported input level")
)

// Parser turns an input table into a protein dataset.
type Parser interface {
	Parse(src core.InputSource) (*core.ProteinDataset, error)
}

// Config selects and configures a parser.
type Config struct {
	Format        string
	Level         Level // defaults to LevelProtein
	ConditionTags string
	UseMaxLFQ     bool
	Logger        logrus.FieldLogger
}

// NewParser returns the parser for cfg.Format. Unknown formats and levels are
// reported as warnings and return an error.
func NewParser(cfg Config) (Parser, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Level == "" {
		cfg.Level = LevelProtein
	}

	if cfg.Level != LevelProtein {
		log.Warnf("Cannot parse input level (%s)", cfg.Level)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLevel, cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case FormatIonQuant:
		return ionquant.NewParser(ionquant.Options{
			ConditionTags: cfg.ConditionTags,
			UseMaxLFQ:     cfg.UseMaxLFQ,
			Logger:        log,
		}), nil
	default:
		log.Warnf("Protein input format (%s) is not a recognized format", cfg.Format)
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
	}
}

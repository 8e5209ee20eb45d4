// Package ionquant parses IonQuant combined_protein.tsv tables into long-form
// protein datasets.
package ionquant

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// Header patterns, matched case-insensitively as substrings.
const (
	identifierPattern = "protein"
	maxLFQPattern     = "maxlfq intensity"
	intensityPattern  = "intensity"
	maxLFQExclusion   = "maxlfq"
)

// ClassifyColumns sorts column names into identifier, MaxLFQ and raw intensity groups.
// A name that matches several patterns lands in the first of identifier, MaxLFQ, raw.
// Names matching no pattern are left out.
func ClassifyColumns(names []string) core.ColumnGroups {
	var g core.ColumnGroups
	for _, name := range names {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, identifierPattern):
			g.Identifier = append(g.Identifier, name)
		case strings.Contains(lower, maxLFQPattern):
			g.MaxLFQ = append(g.MaxLFQ, name)
		case strings.Contains(lower, intensityPattern) && !strings.Contains(lower, maxLFQExclusion):
			g.RawIntensity = append(g.RawIntensity, name)
		}
	}
	return g
}

// unclassified returns the names that belong to no group.
func unclassified(names []string, g core.ColumnGroups) []string {
	used := make(map[string]bool)
	for _, group := range [][]string{g.Identifier, g.MaxLFQ, g.RawIntensity} {
		for _, name := range group {
			used[name] = true
		}
	}
	var out []string
	for _, name := range names {
		if !used[name] {
			out = append(out, name)
		}
	}
	return out
}

// Selection is the authoritative intensity column group.
type Selection struct {
	Columns   []string
	UseMaxLFQ bool // MaxLFQ columns are in use
}

// SelectIntensityColumns picks the MaxLFQ group when requested and present, and the
// raw intensity group otherwise.
func SelectIntensityColumns(g core.ColumnGroups, useMaxLFQ bool, log logrus.FieldLogger) (Selection, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var sel Selection
	switch {
	case useMaxLFQ && len(g.MaxLFQ) > 0:
		sel = Selection{Columns: g.MaxLFQ, UseMaxLFQ: true}
	case useMaxLFQ:
		log.Warn("MaxLFQ requested but not found; falling back to raw intensity")
		sel = Selection{Columns: g.RawIntensity}
	default:
		sel = Selection{Columns: g.RawIntensity}
	}

	if len(sel.Columns) == 0 {
		kind := "intensity"
		if sel.UseMaxLFQ {
			kind = "MaxLFQ intensity"
		}
		return Selection{}, &core.ConfigurationError{Message: "no usable " + kind + " columns found"}
	}
	return sel, nil
}

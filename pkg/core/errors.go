package core

import (
	"fmt"
	"strings"
)

// ValidationError represents an error found while validating a table.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ConfigurationError reports input that cannot produce a dataset, such as a table
// without usable intensity columns.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

// ConditionTagError reports a condition tag that matches fewer than MinReplicates columns.
type ConditionTagError struct {
	Tag   string
	Count int
}

func (e *ConditionTagError) Error() string {
	return fmt.Sprintf("%d columns found matching tag %q, need at least %d", e.Count, e.Tag, MinReplicates)
}

// ConditionTagAmbiguityError reports intensity columns matched by more than one tag.
type ConditionTagAmbiguityError struct {
	Columns []string // columns matched by more than one tag
}

func (e *ConditionTagAmbiguityError) Error() string {
	return fmt.Sprintf("columns could not be uniquely assigned to a condition tag, make sure tags do not overlap: %s",
		strings.Join(e.Columns, ", "))
}

// DomainError reports a transform that is undefined for the dataset's current values or scale.
type DomainError struct {
	Op      string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

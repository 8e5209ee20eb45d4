package ionquant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// ParseConditionTags splits a comma-separated tag list. Tags are trimmed and
// lower-cased; an empty tag is an error.
func ParseConditionTags(s string, log logrus.FieldLogger) (*core.ConditionMap, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			return nil, &core.ConfigurationError{Message: fmt.Sprintf("empty condition tag in %q", s)}
		}
		if seen[tag] {
			log.Debugf("Condition tag %q given more than once", tag)
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return core.NewConditionMap(tags), nil
}

// ValidateConditionTags matches every tag against columns and returns the resulting
// column -> tag assignment. Matching is case-insensitive in both tag and column. Each tag must match at least core.MinReplicates columns
// and no column may match more than one tag. Columns that match no tag are absent
// from the result.
func ValidateConditionTags(conditions *core.ConditionMap, columns []string, log logrus.FieldLogger) (core.Assignment, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	tags := conditions.Tags()
	matched := make(map[string][]string, len(tags))
	for _, tag := range tags {
		needle := strings.ToLower(tag)
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), needle) {
				matched[tag] = append(matched[tag], col)
			}
		}
	}

	for _, tag := range tags {
		if n := len(matched[tag]); n < core.MinReplicates {
			log.Errorf("%d columns found matching tag %q", n, tag)
			return nil, &core.ConditionTagError{Tag: tag, Count: n}
		}
	}

	assignment := make(core.Assignment)
	var ambiguous []string
	for _, tag := range tags {
		for _, col := range matched[tag] {
			if _, dup := assignment[col]; dup {
				ambiguous = append(ambiguous, col)
				continue
			}
			assignment[col] = tag
		}
	}
	if len(ambiguous) > 0 {
		ambiguous = dedupe(ambiguous)
		log.Errorf("Some columns match multiple tags and cannot be uniquely assigned: %s", strings.Join(ambiguous, ", "))
		return nil, &core.ConditionTagAmbiguityError{Columns: ambiguous}
	}

	for _, col := range columns {
		if _, ok := assignment[col]; !ok {
			log.Debugf("Column %q matches no condition tag", col)
		}
	}
	return assignment, nil
}

func dedupe(s []string) []string {
	sort.Strings(s)
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

package core

// MinReplicates is the minimum number of intensity columns each condition tag must match.
const MinReplicates = 2

// ColumnGroups classifies a table's column names into identifier, MaxLFQ intensity,
// and raw intensity columns. The groups are disjoint and keep table order.
type ColumnGroups struct {
	Identifier   []string
	MaxLFQ       []string
	RawIntensity []string
}

// ConditionMap keeps user-supplied condition tags in the order they were given.
type ConditionMap struct {
	tags  []string
	index map[string]int
}

// NewConditionMap builds a ConditionMap. Repeated tags keep their first position.
func NewConditionMap(tags []string) *ConditionMap {
	m := &ConditionMap{index: make(map[string]int, len(tags))}
	for _, tag := range tags {
		if _, ok := m.index[tag]; ok {
			continue
		}
		m.index[tag] = len(m.tags)
		m.tags = append(m.tags, tag)
	}
	return m
}

// Tags returns the tags in input order.
func (m *ConditionMap) Tags() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.tags))
	copy(out, m.tags)
	return out
}

// Index returns the ordinal of tag.
func (m *ConditionMap) Index(tag string) (int, bool) {
	if m == nil {
		return 0, false
	}
	i, ok := m.index[tag]
	return i, ok
}

// Len returns the number of distinct tags.
func (m *ConditionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tags)
}

// Assignment maps a sample name to exactly one condition tag.
type Assignment map[string]string

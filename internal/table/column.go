package table

// Cell is a numeric table value that may be missing.
type Cell struct {
	Value float64
	Valid bool
}

// Missing is the empty cell.
var Missing = Cell{}

// Value returns a present cell holding v.
func Value(v float64) Cell {
	return Cell{Value: v, Valid: true}
}

// Entry is one row of a sample column.
type Entry struct {
	Key   Key
	Value Cell
}

// SampleColumn is a single-column table keyed by feature key and labeled
// with the sample's name. Entries keep the order of the source rows.
type SampleColumn struct {
	Name       string
	KeyColumns []string
	Entries    []Entry
}

// NewSampleColumn labels a set of (key, value) entries with a sample name.
// It is the rename step of loading, kept separate from file parsing.
func NewSampleColumn(name string, keyColumns []string, entries []Entry) *SampleColumn {
	return &SampleColumn{
		Name:       name,
		KeyColumns: append([]string(nil), keyColumns...),
		Entries:    entries,
	}
}

// Len returns the number of entries.
func (c *SampleColumn) Len() int {
	return len(c.Entries)
}

// DuplicateKeys returns each key that occurs more than once, in order of
// its first repeat.
func (c *SampleColumn) DuplicateKeys() []Key {
	seen := make(map[string]int, len(c.Entries))
	var dups []Key
	for _, e := range c.Entries {
		id := e.Key.id()
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, e.Key)
		}
	}
	return dups
}

// group returns the entry values per key and the keys in first-seen order.
func (c *SampleColumn) group() (map[string][]Cell, []Key) {
	values := make(map[string][]Cell, len(c.Entries))
	order := make([]Key, 0, len(c.Entries))
	for _, e := range c.Entries {
		id := e.Key.id()
		if _, ok := values[id]; !ok {
			order = append(order, e.Key)
		}
		values[id] = append(values[id], e.Value)
	}
	return values, order
}
